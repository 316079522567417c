package patient

import "testing"

func strptr(s string) *string { return &s }

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		patient Patient
		want    string
	}{
		{
			name:    "without maternal surname",
			patient: Patient{GivenName: "Jane", PaternalSurname: "Doe"},
			want:    "Jane Doe",
		},
		{
			name:    "with maternal surname",
			patient: Patient{GivenName: "Jane", PaternalSurname: "Doe", MaternalSurname: strptr("Smith")},
			want:    "Jane Doe Smith",
		},
		{
			name:    "empty maternal surname omitted",
			patient: Patient{GivenName: "Jane", PaternalSurname: "Doe", MaternalSurname: strptr("")},
			want:    "Jane Doe",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.patient.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}
