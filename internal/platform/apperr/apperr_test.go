package apperr

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	base := errors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, Unknown},
		{"plain error", base, Unknown},
		{"tagged", New(NotFound, "missing"), NotFound},
		{"wrapped cause", Wrap(Store, "query failed", base), Store},
		{"tag survives fmt wrapping", fmt.Errorf("outer: %w", New(Validation, "bad amount")), Validation},
		{"deadline is transient", context.DeadlineExceeded, Transient},
		{"deadline wins over tag", Wrap(Store, "query failed", context.DeadlineExceeded), Transient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	e := Wrap(Dependency, "allocation service", errors.New("connection refused"))
	want := "allocation service: connection refused"
	if e.Error() != want {
		t.Errorf("Error() = %q, want %q", e.Error(), want)
	}

	if New(Validation, "treatment is required").Error() != "treatment is required" {
		t.Error("message without cause should be returned verbatim")
	}
}

func TestUnwrapReachesSentinel(t *testing.T) {
	sentinel := errors.New("no rows")
	e := Wrap(NotFound, "doctor lookup", sentinel)
	if !errors.Is(e, sentinel) {
		t.Error("expected errors.Is to reach the wrapped sentinel")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(New(NotFound, "gone")) {
		t.Error("expected IsNotFound for NotFound error")
	}
	if IsNotFound(New(Store, "down")) {
		t.Error("did not expect IsNotFound for Store error")
	}
}

func TestKindString(t *testing.T) {
	for k, want := range map[Kind]string{
		NotFound:   "not_found",
		Validation: "validation",
		Dependency: "dependency",
		Store:      "store",
		Transient:  "transient",
		Unknown:    "unknown",
	} {
		if k.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, k.String(), want)
		}
	}
}
