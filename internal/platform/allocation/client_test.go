package allocation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hospadmin/hospadmin/internal/platform/apperr"
)

func TestAssign(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hospital" {
			t.Errorf("path = %q, want /hospital", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("method = %q, want GET", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"codigo":200,"mensajes":[],"datos":{"sala":3,"cama":12}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	got, err := client.Assign(context.Background())
	if err != nil {
		t.Fatalf("Assign: %v", err)
	}
	if got.Room != 3 || got.Bed != 12 {
		t.Errorf("assignment = %+v, want room 3 bed 12", got)
	}
}

func TestAssignRejectedByService(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"codigo":500,"mensajes":["no beds available"],"datos":{"sala":0,"cama":0}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Assign(context.Background())
	if err == nil {
		t.Fatal("expected error for rejected allocation")
	}
	if apperr.KindOf(err) != apperr.Dependency {
		t.Errorf("kind = %v, want Dependency", apperr.KindOf(err))
	}
}

func TestAssignNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	_, err := client.Assign(context.Background())
	if apperr.KindOf(err) != apperr.Dependency {
		t.Fatalf("kind = %v, want Dependency", apperr.KindOf(err))
	}
}

func TestAssignMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	if _, err := client.Assign(context.Background()); err == nil {
		t.Fatal("expected error for malformed body")
	}
}

func TestAssignContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.Assign(ctx)
	if err == nil {
		t.Fatal("expected error for expired context")
	}
	if apperr.KindOf(err) != apperr.Transient {
		t.Errorf("kind = %v, want Transient", apperr.KindOf(err))
	}
}

func TestAssignUnreachableService(t *testing.T) {
	client := NewClient("http://127.0.0.1:1", 200*time.Millisecond)
	_, err := client.Assign(context.Background())
	if err == nil {
		t.Fatal("expected error for unreachable service")
	}
	if apperr.KindOf(err) != apperr.Dependency {
		t.Errorf("kind = %v, want Dependency", apperr.KindOf(err))
	}
}

func TestBaseURLTrailingSlash(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/hospital" {
			t.Errorf("path = %q, want /hospital", r.URL.Path)
		}
		w.Write([]byte(`{"codigo":200,"mensajes":[],"datos":{"sala":1,"cama":4}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/", time.Second)
	if _, err := client.Assign(context.Background()); err != nil {
		t.Fatalf("Assign: %v", err)
	}
}

type stubRecorder struct {
	outcomes []string
}

func (r *stubRecorder) ObserveAllocation(outcome string) {
	r.outcomes = append(r.outcomes, outcome)
}

func TestAssignRecordsOutcomes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"codigo":200,"mensajes":[],"datos":{"sala":2,"cama":6}}`))
	}))
	defer srv.Close()

	recorder := &stubRecorder{}
	client := NewClient(srv.URL, time.Second).WithRecorder(recorder)

	if _, err := client.Assign(context.Background()); err != nil {
		t.Fatalf("Assign: %v", err)
	}

	failing := NewClient("http://127.0.0.1:1", 200*time.Millisecond).WithRecorder(recorder)
	if _, err := failing.Assign(context.Background()); err == nil {
		t.Fatal("expected error for unreachable service")
	}

	want := []string{"ok", "error"}
	if len(recorder.outcomes) != len(want) {
		t.Fatalf("outcomes = %v, want %v", recorder.outcomes, want)
	}
	for i := range want {
		if recorder.outcomes[i] != want[i] {
			t.Errorf("outcome[%d] = %q, want %q", i, recorder.outcomes[i], want[i])
		}
	}
}
