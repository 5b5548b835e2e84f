package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RejectsRelativeURL(t *testing.T) {
	if _, err := New("/employees"); err == nil {
		t.Error("New() expected error for relative url")
	}
}

func TestClient_List(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/employees/" {
			t.Errorf("request = %s %s, want GET /employees/", r.Method, r.URL.Path)
		}
		io.WriteString(w, `[
			{"id": 1, "name": "Ani", "number": "E001", "position": "Staff", "department": "IT", "dateJoined": "2024-01-02T00:00:00.000Z", "status": "Tetap", "photo": ""},
			{"id": "b7", "name": "Budi", "department": "HR", "status": "Kontrak"}
		]`)
	})

	got, err := c.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	want := []core.Employee{
		{ID: "1", Name: "Ani", Number: "E001", Position: "Staff", Department: "IT", DateJoined: "2024-01-02T00:00:00.000Z", Status: "Tetap"},
		{ID: "b7", Name: "Budi", Department: "HR", Status: "Kontrak"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("List() mismatch (-want +got):\n%s", diff)
	}
}

func TestClient_ListInvalidJSON(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `<html>oops</html>`)
	})

	_, err := c.List(context.Background())
	if err == nil || !strings.Contains(err.Error(), "invalid response") {
		t.Errorf("List() error = %v, want invalid response", err)
	}
	if got := core.MapError(err).Code; got != "STORE005" {
		t.Errorf("MapError code = %q, want STORE005", got)
	}
}

func TestClient_GetNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/employees/42" {
			t.Errorf("path = %q, want /employees/42", r.URL.Path)
		}
		http.NotFound(w, r)
	})

	if _, err := c.Get(context.Background(), "42"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestClient_CreateSendsNumber(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/employees" {
			t.Errorf("request = %s %s, want POST /employees", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"id": 9, "name": "Citra"}`)
	})

	got, err := c.Create(context.Background(), core.CreateRequest{Name: "Citra", Number: "E009", Department: "IT", Status: "Tetap"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID != "9" {
		t.Errorf("ID = %q, want 9", got.ID)
	}
	if body["number"] != "E009" {
		t.Errorf("number = %v, want E009", body["number"])
	}
	for _, k := range []string{"name", "position", "department", "dateJoined", "photo", "status", "number"} {
		if _, ok := body[k]; !ok {
			t.Errorf("create body missing %q", k)
		}
	}
}

func TestClient_UpdateOmitsNumber(t *testing.T) {
	var body map[string]any
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/employees/5" {
			t.Errorf("request = %s %s, want PUT /employees/5", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&body)
		io.WriteString(w, `{"id": 5, "name": "Dewi"}`)
	})

	if _, err := c.Update(context.Background(), "5", core.UpdateRequest{Name: "Dewi"}); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if _, ok := body["number"]; ok {
		t.Errorf("update body carries number: %v", body)
	}
}

func TestClient_DeleteIgnoresBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete || r.URL.Path != "/employees/5" {
			t.Errorf("request = %s %s, want DELETE /employees/5", r.Method, r.URL.Path)
		}
		io.WriteString(w, `not json`)
	})

	if err := c.Delete(context.Background(), "5"); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
}

func TestClient_StatusError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	err := c.Delete(context.Background(), "5")
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("Delete() error = %v, want *StatusError", err)
	}
	if se.Code != http.StatusInternalServerError || se.Body != "boom" {
		t.Errorf("StatusError = %+v", se)
	}
	if got := core.MapError(err).Code; got != "STORE004" {
		t.Errorf("MapError code = %q, want STORE004", got)
	}
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithTimeout(20*time.Millisecond))
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.List(context.Background())
	if err == nil {
		t.Fatal("List() expected timeout error")
	}
	if got := core.MapError(err).Code; got != "REQ002" {
		t.Errorf("MapError code = %q, want REQ002 for %v", got, err)
	}
}

func TestClient_WithHTTPClient(t *testing.T) {
	var seen atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.Store(r.Header.Get("X-Through") == "custom")
		_, _ = w.Write([]byte("[]"))
	}))
	t.Cleanup(srv.Close)

	hc := &http.Client{Transport: headerTransport{srv.Client().Transport}}
	c, err := New(srv.URL+"/", WithHTTPClient(hc), WithTimeout(time.Second))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.List(context.Background()); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if !seen.Load() {
		t.Error("request did not go through the supplied client")
	}
	if hc.Timeout != 0 {
		t.Errorf("WithTimeout changed the supplied client: Timeout = %v", hc.Timeout)
	}
	if got := c.BaseURL(); got != srv.URL {
		t.Errorf("BaseURL() = %q, want %q", got, srv.URL)
	}
}

type headerTransport struct{ next http.RoundTripper }

func (h headerTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.Header.Set("X-Through", "custom")
	return h.next.RoundTrip(r)
}

func TestClient_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c, err := New(addr)
	if err != nil {
		t.Fatal(err)
	}
	_, err = c.List(context.Background())
	if got := core.MapError(err).Code; got != "STORE001" {
		t.Errorf("MapError code = %q, want STORE001 for %v", got, err)
	}
}
