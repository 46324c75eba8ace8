package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/irsalhamdi/bookstore-admin/client"
	"github.com/irsalhamdi/bookstore-admin/client/apierr"
	"github.com/irsalhamdi/bookstore-admin/client/creds"
)

func TestRequestHeaders(t *testing.T) {
	var auth, reqID string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		reqID = r.Header.Get(client.RequestIDHeader)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	store := &creds.Memory{}
	store.Set("sesame")

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second, Creds: store})

	var out struct{}
	if err := cl.Get(context.Background(), "/api/books/1", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}

	if auth != "Bearer sesame" {
		t.Fatalf("expected bearer token, got %q", auth)
	}
	if reqID == "" {
		t.Fatal("expected a request id header")
	}
}

func TestNoTokenNoHeader(t *testing.T) {
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second, Creds: &creds.Memory{}})

	var out struct{}
	if err := cl.Get(context.Background(), "/api/books/1", nil, &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if auth != "" {
		t.Fatalf("expected no authorization header, got %q", auth)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"book not found","status":404}`))
	}))
	defer srv.Close()

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second})

	err := cl.Get(context.Background(), "/api/books/9", nil, &struct{}{})
	if err == nil {
		t.Fatal("expected an error")
	}

	e, ok := apierr.From(err)
	if !ok {
		t.Fatalf("expected an apierr, got %T: %v", err, err)
	}
	if e.Message != "book not found" || e.Status != 404 {
		t.Fatalf("unexpected envelope: %+v", e)
	}
	if !apierr.IsNotFound(err) {
		t.Fatal("expected IsNotFound")
	}
}

func TestErrorFallbackMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second})

	err := cl.Get(context.Background(), "/api/books", nil, &struct{}{})
	e, ok := apierr.From(err)
	if !ok {
		t.Fatalf("expected an apierr, got %T: %v", err, err)
	}
	if e.Message != http.StatusText(http.StatusInternalServerError) || e.Status != 500 {
		t.Fatalf("unexpected envelope: %+v", e)
	}
}

func TestUnauthorizedEndsSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"not authorized to access resource","status":401}`))
	}))
	defer srv.Close()

	store := &creds.Memory{}
	store.Set("stale")

	var redirected bool
	cl := client.New(client.Config{
		URL:            srv.URL,
		Timeout:        time.Second,
		Creds:          store,
		OnUnauthorized: func() { redirected = true },
	})

	err := cl.Get(context.Background(), "/api/customers", nil, &struct{}{})
	if !apierr.IsUnauthorized(err) {
		t.Fatalf("expected a 401, got %v", err)
	}

	if _, ok := store.Token(); ok {
		t.Fatal("credential not cleared after 401")
	}
	if !redirected {
		t.Fatal("OnUnauthorized hook not invoked")
	}
}

func TestTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second})

	err := cl.Get(context.Background(), "/api/books", nil, &struct{}{})
	if err == nil {
		t.Fatal("expected an error")
	}

	e, ok := apierr.From(err)
	if !ok {
		t.Fatalf("expected an apierr, got %T: %v", err, err)
	}
	if e.Status != 0 {
		t.Fatalf("expected status 0 for transport failure, got %d", e.Status)
	}
	if e.Unwrap() == nil {
		t.Fatal("expected the transport cause to be wrapped")
	}
}

func TestDeleteNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("expected DELETE, got %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cl := client.New(client.Config{URL: srv.URL, Timeout: time.Second})

	if err := cl.Delete(context.Background(), "/api/books/1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}
