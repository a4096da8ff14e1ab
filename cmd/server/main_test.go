package main

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestCORSMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	tests := []struct {
		name       string
		allowed    []string
		method     string
		origin     string
		wantOrigin string
		wantStatus int
	}{
		{"wildcard", []string{"*"}, http.MethodPost, "http://front.desk", "*", http.StatusTeapot},
		{"listed origin", []string{"http://front.desk"}, http.MethodPost, "http://front.desk", "http://front.desk", http.StatusTeapot},
		{"unlisted origin", []string{"http://front.desk"}, http.MethodPost, "http://evil.example", "", http.StatusTeapot},
		{"preflight", []string{"*"}, http.MethodOptions, "http://front.desk", "*", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/dentaldesk.v1.InvoiceService/GetInvoice", nil)
			req.Header.Set("Origin", tt.origin)
			rec := httptest.NewRecorder()

			corsMiddleware(tt.allowed, next).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.wantOrigin)
			}
		})
	}
}

func TestNewServer_CancelEndsOpenRequests(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	entered := make(chan struct{})
	ended := make(chan struct{})
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(entered)
		<-r.Context().Done()
		close(ended)
	})

	srv := newServer(ctx, 0, handler)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	go func() { _ = srv.Serve(ln) }()
	defer srv.Close()

	go func() {
		resp, err := http.Get("http://" + ln.Addr().String() + "/dentaldesk.v1.ScheduleService/WatchNowMarker")
		if err == nil {
			resp.Body.Close()
		}
	}()

	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("request never reached the handler")
	}

	cancel()

	select {
	case <-ended:
	case <-time.After(2 * time.Second):
		t.Fatal("request context was not cancelled with the server context")
	}
}
