package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestSendPostsMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if got := r.Header.Get("api-key"); got != "secret" {
			t.Errorf("api-key = %q", got)
		}
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("Content-Type = %q", got)
		}
		var req struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
		}
		if req.Message != "hello" {
			t.Errorf("message = %q, want trimmed hello", req.Message)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"response": "dance"})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithAPIKey("secret"), WithLogger(quietLogger()))
	defer c.Close()

	reply, err := c.Send(context.Background(), "  hello ")
	if err != nil {
		t.Fatalf("Send() error = %v", err)
	}
	if reply.Response != "dance" {
		t.Errorf("Response = %q", reply.Response)
	}
}

func TestSendErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/fail":
			http.Error(w, "boom", http.StatusInternalServerError)
		case "/garbage":
			_, _ = w.Write([]byte("not json"))
		}
	}))
	defer srv.Close()

	tests := []struct {
		name    string
		url     string
		message string
		want    error
	}{
		{"status", srv.URL + "/fail", "hi", ErrNetwork},
		{"body", srv.URL + "/garbage", "hi", ErrNetwork},
		{"no endpoint", "", "hi", ErrNetwork},
		{"empty", srv.URL, "   ", ErrEmptyMessage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(WithEndpoint(tt.url), WithLogger(quietLogger()))
			defer c.Close()
			if _, err := c.Send(context.Background(), tt.message); !errors.Is(err, tt.want) {
				t.Errorf("Send() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := NewClient(WithEndpoint(url), WithLogger(quietLogger()))
	defer c.Close()
	if _, err := c.Send(context.Background(), "hi"); !errors.Is(err, ErrNetwork) {
		t.Errorf("Send() error = %v, want ErrNetwork", err)
	}
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	}))
	defer srv.Close()
	defer close(release)

	c := NewClient(WithEndpoint(srv.URL), WithTimeout(50*time.Millisecond), WithLogger(quietLogger()))
	defer c.Close()

	_, err := c.Send(context.Background(), "hi")
	if !errors.Is(err, ErrNetwork) || !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Send() error = %v, want ErrNetwork wrapping DeadlineExceeded", err)
	}
}

func TestSendAsync(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(Reply{Response: "hi there"})
	}))
	defer srv.Close()

	c := NewClient(WithEndpoint(srv.URL), WithWorkers(1), WithLogger(quietLogger()))

	type result struct {
		reply Reply
		err   error
	}
	done := make(chan result, 1)
	c.SendAsync("hello", func(r Reply, err error) { done <- result{r, err} })

	select {
	case res := <-done:
		if res.err != nil || res.reply.Response != "hi there" {
			t.Errorf("async result = %+v", res)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("SendAsync never completed")
	}

	c.Close()
	c.SendAsync("again", func(_ Reply, err error) { done <- result{err: err} })
	if res := <-done; !errors.Is(res.err, ErrClosed) {
		t.Errorf("SendAsync after Close error = %v, want ErrClosed", res.err)
	}
}
