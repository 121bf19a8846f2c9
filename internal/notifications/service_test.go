package notifications

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

type recordedRequest struct {
	title    string
	tags     string
	priority string
	body     string
}

func newRecordingServer(t *testing.T, status int) (*httptest.Server, *[]recordedRequest) {
	t.Helper()
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Error(err)
		}
		requests = append(requests, recordedRequest{
			title:    r.Header.Get("Title"),
			tags:     r.Header.Get("Tags"),
			priority: r.Header.Get("Priority"),
			body:     string(body),
		})
		w.WriteHeader(status)
	}))
	return server, &requests
}

func TestNewServiceReturnsNoopWithoutTopic(t *testing.T) {
	service := NewService("   ", 5)
	if _, ok := service.(noopService); !ok {
		t.Fatalf("service = %T, want noopService", service)
	}
	if err := service.NotifyError(context.Background(), errors.New("boom"), "convert"); err != nil {
		t.Fatalf("noop NotifyError() error = %v", err)
	}
}

func TestNotifyRunStarted(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK)
	defer server.Close()

	service := NewService(server.URL, 5)
	if err := service.NotifyRunStarted(context.Background(), "m1"); err != nil {
		t.Fatalf("NotifyRunStarted() error = %v", err)
	}
	if len(*requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(*requests))
	}
	got := (*requests)[0]
	if got.title != "MeetScribe - Run Started" {
		t.Errorf("title = %q", got.title)
	}
	if !strings.Contains(got.body, "m1") {
		t.Errorf("body = %q", got.body)
	}
	if !strings.Contains(got.tags, "started") {
		t.Errorf("tags = %q", got.tags)
	}
}

func TestNotifyOutputsCompleted(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK)
	defer server.Close()

	service := NewService(server.URL, 5)
	err := service.NotifyOutputsCompleted(context.Background(), "m1", 3, 1, 2, 90*time.Second)
	if err != nil {
		t.Fatalf("NotifyOutputsCompleted() error = %v", err)
	}
	got := (*requests)[0]
	if !strings.Contains(got.title, "with errors") {
		t.Errorf("title = %q, want error variant", got.title)
	}
	if !strings.Contains(got.body, "3 succeeded, 1 failed in 1m30s") {
		t.Errorf("body = %q", got.body)
	}
	if !strings.Contains(got.body, "2 skipped") {
		t.Errorf("body = %q, want skipped count", got.body)
	}
	if got.priority != "high" {
		t.Errorf("priority = %q", got.priority)
	}
}

func TestNotifyOutputsCompletedAllSuccessful(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK)
	defer server.Close()

	service := NewService(server.URL, 5)
	if err := service.NotifyOutputsCompleted(context.Background(), "m1", 4, 0, 0, 0); err != nil {
		t.Fatalf("NotifyOutputsCompleted() error = %v", err)
	}
	got := (*requests)[0]
	if strings.Contains(got.title, "errors") {
		t.Errorf("title = %q", got.title)
	}
	if !strings.Contains(got.body, "4 outputs delivered in 0s") {
		t.Errorf("body = %q", got.body)
	}
}

func TestNotifyErrorIncludesContext(t *testing.T) {
	server, requests := newRecordingServer(t, http.StatusOK)
	defer server.Close()

	service := NewService(server.URL, 5)
	if err := service.NotifyError(context.Background(), errors.New("no such file"), "input stage"); err != nil {
		t.Fatalf("NotifyError() error = %v", err)
	}
	got := (*requests)[0]
	if !strings.Contains(got.body, "Error with input stage: no such file") {
		t.Errorf("body = %q", got.body)
	}
}

func TestSendSurfacesHTTPFailure(t *testing.T) {
	server, _ := newRecordingServer(t, http.StatusForbidden)
	defer server.Close()

	service := NewService(server.URL, 5)
	err := service.TestNotification(context.Background())
	if err == nil {
		t.Fatal("expected error for 403 response")
	}
	if !strings.Contains(err.Error(), "403") {
		t.Errorf("error = %v", err)
	}
}
