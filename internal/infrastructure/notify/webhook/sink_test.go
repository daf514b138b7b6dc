package webhook

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
)

func sampleNotice() domain.ReminderNotice {
	return domain.ReminderNotice{
		Reminder: domain.FollowUpReminder{
			ID:            "r-1",
			ApplicationID: "app-1",
			DueAt:         time.Date(2025, 4, 22, 10, 0, 0, 0, time.UTC),
			ReminderText:  "follow up",
		},
		OwnerID:    "u-1",
		Company:    "Acme",
		SurfacedAt: time.Date(2025, 4, 22, 9, 0, 0, 0, time.UTC),
	}
}

func TestDeliverPostsNoticeJSON(t *testing.T) {
	var got domain.ReminderNotice
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	sink := New(srv.URL, time.Second, nil)
	if err := sink.Deliver(context.Background(), sampleNotice()); err != nil {
		t.Fatalf("Deliver() error = %v", err)
	}
	if got.Reminder.ID != "r-1" || got.OwnerID != "u-1" {
		t.Fatalf("notice not delivered intact: %+v", got)
	}
}

func TestDeliverFailsOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	sink := New(srv.URL, time.Second, nil)
	if err := sink.Deliver(context.Background(), sampleNotice()); err == nil {
		t.Fatalf("expected error on 502")
	}
}

func TestClassifyDeliveryError(t *testing.T) {
	if classifyDeliveryError(context.Canceled).Retryable {
		t.Fatalf("cancellation must not be retried")
	}
	class := classifyDeliveryError(errorString("webhook server error: status=503"))
	if !class.Retryable {
		t.Fatalf("server errors must be retryable")
	}
	class = classifyDeliveryError(errorString("webhook rejected notice: status=422"))
	if class.Retryable {
		t.Fatalf("client rejections must not be retried")
	}
}

type errorString string

func (e errorString) Error() string { return string(e) }
