package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/core/domain"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/resilience"
)

// Sink POSTs surfaced reminders to a configured webhook endpoint.
type Sink struct {
	url      string
	client   *http.Client
	executor *resilience.Executor
}

func New(url string, timeout time.Duration, executor *resilience.Executor) *Sink {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Sink{
		url:      url,
		client:   &http.Client{Timeout: timeout},
		executor: executor,
	}
}

func (s *Sink) Deliver(ctx context.Context, notice domain.ReminderNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	call := func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build webhook request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := s.client.Do(req)
		if err != nil {
			return fmt.Errorf("post webhook: %w", err)
		}
		defer func() {
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
		}()

		if resp.StatusCode >= 500 {
			return fmt.Errorf("webhook server error: status=%d", resp.StatusCode)
		}
		if resp.StatusCode >= 400 {
			return fmt.Errorf("webhook rejected notice: status=%d", resp.StatusCode)
		}
		return nil
	}

	if s.executor != nil {
		err = s.executor.Execute(ctx, "webhook.deliver", call, classifyDeliveryError)
	} else {
		err = call(ctx)
	}
	if err != nil {
		return fmt.Errorf("deliver notice for reminder %s: %w", notice.Reminder.ID, err)
	}
	return nil
}
