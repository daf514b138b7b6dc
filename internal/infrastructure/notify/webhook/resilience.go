package webhook

import (
	"context"
	"errors"
	"net"
	"strings"

	"github.com/jobtrackd/jobtrackd/internal/infrastructure/resilience"
)

func classifyDeliveryError(err error) resilience.ErrorClassification {
	if err == nil {
		return resilience.ErrorClassification{}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return resilience.ErrorClassification{
			Retryable:     false,
			RecordFailure: false,
		}
	}
	if resilience.IsCircuitOpen(err) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}
	if strings.Contains(err.Error(), "server error") {
		return resilience.ErrorClassification{
			Retryable:     true,
			RecordFailure: true,
		}
	}

	// 4xx rejections are permanent; retrying cannot help.
	return resilience.ErrorClassification{
		Retryable:     false,
		RecordFailure: true,
	}
}
