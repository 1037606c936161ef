package extract

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/googleapi"

	"github.com/leadpipe/leadpipe/pkg/retry"
)

// LLMClient is the generative-language backend boundary: one prompt in,
// free-form text out. Implementations must be safe for concurrent use.
type LLMClient interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// quotaIndicators are the substrings the backend uses to signal quota
// exhaustion when no structured status code is available.
var quotaIndicators = []string{
	"quota",
	"rate limit",
	"resource exhausted",
	"429",
	"too many requests",
	"limit exceeded",
}

// isQuotaError reports whether err signals quota/rate-limit exhaustion,
// the condition that triggers the fallback model.
func isQuotaError(err error) bool {
	if err == nil {
		return false
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 429 {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, indicator := range quotaIndicators {
		if strings.Contains(msg, indicator) {
			return true
		}
	}
	return false
}

// isTransient reports whether err is worth another attempt: timeouts,
// rate limiting, and 5xx-class backend failures.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if retry.Timeout(err) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == 429 || apiErr.Code >= 500
	}
	return isQuotaError(err)
}

// isClientRejection reports whether err is a 4xx-class backend rejection
// (bad request, invalid credential) that is fatal to the current attempt.
func isClientRejection(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code >= 400 && apiErr.Code < 500 && apiErr.Code != 429
	}
	return false
}
