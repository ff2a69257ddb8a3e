package apperr

import (
	"errors"
	"net/http"

	"github.com/chapterone/storefront-core/internal/upstream"
)

// FromUpstream maps a platform API failure to a Problem. Returns
// (Problem, true) if the error is a typed fetch failure.
func FromUpstream(err error) (Problem, bool) {
	fe, ok := upstream.AsFetchError(err)
	if !ok {
		return Problem{}, false
	}

	p := Problem{
		Title:     "Upstream error",
		Status:    http.StatusBadGateway,
		Retryable: fe.Temporary(),
	}

	switch {
	case errors.Is(err, upstream.ErrNoToken), errors.Is(err, upstream.ErrTokenExpired):
		p.Status = http.StatusUnauthorized
		p.Title = "Unauthorized"
		p.Retryable = false
	case fe.Status == http.StatusUnauthorized, fe.Status == http.StatusForbidden:
		// the platform rejected the forwarded credentials
		p.Status = fe.Status
		p.Title = "Unauthorized"
		p.Retryable = false
	case fe.Status == http.StatusNotFound:
		p.Status = http.StatusNotFound
		p.Title = "Not Found"
		p.Retryable = false
	case fe.Status == http.StatusTooManyRequests:
		p.Status = http.StatusServiceUnavailable
		p.Title = "Upstream busy"
		p.Detail = "the platform API is rate limiting, please retry"
	case fe.Status == 0:
		p.Status = http.StatusGatewayTimeout
		p.Title = "Upstream unreachable"
	}

	return p, true
}

// HandleUpstreamError maps err to a Problem and writes it. Returns true if a
// response was written.
func HandleUpstreamError(w http.ResponseWriter, r *http.Request, err error, fallbackTitle string) bool {
	if err == nil {
		return false
	}
	if p, ok := FromUpstream(err); ok {
		Write(w, r, p)
		return true
	}
	Write(w, r, Problem{Status: http.StatusInternalServerError, Title: fallbackTitle})
	return true
}
