package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-story-sync/internal/service"
	"github.com/MKhiriev/go-story-sync/internal/signer"
	"github.com/MKhiriev/go-story-sync/internal/store"
	"github.com/MKhiriev/go-story-sync/internal/utils"
	"github.com/MKhiriev/go-story-sync/models"
)

// errorResponse is the error body of every non-2xx answer.
type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
	Path      string `json:"path"`
	RequestID string `json:"requestId"`
}

var errorStatusMap = map[error]int{
	models.ErrInvalidRequest: http.StatusBadRequest,

	service.ErrStoryNotFound: http.StatusNotFound,
	service.ErrTooManyPaths:  http.StatusBadRequest,

	signer.ErrInvalidPath:   http.StatusBadRequest,
	signer.ErrSigningFailed: http.StatusBadGateway,

	store.ErrNotFound:        http.StatusNotFound,
	store.ErrVersionConflict: http.StatusConflict,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func errorCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "VERSION_CONFLICT"
	case http.StatusBadGateway:
		return "SIGNING_FAILED"
	default:
		return "INTERNAL_ERROR"
	}
}

// writeError answers with the structured error body. The request ID echoes
// the trace ID already stamped on the response by withTraceID.
func writeError(w http.ResponseWriter, r *http.Request, message string, status int) {
	_, _ = utils.WriteJSON(w, errorResponse{
		ErrorCode: errorCodeFromStatus(status),
		Message:   message,
		Path:      r.URL.Path,
		RequestID: w.Header().Get(traceIDHeader),
	}, status)
}
