// Package problem renders errors as RFC 7807 problem+json responses.
package problem

import (
	"encoding/json"
	"errors"
	"net/http"

	"ordersd/internal/domain"

	"github.com/gin-gonic/gin"
)

const ContentType = "application/problem+json"

// genericInternalDetail is the only detail ever sent for unclassified errors;
// internal messages and stack traces must not reach the client.
const genericInternalDetail = "An unexpected error occurred"

// Details is the wire-exact RFC 7807 object. Status always equals the HTTP
// response status code.
type Details struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Status   int    `json:"status"`
	Detail   string `json:"detail,omitempty"`
	Instance string `json:"instance,omitempty"`
}

var statusByKind = map[domain.ErrorKind]int{
	domain.KindUnauthorized: http.StatusUnauthorized,
	domain.KindForbidden:    http.StatusForbidden,
	domain.KindValidation:   http.StatusBadRequest,
	domain.KindNotFound:     http.StatusNotFound,
	domain.KindConflict:     http.StatusConflict,
	domain.KindInternal:     http.StatusInternalServerError,
}

var titleByKind = map[domain.ErrorKind]string{
	domain.KindUnauthorized: "Unauthorized",
	domain.KindForbidden:    "Forbidden",
	domain.KindValidation:   "Validation Error",
	domain.KindNotFound:     "Not Found",
	domain.KindConflict:     "Conflict",
	domain.KindInternal:     "Internal Server Error",
}

// From maps any error to its problem document. Errors outside the closed
// taxonomy become internal_error with a generic detail.
func From(err error, instance string) Details {
	kind := domain.KindOf(err)
	detail := genericInternalDetail
	if kind != domain.KindInternal {
		var svcErr *domain.ServiceError
		if errors.As(err, &svcErr) {
			detail = svcErr.Detail
		}
	}
	return Details{
		Type:     string(kind),
		Title:    titleByKind[kind],
		Status:   statusByKind[kind],
		Detail:   detail,
		Instance: instance,
	}
}

// Write renders err for the current request and aborts the handler chain.
func Write(c *gin.Context, err error) {
	details := From(err, c.Request.URL.Path)
	body, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}
	c.Data(details.Status, ContentType, body)
	c.Abort()
}
