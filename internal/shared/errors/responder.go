package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the media type for Problem Details responses.
const ContentTypeProblemJSON = "application/problem+json"

// Responder sends Problem Details responses.
type Responder struct {
	// BaseURI is prepended to problem type URIs if they are relative.
	BaseURI string
}

// NewResponder creates a problem responder with an optional base URI.
func NewResponder(baseURI string) *Responder {
	return &Responder{BaseURI: baseURI}
}

// DefaultResponder uses relative URIs for problem types.
var DefaultResponder = NewResponder("")

// Respond sends a ProblemDetail response with proper content type.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" {
		problem.Instance = c.Request.URL.Path
	}
	c.Header("Content-Type", ContentTypeProblemJSON)
	c.JSON(problem.Status, problem)
}

// RespondError converts an error to a ProblemDetail and responds. Errors that
// already are ProblemDetails pass through; everything else becomes a 500.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	r.Respond(c, ErrInternal.WithDetail(err.Error()))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, problem ProblemDetail) {
	DefaultResponder.Respond(c, problem)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// FromStatus maps a bare HTTP status plus error into a problem template.
func FromStatus(status int, err error) ProblemDetail {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	switch status {
	case http.StatusBadRequest:
		return ErrBadRequest.WithDetail(detail)
	case http.StatusNotFound:
		return ErrNotFound.WithDetail(detail)
	case http.StatusUnauthorized:
		return ErrUnauthorized.WithDetail(detail)
	case http.StatusConflict:
		return ErrConflict.WithDetail(detail)
	case http.StatusBadGateway:
		return ErrBadGateway.WithDetail(detail)
	default:
		return ErrInternal.WithDetail(detail)
	}
}
