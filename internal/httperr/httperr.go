package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFoundStatus(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps a domain error to its HTTP status class.
func Respond(c *gin.Context, err error) {
	var e *Error
	if !errors.As(err, &e) {
		Internal(c, "internal_error", "")
		return
	}

	switch e.Kind {
	case KindValidation:
		Write(c, http.StatusBadRequest, e.Code, "")
	case KindNotFound:
		Write(c, http.StatusNotFound, e.Code, "")
	case KindAuthorization:
		Write(c, http.StatusForbidden, e.Code, "")
	case KindConflict:
		Write(c, http.StatusConflict, e.Code, "")
	case KindUnavailable:
		Write(c, http.StatusServiceUnavailable, e.Code, "")
	default:
		Internal(c, "internal_error", "")
	}
}
