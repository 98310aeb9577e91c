package utils

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

// RespondError writes a transport-level error with an explicit status code.
func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
	})
}

// RespondDomainError maps a domain error to its status code and kind.
// Unclassified errors are reported as a generic internal error; the real
// message only leaks outside of release mode.
func RespondDomainError(c *gin.Context, err error) {
	code := HTTPStatus(err)
	kind := KindOf(err)

	message := err.Error()
	var appErr *AppError
	if !errors.As(err, &appErr) {
		ErrorLogger.Printf("unexpected error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		message = "internal server error"
		if os.Getenv("GIN_MODE") != "release" {
			message = err.Error()
		}
		code = http.StatusInternalServerError
	}

	c.JSON(code, JSONResponse{
		Status:  false,
		Message: message,
		Kind:    string(kind),
	})
}
