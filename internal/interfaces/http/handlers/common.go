// Package handlers implements the REST endpoints of the chemsolver API.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/turtacn/chemsolver/internal/application/solver"
	"github.com/turtacn/chemsolver/internal/interfaces/http/middleware"
	"github.com/turtacn/chemsolver/pkg/errors"
	"github.com/turtacn/chemsolver/pkg/types/chemistry"
)

// APIResponse is the envelope of every API response.
type APIResponse struct {
	Success   bool                 `json:"success"`
	Data      interface{}          `json:"data,omitempty"`
	Error     *chemistry.ErrorView `json:"error,omitempty"`
	RequestID string               `json:"request_id,omitempty"`
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, APIResponse{Success: true, Data: data, RequestID: middleware.GetRequestID(c)})
}

// respondError maps err to its HTTP status through the error code. Server
// errors keep their code but hide the message.
func respondError(c *gin.Context, err error) {
	code := errors.GetCode(err)
	if code == errors.CodeUnknown {
		code = errors.ErrCodeInternal
	}
	status := errors.HTTPStatusForCode(code)

	view := solver.ErrorView(err)
	if status >= http.StatusInternalServerError {
		view = &chemistry.ErrorView{Code: code.String(), Message: errors.DefaultMessageForCode(code)}
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, APIResponse{Success: false, Error: view, RequestID: middleware.GetRequestID(c)})
}

func badRequest(message string, cause error) error {
	e := errors.InvalidParam(message)
	if cause != nil {
		e = e.WithDetail(cause.Error())
	}
	return e
}

// langOf returns the request language resolved by the Locale middleware.
func langOf(c *gin.Context) string {
	return middleware.GetLang(c)
}

//Personal.AI order the ending
