// Package httperr shapes error bodies for the local debug surface.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the uniform error body. Status never serializes; the error
// middleware reads it off the context error's Meta when rendering, and
// uses it to decide whether the failure is worth a stack log.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

func New(status int, msg string, detail any) Response {
	resp := Response{Status: status, Detail: detail}
	resp.Error.Message = msg
	return resp
}

// AbortWithError records err on the context so the error middleware can log
// it, then renders the response immediately.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := New(status, msg, detail)

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
