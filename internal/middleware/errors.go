package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/dwdclimate/internal/domain/dto"
	"github.com/guttosm/dwdclimate/internal/logger"
)

// ErrorHandler renders errors attached with c.Error that no handler has
// responded to yet.
//
// A dto.ErrorResponse error is rendered as-is; anything else becomes a
// 500 with a generic message. Responses already written are left alone.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	rid, _ := c.Get(RequestIDKey)
	logger.L().Error().
		Str("request_id", toString(rid)).
		Str("path", c.Request.URL.Path).
		Err(err).
		Msg("unhandled request error")

	var resp dto.ErrorResponse
	if errors.As(err, &resp) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, resp)
		return
	}
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse("Internal server error", err))
}

// AbortWithError aborts the request with status and a standardized JSON body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err))
}
