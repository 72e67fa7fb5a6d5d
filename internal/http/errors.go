package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/tazhibayda/inventory-service/internal/apperr"
	"github.com/tazhibayda/inventory-service/internal/log"
	"github.com/tazhibayda/inventory-service/internal/repo"
)

const (
	msgTokenInvalid = "Json web token is invalid, try again"
	msgTokenExpired = "Json web token is expired, try again"
	msgInternal     = "Internal server error"
)

func statusOf(k apperr.Kind) int {
	switch k {
	case apperr.KindValidation, apperr.KindAuth, apperr.KindUpstream:
		return http.StatusBadRequest
	case apperr.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// translate maps any error to the status and message sent to the client.
// Store and token errors are rewritten before the apperr kind is consulted.
func translate(err error) (int, string) {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return http.StatusBadRequest, msgTokenExpired
	case errors.Is(err, apperr.ErrInvalidToken):
		return http.StatusBadRequest, msgTokenInvalid
	case repo.IsDup(err):
		field := repo.DupField(err)
		if field == "" {
			field = "value"
		}
		return http.StatusBadRequest, "Duplicate " + field + " entered"
	}

	var ae *apperr.Error
	if errors.As(err, &ae) {
		if ae.Kind == apperr.KindInternal {
			return http.StatusInternalServerError, msgInternal
		}
		return statusOf(ae.Kind), ae.Error()
	}
	return http.StatusInternalServerError, msgInternal
}

func respondError(c *gin.Context, err error) {
	status, msg := translate(err)
	if status >= http.StatusInternalServerError {
		log.Ctx(c.Request.Context(), zap.String("request_id", c.GetString(ctxRequestID))).
			Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": msg})
}
