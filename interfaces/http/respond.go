package http

import (
	"errors"
	"net/http"

	"github.com/acidderek/acid-concepts-automation-sub002/domain/apperrors"
	"github.com/acidderek/acid-concepts-automation-sub002/infrastructure/logger"

	"github.com/gin-gonic/gin"
)

// respondOK wraps a payload in the success envelope.
func respondOK(c *gin.Context, payload gin.H) {
	out := gin.H{"success": true}
	for k, v := range payload {
		out[k] = v
	}
	c.JSON(http.StatusOK, out)
}

// respondError maps the taxonomy onto the envelope. Known business failures
// keep HTTP 200 with success=false; malformed input is 400; anything
// unexpected is 500 with the detail kept in the logs.
func respondError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrMalformedRequest) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}
	for _, known := range []error{
		apperrors.ErrCredentialMissing,
		apperrors.ErrInvalidState,
		apperrors.ErrTokenExchangeFailed,
		apperrors.ErrIdentityFetchFailed,
		apperrors.ErrNoRefreshToken,
		apperrors.ErrAuthExpired,
		apperrors.ErrNoToken,
		apperrors.ErrNotFound,
	} {
		if errors.Is(err, known) {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
			return
		}
	}
	logger.GetLogger().WithField("error", err).Error("Unhandled error in request")
	c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
}

func respondMalformed(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "malformed request: " + err.Error()})
}

func respondUnknownAction(c *gin.Context, action string) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "unknown action: " + action})
}
