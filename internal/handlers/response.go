package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/places-backend/internal/platform/apierr"
	"github.com/yungbote/places-backend/internal/platform/logger"
)

// RespondError maps a domain error to its fixed HTTP classification.
// Server-side failures are logged in full and surfaced with a generic
// message only.
func RespondError(c *gin.Context, log *logger.Logger, err error) {
	apiErr := apierr.FromError(err)
	if apiErr.Status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed",
			"path", c.FullPath(),
			"code", apiErr.Code,
			"error", err,
		)
	}
	c.JSON(apiErr.Status, gin.H{"message": apiErr.Message()})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
