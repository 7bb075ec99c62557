package api

import (
	"errors"
	"net/http"

	resdto "libreserve/internal/handler/dto/response"
	"libreserve/internal/handler/middleware"
	"libreserve/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userQueries queries.UserQueries
}

func NewProfileHandler(userQueries queries.UserQueries) *ProfileHandler {
	return &ProfileHandler{
		userQueries: userQueries,
	}
}

// @Summary Profile reservation stats
// @Description Reservation usage and remaining allowance for the current user
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.ProfileStatsResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /profile/stats [get]
func (h *ProfileHandler) GetStats(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	stats, err := h.userQueries.GetProfileStats(c.Request.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "User not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromProfileStatsView(stats))
}
