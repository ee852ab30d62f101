package handler

import (
	"net/http"

	"github.com/doublemate/doublemate-backend/internal/usecase/match"
	"github.com/gin-gonic/gin"
)

type MatchHandler struct {
	matchUseCase *match.MatchUseCase
}

func NewMatchHandler(matchUseCase *match.MatchUseCase) *MatchHandler {
	return &MatchHandler{matchUseCase: matchUseCase}
}

// GetDailyMatch handles POST /matches/daily. Idempotent within a calendar
// day: the second call returns the same match with is_new=false.
func (h *MatchHandler) GetDailyMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	result, err := h.matchUseCase.GetDailyMatch(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}

	if result.Match == nil {
		c.JSON(http.StatusOK, gin.H{"success": false, "message": result.Message})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"match":        result.Match,
		"matched_user": result.MatchedUser,
		"is_new":       result.IsNew,
	})
}

type respondRequest struct {
	MatchID string `json:"match_id" binding:"required"`
	Liked   *bool  `json:"liked" binding:"required"`
}

// RespondToMatch handles POST /matches/respond.
func (h *MatchHandler) RespondToMatch(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req respondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "match_id and liked are required"})
		return
	}

	updated, becameMutual, err := h.matchUseCase.RespondToMatch(c.Request.Context(), req.MatchID, userID, *req.Liked)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"match":           updated,
		"is_mutual_match": updated.IsMutualMatch,
		"became_mutual":   becameMutual,
	})
}

// ListMatches handles GET /matches.
func (h *MatchHandler) ListMatches(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	matches, err := h.matchUseCase.ListMatches(c.Request.Context(), userID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "matches": matches})
}
