package handler

import (
	"net/http"

	"github.com/doublemate/doublemate-backend/internal/domain"
	"github.com/doublemate/doublemate-backend/internal/usecase/onboarding"
	"github.com/gin-gonic/gin"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUseCase: onboardingUseCase}
}

type advanceRequest struct {
	Message   string `json:"message" binding:"required,notblank"`
	SessionID string `json:"session_id"`
}

// Advance handles POST /onboarding/chat: one turn of the profile-building
// conversation. On agent failure the turn may simply be retried.
func (h *OnboardingHandler) Advance(c *gin.Context) {
	var req advanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "message is required"})
		return
	}

	result, err := h.onboardingUseCase.Advance(c.Request.Context(), req.SessionID, req.Message)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "response": result})
}

type completeRequest struct {
	Email       string               `json:"email" binding:"required,email"`
	ProfileData *domain.ProfileDraft `json:"profile_data" binding:"required"`
}

// Complete handles POST /onboarding/complete: finalizes the accumulated
// draft into a profile keyed by email.
func (h *OnboardingHandler) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "email and profile data are required"})
		return
	}

	profile, err := h.onboardingUseCase.CompleteOnboarding(c.Request.Context(), req.Email, req.ProfileData)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "profile": profile})
}
