package handler

import (
	"net/http"

	"github.com/doublemate/doublemate-backend/internal/usecase/auth"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUseCase *auth.AuthUseCase
}

func NewAuthHandler(authUseCase *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUseCase: authUseCase}
}

type tokenRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// IssueToken handles POST /auth/token. Prototype-grade: any registered email
// gets a token, there are no credentials to check.
func (h *AuthHandler) IssueToken(c *gin.Context) {
	var req tokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "a valid email is required"})
		return
	}

	resp, err := h.authUseCase.IssueToken(c.Request.Context(), req.Email)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
