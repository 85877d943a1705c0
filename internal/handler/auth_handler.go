package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdkce/examreg-backend/internal/middleware"
	"github.com/kdkce/examreg-backend/internal/model"
	"github.com/kdkce/examreg-backend/internal/response"
	"github.com/kdkce/examreg-backend/internal/service"
	"github.com/kdkce/examreg-backend/internal/validator"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService    *service.AuthService
	userService    *service.UserService
	stagingService *service.StagingService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService, userService *service.UserService, stagingService *service.StagingService) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userService:    userService,
		stagingService: stagingService,
	}
}

// Login godoc
// POST /api/v1/auth/login
// Validates username (or college id) + password, returns JWT.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{Token: token, User: *user})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the profile of the currently authenticated account.
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusNotFound, response.ErrNotFound)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Extend godoc
// POST /api/v1/auth/extend
// Issues a fresh JWT and refreshes the staged-form TTL, so a student filling
// the payment flow is not logged out mid-checkout.
func (h *AuthHandler) Extend(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	user, err := h.userService.Profile(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	if user.Role == model.RoleStudent {
		if err := h.stagingService.Extend(c.Request.Context(), user.ID); err != nil {
			response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}
	}

	response.Success(c, http.StatusOK, gin.H{"token": token})
}

// Logout godoc
// POST /api/v1/auth/logout
// Tokens are stateless; logout exists so clients have a uniform call to pair
// with discarding the token.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out."})
}

// RequestPasswordReset godoc
// POST /api/v1/auth/password-reset
// Emails a one-time reset link. Always returns 200 so the endpoint cannot be
// used to probe which addresses have accounts.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var req model.PasswordResetRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	if err := h.authService.RequestPasswordReset(c.Request.Context(), req.Email); err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email is registered, a reset link has been sent.",
	})
}

// ConfirmPasswordReset godoc
// POST /api/v1/auth/password-reset/confirm
// Consumes a reset token and sets the new password.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	var req model.PasswordResetConfirmRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	err := h.authService.ConfirmPasswordReset(c.Request.Context(), req.Token, req.NewPassword)
	if err != nil {
		if errors.Is(err, service.ErrResetTokenInvalid) {
			response.Fail(c, http.StatusBadRequest, response.ErrResetTokenInvalid)
			return
		}
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "Password updated."})
}
