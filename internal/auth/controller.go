package auth

import (
	"errors"
	"net/http"

	"ticketly/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "Email already registered", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to register user", nil)
		return
	}

	response.Success(c, http.StatusCreated, "User registered successfully", resp)
}

func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "Invalid email or password", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to login", nil)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", resp)
}

func (ctrl *Controller) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request payload", err.Error())
		return
	}

	tokens, err := ctrl.service.RefreshTokens(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) {
			response.Error(c, http.StatusUnauthorized, "Invalid or expired refresh token", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to refresh tokens", nil)
		return
	}

	response.Success(c, http.StatusOK, "Tokens refreshed successfully", tokens)
}

func (ctrl *Controller) GetProfile(c *gin.Context) {
	userID, err := CurrentUserID(c)
	if err != nil {
		response.Error(c, http.StatusUnauthorized, "Invalid user context", nil)
		return
	}

	profile, err := ctrl.service.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Error(c, http.StatusNotFound, "User not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to fetch profile", nil)
		return
	}

	response.Success(c, http.StatusOK, "Profile fetched successfully", profile)
}

// CurrentUserID extracts the authenticated user's id set by the JWT middleware
func CurrentUserID(c *gin.Context) (uuid.UUID, error) {
	raw, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, ErrInvalidToken
	}
	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	return uuid.Parse(str)
}
