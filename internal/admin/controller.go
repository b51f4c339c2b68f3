package admin

import (
	"errors"
	"net/http"
	"time"

	"villabook/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

// Login handles POST /api/v1/admin/login
func (c *Controller) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}
	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	token, expiresAt, err := c.service.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.RespondJSON(ctx, "error", http.StatusUnauthorized, "Invalid credentials", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Login failed", nil, nil)
		return
	}

	// Cookie for the admin UI, token in the body for API clients
	ctx.SetCookie("accessToken", token, int(time.Until(expiresAt).Seconds()), "/", "", false, true)

	response.RespondJSON(ctx, "success", http.StatusOK, "Login successful", LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt.Unix(),
	}, nil)
}

// Logout handles POST /api/v1/admin/logout
func (c *Controller) Logout(ctx *gin.Context) {
	ctx.SetCookie("accessToken", "", -1, "/", "", false, true)
	response.RespondJSON(ctx, "success", http.StatusOK, "Logged out", nil, nil)
}
