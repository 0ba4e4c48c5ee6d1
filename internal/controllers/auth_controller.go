package controllers

import (
	"log/slog"
	"net/http"
	"time"

	"attendance-be/internal/metrics"
	"attendance-be/internal/models"
	"attendance-be/internal/service"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	authService   service.AuthService
	registerDelay time.Duration
	logger        *slog.Logger
}

// NewAuthController creates the register/login handlers. registerDelay holds
// the register response back; zero disables it.
func NewAuthController(authService service.AuthService, registerDelay time.Duration, logger *slog.Logger) *AuthController {
	return &AuthController{
		authService:   authService,
		registerDelay: registerDelay,
		logger:        logger,
	}
}

// Register handles POST /register
func (ac *AuthController) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ac.logger, "invalid register request", bindError(err))
		return
	}

	response, err := ac.authService.Register(c.Request.Context(), &req)
	metrics.RecordEvent(metrics.EventRegister, err)
	if err != nil {
		respondError(c, ac.logger, "register failed", err)
		return
	}

	if ac.registerDelay > 0 {
		timer := time.NewTimer(ac.registerDelay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request.Context().Done():
			// Client is gone; the account already exists.
			return
		}
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, ac.logger, "invalid login request", bindError(err))
		return
	}

	response, err := ac.authService.Login(c.Request.Context(), &req)
	metrics.RecordEvent(metrics.EventLogin, err)
	if err != nil {
		respondError(c, ac.logger, "login failed", err)
		return
	}

	c.JSON(http.StatusCreated, response)
}
