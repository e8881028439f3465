package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"swingclub/server/internal/auth"
	"swingclub/server/internal/config"
	"swingclub/server/internal/errcode"
	"swingclub/server/internal/services"
)

// RestAuthHandler handles signup and login.
type RestAuthHandler struct {
	cfg         *config.Config
	userService services.IUserService
}

// NewRestAuthHandler creates a new RestAuthHandler.
func NewRestAuthHandler(cfg *config.Config, userService services.IUserService) *RestAuthHandler {
	return &RestAuthHandler{cfg: cfg, userService: userService}
}

type signupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Signup handles POST /v1/auth/signup
func (h *RestAuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	user, err := h.userService.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Name, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		abortWithError(c, errcode.ErrStorageFailure.Wrap(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

// Login handles POST /v1/auth/login
func (h *RestAuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errcode.ErrInvalidParam)
		return
	}

	user, err := h.userService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		abortWithError(c, err)
		return
	}

	token, err := auth.GenerateJWT(user.ID.Hex(), user.Name, h.cfg.JwtSecret, h.cfg.JwtTTL)
	if err != nil {
		abortWithError(c, errcode.ErrStorageFailure.Wrap(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}
