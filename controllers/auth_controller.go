package controllers

import (
	"net/http"

	"guest-checkin/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthSvc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{AuthSvc: svc}
}

// POST /api/auth/login
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, services.MsgBadCredentials)
		return
	}

	token, exp, err := c.AuthSvc.Login(req.Username, req.Password, req.SecurityAnswer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"success":   true,
		"token":     token,
		"expiresAt": exp,
	})
}
