package controllers

import (
	"net/http"

	"guest-checkin/services"

	"github.com/gin-gonic/gin"
)

type EmailController struct {
	InvitationSvc *services.InvitationService
}

func NewEmailController(svc *services.InvitationService) *EmailController {
	return &EmailController{InvitationSvc: svc}
}

// POST /api/send-email
func (c *EmailController) SendInvitation(ctx *gin.Context) {
	var req SendEmailRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, services.MsgMissingEmailFields)
		return
	}

	if err := c.InvitationSvc.Send(ctx.Request.Context(), req.Email, req.GuestID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": services.MsgEmailSent})
}
