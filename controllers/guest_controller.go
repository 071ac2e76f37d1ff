package controllers

import (
	"io"
	"log"
	"net/http"

	"guest-checkin/services"
	"guest-checkin/utils"

	"github.com/gin-gonic/gin"
)

type GuestController struct {
	GuestSvc   *services.GuestService
	CheckinSvc *services.CheckinService
}

func NewGuestController(guests *services.GuestService, checkin *services.CheckinService) *GuestController {
	return &GuestController{GuestSvc: guests, CheckinSvc: checkin}
}

// GET /api/guests
func (c *GuestController) ListGuests(ctx *gin.Context) {
	guests, err := c.GuestSvc.List(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guests, gin.H{"count": len(guests)})
}

// POST /api/guests
func (c *GuestController) CreateGuest(ctx *gin.Context) {
	var req CreateGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Dữ liệu không hợp lệ")
		return
	}

	guest, err := c.GuestSvc.Create(ctx.Request.Context(), req.input())
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusCreated, guest, gin.H{"message": services.MsgCreated})
}

// GET /api/guests/:token
func (c *GuestController) GetGuest(ctx *gin.Context) {
	guest, err := c.GuestSvc.Get(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest)
}

// PUT /api/guests/:token
func (c *GuestController) UpdateGuest(ctx *gin.Context) {
	var req UpdateGuestRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, "Dữ liệu không hợp lệ")
		return
	}

	guest, err := c.GuestSvc.Update(ctx.Request.Context(), ctx.Param("token"), req.fields(), req.IsCheckedIn, req.CheckedInAt)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"message": services.MsgUpdated})
}

// PATCH /api/guests/:token
func (c *GuestController) PatchGuest(ctx *gin.Context) {
	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		badRequest(ctx, "Dữ liệu không hợp lệ")
		return
	}
	req, err := DecodePatchRequest(body)
	if err != nil {
		log.Printf("⚠️ PatchGuest token=%s: %v", ctx.Param("token"), err)
		badRequest(ctx, "Dữ liệu không hợp lệ")
		return
	}

	token := ctx.Param("token")
	rctx := ctx.Request.Context()

	switch r := req.(type) {
	case ToggleCheckinAction:
		guest, err := c.CheckinSvc.Toggle(rctx, token)
		if err != nil {
			respondError(ctx, err)
			return
		}
		msg := services.MsgCheckedOut
		if guest.IsCheckedIn {
			msg = services.MsgCheckedIn
		}
		utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"message": msg})

	case SetCheckinAction:
		guest, err := c.CheckinSvc.SetCheckedIn(rctx, token, r.IsCheckedIn, r.CheckedInAt)
		if err != nil {
			respondError(ctx, err)
			return
		}
		utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"message": services.MsgUpdated})

	case PartialUpdateAction:
		guest, err := c.GuestSvc.PartialUpdate(rctx, token, r.Fields)
		if err != nil {
			respondError(ctx, err)
			return
		}
		utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"message": services.MsgUpdated})
	}
}

// DELETE /api/guests/:token
func (c *GuestController) DeleteGuest(ctx *gin.Context) {
	guest, err := c.GuestSvc.Delete(ctx.Request.Context(), ctx.Param("token"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"message": services.MsgDeleted})
}

// POST /api/guests/checkin-by-info
func (c *GuestController) CheckInByInfo(ctx *gin.Context) {
	var req CheckInByInfoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		badRequest(ctx, services.MsgMissingContactInfo)
		return
	}

	guest, already, err := c.CheckinSvc.CheckInByInfo(ctx.Request.Context(), services.ContactInfo{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}

	msg := services.MsgCheckedIn
	if already {
		msg = services.MsgAlreadyChecked
	}
	utils.JSONSuccess(ctx, http.StatusOK, guest, gin.H{"alreadyCheckedIn": already, "message": msg})
}
