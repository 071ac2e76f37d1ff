package controllers

import (
	"net/http"
	"path/filepath"
	"strings"

	"guest-checkin/services"
	"guest-checkin/utils"

	"github.com/gin-gonic/gin"
)

type ImportController struct {
	ImportSvc *services.ImportService
}

func NewImportController(svc *services.ImportService) *ImportController {
	return &ImportController{ImportSvc: svc}
}

// POST /api/import (multipart, field "file")
func (c *ImportController) ImportCSV(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		badRequest(ctx, services.MsgMissingFile)
		return
	}
	if !strings.EqualFold(filepath.Ext(fileHeader.Filename), ".csv") {
		badRequest(ctx, services.MsgNotCSV)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		badRequest(ctx, services.MsgCSVUnreadable)
		return
	}
	defer file.Close()

	summary, err := c.ImportSvc.Import(ctx.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		kind := services.KindOf(err)
		ctx.JSON(statusFor(kind), gin.H{
			"success": false,
			"error":   string(kind),
			"message": services.MessageOf(err),
			"data":    summary,
		})
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, summary, gin.H{"message": services.MsgImportDone})
}

// GET /api/import/history
func (c *ImportController) ImportHistory(ctx *gin.Context) {
	logs, err := c.ImportSvc.History(ctx.Request.Context(), 20)
	if err != nil {
		respondError(ctx, err)
		return
	}
	utils.JSONSuccess(ctx, http.StatusOK, logs, gin.H{"count": len(logs)})
}
