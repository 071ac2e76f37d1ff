package controllers

import (
	"log"
	"net/http"

	"guest-checkin/services"
	"guest-checkin/utils"

	"github.com/gin-gonic/gin"
)

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindInvalidArgument:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the localized message only; the cause goes to the log.
func respondError(c *gin.Context, err error) {
	kind := services.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		log.Printf("❌ %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	utils.JSONError(c, status, string(kind), services.MessageOf(err))
}

func badRequest(c *gin.Context, message string) {
	utils.JSONError(c, http.StatusBadRequest, string(services.KindInvalidArgument), message)
}
