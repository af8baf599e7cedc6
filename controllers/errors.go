package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
)

const msgInternal = "something went wrong, please try again"

// respondServiceError maps service errors onto HTTP statuses. notFound is
// the message used for a 404.
func respondServiceError(c *gin.Context, err error, notFound string) {
	switch {
	case services.IsValidation(err):
		utils.RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, services.ErrNotFound):
		utils.RespondMessage(c, http.StatusNotFound, notFound)
	case errors.Is(err, services.ErrAlreadyCheckedIn):
		utils.RespondMessage(c, http.StatusConflict, "Guest already checked in")
	case errors.Is(err, services.ErrClubInUse),
		errors.Is(err, services.ErrEmailTaken):
		utils.RespondError(c, http.StatusConflict, err)
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.RespondError(c, http.StatusUnauthorized, err)
	default:
		utils.ErrorLogger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		utils.RespondMessage(c, http.StatusInternalServerError, msgInternal)
	}
}

// bindJSON decodes the body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		utils.RespondMessage(c, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}
