package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
)

type ClubController struct {
	Clubs *services.ClubService
}

func NewClubController(clubs *services.ClubService) *ClubController {
	return &ClubController{Clubs: clubs}
}

// AvailableClubs -> clubs open on ?date=Weekday (MM/DD/YYYY)
func (cc *ClubController) AvailableClubs(c *gin.Context) {
	date := strings.TrimSpace(c.Query("date"))
	if date == "" {
		utils.RespondMessage(c, http.StatusBadRequest, "date query parameter is required")
		return
	}

	clubs, err := cc.Clubs.ClubsAvailableOn(c.Request.Context(), date)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Clubs available on "+date, clubs)
}

func (cc *ClubController) ListClubs(c *gin.Context) {
	clubs, err := cc.Clubs.ListClubs(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of clubs", clubs)
}

func (cc *ClubController) GetClub(c *gin.Context) {
	club, err := cc.Clubs.GetClub(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Club not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Club details", club)
}

func (cc *ClubController) CreateClub(c *gin.Context) {
	var in services.ClubInput
	if !bindJSON(c, &in) {
		return
	}
	club, err := cc.Clubs.CreateClub(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Club created successfully", club)
}

func (cc *ClubController) UpdateClub(c *gin.Context) {
	var in services.ClubInput
	if !bindJSON(c, &in) {
		return
	}
	club, err := cc.Clubs.UpdateClub(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondServiceError(c, err, "Club not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Club updated successfully", club)
}

func (cc *ClubController) DeleteClub(c *gin.Context) {
	if err := cc.Clubs.DeleteClub(c.Request.Context(), c.Param("id")); err != nil {
		respondServiceError(c, err, "Club not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Club deleted successfully", nil)
}
