package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/guestlist-app/models"
	"github.com/yeremiapane/guestlist-app/services"
	"github.com/yeremiapane/guestlist-app/utils"
	"github.com/yeremiapane/guestlist-app/voucher"
)

const qrSize = 256

type GuestController struct {
	Guests   *services.GuestService
	Calendar *services.Calendar
}

func NewGuestController(guests *services.GuestService, cal *services.Calendar) *GuestController {
	return &GuestController{Guests: guests, Calendar: cal}
}

// GuestDetail is what the confirmation and door screens render.
type GuestDetail struct {
	models.GuestView
	PartySize          int    `json:"party_size"`
	PartyLabel         string `json:"party_label"`
	CreatedAtDisplay   string `json:"created_at_display"`
	CheckInTimeDisplay string `json:"check_in_time_display,omitempty"`
	VoucherQRURL       string `json:"voucher_qr_url"`
}

func (gc *GuestController) detail(g *models.GuestView) GuestDetail {
	d := GuestDetail{
		GuestView:        *g,
		PartySize:        g.PartySize(),
		PartyLabel:       fmt.Sprintf("+%d", g.PartySize()),
		CreatedAtDisplay: gc.Calendar.Display(g.CreatedAt),
		VoucherQRURL:     "/api/guests/" + g.ID + "/voucher.png",
	}
	if g.CheckInTime != nil {
		d.CheckInTimeDisplay = gc.Calendar.Display(*g.CheckInTime)
	}
	return d
}

// EventNights lists the nights of the current week guests can sign up for.
func (gc *GuestController) EventNights(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Upcoming event nights", gc.Calendar.UpcomingNights())
}

// SignUp -> public sign-up form
func (gc *GuestController) SignUp(c *gin.Context) {
	var in services.GuestInput
	if !bindJSON(c, &in) {
		return
	}

	guest, err := gc.Guests.CreateGuest(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, err, "Club not found")
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Signed up successfully", gin.H{
		"guest_id":     guest.ID,
		"voucher_code": guest.VoucherCode,
		"guest":       gc.detail(guest),
	})
}

func (gc *GuestController) GetGuest(c *gin.Context) {
	guest, err := gc.Guests.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Guest not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guest details", gc.detail(guest))
}

// VoucherQR renders the guest's voucher as a PNG QR code.
func (gc *GuestController) VoucherQR(c *gin.Context) {
	guest, err := gc.Guests.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Guest not found")
		return
	}
	png, err := voucher.QRCodePNG(guest.VoucherCode, qrSize)
	if err != nil {
		respondServiceError(c, err, "")
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// GetByVoucher -> door lookup before redeeming
func (gc *GuestController) GetByVoucher(c *gin.Context) {
	guest, err := gc.Guests.FindByVoucher(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondServiceError(c, err, "Voucher not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Guest details", gc.detail(guest))
}

// CheckIn -> redeem a voucher at the door
func (gc *GuestController) CheckIn(c *gin.Context) {
	var body struct {
		VoucherCode string `json:"voucher_code"`
	}
	if !bindJSON(c, &body) {
		return
	}
	if strings.TrimSpace(body.VoucherCode) == "" {
		utils.RespondMessage(c, http.StatusBadRequest, "voucher_code is required")
		return
	}

	guest, err := gc.Guests.CheckInByVoucher(c.Request.Context(), body.VoucherCode)
	if err != nil {
		respondServiceError(c, err, "Guest not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Check-in successful", gin.H{
		"guest_id": guest.ID,
		"guest":   gc.detail(guest),
	})
}

// CheckInByID -> staff check-in from the admin guest list
func (gc *GuestController) CheckInByID(c *gin.Context) {
	guest, err := gc.Guests.CheckIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "Guest not found")
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Check-in successful", gin.H{
		"guest_id": guest.ID,
		"guest":   gc.detail(guest),
	})
}

type guestListQuery struct {
	services.GuestFilter
	View string `form:"view"`
	Week string `form:"week"`
	Page int    `form:"page"`
	Size int    `form:"per_page"`
	Sort string `form:"sort"`
	Dir  string `form:"dir"`
}

// ListGuests serves the admin guest list: the weekly view (default) or the
// paginated full listing. Filters and sorting apply to the fetched rows.
func (gc *GuestController) ListGuests(c *gin.Context) {
	var q guestListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		utils.RespondMessage(c, http.StatusBadRequest, "invalid query: "+err.Error())
		return
	}
	if err := q.GuestFilter.Validate(); err != nil {
		respondServiceError(c, err, "")
		return
	}
	ctx := c.Request.Context()

	switch strings.ToLower(q.View) {
	case "", "weekly":
		day, err := gc.Calendar.WeekOf(q.Week)
		if err != nil {
			respondServiceError(c, err, "")
			return
		}
		from, to := gc.Calendar.Bounds(day)
		rows, err := gc.Guests.WeeklyGuests(ctx, from, to)
		if err != nil {
			respondServiceError(c, err, "")
			return
		}
		rows = services.ApplyFilters(rows, q.GuestFilter)
		if err := services.SortGuests(rows, q.Sort, q.Dir); err != nil {
			respondServiceError(c, err, "")
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Weekly guest list", gin.H{
			"items": rows,
			"total": len(rows),
			"from":  from,
			"to":    to,
		})

	case "full":
		page, err := gc.Guests.GuestPage(ctx, q.Page, q.Size)
		if err != nil {
			respondServiceError(c, err, "")
			return
		}
		rows := services.ApplyFilters(page.Hits(), q.GuestFilter)
		if err := services.SortGuests(rows, q.Sort, q.Dir); err != nil {
			respondServiceError(c, err, "")
			return
		}
		utils.RespondJSON(c, http.StatusOK, "Guest list", page.WithHits(rows))

	default:
		utils.RespondMessage(c, http.StatusBadRequest, "view must be weekly or full")
	}
}
