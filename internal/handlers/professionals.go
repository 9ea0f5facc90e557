package handlers

import (
	"errors"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"booking-agent-server/internal/availability"
	"booking-agent-server/internal/store"
	"booking-agent-server/internal/utils"
)

// ProfessionalHandler serves the professional roster and slot listings used
// by UIs that bypass the conversational flow.
type ProfessionalHandler struct {
	Store        store.Store
	Availability *availability.Service
}

// NewProfessionalHandler creates a new ProfessionalHandler.
func NewProfessionalHandler(st store.Store, avail *availability.Service) *ProfessionalHandler {
	return &ProfessionalHandler{Store: st, Availability: avail}
}

// GetProfessionals lists professionals, optionally filtered by location,
// maximum fee and specialty query parameters.
func (h *ProfessionalHandler) GetProfessionals(c *gin.Context) {
	criteria := store.Criteria{
		Location:  c.Query("location"),
		Specialty: c.Query("specialty"),
	}
	if raw := c.Query("maxFee"); raw != "" {
		maxFee, err := strconv.Atoi(raw)
		if err != nil || maxFee < 0 {
			utils.BadRequest(c, "Invalid maxFee parameter")
			return
		}
		criteria.MaxFee = maxFee
	}

	professionals, err := h.Store.SearchProfessionals(c.Request.Context(), criteria)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch professionals: "+err.Error())
		return
	}

	utils.Success(c, "Professionals fetched successfully", professionals)
}

// GetProfessionalSlots returns the open slots of one professional for the
// requested week offsets (default: current and next week).
func (h *ProfessionalHandler) GetProfessionalSlots(c *gin.Context) {
	name := c.Param("name")

	weeks := []int{1, 2}
	if raw := c.Query("weeks"); raw != "" {
		weeks = weeks[:0]
		for _, field := range strings.Split(raw, ",") {
			week, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil || week < 1 {
				utils.BadRequest(c, "Invalid weeks parameter: "+raw)
				return
			}
			weeks = append(weeks, week)
		}
	}

	listing, err := h.Availability.SlotsForWeeks(c.Request.Context(), name, weeks)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrProfessionalNotFound):
			utils.NotFound(c, "Professional not found")
		case errors.Is(err, availability.ErrNoTemplate), errors.Is(err, availability.ErrNoAvailability):
			utils.Success(c, err.Error(), availability.Listing{})
		default:
			utils.InternalServerError(c, "Failed to compute availability: "+err.Error())
		}
		return
	}

	utils.Success(c, "Availability fetched successfully", listing)
}
