package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"slotwise/internal/calendar/service"
	httputil "slotwise/pkg/http"
	"slotwise/pkg/logger"
	"slotwise/pkg/model"
)

type CalendarHandler struct {
	service service.CalendarService
	log     *logger.Logger
}

func NewCalendarHandler(service service.CalendarService, log *logger.Logger) *CalendarHandler {
	return &CalendarHandler{
		service: service,
		log:     log,
	}
}

func (h *CalendarHandler) SetHours(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var hours model.BusinessHours
	if err := json.NewDecoder(r.Body).Decode(&hours); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SetHours", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	// Path segments win over body fields.
	hours.BusinessID = ps.ByName("business_id")
	hours.Weekday = ps.ByName("weekday")

	if err := h.service.SetHours(r.Context(), &hours); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "SetHours", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hours); err != nil {
		h.log.Error("failed to write success response", "handler", "SetHours", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) GetWeek(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	week, err := h.service.GetWeek(r.Context(), ps.ByName("business_id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetWeek", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, week); err != nil {
		h.log.Error("failed to write success response", "handler", "GetWeek", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) DeleteHours(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	err := h.service.DeleteHours(r.Context(), ps.ByName("business_id"), ps.ByName("weekday"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteHours", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CalendarHandler) CreateBlockedSlot(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var slot model.BlockedTimeSlot
	if err := json.NewDecoder(r.Body).Decode(&slot); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "CreateBlockedSlot", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.CreateBlockedSlot(r.Context(), &slot); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "CreateBlockedSlot", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, slot); err != nil {
		h.log.Error("failed to write created response", "handler", "CreateBlockedSlot", "operation", "WriteCreated", "error", err)
	}
}

func (h *CalendarHandler) ListBlockedSlots(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBlockedSlots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	slots, err := h.service.ListBlockedSlots(r.Context(), r.URL.Query().Get("business_id"), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ListBlockedSlots", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, slots); err != nil {
		h.log.Error("failed to write success response", "handler", "ListBlockedSlots", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CalendarHandler) DeactivateBlockedSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeactivateBlockedSlot(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeactivateBlockedSlot", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CalendarHandler) DeleteBlockedSlot(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.DeleteBlockedSlot(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "DeleteBlockedSlot", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CalendarHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/business-hours/:business_id/:weekday", h.SetHours)
	router.GET("/api/v1/business-hours/:business_id", h.GetWeek)
	router.DELETE("/api/v1/business-hours/:business_id/:weekday", h.DeleteHours)

	router.POST("/api/v1/blocked-slots", h.CreateBlockedSlot)
	router.GET("/api/v1/blocked-slots", h.ListBlockedSlots)
	router.POST("/api/v1/blocked-slots/id/:id/deactivate", h.DeactivateBlockedSlot)
	router.DELETE("/api/v1/blocked-slots/id/:id", h.DeleteBlockedSlot)
}
