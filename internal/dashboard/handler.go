package dashboard

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"campushub/internal/calendar"
	apperrors "campushub/pkg/errors"
	httputil "campushub/pkg/http"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

type Handler struct {
	service *Service
	log     *logger.Logger
}

func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		log:     log,
	}
}

func (h *Handler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/v1/dashboard/calendar", h.Calendar)
	router.GET("/api/v1/dashboard/buckets", h.Buckets)
	router.GET("/api/v1/dashboard/equipment-in-use", h.EquipmentInUse)
	router.GET("/api/v1/dashboard/occupancy", h.RoomOccupancy)
}

// Calendar renders the merged feed. The cursor defaults to today in the
// institutional timezone; the view defaults to month.
func (h *Handler) Calendar(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	view := calendar.View(query.Get("view"))
	if view == "" {
		view = calendar.ViewMonth
	}

	cursor := calendar.Today(h.service.cfg.Location())
	if raw := query.Get("cursor"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, h.service.cfg.Location())
		if err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("cursor must be an ISO date (YYYY-MM-DD)")); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
			}
			return
		}
		cursor = parsed
	}

	cells, err := h.service.Calendar(view, cursor)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Calendar", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, cells); err != nil {
		h.log.Error("failed to write success response", "handler", "Calendar", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) Buckets(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.Buckets()); err != nil {
		h.log.Error("failed to write success response", "handler", "Buckets", "operation", "WriteSuccess", "error", err)
	}
}

func (h *Handler) EquipmentInUse(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := httputil.WriteSuccess(w, h.service.EquipmentInUse()); err != nil {
		h.log.Error("failed to write success response", "handler", "EquipmentInUse", "operation", "WriteSuccess", "error", err)
	}
}

type occupancyResponse struct {
	Date   string       `json:"date"`
	Period model.Period `json:"period,omitempty"`
	Rooms  []string     `json:"rooms"`
}

func (h *Handler) RoomOccupancy(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()
	date := query.Get("date")
	period := model.Period(query.Get("period"))

	rooms, err := h.service.RoomOccupancy(date, period)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "RoomOccupancy", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, occupancyResponse{Date: date, Period: period, Rooms: rooms}); err != nil {
		h.log.Error("failed to write success response", "handler", "RoomOccupancy", "operation", "WriteSuccess", "error", err)
	}
}
