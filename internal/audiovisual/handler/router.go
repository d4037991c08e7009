package handler

import (
	"github.com/julienschmidt/httprouter"
)

// AudiovisualHandler groups the sector's HTTP handlers behind a single
// route registration point.
type AudiovisualHandler struct {
	reservations *ReservationHandler
	equipment    *EquipmentHandler
}

func NewAudiovisualHandler(reservations *ReservationHandler, equipment *EquipmentHandler) *AudiovisualHandler {
	return &AudiovisualHandler{
		reservations: reservations,
		equipment:    equipment,
	}
}

func (h *AudiovisualHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/reservations", h.reservations.Create)
	router.GET("/api/v1/reservations", h.reservations.GetAll)
	router.GET("/api/v1/reservations/search", h.reservations.Search)
	router.GET("/api/v1/reservations/availability", h.reservations.CheckAvailability)
	router.GET("/api/v1/reservations/id/:id", h.reservations.GetByID)
	router.PATCH("/api/v1/reservations/id/:id", h.reservations.Update)
	router.POST("/api/v1/reservations/id/:id/approve", h.reservations.Approve)
	router.POST("/api/v1/reservations/id/:id/cancel", h.reservations.Cancel)
	router.GET("/api/v1/reservations/id/:id/cancel-token", h.reservations.CancelToken)
	router.POST("/api/v1/reservations/cancel/:token", h.reservations.CancelWithToken)

	router.POST("/api/v1/equipment", h.equipment.Create)
	router.GET("/api/v1/equipment", h.equipment.GetAll)
	router.GET("/api/v1/equipment/available", h.equipment.Available)
	router.GET("/api/v1/equipment/id/:id", h.equipment.GetByID)
	router.PATCH("/api/v1/equipment/id/:id", h.equipment.Update)
	router.DELETE("/api/v1/equipment/id/:id", h.equipment.Delete)
}
