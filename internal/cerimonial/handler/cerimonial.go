package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"campushub/internal/cerimonial/service"
	apperrors "campushub/pkg/errors"
	httputil "campushub/pkg/http"
	"campushub/pkg/logger"
	"campushub/pkg/model"
)

type CerimonialHandler struct {
	service service.CerimonialService
	log     *logger.Logger
}

func NewCerimonialHandler(service service.CerimonialService, log *logger.Logger) *CerimonialHandler {
	return &CerimonialHandler{
		service: service,
		log:     log,
	}
}

func (h *CerimonialHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/cerimonial", h.Create)
	router.GET("/api/v1/cerimonial", h.GetAll)
	router.GET("/api/v1/cerimonial/id/:id", h.GetByID)
	router.PATCH("/api/v1/cerimonial/id/:id", h.Update)
	router.DELETE("/api/v1/cerimonial/id/:id", h.Delete)
	router.PATCH("/api/v1/cerimonial/id/:id/tasks/:index", h.ToggleTask)
}

func (h *CerimonialHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request model.CerimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &request); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, request); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "operation", "WriteCreated", "error", err)
	}
}

func (h *CerimonialHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	request, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, request); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

func (h *CerimonialHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	limit, offset, err := httputil.ExtractLimitOffset(r)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	requests, total, err := h.service.GetAll(r.Context(), limit, offset)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetAll", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WritePaginated(w, requests, total, limit, offset); err != nil {
		h.log.Error("failed to write paginated response", "handler", "GetAll", "operation", "WritePaginated", "error", err)
	}
}

func (h *CerimonialHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var updates model.CerimonialUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), id, &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *CerimonialHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

type taskToggleRequest struct {
	Done bool `json:"done"`
}

func (h *CerimonialHandler) ToggleTask(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	index, err := strconv.Atoi(ps.ByName("index"))
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("Task index must be a number")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleTask", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	var body taskToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "ToggleTask", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.ToggleTask(r.Context(), id, index, body.Done); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "ToggleTask", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}
