package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"campushub/internal/marketing/service"
	httputil "campushub/pkg/http"
	"campushub/pkg/logger"
	"campushub/pkg/middleware"
	"campushub/pkg/model"
)

type MarketingHandler struct {
	service service.MarketingService
	log     *logger.Logger
}

func NewMarketingHandler(service service.MarketingService, log *logger.Logger) *MarketingHandler {
	return &MarketingHandler{
		service: service,
		log:     log,
	}
}

func (h *MarketingHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/marketing", h.Create)
	router.GET("/api/v1/marketing", h.GetAll)
	router.GET("/api/v1/marketing/id/:id", h.GetByID)
	router.POST("/api/v1/marketing/id/:id/approvals/:stage", h.Approve)
	router.PATCH("/api/v1/marketing/id/:id/checklist", h.UpdateChecklist)
	router.POST("/api/v1/marketing/id/:id/complete", h.Complete)
}

func (h *MarketingHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var request model.MarketingRequest
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

func (h *MarketingHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
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

func (h *MarketingHandler) GetAll(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
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

// Approve records a stage decision. The acting party comes from the
// authenticated principal on the request context, never from the payload.
func (h *MarketingHandler) Approve(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")
	stage := model.Stage(ps.ByName("stage"))
	actor := middleware.Actor(r)

	var decision model.ApprovalDecision
	if err := json.NewDecoder(r.Body).Decode(&decision); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Approve", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.Approve(r.Context(), id, stage, decision.Approved, actor); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Approve", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *MarketingHandler) UpdateChecklist(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	var patch model.ChecklistPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateChecklist", "operation", "WriteJSON", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateChecklist(r.Context(), id, &patch); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateChecklist", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *MarketingHandler) Complete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	id := ps.ByName("id")

	if err := h.service.Complete(r.Context(), id); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Complete", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}
