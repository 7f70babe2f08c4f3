package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/anshif14/petzify-sub001/internal/pets/service"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/httputil"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type PetHandler struct {
	service service.PetService
	log     *logger.Logger
}

func NewPetHandler(service service.PetService, log *logger.Logger) *PetHandler {
	return &PetHandler{service: service, log: log}
}

func (h *PetHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var pet model.Pet
	if err := json.NewDecoder(r.Body).Decode(&pet); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &pet); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, pet); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *PetHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	pet, err := h.service.GetByID(r.Context(), ps.ByName("id"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, pet); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "error", err)
	}
}

func (h *PetHandler) GetByOwner(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	ownerEmail := r.URL.Query().Get("owner_email")
	if ownerEmail == "" {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("owner_email query parameter is required")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByOwner", "error", writeErr)
		}
		return
	}

	pets, err := h.service.GetByOwner(r.Context(), ownerEmail)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByOwner", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, pets); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByOwner", "error", err)
	}
}

func (h *PetHandler) Update(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var updates model.PetUpdate
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Update", "error", writeErr)
		}
		return
	}

	if err := h.service.Update(r.Context(), ps.ByName("id"), &updates); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Update", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PetHandler) Delete(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	if err := h.service.Delete(r.Context(), ps.ByName("id")); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Delete", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *PetHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/pets", h.Create)
	router.GET("/api/v1/pets", h.GetByOwner)
	router.GET("/api/v1/pets/:id", h.GetByID)
	router.PUT("/api/v1/pets/:id", h.Update)
	router.DELETE("/api/v1/pets/:id", h.Delete)
}
