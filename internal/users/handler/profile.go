package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/anshif14/petzify-sub001/internal/users/service"
	"github.com/anshif14/petzify-sub001/pkg/httputil"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type UserProfileHandler struct {
	service service.UserProfileService
	log     *logger.Logger
}

func NewUserProfileHandler(service service.UserProfileService, log *logger.Logger) *UserProfileHandler {
	return &UserProfileHandler{service: service, log: log}
}

func (h *UserProfileHandler) GetByEmail(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	profile, err := h.service.GetByEmail(r.Context(), ps.ByName("email"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByEmail", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByEmail", "error", err)
	}
}

func (h *UserProfileHandler) Upsert(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var profile model.UserProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	if err := h.service.Upsert(r.Context(), &profile); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Upsert", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, profile); err != nil {
		h.log.Error("failed to write success response", "handler", "Upsert", "error", err)
	}
}

func (h *UserProfileHandler) UpdateLocation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var record model.LocationRecord
	if err := json.NewDecoder(r.Body).Decode(&record); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "UpdateLocation", "error", writeErr)
		}
		return
	}

	if err := h.service.UpdateLocation(r.Context(), ps.ByName("email"), &record); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "UpdateLocation", "error", writeErr)
		}
		return
	}

	httputil.WriteNoContent(w)
}

func (h *UserProfileHandler) RegisterRoutes(router *httprouter.Router) {
	router.PUT("/api/v1/users", h.Upsert)
	router.GET("/api/v1/users/:email", h.GetByEmail)
	router.PUT("/api/v1/users/:email/location", h.UpdateLocation)
}
