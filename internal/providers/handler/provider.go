package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"

	"github.com/anshif14/petzify-sub001/internal/providers/service"
	apperrors "github.com/anshif14/petzify-sub001/pkg/errors"
	"github.com/anshif14/petzify-sub001/pkg/httputil"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type ProviderHandler struct {
	service service.ProviderService
	log     *logger.Logger
}

func NewProviderHandler(service service.ProviderService, log *logger.Logger) *ProviderHandler {
	return &ProviderHandler{service: service, log: log}
}

func (h *ProviderHandler) Create(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var provider model.Provider
	if err := json.NewDecoder(r.Body).Decode(&provider); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := h.service.Create(r.Context(), &provider); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Create", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, provider); err != nil {
		h.log.Error("failed to write created response", "handler", "Create", "error", err)
	}
}

func (h *ProviderHandler) Nearby(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	query := r.URL.Query()

	lat, err := strconv.ParseFloat(query.Get("lat"), 64)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid or missing lat parameter")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Nearby", "error", writeErr)
		}
		return
	}

	lng, err := strconv.ParseFloat(query.Get("lng"), 64)
	if err != nil {
		if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid or missing lng parameter")); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Nearby", "error", writeErr)
		}
		return
	}

	limit := 0
	if s := query.Get("limit"); s != "" {
		if limit, err = strconv.Atoi(s); err != nil {
			if writeErr := httputil.WriteError(w, apperrors.InvalidInput("invalid limit parameter: "+s)); writeErr != nil {
				h.log.Error("failed to write error response", "handler", "Nearby", "error", writeErr)
			}
			return
		}
	}

	ranked, err := h.service.Nearby(r.Context(), lat, lng, query.Get("service"), limit)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Nearby", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, ranked); err != nil {
		h.log.Error("failed to write success response", "handler", "Nearby", "error", err)
	}
}

func (h *ProviderHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/providers", h.Create)
	router.GET("/api/v1/providers/nearby", h.Nearby)
}
