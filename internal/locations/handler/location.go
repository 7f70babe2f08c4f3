package handler

import (
	"encoding/json"
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/anshif14/petzify-sub001/internal/locations/service"
	"github.com/anshif14/petzify-sub001/pkg/httputil"
	"github.com/anshif14/petzify-sub001/pkg/logger"
	"github.com/anshif14/petzify-sub001/pkg/model"
)

type LocationHandler struct {
	resolver service.LocationResolver
	log      *logger.Logger
}

func NewLocationHandler(resolver service.LocationResolver, log *logger.Logger) *LocationHandler {
	return &LocationHandler{resolver: resolver, log: log}
}

type resolveRequest struct {
	Identity         string `json:"identity,omitempty"`
	UseLocalCache    *bool  `json:"use_local_cache,omitempty"`
	UseRemoteProfile *bool  `json:"use_remote_profile,omitempty"`
	UseGeolocation   *bool  `json:"use_geolocation,omitempty"`
}

type resolveResponse struct {
	Stages []service.Stage       `json:"stages"`
	Record *model.LocationRecord `json:"record"`
}

func (h *LocationHandler) Resolve(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req resolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "Resolve", "error", writeErr)
		}
		return
	}

	opts := service.DefaultResolveOptions(req.Identity)
	if req.UseLocalCache != nil {
		opts.UseLocalCache = *req.UseLocalCache
	}
	if req.UseRemoteProfile != nil {
		opts.UseRemoteProfile = *req.UseRemoteProfile
	}
	if req.UseGeolocation != nil {
		opts.UseGeolocation = *req.UseGeolocation
	}

	var stages []service.Stage
	opts.OnStage = func(s service.Stage) { stages = append(stages, s) }

	record, err := h.resolver.Resolve(r.Context(), opts)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Resolve", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resolveResponse{Stages: stages, Record: record}); err != nil {
		h.log.Error("failed to write success response", "handler", "Resolve", "error", err)
	}
}

type saveRequest struct {
	Identity string               `json:"identity,omitempty"`
	Record   model.LocationRecord `json:"record"`
}

func (h *LocationHandler) SaveCache(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if writeErr := httputil.WriteJSON(w, http.StatusBadRequest, httputil.ErrorResponse{
			Error: "Invalid request body",
		}); writeErr != nil {
			h.log.Error("failed to write JSON response", "handler", "SaveCache", "error", writeErr)
		}
		return
	}

	h.resolver.SaveLocal(req.Identity, &req.Record)
	httputil.WriteNoContent(w)
}

func (h *LocationHandler) ClearCache(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	identity := r.URL.Query().Get("identity")
	h.resolver.ClearLocal(identity)
	httputil.WriteNoContent(w)
}

func (h *LocationHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/v1/locations/resolve", h.Resolve)
	router.PUT("/api/v1/locations/cache", h.SaveCache)
	router.DELETE("/api/v1/locations/cache", h.ClearCache)
}
