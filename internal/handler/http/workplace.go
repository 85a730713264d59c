package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/workplace"
	"github.com/haken-hr/kyuyo-backend-go/internal/handler/http/response"
)

type WorkplaceHandler interface {
	CreateConfigVersion(w http.ResponseWriter, r *http.Request)
	CreateDefaultConfig(w http.ResponseWriter, r *http.Request)
	GetEffectiveConfig(w http.ResponseWriter, r *http.Request)
	ListConfigVersions(w http.ResponseWriter, r *http.Request)
}

type workplaceHandlerImpl struct {
	configService workplace.ConfigService
}

func NewWorkplaceHandler(configService workplace.ConfigService) WorkplaceHandler {
	return &workplaceHandlerImpl{configService: configService}
}

func (h *workplaceHandlerImpl) CreateConfigVersion(w http.ResponseWriter, r *http.Request) {
	var req workplace.CreateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.WorkplaceID = chi.URLParam(r, "workplaceID")

	result, err := h.configService.CreateVersion(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Config version created", result)
}

func (h *workplaceHandlerImpl) CreateDefaultConfig(w http.ResponseWriter, r *http.Request) {
	var req struct {
		EffectiveFrom string `json:"effective_from"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.configService.CreateDefaults(r.Context(), chi.URLParam(r, "workplaceID"), req.EffectiveFrom)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Default config version created", result)
}

func (h *workplaceHandlerImpl) GetEffectiveConfig(w http.ResponseWriter, r *http.Request) {
	workplaceID := chi.URLParam(r, "workplaceID")
	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "date query parameter is required", nil)
		return
	}

	result, err := h.configService.GetEffective(r.Context(), workplaceID, date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *workplaceHandlerImpl) ListConfigVersions(w http.ResponseWriter, r *http.Request) {
	result, err := h.configService.ListVersions(r.Context(), chi.URLParam(r, "workplaceID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
