package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haken-hr/kyuyo-backend-go/internal/domain/yukyu"
	"github.com/haken-hr/kyuyo-backend-go/internal/handler/http/response"
)

type YukyuHandler interface {
	Grant(w http.ResponseWriter, r *http.Request)
	Consume(w http.ResponseWriter, r *http.Request)
	Reverse(w http.ResponseWriter, r *http.Request)
	Balance(w http.ResponseWriter, r *http.Request)
	ListGrants(w http.ResponseWriter, r *http.Request)
	ListConsumptions(w http.ResponseWriter, r *http.Request)
}

type yukyuHandlerImpl struct {
	service yukyu.Service
}

func NewYukyuHandler(service yukyu.Service) YukyuHandler {
	return &yukyuHandlerImpl{service: service}
}

func (h *yukyuHandlerImpl) Grant(w http.ResponseWriter, r *http.Request) {
	var req yukyu.GrantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.service.Grant(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Grant recorded", result)
}

func (h *yukyuHandlerImpl) Consume(w http.ResponseWriter, r *http.Request) {
	var req yukyu.ConsumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.EmployeeID = chi.URLParam(r, "employeeID")

	result, err := h.service.Consume(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave consumed", result)
}

func (h *yukyuHandlerImpl) Reverse(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reverse(r.Context(), chi.URLParam(r, "consumptionID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Consumption reversed", result)
}

func (h *yukyuHandlerImpl) Balance(w http.ResponseWriter, r *http.Request) {
	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().UTC().Format("2006-01-02")
	}

	result, err := h.service.BalanceAsOf(r.Context(), chi.URLParam(r, "employeeID"), asOf)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *yukyuHandlerImpl) ListGrants(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListGrants(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *yukyuHandlerImpl) ListConsumptions(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListConsumptions(r.Context(), chi.URLParam(r, "employeeID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
