package handlers

import (
	"net/http"
	"strings"

	apierrors "github.com/brunosoares877/Crefaz/internal/http/errors"
	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

type environmentView struct {
	Name    string   `json:"name"`
	BaseURL string   `json:"baseUrl"`
	Known   []string `json:"available"`
}

func (h *Handlers) environment(p partner.EnvironmentProfile) environmentView {
	return environmentView{Name: p.Name, BaseURL: p.BaseURL, Known: h.Clients.Registry.Names()}
}

// PartnerHealth никогда не отвечает ошибкой: недоступность партнёра — это api=false.
func (h *Handlers) PartnerHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"api": h.Clients.Partner.HealthCheck(r.Context())})
}

func (h *Handlers) PartnerToken(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.Clients.Partner.TokenInfo())
}

func (h *Handlers) PartnerEnvironment(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.environment(h.Clients.Partner.Environment()))
}

// SwitchPartnerEnvironment переключает общий клиент на другой профиль.
// Токен сбрасывается; запросы в полёте завершаются в старом окружении.
func (h *Handlers) SwitchPartnerEnvironment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Environment string `json:"environment"`
	}
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	name := strings.TrimSpace(req.Environment)
	if name == "" {
		apierrors.WriteError(w, r, models.Invalid("environment", "Ambiente é obrigatório"))
		return
	}

	p, err := h.Clients.ProfileFor(name)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	h.Clients.Partner.SetEnvironment(p)
	writeJSON(w, http.StatusOK, h.environment(h.Clients.Partner.Environment()))
}

func (h *Handlers) PartnerProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.Clients.Resources.Products.Active(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: products})
}

func (h *Handlers) PartnerSimulate(w http.ResponseWriter, r *http.Request) {
	var req models.SimulationRequest
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	sim, err := h.Clients.Resources.Proposals.Simulate(r.Context(), req)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Data: sim})
}
