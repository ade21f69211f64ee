package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	apierrors "github.com/brunosoares877/Crefaz/internal/http/errors"
	"github.com/brunosoares877/Crefaz/internal/leadcapture"
	"github.com/brunosoares877/Crefaz/internal/models"
)

type leadSummary struct {
	ID     uuid.UUID             `json:"id"`
	Nome   string                `json:"nome"`
	Status models.CapturedStatus `json:"status"`
}

// publicLeads убирает сведения о браузере отправителя (IP, User-Agent)
// из всего, что уходит наружу.
func publicLeads(leads []models.CapturedLead) []models.CapturedLead {
	out := make([]models.CapturedLead, len(leads))
	for i, l := range leads {
		out[i] = publicLead(l)
	}

	return out
}

func publicLead(l models.CapturedLead) models.CapturedLead {
	l.IPAddress, l.UserAgent = "", ""
	return l
}

func (h *Handlers) CreateLead(w http.ResponseWriter, r *http.Request) {
	var form leadcapture.Form
	if err := decodeStrict(w, r, &form); err != nil {
		h.observe("invalid")
		apierrors.WriteError(w, r, err)
		return
	}

	lead, err := h.Clients.Leads.Submit(r.Context(), form, leadcapture.Meta{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	})
	if err != nil {
		h.observe(outcome(err))
		apierrors.WriteError(w, r, err)
		return
	}

	h.observe("created")
	writeJSON(w, http.StatusCreated, response{
		Success: true,
		Message: "Lead cadastrado com sucesso!",
		Data:    leadSummary{ID: lead.ID, Nome: lead.Nome, Status: lead.Status},
	})
}

func (h *Handlers) ListLeads(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Clients.Leads.List(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	total := len(leads)
	writeJSON(w, http.StatusOK, response{Success: true, Data: publicLeads(leads), Total: &total})
}

func (h *Handlers) UpdateLeadStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status models.CapturedStatus `json:"status"`
	}
	if err := decodeStrict(w, r, &req); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	lead, err := h.Clients.Leads.UpdateStatus(r.Context(), chi.URLParam(r, "id"), req.Status)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Message: "Status atualizado com sucesso",
		Data:    publicLead(*lead),
	})
}

func (h *Handlers) DeleteLead(w http.ResponseWriter, r *http.Request) {
	if err := h.Clients.Leads.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Success: true, Message: "Lead removido com sucesso"})
}

// ExportLeads отдаёт все лиды файлом leads-AAAA-MM-DD.json.
func (h *Handlers) ExportLeads(w http.ResponseWriter, r *http.Request) {
	file, err := h.Clients.Leads.Export(r.Context())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Name))
	w.WriteHeader(http.StatusOK)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(publicLeads(file.Leads))
}

// LeadWhatsApp отдаёт ссылку wa.me с карточкой лида для менеджера.
func (h *Handlers) LeadWhatsApp(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Clients.Leads.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{
		Success: true,
		Data:    map[string]string{"link": leadcapture.WhatsAppLink(*lead, h.whatsapp)},
	})
}

func (h *Handlers) observe(outcome string) {
	if h.leads != nil {
		h.leads.LeadCaptured(outcome)
	}
}

func outcome(err error) string {
	var (
		verr *models.ValidationError
		dup  *leadcapture.DuplicateIDError
	)

	switch {
	case errors.As(err, &verr):
		return "invalid"
	case errors.As(err, &dup):
		return "duplicate"
	default:
		return "error"
	}
}
