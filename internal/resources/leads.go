package resources

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Leads — фасад лидов партнёра.
type Leads struct {
	*Resource[models.Lead, models.CreateLeadRequest, models.UpdateLeadRequest]
	now func() time.Time
}

func NewLeads(c *partner.Client, now func() time.Time) *Leads {
	return &Leads{
		Resource: NewResource[models.Lead](c, partner.ResourceLeads, validateLeadCreate, validateLeadUpdate),
		now:      now,
	}
}

// Search — List с заполненным полем busca.
func (l *Leads) Search(ctx context.Context, term string, f models.LeadFilters) (models.Page[models.Lead], error) {
	f.Busca = term
	return l.List(ctx, f)
}

// ByCPF ищет лид по точному совпадению CPF среди результатов поиска.
// found == false, если совпадения нет.
func (l *Leads) ByCPF(ctx context.Context, cpf string) (lead models.Lead, found bool, err error) {
	page, err := l.Search(ctx, cpf, models.LeadFilters{})
	if err != nil {
		return models.Lead{}, false, err
	}

	for _, it := range page.Data {
		if it.CPF == cpf {
			return it, true, nil
		}
	}

	return models.Lead{}, false, nil
}

// Convert превращает лид в клиента; clientData уходит телом как есть.
func (l *Leads) Convert(ctx context.Context, id string, clientData any) (models.Lead, error) {
	return l.Action(ctx, id, "convert", clientData)
}

// UpdateStatus меняет статус и проставляет dataContato текущим временем.
func (l *Leads) UpdateStatus(ctx context.Context, id string, status models.LeadStatus, observacoes string) (models.Lead, error) {
	req := models.UpdateLeadRequest{
		Status:      status,
		DataContato: l.now().UTC().Format(time.RFC3339),
	}
	if observacoes != "" {
		req.Observacoes = &observacoes
	}

	return l.Update(ctx, id, req)
}

func (l *Leads) ScheduleNextContact(ctx context.Context, id, proximoContato, observacoes string) (models.Lead, error) {
	if blank(proximoContato) {
		return models.Lead{}, models.Invalid("proximoContato", "Data do próximo contato é obrigatória")
	}

	req := models.UpdateLeadRequest{ProximoContato: proximoContato}
	if observacoes != "" {
		req.Observacoes = &observacoes
	}

	return l.Update(ctx, id, req)
}

// AddTags добавляет теги к текущим без дублей, сохраняя порядок.
func (l *Leads) AddTags(ctx context.Context, id string, tags []string) (models.Lead, error) {
	cur, err := l.Get(ctx, id)
	if err != nil {
		return models.Lead{}, err
	}

	merged := slices.Clone(cur.Tags)
	for _, t := range tags {
		if !slices.Contains(merged, t) {
			merged = append(merged, t)
		}
	}

	return l.Update(ctx, id, models.UpdateLeadRequest{Tags: nonNil(merged)})
}

func (l *Leads) RemoveTags(ctx context.Context, id string, tags []string) (models.Lead, error) {
	cur, err := l.Get(ctx, id)
	if err != nil {
		return models.Lead{}, err
	}

	kept := slices.DeleteFunc(slices.Clone(cur.Tags), func(t string) bool {
		return slices.Contains(tags, t)
	})

	return l.Update(ctx, id, models.UpdateLeadRequest{Tags: nonNil(kept)})
}

// Metrics — агрегаты за период; пустые границы не отправляются.
func (l *Leads) Metrics(ctx context.Context, dataInicio, dataFim string) (models.LeadMetrics, error) {
	const op = "resources/leads.Metrics"

	params := url.Values{}
	if dataInicio != "" {
		params.Set("dataInicio", dataInicio)
	}
	if dataFim != "" {
		params.Set("dataFim", dataFim)
	}

	out, err := partner.Get[models.LeadMetrics](ctx, l.client, l.Path("metrics"), params)
	if err != nil {
		return models.LeadMetrics{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// ByStatus — первые limit лидов со статусом (по умолчанию 50).
func (l *Leads) ByStatus(ctx context.Context, status models.LeadStatus, limit int) ([]models.Lead, error) {
	if limit <= 0 {
		limit = 50
	}

	page, err := l.List(ctx, models.LeadFilters{
		PageParams: models.PageParams{Limit: limit},
		Status:     []models.LeadStatus{status},
	})
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// ContactToday — лиды с контактом, запланированным на сегодня.
func (l *Leads) ContactToday(ctx context.Context) ([]models.Lead, error) {
	const op = "resources/leads.ContactToday"

	params := url.Values{"data": {l.now().UTC().Format("2006-01-02")}}

	out, err := partner.Get[[]models.Lead](ctx, l.client, l.Path("contact-today"), params)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// nonNil гарантирует, что пустой список тегов уйдёт как [], а не пропадёт из JSON.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}

	return s
}
