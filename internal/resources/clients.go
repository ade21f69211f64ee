package resources

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Clients — фасад клиентов партнёра.
type Clients struct {
	*Resource[models.Cliente, models.CreateClienteRequest, models.UpdateClienteRequest]
}

func NewClients(c *partner.Client, now func() time.Time) *Clients {
	return &Clients{
		Resource: NewResource[models.Cliente](c, partner.ResourceClients, clienteValidator(now), validateClienteUpdate),
	}
}

// ByCPF — точное совпадение CPF среди результатов поиска.
func (c *Clients) ByCPF(ctx context.Context, cpf string) (models.Cliente, bool, error) {
	return c.findOne(ctx, cpf, func(it models.Cliente) bool { return it.CPF == cpf })
}

// ByEmail сравнивает email без учёта регистра.
func (c *Clients) ByEmail(ctx context.Context, email string) (models.Cliente, bool, error) {
	return c.findOne(ctx, email, func(it models.Cliente) bool { return strings.EqualFold(it.Email, email) })
}

func (c *Clients) findOne(ctx context.Context, term string, match func(models.Cliente) bool) (models.Cliente, bool, error) {
	page, err := c.List(ctx, models.ClienteFilters{Busca: term})
	if err != nil {
		return models.Cliente{}, false, err
	}

	for _, it := range page.Data {
		if match(it) {
			return it, true, nil
		}
	}

	return models.Cliente{}, false, nil
}

func (c *Clients) ByStatus(ctx context.Context, status models.ClienteStatus) ([]models.Cliente, error) {
	page, err := c.List(ctx, models.ClienteFilters{
		PageParams: models.PageParams{Limit: 100},
		Status:     []models.ClienteStatus{status},
	})
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (c *Clients) Activate(ctx context.Context, id string) (models.Cliente, error) {
	return c.Action(ctx, id, "activate", nil)
}

func (c *Clients) Deactivate(ctx context.Context, id, motivo string) (models.Cliente, error) {
	return c.Action(ctx, id, "deactivate", reason(motivo))
}

// Block требует причину блокировки.
func (c *Clients) Block(ctx context.Context, id, motivo string) (models.Cliente, error) {
	if blank(motivo) {
		return models.Cliente{}, models.Invalid("motivo", "Motivo é obrigatório")
	}

	return c.Action(ctx, id, "block", reason(motivo))
}

func (c *Clients) Unblock(ctx context.Context, id string) (models.Cliente, error) {
	return c.Action(ctx, id, "unblock", nil)
}

func (c *Clients) History(ctx context.Context, id string) ([]models.HistoryEvent, error) {
	return Sub[[]models.HistoryEvent](ctx, c.Resource, id, "history", nil)
}

func (c *Clients) CreditScore(ctx context.Context, id string) (models.CreditScore, error) {
	return Sub[models.CreditScore](ctx, c.Resource, id, "credit-score", nil)
}

// PaymentCapacity проверяет, выдержит ли клиент запрошенную сумму.
func (c *Clients) PaymentCapacity(ctx context.Context, id string, valorSolicitado float64) (models.PaymentCapacity, error) {
	const op = "resources/clients.PaymentCapacity"

	if err := requireID(id); err != nil {
		return models.PaymentCapacity{}, err
	}
	if valorSolicitado <= 0 {
		return models.PaymentCapacity{}, models.Invalid("valorSolicitado", "Valor solicitado deve ser maior que zero")
	}

	body := map[string]float64{"valorSolicitado": valorSolicitado}
	out, err := partner.Post[models.PaymentCapacity](ctx, c.client, c.Path(id, "payment-capacity"), body)
	if err != nil {
		return models.PaymentCapacity{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// reason — тело {motivo}, пустой motivo не отправляется.
func reason(motivo string) any {
	if motivo == "" {
		return nil
	}

	return map[string]string{"motivo": motivo}
}
