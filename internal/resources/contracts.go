package resources

import (
	"context"
	"fmt"
	"time"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Contracts — фасад контрактов и их парцел.
type Contracts struct {
	*Resource[models.Contrato, models.CreateContratoRequest, models.UpdateContratoRequest]
}

func NewContracts(c *partner.Client, now func() time.Time) *Contracts {
	return &Contracts{
		Resource: NewResource[models.Contrato, models.CreateContratoRequest, models.UpdateContratoRequest](c, partner.ResourceContracts, contratoValidator(now), nil),
	}
}

func (c *Contracts) ByClient(ctx context.Context, clienteID string) ([]models.Contrato, error) {
	if blank(clienteID) {
		return nil, models.Invalid("clienteId", "ID do cliente é obrigatório")
	}

	page, err := c.List(ctx, models.ContratoFilters{
		PageParams: models.PageParams{Limit: 100},
		ClienteID:  clienteID,
	})
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (c *Contracts) Activate(ctx context.Context, id, dataAssinatura string) (models.Contrato, error) {
	var body any
	if dataAssinatura != "" {
		body = map[string]string{"dataAssinatura": dataAssinatura}
	}

	return c.Action(ctx, id, "activate", body)
}

func (c *Contracts) Suspend(ctx context.Context, id, motivo string) (models.Contrato, error) {
	if blank(motivo) {
		return models.Contrato{}, models.Invalid("motivo", "Motivo é obrigatório")
	}

	return c.Action(ctx, id, "suspend", reason(motivo))
}

func (c *Contracts) Reactivate(ctx context.Context, id string) (models.Contrato, error) {
	return c.Action(ctx, id, "reactivate", nil)
}

func (c *Contracts) Cancel(ctx context.Context, id, motivo string) (models.Contrato, error) {
	if blank(motivo) {
		return models.Contrato{}, models.Invalid("motivo", "Motivo é obrigatório")
	}

	return c.Action(ctx, id, "cancel", reason(motivo))
}

func (c *Contracts) Finalize(ctx context.Context, id, dataQuitacao string) (models.Contrato, error) {
	var body any
	if dataQuitacao != "" {
		body = map[string]string{"dataQuitacao": dataQuitacao}
	}

	return c.Action(ctx, id, "finalize", body)
}

func (c *Contracts) Installments(ctx context.Context, id string) ([]models.Parcela, error) {
	return Sub[[]models.Parcela](ctx, c.Resource, id, "installments", nil)
}

// PayInstallment — POST {contracts}/{id}/installments/{parcela}/pay.
func (c *Contracts) PayInstallment(ctx context.Context, contractID, installmentID string, p models.PaymentRequest) (models.Parcela, error) {
	const op = "resources/contracts.PayInstallment"

	if err := requireID(contractID); err != nil {
		return models.Parcela{}, err
	}
	if blank(installmentID) {
		return models.Parcela{}, models.Invalid("parcelaId", "ID da parcela é obrigatório")
	}
	if p.ValorPago <= 0 {
		return models.Parcela{}, models.Invalid("valorPago", "Valor pago deve ser maior que zero")
	}

	out, err := partner.Post[models.Parcela](ctx, c.client, c.Path(contractID, "installments", installmentID, "pay"), p)
	if err != nil {
		return models.Parcela{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func paidAmount(k models.Contrato) float64 {
	var sum float64
	for _, p := range k.Parcelas {
		if p.Status == models.ParcelaPaga {
			sum += p.ValorPago
		}
	}

	return sum
}

// OutstandingBalance — valorTotal минус оплаченные парцелы.
func OutstandingBalance(k models.Contrato) float64 {
	return k.ValorTotal - paidAmount(k)
}

// PaidPercentage — доля оплаченного в процентах; 0 без парцел или при нулевой сумме.
func PaidPercentage(k models.Contrato) float64 {
	if len(k.Parcelas) == 0 || k.ValorTotal == 0 {
		return 0
	}

	return paidAmount(k) / k.ValorTotal * 100
}

// NextInstallment — ближайшая по дате парцела в статусе pendente.
func NextInstallment(k models.Contrato) (models.Parcela, bool) {
	var (
		next  models.Parcela
		found bool
	)
	for _, p := range k.Parcelas {
		if p.Status != models.ParcelaPendente {
			continue
		}
		// ISO-даты сравниваются лексикографически.
		if !found || p.DataVencimento < next.DataVencimento {
			next, found = p, true
		}
	}

	return next, found
}
