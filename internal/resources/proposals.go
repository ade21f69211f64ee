package resources

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Proposals — фасад предложений (propostas).
type Proposals struct {
	*Resource[models.Proposta, models.CreatePropostaRequest, models.UpdatePropostaRequest]
}

func NewProposals(c *partner.Client, now func() time.Time) *Proposals {
	return &Proposals{
		Resource: NewResource[models.Proposta, models.CreatePropostaRequest, models.UpdatePropostaRequest](c, partner.ResourceProposals, propostaValidator(now), nil),
	}
}

func (p *Proposals) ByClient(ctx context.Context, clienteID string) ([]models.Proposta, error) {
	if blank(clienteID) {
		return nil, models.Invalid("clienteId", "ID do cliente é obrigatório")
	}

	return p.data(ctx, models.PropostaFilters{ClienteID: clienteID})
}

func (p *Proposals) ByStatus(ctx context.Context, status models.PropostaStatus) ([]models.Proposta, error) {
	return p.data(ctx, models.PropostaFilters{Status: []models.PropostaStatus{status}})
}

func (p *Proposals) data(ctx context.Context, f models.PropostaFilters) ([]models.Proposta, error) {
	f.Limit = 100

	page, err := p.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (p *Proposals) Submit(ctx context.Context, id string) (models.Proposta, error) {
	return p.Action(ctx, id, "submit", nil)
}

// Approval — условия одобрения предложения.
type Approval struct {
	ValorAprovado float64 `json:"valorAprovado"`
	TaxaJuros     float64 `json:"taxaJuros"`
	Observacoes   string  `json:"observacoes,omitempty"`
}

func (p *Proposals) Approve(ctx context.Context, id string, a Approval) (models.Proposta, error) {
	if a.ValorAprovado <= 0 {
		return models.Proposta{}, models.Invalid("valorAprovado", "Valor aprovado deve ser maior que zero")
	}

	return p.Action(ctx, id, "approve", a)
}

func (p *Proposals) Reject(ctx context.Context, id, motivo string) (models.Proposta, error) {
	if blank(motivo) {
		return models.Proposta{}, models.Invalid("motivo", "Motivo é obrigatório")
	}

	return p.Action(ctx, id, "reject", reason(motivo))
}

func (p *Proposals) Cancel(ctx context.Context, id, motivo string) (models.Proposta, error) {
	return p.Action(ctx, id, "cancel", reason(motivo))
}

func (p *Proposals) Renew(ctx context.Context, id, novaDataVencimento string) (models.Proposta, error) {
	if blank(novaDataVencimento) {
		return models.Proposta{}, models.Invalid("novaDataVencimento", "Data de vencimento é obrigatória")
	}

	return p.Action(ctx, id, "renew", map[string]string{"novaDataVencimento": novaDataVencimento})
}

// Simulate — POST {proposals}/simulate.
func (p *Proposals) Simulate(ctx context.Context, req models.SimulationRequest) (models.Simulation, error) {
	const op = "resources/proposals.Simulate"

	if err := validateSimulation(req); err != nil {
		return models.Simulation{}, err
	}

	out, err := partner.Post[models.Simulation](ctx, p.client, p.Path("simulate"), req)
	if err != nil {
		return models.Simulation{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func validateSimulation(req models.SimulationRequest) error {
	if req.Valor <= 0 {
		return models.Invalid("valor", "Valor deve ser maior que zero")
	}
	if req.PrazoMeses <= 0 {
		return models.Invalid("prazoMeses", "Prazo em meses deve ser maior que zero")
	}

	return nil
}

// CalculateInstallment — парцела по таблице Price. monthlyRate — доля (0.02 = 2% а.м.).
// При нулевой ставке principal делится поровну; months <= 0 даёт 0.
func CalculateInstallment(principal, monthlyRate float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	if monthlyRate == 0 {
		return principal / float64(months)
	}

	factor := math.Pow(1+monthlyRate, float64(months))
	return principal * (monthlyRate * factor) / (factor - 1)
}
