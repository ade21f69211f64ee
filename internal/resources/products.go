package resources

import (
	"context"
	"fmt"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Products — каталог продуктов: только чтение и симуляция.
type Products struct {
	res *Resource[models.Produto, struct{}, struct{}]
}

func NewProducts(c *partner.Client) *Products {
	return &Products{res: NewResource[models.Produto, struct{}, struct{}](c, partner.ResourceProducts, nil, nil)}
}

func (p *Products) List(ctx context.Context, f models.ProdutoFilters) (models.Page[models.Produto], error) {
	return p.res.List(ctx, f)
}

func (p *Products) Get(ctx context.Context, id string) (models.Produto, error) {
	return p.res.Get(ctx, id)
}

func (p *Products) ByType(ctx context.Context, tipo models.ProdutoType) ([]models.Produto, error) {
	return p.data(ctx, models.ProdutoFilters{Tipo: []models.ProdutoType{tipo}})
}

// Active — продукты в статусе ativo.
func (p *Products) Active(ctx context.Context) ([]models.Produto, error) {
	return p.data(ctx, models.ProdutoFilters{Status: []models.ProdutoStatus{models.ProdutoAtivo}})
}

func (p *Products) data(ctx context.Context, f models.ProdutoFilters) ([]models.Produto, error) {
	f.Limit = 100

	page, err := p.res.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

// Simulate — POST {products}/{id}/simulate с телом {valor, prazoMeses}.
func (p *Products) Simulate(ctx context.Context, produtoID string, valor float64, prazoMeses int) (models.Simulation, error) {
	const op = "resources/products.Simulate"

	if err := requireID(produtoID); err != nil {
		return models.Simulation{}, err
	}
	req := models.SimulationRequest{Valor: valor, PrazoMeses: prazoMeses}
	if err := validateSimulation(req); err != nil {
		return models.Simulation{}, err
	}

	out, err := partner.Post[models.Simulation](ctx, p.res.client, p.res.Path(produtoID, "simulate"), req)
	if err != nil {
		return models.Simulation{}, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}
