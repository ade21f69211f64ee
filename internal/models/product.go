package models

import "net/url"

type ProdutoType string

const (
	ProdutoCreditoPessoal    ProdutoType = "credito_pessoal"
	ProdutoCreditoConsignado ProdutoType = "credito_consignado"
	ProdutoFinanciamento     ProdutoType = "financiamento"
	ProdutoCartaoCredito     ProdutoType = "cartao_credito"
	ProdutoOutros            ProdutoType = "outros"
)

type ProdutoStatus string

const (
	ProdutoAtivo         ProdutoStatus = "ativo"
	ProdutoInativo       ProdutoStatus = "inativo"
	ProdutoSuspenso      ProdutoStatus = "suspenso"
	ProdutoDescontinuado ProdutoStatus = "descontinuado"
)

type Produto struct {
	ID                    string         `json:"id"`
	Nome                  string         `json:"nome"`
	Descricao             string         `json:"descricao,omitempty"`
	Tipo                  ProdutoType    `json:"tipo"`
	Categoria             string         `json:"categoria,omitempty"`
	ValorMinimo           float64        `json:"valorMinimo"`
	ValorMaximo           float64        `json:"valorMaximo"`
	PrazoMinimoMeses      int            `json:"prazoMinimoMeses"`
	PrazoMaximoMeses      int            `json:"prazoMaximoMeses"`
	TaxaJurosMinima       float64        `json:"taxaJurosMinima"`
	TaxaJurosMaxima       float64        `json:"taxaJurosMaxima"`
	Status                ProdutoStatus  `json:"status"`
	Requisitos            []string       `json:"requisitos,omitempty"`
	DocumentosNecessarios []DocumentType `json:"documentosNecessarios,omitempty"`
	CreatedAt             string         `json:"createdAt"`
	UpdatedAt             string         `json:"updatedAt"`
}

// ProdutoFilters — фильтры каталога продуктов.
type ProdutoFilters struct {
	PageParams
	Tipo   []ProdutoType
	Status []ProdutoStatus
	Busca  string
}

func (f ProdutoFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "tipo", f.Tipo)
	setList(v, "status", f.Status)
	setStr(v, "busca", f.Busca)
	return v
}
