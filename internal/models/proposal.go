package models

import "net/url"

type PropostaStatus string

const (
	PropostaRascunho  PropostaStatus = "rascunho"
	PropostaEnviada   PropostaStatus = "enviada"
	PropostaEmAnalise PropostaStatus = "em_analise"
	PropostaAprovada  PropostaStatus = "aprovada"
	PropostaRejeitada PropostaStatus = "rejeitada"
	PropostaExpirada  PropostaStatus = "expirada"
	PropostaCancelada PropostaStatus = "cancelada"
)

type Proposta struct {
	ID              string         `json:"id"`
	Numero          string         `json:"numero"`
	ClienteID       string         `json:"clienteId"`
	ProdutoID       string         `json:"produtoId"`
	ValorSolicitado float64        `json:"valorSolicitado"`
	ValorAprovado   float64        `json:"valorAprovado,omitempty"`
	PrazoMeses      int            `json:"prazoMeses"`
	TaxaJuros       float64        `json:"taxaJuros"`
	ValorParcela    float64        `json:"valorParcela"`
	ValorTotal      float64        `json:"valorTotal"`
	Status          PropostaStatus `json:"status"`
	Observacoes     string         `json:"observacoes,omitempty"`
	DataAnalise     string         `json:"dataAnalise,omitempty"`
	DataAprovacao   string         `json:"dataAprovacao,omitempty"`
	DataVencimento  string         `json:"dataVencimento"`
	Responsavel     string         `json:"responsavel"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
}

type CreatePropostaRequest struct {
	ClienteID       string  `json:"clienteId"`
	ProdutoID       string  `json:"produtoId"`
	ValorSolicitado float64 `json:"valorSolicitado"`
	PrazoMeses      int     `json:"prazoMeses"`
	Observacoes     string  `json:"observacoes,omitempty"`
	DataVencimento  string  `json:"dataVencimento"`
}

type UpdatePropostaRequest struct {
	ValorSolicitado *float64       `json:"valorSolicitado,omitempty"`
	PrazoMeses      *int           `json:"prazoMeses,omitempty"`
	Observacoes     *string        `json:"observacoes,omitempty"`
	DataVencimento  string         `json:"dataVencimento,omitempty"`
	Status          PropostaStatus `json:"status,omitempty"`
	ValorAprovado   *float64       `json:"valorAprovado,omitempty"`
	TaxaJuros       *float64       `json:"taxaJuros,omitempty"`
}

type PropostaFilters struct {
	PageParams
	Status      []PropostaStatus
	ClienteID   string
	ProdutoID   string
	Responsavel []string
	DataInicio  string
	DataFim     string
	ValorMinimo float64
	ValorMaximo float64
	Busca       string
}

func (f PropostaFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "status", f.Status)
	setStr(v, "clienteId", f.ClienteID)
	setStr(v, "produtoId", f.ProdutoID)
	setList(v, "responsavel", f.Responsavel)
	setStr(v, "dataInicio", f.DataInicio)
	setStr(v, "dataFim", f.DataFim)
	setFloat(v, "valorMinimo", f.ValorMinimo)
	setFloat(v, "valorMaximo", f.ValorMaximo)
	setStr(v, "busca", f.Busca)
	return v
}

// SimulationRequest — запрос симуляции кредита.
type SimulationRequest struct {
	ProdutoID  string  `json:"produtoId,omitempty"`
	Valor      float64 `json:"valor"`
	PrazoMeses int     `json:"prazoMeses"`
	ClienteID  string  `json:"clienteId,omitempty"`
}

// Simulation — результат симуляции.
type Simulation struct {
	ValorFinanciado   float64 `json:"valorFinanciado"`
	ValorParcela      float64 `json:"valorParcela"`
	ValorTotal        float64 `json:"valorTotal"`
	TaxaJuros         float64 `json:"taxaJuros"`
	CustoEfetivoTotal float64 `json:"custoEfetivoTotal,omitempty"`
}
