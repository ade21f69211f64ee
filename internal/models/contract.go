package models

import "net/url"

type ContratoStatus string

const (
	ContratoRascunho     ContratoStatus = "rascunho"
	ContratoAtivo        ContratoStatus = "ativo"
	ContratoSuspenso     ContratoStatus = "suspenso"
	ContratoCancelado    ContratoStatus = "cancelado"
	ContratoFinalizado   ContratoStatus = "finalizado"
	ContratoInadimplente ContratoStatus = "inadimplente"
)

type ParcelaStatus string

const (
	ParcelaPendente  ParcelaStatus = "pendente"
	ParcelaPaga      ParcelaStatus = "paga"
	ParcelaAtrasada  ParcelaStatus = "atrasada"
	ParcelaCancelada ParcelaStatus = "cancelada"
)

type Parcela struct {
	ID             string        `json:"id"`
	Numero         int           `json:"numeroParcelar"`
	Valor          float64       `json:"valor"`
	DataVencimento string        `json:"dataVencimento"`
	DataPagamento  string        `json:"dataPagamento,omitempty"`
	ValorPago      float64       `json:"valorPago,omitempty"`
	Status         ParcelaStatus `json:"status"`
	Observacoes    string        `json:"observacoes,omitempty"`
}

type Contrato struct {
	ID             string         `json:"id"`
	Numero         string         `json:"numero"`
	PropostaID     string         `json:"propostaId"`
	ClienteID      string         `json:"clienteId"`
	ProdutoID      string         `json:"produtoId"`
	ValorContrato  float64        `json:"valorContrato"`
	PrazoMeses     int            `json:"prazoMeses"`
	TaxaJuros      float64        `json:"taxaJuros"`
	ValorParcela   float64        `json:"valorParcela"`
	ValorTotal     float64        `json:"valorTotal"`
	DataAssinatura string         `json:"dataAssinatura,omitempty"`
	DataVencimento string         `json:"dataVencimento"`
	Status         ContratoStatus `json:"status"`
	Observacoes    string         `json:"observacoes,omitempty"`
	Responsavel    string         `json:"responsavel"`
	Parcelas       []Parcela      `json:"parcelas,omitempty"`
	CreatedAt      string         `json:"createdAt"`
	UpdatedAt      string         `json:"updatedAt"`
}

type CreateContratoRequest struct {
	PropostaID     string `json:"propostaId"`
	DataVencimento string `json:"dataVencimento"`
	Observacoes    string `json:"observacoes,omitempty"`
}

type UpdateContratoRequest struct {
	DataVencimento string         `json:"dataVencimento,omitempty"`
	Observacoes    *string        `json:"observacoes,omitempty"`
	Status         ContratoStatus `json:"status,omitempty"`
	DataAssinatura string         `json:"dataAssinatura,omitempty"`
}

type ContratoFilters struct {
	PageParams
	Status      []ContratoStatus
	ClienteID   string
	ProdutoID   string
	Responsavel []string
	DataInicio  string
	DataFim     string
	ValorMinimo float64
	ValorMaximo float64
	Busca       string
}

func (f ContratoFilters) Values() url.Values {
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

// PaymentRequest — регистрация оплаты взноса.
type PaymentRequest struct {
	ValorPago     float64 `json:"valorPago"`
	DataPagamento string  `json:"dataPagamento"`
	Observacoes   string  `json:"observacoes,omitempty"`
}
