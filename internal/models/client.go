package models

import "net/url"

type ClienteStatus string

const (
	ClienteAtivo     ClienteStatus = "ativo"
	ClienteInativo   ClienteStatus = "inativo"
	ClienteBloqueado ClienteStatus = "bloqueado"
	ClienteSuspenso  ClienteStatus = "suspenso"
)

type EstadoCivil string

type Cliente struct {
	ID             string        `json:"id"`
	Nome           string        `json:"nome"`
	CPF            string        `json:"cpf"`
	RG             string        `json:"rg,omitempty"`
	Email          string        `json:"email,omitempty"`
	Telefone       string        `json:"telefone,omitempty"`
	Whatsapp       string        `json:"whatsapp,omitempty"`
	DataNascimento string        `json:"dataNascimento,omitempty"`
	Endereco       *Endereco     `json:"endereco,omitempty"`
	RendaMensal    float64       `json:"rendaMensal,omitempty"`
	Profissao      string        `json:"profissao,omitempty"`
	Empresa        string        `json:"empresa,omitempty"`
	EstadoCivil    EstadoCivil   `json:"estadoCivil,omitempty"`
	Escolaridade   string        `json:"escolaridade,omitempty"`
	NomeMae        string        `json:"nomeMae,omitempty"`
	NomePai        string        `json:"nomePai,omitempty"`
	Status         ClienteStatus `json:"status"`
	Observacoes    string        `json:"observacoes,omitempty"`
	LeadID         string        `json:"leadId,omitempty"`
	Responsavel    string        `json:"responsavel,omitempty"`
	CreatedAt      string        `json:"createdAt"`
	UpdatedAt      string        `json:"updatedAt"`
}

type CreateClienteRequest struct {
	Nome           string      `json:"nome"`
	CPF            string      `json:"cpf"`
	RG             string      `json:"rg,omitempty"`
	Email          string      `json:"email,omitempty"`
	Telefone       string      `json:"telefone,omitempty"`
	Whatsapp       string      `json:"whatsapp,omitempty"`
	DataNascimento string      `json:"dataNascimento,omitempty"`
	Endereco       *Endereco   `json:"endereco,omitempty"`
	RendaMensal    float64     `json:"rendaMensal,omitempty"`
	Profissao      string      `json:"profissao,omitempty"`
	Empresa        string      `json:"empresa,omitempty"`
	EstadoCivil    EstadoCivil `json:"estadoCivil,omitempty"`
	NomeMae        string      `json:"nomeMae,omitempty"`
	Observacoes    string      `json:"observacoes,omitempty"`
	LeadID         string      `json:"leadId,omitempty"`
	Responsavel    string      `json:"responsavel,omitempty"`
}

type UpdateClienteRequest struct {
	Nome        *string       `json:"nome,omitempty"`
	Email       *string       `json:"email,omitempty"`
	Telefone    *string       `json:"telefone,omitempty"`
	Whatsapp    *string       `json:"whatsapp,omitempty"`
	Endereco    *Endereco     `json:"endereco,omitempty"`
	RendaMensal *float64      `json:"rendaMensal,omitempty"`
	Observacoes *string       `json:"observacoes,omitempty"`
	Status      ClienteStatus `json:"status,omitempty"`
}

type ClienteFilters struct {
	PageParams
	Status      []ClienteStatus
	Responsavel []string
	DataInicio  string
	DataFim     string
	RendaMinima float64
	RendaMaxima float64
	Busca       string
}

func (f ClienteFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "status", f.Status)
	setList(v, "responsavel", f.Responsavel)
	setStr(v, "dataInicio", f.DataInicio)
	setStr(v, "dataFim", f.DataFim)
	setFloat(v, "rendaMinima", f.RendaMinima)
	setFloat(v, "rendaMaxima", f.RendaMaxima)
	setStr(v, "busca", f.Busca)
	return v
}

// CreditScore — скоринг клиента.
type CreditScore struct {
	Score     int      `json:"score"`
	Faixa     string   `json:"faixa,omitempty"`
	Fatores   []string `json:"fatores,omitempty"`
	UpdatedAt string   `json:"updatedAt,omitempty"`
}

// PaymentCapacity — платёжеспособность клиента.
type PaymentCapacity struct {
	Aprovado             bool    `json:"aprovado"`
	ValorMaximo          float64 `json:"valorMaximo"`
	ComprometimentoRenda float64 `json:"comprometimentoRenda"`
	Observacoes          string  `json:"observacoes,omitempty"`
}

// HistoryEvent — запись истории клиента.
type HistoryEvent struct {
	ID        string `json:"id"`
	Tipo      string `json:"tipo"`
	Descricao string `json:"descricao"`
	Usuario   string `json:"usuario,omitempty"`
	CreatedAt string `json:"createdAt"`
}
