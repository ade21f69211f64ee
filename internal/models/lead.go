package models

import "net/url"

type LeadStatus string

const (
	LeadNovo            LeadStatus = "novo"
	LeadContatado       LeadStatus = "contatado"
	LeadInteressado     LeadStatus = "interessado"
	LeadPropostaEnviada LeadStatus = "proposta_enviada"
	LeadConvertido      LeadStatus = "convertido"
	LeadPerdido         LeadStatus = "perdido"
	LeadDescartado      LeadStatus = "descartado"
)

type Lead struct {
	ID             string     `json:"id"`
	Nome           string     `json:"nome"`
	CPF            string     `json:"cpf"`
	Email          string     `json:"email,omitempty"`
	Telefone       string     `json:"telefone,omitempty"`
	Whatsapp       string     `json:"whatsapp,omitempty"`
	DataNascimento string     `json:"dataNascimento,omitempty"`
	Endereco       *Endereco  `json:"endereco,omitempty"`
	RendaMensal    float64    `json:"rendaMensal,omitempty"`
	Profissao      string     `json:"profissao,omitempty"`
	Empresa        string     `json:"empresa,omitempty"`
	Observacoes    string     `json:"observacoes,omitempty"`
	Status         LeadStatus `json:"status"`
	Origem         string     `json:"origem"`
	DataContato    string     `json:"dataContato,omitempty"`
	ProximoContato string     `json:"proximoContato,omitempty"`
	Responsavel    string     `json:"responsavel,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	CreatedAt      string     `json:"createdAt"`
	UpdatedAt      string     `json:"updatedAt"`
}

type CreateLeadRequest struct {
	Nome           string    `json:"nome"`
	CPF            string    `json:"cpf"`
	Email          string    `json:"email,omitempty"`
	Telefone       string    `json:"telefone,omitempty"`
	Whatsapp       string    `json:"whatsapp,omitempty"`
	DataNascimento string    `json:"dataNascimento,omitempty"`
	Endereco       *Endereco `json:"endereco,omitempty"`
	RendaMensal    float64   `json:"rendaMensal,omitempty"`
	Profissao      string    `json:"profissao,omitempty"`
	Empresa        string    `json:"empresa,omitempty"`
	Observacoes    string    `json:"observacoes,omitempty"`
	Origem         string    `json:"origem"`
	Responsavel    string    `json:"responsavel,omitempty"`
	Tags           []string  `json:"tags,omitempty"`
}

// UpdateLeadRequest — частичное обновление: nil/пустые поля не отправляются.
// Tags == []string{} уходит как [] и очищает теги.
type UpdateLeadRequest struct {
	Nome           *string    `json:"nome,omitempty"`
	CPF            *string    `json:"cpf,omitempty"`
	Email          *string    `json:"email,omitempty"`
	Telefone       *string    `json:"telefone,omitempty"`
	Whatsapp       *string    `json:"whatsapp,omitempty"`
	Observacoes    *string    `json:"observacoes,omitempty"`
	Responsavel    *string    `json:"responsavel,omitempty"`
	Status         LeadStatus `json:"status,omitempty"`
	DataContato    string     `json:"dataContato,omitempty"`
	ProximoContato string     `json:"proximoContato,omitempty"`
	Tags           []string   `json:"tags,omitzero"`
}

type LeadFilters struct {
	PageParams
	Status      []LeadStatus
	Origem      []string
	Responsavel []string
	Tags        []string
	DataInicio  string
	DataFim     string
	Busca       string
}

// Values кодирует фильтры в query-параметры.
func (f LeadFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "status", f.Status)
	setList(v, "origem", f.Origem)
	setList(v, "responsavel", f.Responsavel)
	setList(v, "tags", f.Tags)
	setStr(v, "dataInicio", f.DataInicio)
	setStr(v, "dataFim", f.DataFim)
	setStr(v, "busca", f.Busca)
	return v
}

// LeadMetrics — агрегаты по лидам.
type LeadMetrics struct {
	Total         int            `json:"total"`
	Novos         int            `json:"novos"`
	Convertidos   int            `json:"convertidos"`
	TaxaConversao float64        `json:"taxaConversao"`
	PorStatus     map[string]int `json:"porStatus,omitempty"`
	PorOrigem     map[string]int `json:"porOrigem,omitempty"`
}
