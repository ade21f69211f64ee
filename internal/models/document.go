package models

import "net/url"

type DocumentType string

const (
	DocRG                    DocumentType = "rg"
	DocCPF                   DocumentType = "cpf"
	DocComprovanteRenda      DocumentType = "comprovante_renda"
	DocComprovanteResidencia DocumentType = "comprovante_residencia"
	DocExtratoBancario       DocumentType = "extrato_bancario"
	DocContracheque          DocumentType = "contracheque"
	DocImpostoRenda          DocumentType = "imposto_renda"
	DocOutros                DocumentType = "outros"
)

type DocumentStatus string

const (
	DocPendente    DocumentStatus = "pendente"
	DocAprovado    DocumentStatus = "aprovado"
	DocRejeitado   DocumentStatus = "rejeitado"
	DocProcessando DocumentStatus = "processando"
)

type Document struct {
	ID         string         `json:"id"`
	Nome       string         `json:"nome"`
	Tipo       DocumentType   `json:"tipo"`
	Tamanho    int64          `json:"tamanho"`
	MimeType   string         `json:"mimeType"`
	URL        string         `json:"url,omitempty"`
	Status     DocumentStatus `json:"status"`
	ClienteID  string         `json:"clienteId,omitempty"`
	LeadID     string         `json:"leadId,omitempty"`
	PropostaID string         `json:"propostaId,omitempty"`
	ContratoID string         `json:"contratoId,omitempty"`
	UploadedBy string         `json:"uploadedBy"`
	CreatedAt  string         `json:"createdAt"`
	UpdatedAt  string         `json:"updatedAt"`
}

// UploadDocumentRequest — загрузка документа; Arquivo — содержимое в base64.
type UploadDocumentRequest struct {
	Nome       string       `json:"nome"`
	Tipo       DocumentType `json:"tipo"`
	Arquivo    string       `json:"arquivo"`
	MimeType   string       `json:"mimeType"`
	ClienteID  string       `json:"clienteId,omitempty"`
	LeadID     string       `json:"leadId,omitempty"`
	PropostaID string       `json:"propostaId,omitempty"`
	ContratoID string       `json:"contratoId,omitempty"`
}

// Owner — первая заполненная привязка документа: тип сущности и её id.
func (r UploadDocumentRequest) Owner() (kind, id string) {
	switch {
	case r.ClienteID != "":
		return "clientes", r.ClienteID
	case r.LeadID != "":
		return "leads", r.LeadID
	case r.PropostaID != "":
		return "propostas", r.PropostaID
	case r.ContratoID != "":
		return "contratos", r.ContratoID
	}

	return "", ""
}

// DocumentFilters — фильтры списка документов.
type DocumentFilters struct {
	PageParams
	Tipo       []DocumentType
	Status     []DocumentStatus
	ClienteID  string
	LeadID     string
	PropostaID string
	ContratoID string
}

func (f DocumentFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "tipo", f.Tipo)
	setList(v, "status", f.Status)
	setStr(v, "clienteId", f.ClienteID)
	setStr(v, "leadId", f.LeadID)
	setStr(v, "propostaId", f.PropostaID)
	setStr(v, "contratoId", f.ContratoID)
	return v
}
