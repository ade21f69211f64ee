package models

import (
	"time"

	"github.com/google/uuid"
)

// CapturedStatus — статус лида, захваченного формой лендинга.
type CapturedStatus string

const (
	StatusPendente   CapturedStatus = "PENDENTE"
	StatusContatado  CapturedStatus = "CONTATADO"
	StatusConvertido CapturedStatus = "CONVERTIDO"
	StatusDescartado CapturedStatus = "DESCARTADO"
)

// SourceFormularioWeb — единственный источник захвата на сегодня.
const SourceFormularioWeb = "FORMULARIO_WEB"

// Valid проверяет, что статус входит в допустимый набор.
func (s CapturedStatus) Valid() bool {
	switch s {
	case StatusPendente, StatusContatado, StatusConvertido, StatusDescartado:
		return true
	}

	return false
}

// CapturedLead — локальная запись лида. CPF и Whatsapp хранятся только цифрами,
// CPF уникален в пределах хранилища.
type CapturedLead struct {
	ID               uuid.UUID      `json:"id"`
	Nome             string         `json:"nome"`
	Whatsapp         string         `json:"whatsapp"`
	CPF              string         `json:"cpf"`
	DataNascimento   string         `json:"dataNascimento"`
	CompanhiaEnergia string         `json:"companhiaEnergia"`
	Status           CapturedStatus `json:"status"`
	Source           string         `json:"source"`
	IPAddress        string         `json:"ipAddress,omitempty"`
	UserAgent        string         `json:"userAgent,omitempty"`
	Observacoes      string         `json:"observacoes,omitempty"`
	PartnerLeadID    string         `json:"partnerLeadId,omitempty"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
