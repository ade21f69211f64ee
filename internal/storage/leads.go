// storage содержит контракт хранилища захваченных лидов.
//
// Реализации: memory (процесс), postgres (pgx), redis (go-redis).
// Документы архивируются отдельно, см. пакет minio.
package storage

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/brunosoares877/Crefaz/internal/models"
)

var (
	// ErrNotFound — лид не найден.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — лид с тем же CPF уже сохранён.
	ErrAlreadyExists = errors.New("already exists")
)

// Leads — контракт репозитория захваченных лидов. CPF хранится только цифрами
// и уникален; уникальность должна соблюдаться атомарно самой реализацией.
type Leads interface {
	// Create сохраняет новый лид. Ошибки: ErrAlreadyExists при повторе CPF.
	Create(ctx context.Context, lead *models.CapturedLead) error
	// ByID возвращает лид по id. Ошибки: ErrNotFound.
	ByID(ctx context.Context, id uuid.UUID) (*models.CapturedLead, error)
	// ByCPF возвращает лид по CPF (только цифры). Ошибки: ErrNotFound.
	ByCPF(ctx context.Context, cpf string) (*models.CapturedLead, error)
	// List возвращает все лиды, новые первыми.
	List(ctx context.Context) ([]models.CapturedLead, error)
	// UpdateStatus меняет статус и updated_at. Ошибки: ErrNotFound.
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.CapturedStatus) (*models.CapturedLead, error)
	// SetPartnerLeadID фиксирует id лида на стороне партнёра. Ошибки: ErrNotFound.
	SetPartnerLeadID(ctx context.Context, id uuid.UUID, partnerID string) error
	// Delete удаляет лид. Ошибки: ErrNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// LeadsStorage — верхнеуровневый интерфейс для внедрения зависимости.
type LeadsStorage interface {
	Leads
	Close()
}
