// leadcapture — захват лидов с лендинга: валидация формы, уникальность по CPF
// до любых сетевых вызовов, статусная воронка, экспорт и (опционально)
// пересылка лида партнёру.
package leadcapture

import (
	"context"
	"errors"
	"time"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/storage"
)

var (
	// ErrNotFound — лид не найден (или id не является UUID).
	ErrNotFound = errors.New("Lead não encontrado")
	// ErrInternal — сбой хранилища.
	ErrInternal = errors.New("Erro interno do servidor")
)

// DuplicateIDError — лид с таким CPF уже захвачен.
type DuplicateIDError struct {
	CPF string
}

func (e *DuplicateIDError) Error() string { return "CPF já cadastrado no sistema" }

// Forwarder создаёт лид на стороне партнёра. *resources.Leads удовлетворяет контракту.
type Forwarder interface {
	Create(ctx context.Context, req models.CreateLeadRequest) (models.Lead, error)
}

// Service — бизнес-логика захвата лидов.
type Service struct {
	store   storage.Leads
	forward Forwarder
	now     func() time.Time
}

type Option func(*Service)

// WithForwarder включает пересылку новых лидов партнёру.
func WithForwarder(f Forwarder) Option { return func(s *Service) { s.forward = f } }

func WithClock(now func() time.Time) Option { return func(s *Service) { s.now = now } }

// New создает новый экземпляр Service.
func New(store storage.Leads, opts ...Option) *Service {
	s := &Service{store: store, now: time.Now}
	for _, fn := range opts {
		fn(s)
	}

	return s
}
