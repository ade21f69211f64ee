// memory — хранилище лидов в памяти процесса. Данные теряются при рестарте;
// используется по умолчанию и в тестах.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/storage"
)

type LeadsStorage struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]models.CapturedLead
	byCPF map[string]uuid.UUID
	now   func() time.Time
}

func New() *LeadsStorage {
	return &LeadsStorage{
		byID:  make(map[uuid.UUID]models.CapturedLead),
		byCPF: make(map[string]uuid.UUID),
		now:   time.Now,
	}
}

func (s *LeadsStorage) Create(_ context.Context, lead *models.CapturedLead) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byCPF[lead.CPF]; ok {
		return storage.ErrAlreadyExists
	}
	if _, ok := s.byID[lead.ID]; ok {
		return storage.ErrAlreadyExists
	}

	s.byID[lead.ID] = *lead
	s.byCPF[lead.CPF] = lead.ID

	return nil
}

func (s *LeadsStorage) ByID(_ context.Context, id uuid.UUID) (*models.CapturedLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return &l, nil
}

func (s *LeadsStorage) ByCPF(_ context.Context, cpf string) (*models.CapturedLead, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCPF[cpf]
	if !ok {
		return nil, storage.ErrNotFound
	}
	l := s.byID[id]

	return &l, nil
}

func (s *LeadsStorage) List(_ context.Context) ([]models.CapturedLead, error) {
	s.mu.RLock()
	out := make([]models.CapturedLead, 0, len(s.byID))
	for _, l := range s.byID {
		out = append(out, l)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.CapturedLead) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return out, nil
}

func (s *LeadsStorage) UpdateStatus(_ context.Context, id uuid.UUID, status models.CapturedStatus) (*models.CapturedLead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.byID[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	l.Status = status
	l.UpdatedAt = s.now().UTC()
	s.byID[id] = l

	return &l, nil
}

func (s *LeadsStorage) SetPartnerLeadID(_ context.Context, id uuid.UUID, partnerID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	l.PartnerLeadID = partnerID
	l.UpdatedAt = s.now().UTC()
	s.byID[id] = l

	return nil
}

func (s *LeadsStorage) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, ok := s.byID[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byID, id)
	delete(s.byCPF, l.CPF)

	return nil
}

func (s *LeadsStorage) Close() {}

var _ storage.LeadsStorage = (*LeadsStorage)(nil)
