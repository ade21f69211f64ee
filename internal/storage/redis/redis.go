// redis предоставляет реализацию storage.LeadsStorage на базе Redis.
//
// Раскладка ключей (prefix по умолчанию "leads:"):
//   - {prefix}lead:{id}  — hash с полями лида;
//   - {prefix}cpf:{cpf}  — id лида, уникальность CPF держит SETNX;
//   - {prefix}created    — sorted set id по created_at (unix nano).
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/storage"
)

type LeadsStorage struct {
	rdb    *redis.Client
	prefix string
	now    func() time.Time
}

// New создаёт клиент Redis из URL (например, redis://:pass@host:6379/0)
// и проверяет соединение.
func New(ctx context.Context, redisURL, prefix string) (*LeadsStorage, error) {
	const op = "storage/redis/New"

	if prefix == "" {
		prefix = "leads:"
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	rdb := redis.NewClient(opt)

	// Fail-fast на старте.
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &LeadsStorage{rdb: rdb, prefix: prefix, now: time.Now}, nil
}

func (s *LeadsStorage) Close() { _ = s.rdb.Close() }

func (s *LeadsStorage) leadKey(id uuid.UUID) string { return s.prefix + "lead:" + id.String() }
func (s *LeadsStorage) cpfKey(cpf string) string    { return s.prefix + "cpf:" + cpf }
func (s *LeadsStorage) createdKey() string          { return s.prefix + "created" }

func toHash(l *models.CapturedLead) map[string]any {
	return map[string]any{
		"id":                l.ID.String(),
		"nome":              l.Nome,
		"whatsapp":          l.Whatsapp,
		"cpf":               l.CPF,
		"data_nascimento":   l.DataNascimento,
		"companhia_energia": l.CompanhiaEnergia,
		"status":            string(l.Status),
		"source":            l.Source,
		"ip_address":        l.IPAddress,
		"user_agent":        l.UserAgent,
		"observacoes":       l.Observacoes,
		"partner_lead_id":   l.PartnerLeadID,
		"created_at":        strconv.FormatInt(l.CreatedAt.UnixNano(), 10),
		"updated_at":        strconv.FormatInt(l.UpdatedAt.UnixNano(), 10),
	}
}

func fromHash(m map[string]string) (*models.CapturedLead, error) {
	id, err := uuid.Parse(m["id"])
	if err != nil {
		return nil, err
	}
	created, err := strconv.ParseInt(m["created_at"], 10, 64)
	if err != nil {
		return nil, err
	}
	updated, err := strconv.ParseInt(m["updated_at"], 10, 64)
	if err != nil {
		return nil, err
	}

	return &models.CapturedLead{
		ID:               id,
		Nome:             m["nome"],
		Whatsapp:         m["whatsapp"],
		CPF:              m["cpf"],
		DataNascimento:   m["data_nascimento"],
		CompanhiaEnergia: m["companhia_energia"],
		Status:           models.CapturedStatus(m["status"]),
		Source:           m["source"],
		IPAddress:        m["ip_address"],
		UserAgent:        m["user_agent"],
		Observacoes:      m["observacoes"],
		PartnerLeadID:    m["partner_lead_id"],
		CreatedAt:        time.Unix(0, created).UTC(),
		UpdatedAt:        time.Unix(0, updated).UTC(),
	}, nil
}

// Create резервирует CPF через SETNX и затем пишет hash и индекс одной транзакцией.
func (s *LeadsStorage) Create(ctx context.Context, lead *models.CapturedLead) error {
	const op = "storage/redis/leads/Create"

	ok, err := s.rdb.SetNX(ctx, s.cpfKey(lead.CPF), lead.ID.String(), 0).Result()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !ok {
		return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
	}

	pipe := s.rdb.TxPipeline()
	pipe.HSet(ctx, s.leadKey(lead.ID), toHash(lead))
	pipe.ZAdd(ctx, s.createdKey(), redis.Z{Score: float64(lead.CreatedAt.UnixNano()), Member: lead.ID.String()})

	if _, err := pipe.Exec(ctx); err != nil {
		// Освобождаем CPF, чтобы неудачная запись не блокировала повтор.
		_ = s.rdb.Del(context.WithoutCancel(ctx), s.cpfKey(lead.CPF)).Err()
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LeadsStorage) ByID(ctx context.Context, id uuid.UUID) (*models.CapturedLead, error) {
	const op = "storage/redis/leads/ByID"

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

func (s *LeadsStorage) load(ctx context.Context, id uuid.UUID) (*models.CapturedLead, error) {
	m, err := s.rdb.HGetAll(ctx, s.leadKey(id)).Result()
	if err != nil {
		return nil, err
	}
	if len(m) == 0 {
		return nil, storage.ErrNotFound
	}

	return fromHash(m)
}

func (s *LeadsStorage) ByCPF(ctx context.Context, cpf string) (*models.CapturedLead, error) {
	const op = "storage/redis/leads/ByCPF"

	raw, err := s.rdb.Get(ctx, s.cpfKey(cpf)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

// List читает индекс по убыванию created_at и догружает hash'и одним pipeline.
func (s *LeadsStorage) List(ctx context.Context) ([]models.CapturedLead, error) {
	const op = "storage/redis/leads/List"

	ids, err := s.rdb.ZRevRange(ctx, s.createdKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]models.CapturedLead, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	pipe := s.rdb.Pipeline()
	cmds := make([]*redis.MapStringStringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.HGetAll(ctx, s.prefix+"lead:"+id)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, cmd := range cmds {
		m := cmd.Val()
		if len(m) == 0 {
			continue
		}
		l, err := fromHash(m)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *l)
	}

	return out, nil
}

func (s *LeadsStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CapturedStatus) (*models.CapturedLead, error) {
	const op = "storage/redis/leads/UpdateStatus"

	if err := s.update(ctx, id, "status", string(status)); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	l, err := s.load(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return l, nil
}

func (s *LeadsStorage) SetPartnerLeadID(ctx context.Context, id uuid.UUID, partnerID string) error {
	const op = "storage/redis/leads/SetPartnerLeadID"

	if err := s.update(ctx, id, "partner_lead_id", partnerID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// update меняет одно поле и updated_at, только если лид существует.
func (s *LeadsStorage) update(ctx context.Context, id uuid.UUID, field, value string) error {
	key := s.leadKey(id)

	n, err := s.rdb.Exists(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}

	return s.rdb.HSet(ctx, key,
		field, value,
		"updated_at", strconv.FormatInt(s.now().UnixNano(), 10),
	).Err()
}

func (s *LeadsStorage) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "storage/redis/leads/Delete"

	cpf, err := s.rdb.HGet(ctx, s.leadKey(id), "cpf").Result()
	if errors.Is(err, redis.Nil) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.leadKey(id), s.cpfKey(cpf))
	pipe.ZRem(ctx, s.createdKey(), id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

var _ storage.LeadsStorage = (*LeadsStorage)(nil)
