package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/storage"
)

// leadColumns — единый порядок колонок для SELECT/RETURNING.
const leadColumns = `
id, nome, whatsapp, cpf, data_nascimento, companhia_energia, status, source,
ip_address, user_agent, observacoes, partner_lead_id, created_at, updated_at
`

func scanLead(row pgx.Row) (*models.CapturedLead, error) {
	var l models.CapturedLead
	var status string

	if err := row.Scan(
		&l.ID,
		&l.Nome,
		&l.Whatsapp,
		&l.CPF,
		&l.DataNascimento,
		&l.CompanhiaEnergia,
		&status,
		&l.Source,
		&l.IPAddress,
		&l.UserAgent,
		&l.Observacoes,
		&l.PartnerLeadID,
		&l.CreatedAt,
		&l.UpdatedAt,
	); err != nil {
		return nil, err
	}
	l.Status = models.CapturedStatus(status)

	return &l, nil
}

// notFound переводит pgx.ErrNoRows в storage.ErrNotFound.
func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return fmt.Errorf("%s: %w", op, err)
}

// Create вставляет лид. Уникальность CPF обеспечивает UNIQUE-индекс.
func (s *LeadsStorage) Create(ctx context.Context, lead *models.CapturedLead) error {
	const op = "storage/postgres/leads/Create"

	q := `
	INSERT INTO leads (id, nome, whatsapp, cpf, data_nascimento, companhia_energia, status, source,
		ip_address, user_agent, observacoes, partner_lead_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := s.db.Exec(ctx, q,
		lead.ID,
		lead.Nome,
		lead.Whatsapp,
		lead.CPF,
		lead.DataNascimento,
		lead.CompanhiaEnergia,
		string(lead.Status),
		lead.Source,
		lead.IPAddress,
		lead.UserAgent,
		lead.Observacoes,
		lead.PartnerLeadID,
		lead.CreatedAt,
		lead.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, storage.ErrAlreadyExists)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *LeadsStorage) ByID(ctx context.Context, id uuid.UUID) (*models.CapturedLead, error) {
	const op = "storage/postgres/leads/ByID"

	row := s.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE id = $1`, id)

	l, err := scanLead(row)
	if err != nil {
		return nil, notFound(op, err)
	}

	return l, nil
}

func (s *LeadsStorage) ByCPF(ctx context.Context, cpf string) (*models.CapturedLead, error) {
	const op = "storage/postgres/leads/ByCPF"

	row := s.db.QueryRow(ctx, `SELECT `+leadColumns+` FROM leads WHERE cpf = $1`, cpf)

	l, err := scanLead(row)
	if err != nil {
		return nil, notFound(op, err)
	}

	return l, nil
}

// List возвращает все лиды, новые первыми.
func (s *LeadsStorage) List(ctx context.Context) ([]models.CapturedLead, error) {
	const op = "storage/postgres/leads/List"

	rows, err := s.db.Query(ctx, `SELECT `+leadColumns+` FROM leads ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	out := make([]models.CapturedLead, 0)
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		out = append(out, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (s *LeadsStorage) UpdateStatus(ctx context.Context, id uuid.UUID, status models.CapturedStatus) (*models.CapturedLead, error) {
	const op = "storage/postgres/leads/UpdateStatus"

	q := `UPDATE leads SET status = $2, updated_at = now() WHERE id = $1 RETURNING ` + leadColumns

	l, err := scanLead(s.db.QueryRow(ctx, q, id, string(status)))
	if err != nil {
		return nil, notFound(op, err)
	}

	return l, nil
}

func (s *LeadsStorage) SetPartnerLeadID(ctx context.Context, id uuid.UUID, partnerID string) error {
	const op = "storage/postgres/leads/SetPartnerLeadID"

	tag, err := s.db.Exec(ctx, `UPDATE leads SET partner_lead_id = $2, updated_at = now() WHERE id = $1`, id, partnerID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}

func (s *LeadsStorage) Delete(ctx context.Context, id uuid.UUID) error {
	const op = "storage/postgres/leads/Delete"

	tag, err := s.db.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	return nil
}
