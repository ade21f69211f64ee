package leadcapture

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/brunosoares877/Crefaz/internal/brdoc"
	"github.com/brunosoares877/Crefaz/internal/models"
	logctx "github.com/brunosoares877/Crefaz/internal/pkg/log"
	"github.com/brunosoares877/Crefaz/internal/pkg/redact"
	"github.com/brunosoares877/Crefaz/internal/storage"
)

// Form — поля формы лендинга.
type Form struct {
	Nome             string `json:"nome"`
	Whatsapp         string `json:"whatsapp"`
	CPF              string `json:"cpf"`
	DataNascimento   string `json:"dataNascimento"`
	CompanhiaEnergia string `json:"companhiaEnergia"`
}

// Meta — сведения о клиенте, отправившем форму.
type Meta struct {
	IPAddress string
	UserAgent string
}

// partnerOrigin — значение origem для лидов, пересланных партнёру.
const partnerOrigin = "site"

func validateForm(f Form) error {
	if f.Nome == "" || f.Whatsapp == "" || f.CPF == "" || f.DataNascimento == "" || f.CompanhiaEnergia == "" {
		return models.Invalid("", "Todos os campos são obrigatórios")
	}
	if !brdoc.ValidCPF(f.CPF) {
		return models.Invalid("cpf", "CPF deve ter formato válido (11 dígitos ou XXX.XXX.XXX-XX)")
	}
	if !brdoc.ValidPhone(f.Whatsapp) {
		return models.Invalid("whatsapp", "WhatsApp deve ter formato válido")
	}
	if _, ok := brdoc.ParseDate(f.DataNascimento); !ok {
		return models.Invalid("dataNascimento", "Data de nascimento deve estar no formato DD/MM/AAAA")
	}

	return nil
}

// Submit валидирует форму и сохраняет лид.
//
// Поведение:
//   - CPF проверяется в хранилище до любых сетевых вызовов: повтор -> *DuplicateIDError;
//   - CPF и WhatsApp сохраняются только цифрами, статус PENDENTE;
//   - при включённой пересылке лид создаётся у партнёра; сбой пересылки
//     логируется и не отменяет захват.
func (s *Service) Submit(ctx context.Context, f Form, meta Meta) (*models.CapturedLead, error) {
	const op = "leadcapture/Submit"

	f = Form{
		Nome:             strings.TrimSpace(f.Nome),
		Whatsapp:         strings.TrimSpace(f.Whatsapp),
		CPF:              strings.TrimSpace(f.CPF),
		DataNascimento:   strings.TrimSpace(f.DataNascimento),
		CompanhiaEnergia: strings.TrimSpace(f.CompanhiaEnergia),
	}
	ctx, lg := logctx.With(ctx,
		"op", op,
		"cpf", redact.CPF(f.CPF),
		"whatsapp", redact.Phone(f.Whatsapp),
	)

	if err := validateForm(f); err != nil {
		lg.Warn("lead_invalid", slog.String("err", err.Error()))
		return nil, err
	}

	cpf := brdoc.Digits(f.CPF)

	_, err := s.store.ByCPF(ctx, cpf)
	switch {
	case err == nil:
		lg.Warn("lead_duplicate")
		return nil, &DuplicateIDError{CPF: cpf}
	case !errors.Is(err, storage.ErrNotFound):
		lg.Error("lead_lookup_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	now := s.now().UTC()
	lead := &models.CapturedLead{
		ID:               uuid.New(),
		Nome:             f.Nome,
		Whatsapp:         brdoc.Digits(f.Whatsapp),
		CPF:              cpf,
		DataNascimento:   f.DataNascimento,
		CompanhiaEnergia: f.CompanhiaEnergia,
		Status:           models.StatusPendente,
		Source:           models.SourceFormularioWeb,
		IPAddress:        meta.IPAddress,
		UserAgent:        meta.UserAgent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.store.Create(ctx, lead); err != nil {
		// Гонка двух одновременных отправок с одним CPF.
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Warn("lead_duplicate")
			return nil, &DuplicateIDError{CPF: cpf}
		}

		lg.Error("lead_save_failed", slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("lead_captured", slog.String("lead_id", lead.ID.String()))

	if s.forward != nil {
		s.forwardLead(ctx, lead)
	}

	return lead, nil
}

// forwardLead создаёт лид у партнёра и запоминает его id.
// Логгер берётся из ctx Submit и уже несёт замаскированные CPF и WhatsApp.
func (s *Service) forwardLead(ctx context.Context, lead *models.CapturedLead) {
	lg := logctx.From(ctx).With("lead_id", lead.ID.String())

	remote, err := s.forward.Create(ctx, models.CreateLeadRequest{
		Nome:           lead.Nome,
		CPF:            lead.CPF,
		Whatsapp:       lead.Whatsapp,
		DataNascimento: lead.DataNascimento,
		Origem:         partnerOrigin,
		Observacoes:    "Companhia de energia: " + lead.CompanhiaEnergia,
	})
	if err != nil {
		lg.Warn("lead_forward_failed", slog.String("err", err.Error()))
		return
	}

	if err := s.store.SetPartnerLeadID(ctx, lead.ID, remote.ID); err != nil {
		lg.Warn("lead_forward_link_failed", slog.String("err", err.Error()))
		return
	}
	lead.PartnerLeadID = remote.ID

	lg.Info("lead_forwarded", slog.String("partner_lead_id", remote.ID))
}

// List — все лиды, новые первыми.
func (s *Service) List(ctx context.Context) ([]models.CapturedLead, error) {
	const op = "leadcapture/List"

	leads, err := s.store.List(ctx)
	if err != nil {
		logctx.From(ctx).Error("lead_list_failed", slog.String("op", op), slog.String("err", err.Error()))
		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return leads, nil
}

// Get возвращает лид по id. Ошибки: ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.CapturedLead, error) {
	const op = "leadcapture/Get"

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	lead, err := s.store.ByID(ctx, uid)
	if err != nil {
		return nil, s.storeErr(ctx, op, err)
	}

	return lead, nil
}

// UpdateStatus переводит лид в новый статус.
// Ошибки: *models.ValidationError ("Status inválido"), ErrNotFound.
func (s *Service) UpdateStatus(ctx context.Context, id string, status models.CapturedStatus) (*models.CapturedLead, error) {
	const op = "leadcapture/UpdateStatus"

	if !status.Valid() {
		return nil, models.Invalid("status", "Status inválido")
	}

	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	lead, err := s.store.UpdateStatus(ctx, uid, status)
	if err != nil {
		return nil, s.storeErr(ctx, op, err)
	}

	logctx.From(ctx).Info("lead_status_updated",
		slog.String("lead_id", id),
		slog.String("status", string(status)),
	)

	return lead, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	const op = "leadcapture/Delete"

	uid, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := s.store.Delete(ctx, uid); err != nil {
		return s.storeErr(ctx, op, err)
	}

	logctx.From(ctx).Info("lead_deleted", slog.String("lead_id", id))

	return nil
}

// ExportFile — выгрузка всех лидов для скачивания.
type ExportFile struct {
	Name  string
	Leads []models.CapturedLead
}

// Export готовит выгрузку leads-AAAA-MM-DD.json.
func (s *Service) Export(ctx context.Context) (ExportFile, error) {
	leads, err := s.List(ctx)
	if err != nil {
		return ExportFile{}, err
	}

	return ExportFile{
		Name:  fmt.Sprintf("leads-%s.json", s.now().UTC().Format("2006-01-02")),
		Leads: leads,
	}, nil
}

func (s *Service) storeErr(ctx context.Context, op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	logctx.From(ctx).Error("lead_store_failed", slog.String("op", op), slog.String("err", err.Error()))
	return fmt.Errorf("%s: %w", op, ErrInternal)
}
