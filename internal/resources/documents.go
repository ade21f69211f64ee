package resources

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
	logctx "github.com/brunosoares877/Crefaz/internal/pkg/log"
)

// MaxDocumentSize — предел размера декодированного файла.
const MaxDocumentSize = 10 << 20

var (
	base64Re = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

	allowedMIME = []string{
		"image/jpeg", "image/jpg", "image/png", "image/gif",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	}
)

// DocumentArchive хранит копии загруженных файлов вне партнёра.
type DocumentArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
}

// Documents — фасад документов. archive может быть nil.
type Documents struct {
	res     *Resource[models.Document, models.UploadDocumentRequest, struct{}]
	archive DocumentArchive
}

func NewDocuments(c *partner.Client, archive DocumentArchive) *Documents {
	return &Documents{
		res:     NewResource[models.Document, models.UploadDocumentRequest, struct{}](c, partner.ResourceDocuments, nil, nil),
		archive: archive,
	}
}

// decodeUpload проверяет запрос и возвращает декодированное содержимое.
func decodeUpload(r models.UploadDocumentRequest) ([]byte, error) {
	switch {
	case blank(r.Nome):
		return nil, models.Invalid("nome", "Nome do documento é obrigatório")
	case r.Tipo == "":
		return nil, models.Invalid("tipo", "Tipo do documento é obrigatório")
	case r.Arquivo == "":
		return nil, models.Invalid("arquivo", "Arquivo em base64 é obrigatório")
	case r.MimeType == "":
		return nil, models.Invalid("mimeType", "Tipo MIME do arquivo é obrigatório")
	}

	if !base64Re.MatchString(r.Arquivo) {
		return nil, models.Invalid("arquivo", "Arquivo deve estar em formato base64 válido")
	}
	if kind, _ := r.Owner(); kind == "" {
		return nil, models.Invalid("", "Documento deve estar associado a pelo menos uma entidade (cliente, lead, proposta ou contrato)")
	}

	data, err := base64.StdEncoding.DecodeString(r.Arquivo)
	if err != nil {
		return nil, models.Invalid("arquivo", "Arquivo deve estar em formato base64 válido")
	}
	if len(data) > MaxDocumentSize {
		return nil, models.Invalid("arquivo", "Arquivo muito grande. Tamanho máximo: 10MB")
	}
	if !slices.Contains(allowedMIME, r.MimeType) {
		return nil, models.Invalid("mimeType", "Tipo de arquivo não permitido. Use: PDF, DOC, DOCX, XLS, XLSX, JPG, PNG, GIF")
	}

	return data, nil
}

// Upload отправляет документ партнёру и кладёт копию в архив.
// Сбой архива логируется и не отменяет успешную загрузку.
func (d *Documents) Upload(ctx context.Context, r models.UploadDocumentRequest) (models.Document, error) {
	data, err := decodeUpload(r)
	if err != nil {
		return models.Document{}, err
	}

	doc, err := d.res.Create(ctx, r)
	if err != nil {
		return models.Document{}, err
	}

	if d.archive != nil {
		kind, owner := r.Owner()
		key := fmt.Sprintf("%s/%s/%s-%s", kind, owner, doc.ID, r.Nome)
		if err := d.archive.Put(ctx, key, data, r.MimeType); err != nil {
			logctx.From(ctx).Warn("document_archive_failed",
				slog.String("document_id", doc.ID),
				slog.String("err", err.Error()),
			)
		}
	}

	return doc, nil
}

func (d *Documents) Get(ctx context.Context, id string) (models.Document, error) {
	return d.res.Get(ctx, id)
}

func (d *Documents) Delete(ctx context.Context, id string) error {
	return d.res.Delete(ctx, id)
}

func (d *Documents) List(ctx context.Context, f models.DocumentFilters) (models.Page[models.Document], error) {
	return d.res.List(ctx, f)
}

// ByClient — документы клиента, опционально одного типа.
func (d *Documents) ByClient(ctx context.Context, clienteID string, tipo models.DocumentType) ([]models.Document, error) {
	if blank(clienteID) {
		return nil, models.Invalid("clienteId", "ID do cliente é obrigatório")
	}

	return d.data(ctx, models.DocumentFilters{ClienteID: clienteID}, tipo)
}

func (d *Documents) ByLead(ctx context.Context, leadID string, tipo models.DocumentType) ([]models.Document, error) {
	if blank(leadID) {
		return nil, models.Invalid("leadId", "ID do lead é obrigatório")
	}

	return d.data(ctx, models.DocumentFilters{LeadID: leadID}, tipo)
}

func (d *Documents) data(ctx context.Context, f models.DocumentFilters, tipo models.DocumentType) ([]models.Document, error) {
	f.Limit = 100
	if tipo != "" {
		f.Tipo = []models.DocumentType{tipo}
	}

	page, err := d.res.List(ctx, f)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

func (d *Documents) Approve(ctx context.Context, id, observacoes string) (models.Document, error) {
	var body any
	if observacoes != "" {
		body = map[string]string{"observacoes": observacoes}
	}

	return d.res.Action(ctx, id, "approve", body)
}

func (d *Documents) Reject(ctx context.Context, id, motivo string) (models.Document, error) {
	if blank(motivo) {
		return models.Document{}, models.Invalid("motivo", "Motivo é obrigatório")
	}

	return d.res.Action(ctx, id, "reject", reason(motivo))
}
