// errors стандартизирует ответы об ошибках HTTP-слоя leads-api.
// На вход принимает доменную ошибку (валидация, захват лидов, партнёрский
// клиент), на выход даёт HTTP-статус и тело
// {success:false, message, code, request_id}.
package errors

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/brunosoares877/Crefaz/internal/leadcapture"
	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Нестандартный код "клиент закрыл соединение".
const StatusClientClosedRequest = 499

const msgInternal = "Erro interno do servidor"

// ErrorResponse — единый формат ответа с ошибкой.
type ErrorResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTP конвертирует ошибку в HTTP-статус и тело ответа.
//
// Маппинг:
//   - *models.ValidationError, partner.ErrUnknownEnvironment -> 400;
//   - *leadcapture.DuplicateIDError -> 409;
//   - leadcapture.ErrNotFound -> 404;
//   - партнёр: таймаут -> 504, сеть -> 503, аутентификация и прочие статусы -> 502;
//   - context.Canceled -> 499, context.DeadlineExceeded -> 504;
//   - прочее (и nil) -> 500 без деталей.
func ToHTTP(err error) (int, ErrorResponse) {
	status, code, msg := classify(err)

	return status, ErrorResponse{Message: msg, Code: code}
}

func classify(err error) (int, string, string) {
	if err == nil {
		return http.StatusInternalServerError, "internal", msgInternal
	}

	var (
		verr *models.ValidationError
		dup  *leadcapture.DuplicateIDError
		aerr *partner.AuthError
		terr *partner.TransportError
		serr *partner.StatusError
		derr *partner.DecodeError
	)

	switch {
	case stderrors.As(err, &verr):
		return http.StatusBadRequest, "invalid_argument", verr.Message
	case stderrors.Is(err, partner.ErrUnknownEnvironment):
		return http.StatusBadRequest, "invalid_argument", "Ambiente desconhecido"
	case stderrors.As(err, &dup):
		return http.StatusConflict, "already_exists", dup.Error()
	case stderrors.Is(err, leadcapture.ErrNotFound):
		return http.StatusNotFound, "not_found", leadcapture.ErrNotFound.Error()
	case stderrors.As(err, &aerr):
		return http.StatusBadGateway, "partner_auth", "Falha de autenticação na API parceira"
	case partner.IsTimeout(err):
		return http.StatusGatewayTimeout, "partner_timeout", "A API parceira não respondeu a tempo"
	case stderrors.As(err, &terr):
		return http.StatusServiceUnavailable, "partner_unavailable", "API parceira indisponível"
	case stderrors.As(err, &serr):
		return http.StatusBadGateway, "partner_error", serr.Message
	case stderrors.As(err, &derr):
		return http.StatusBadGateway, "partner_error", "Resposta inválida da API parceira"
	case stderrors.Is(err, context.Canceled):
		return StatusClientClosedRequest, "canceled", "canceled"
	case stderrors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "deadline_exceeded", "Tempo limite excedido"
	default:
		return http.StatusInternalServerError, "internal", msgInternal
	}
}

// WriteError — хелпер для HTTP-хендлеров. Добавляет request_id из X-Request-Id.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status, resp := ToHTTP(err)
	if rid := r.Header.Get("X-Request-Id"); rid != "" {
		resp.RequestID = rid
	}

	Write(w, status, resp)
}

// NotFound — ответ для неизвестного маршрута.
func NotFound(w http.ResponseWriter, r *http.Request) {
	Write(w, http.StatusNotFound, ErrorResponse{
		Message:   "Endpoint não encontrado",
		Code:      "not_found",
		RequestID: r.Header.Get("X-Request-Id"),
	})
}

func Write(w http.ResponseWriter, status int, resp ErrorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}
