package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/brunosoares877/Crefaz/internal/clients"
	"github.com/brunosoares877/Crefaz/internal/models"
)

// maxBodyBytes — как у формы лендинга: документы приходят base64 в теле.
const maxBodyBytes = 10 << 20

// LeadObserver считает исходы отправки формы (реализация — internal/metrics).
type LeadObserver interface {
	LeadCaptured(outcome string)
}

// Handlers агрегирует зависимости хендлеров.
type Handlers struct {
	Clients *clients.Clients

	whatsapp string
	leads    LeadObserver
}

// New создаёт хендлеры. whatsapp — номер менеджера для ссылок wa.me; obs может быть nil.
func New(c *clients.Clients, whatsapp string, obs LeadObserver) *Handlers {
	return &Handlers{Clients: c, whatsapp: whatsapp, leads: obs}
}

// response — успешный ответ в формате лендинга.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Total   *int   `json:"total,omitempty"`
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: неизвестные поля запрещены.
func decodeStrict(w http.ResponseWriter, r *http.Request, value any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(value); err != nil {
		if errors.Is(err, io.EOF) {
			return models.Invalid("", "Corpo da requisição vazio")
		}

		return models.Invalid("", "JSON inválido")
	}

	return nil
}

// clientIP — первый адрес из X-Forwarded-For, иначе адрес соединения.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
