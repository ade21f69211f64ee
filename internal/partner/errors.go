package partner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
)

var (
	// ErrMissingClientID — у профиля нет client id, аутентификация невозможна.
	ErrMissingClientID = errors.New("client id não configurado")
	// ErrUnknownEnvironment — профиля с таким именем нет в реестре.
	ErrUnknownEnvironment = errors.New("unknown environment")
)

// fallbackMessage — последняя ступень нормализации сообщения об ошибке.
const fallbackMessage = "erro desconhecido na API"

// TransportError — сетевой сбой: DNS, отказ соединения, таймаут.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Err == nil || e.Err.Error() == "" {
		return fallbackMessage
	}

	return e.Err.Error()
}

func (e *TransportError) Unwrap() error { return e.Err }

// Timeout сообщает, что сбой вызван истечением дедлайна.
func (e *TransportError) Timeout() bool {
	if errors.Is(e.Err, context.DeadlineExceeded) {
		return true
	}

	var ne net.Error
	return errors.As(e.Err, &ne) && ne.Timeout()
}

// AuthError — не удалось получить токен (неверные креды, эндпоинт недоступен,
// пустой client id). Кэш токена к этому моменту уже очищен.
type AuthError struct {
	Status  int
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}

	return fallbackMessage
}

func (e *AuthError) Unwrap() error { return e.Err }

// StatusError — партнёр ответил не-2xx. Message уже нормализовано:
// поле message из тела, иначе "<status>: <statusText>".
type StatusError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

// DecodeError — 2xx-ответ, который не удалось разобрать.
type DecodeError struct {
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("resposta inválida da API: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// StatusOf возвращает HTTP-статус партнёра из ошибки (0, если его нет).
func StatusOf(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Status
	}

	var ae *AuthError
	if errors.As(err, &ae) {
		return ae.Status
	}

	return 0
}

// IsUnauthorized — 401 после повторной попытки или провал аутентификации.
func IsUnauthorized(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae) || StatusOf(err) == http.StatusUnauthorized
}

func IsNotFound(err error) bool { return StatusOf(err) == http.StatusNotFound }

func IsConflict(err error) bool { return StatusOf(err) == http.StatusConflict }

// IsTimeout — сетевой таймаут на любом уровне цепочки.
func IsTimeout(err error) bool {
	var te *TransportError
	return errors.As(err, &te) && te.Timeout()
}

// errorMessage нормализует текст ошибки для не-2xx ответа:
// message из JSON-тела, иначе "<status>: <statusText>".
func errorMessage(status int, body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if len(body) > 0 && json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}

	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("%d: %s", status, text)
	}
	if status != 0 {
		return fmt.Sprintf("%d", status)
	}

	return fallbackMessage
}
