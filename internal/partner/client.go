// partner — клиент партнёрского API Crefaz: выбор окружения, кэш bearer-токена
// с упреждающим обновлением, одна переаутентификация на 401 и разворачивание
// ответов вида {data, message, success}.
package partner

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/brunosoares877/Crefaz/internal/partner/interceptors"
)

// maxResponseBytes ограничивает чтение тела ответа партнёра.
const maxResponseBytes = 16 << 20

// Client — долгоживущий клиент одного окружения партнёрского API.
// Создаётся в корне композиции и передаётся фасадам явно; безопасен для
// конкурентного использования.
type Client struct {
	mu      sync.RWMutex
	profile EnvironmentProfile
	hc      *http.Client
	token   *AccessToken
	gen     uint64

	opts options
	log  *slog.Logger
	sf   singleflight.Group
}

type options struct {
	logger       *slog.Logger
	transport    http.RoundTripper
	now          func() time.Time
	userAgent    string
	observer     interceptors.Observer
	singleFlight bool
}

// Option настраивает Client.
type Option func(*options)

func WithLogger(l *slog.Logger) Option { return func(o *options) { o.logger = l } }

// WithTransport задаёт базовый транспорт, поверх которого строится цепочка интерсепторов.
func WithTransport(rt http.RoundTripper) Option { return func(o *options) { o.transport = rt } }

func WithClock(now func() time.Time) Option { return func(o *options) { o.now = now } }

func WithUserAgent(ua string) Option { return func(o *options) { o.userAgent = ua } }

func WithMetrics(obs interceptors.Observer) Option { return func(o *options) { o.observer = obs } }

// WithSingleFlight включает/выключает склейку конкурентных обновлений токена
// в один запрос к эндпоинту аутентификации. По умолчанию включено.
func WithSingleFlight(enabled bool) Option { return func(o *options) { o.singleFlight = enabled } }

// New создаёт клиент, привязанный к профилю. Сетевых вызовов не делает.
func New(profile EnvironmentProfile, opts ...Option) *Client {
	o := options{
		now:          time.Now,
		userAgent:    "crefaz-go",
		singleFlight: true,
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	c := &Client{
		opts: o,
		log:  o.logger.With(slog.String("component", "partner")),
	}
	c.apply(profile)

	return c
}

// apply применяет профиль и сбрасывает токен. Вызывается под c.mu (или из New).
func (c *Client) apply(p EnvironmentProfile) {
	if p.Endpoints.Auth == "" {
		p.Endpoints.Auth = DefaultEndpoints().Auth
	}

	c.profile = p
	c.hc = &http.Client{
		Transport: interceptors.Chain(c.opts.transport,
			interceptors.WithMetadata(c.opts.userAgent),
			interceptors.WithTimeout(p.Timeout),
			interceptors.WithRateLimit(interceptors.NewLimiter(p.RateLimitPerMinute)),
			interceptors.WithMetrics(c.opts.observer),
			interceptors.WithLogging(c.log.With(slog.String("env", p.Name)), p.EnableLogs),
		),
	}
	c.token = nil
	c.gen++
}

// SetEnvironment переключает клиент на другой профиль и безусловно
// сбрасывает токен. Сетевых вызовов не делает; запросы, начатые до
// переключения, завершаются в старом окружении.
func (c *Client) SetEnvironment(p EnvironmentProfile) {
	c.mu.Lock()
	c.apply(p)
	c.mu.Unlock()

	c.log.Info("partner_environment_switched",
		slog.String("env", p.Name),
		slog.String("base_url", p.BaseURL),
	)
}

// WithEnvironment возвращает новый клиент для профиля p с теми же опциями.
// Токен не разделяется: новый клиент аутентифицируется сам.
func (c *Client) WithEnvironment(p EnvironmentProfile) *Client {
	o := c.opts
	return New(p, func(dst *options) { *dst = o })
}

// Environment — копия текущего профиля.
func (c *Client) Environment() EnvironmentProfile {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.profile
}

// Endpoint возвращает путь ресурса в текущем профиле.
func (c *Client) Endpoint(r Resource) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok := c.profile.Endpoints.Path(r); ok {
		return p
	}

	return "/" + string(r)
}

// TokenInfo — чистое чтение состояния кэша токена.
func (c *Client) TokenInfo() TokenInfo {
	c.mu.RLock()
	tok, gen := c.token, c.gen
	c.mu.RUnlock()

	if tok == nil || tok.Value == "" || tok.gen != gen {
		return TokenInfo{}
	}

	exp := tok.ExpiresAt()
	return TokenInfo{
		HasToken:  true,
		IsValid:   tok.Valid(c.opts.now()),
		ExpiresAt: &exp,
	}
}

// Authenticate гарантирует валидный токен (получая его при необходимости)
// и возвращает состояние кэша. Сам токен наружу не отдаётся.
func (c *Client) Authenticate(ctx context.Context) (TokenInfo, error) {
	if _, err := c.ensureToken(ctx, c.snapshot()); err != nil {
		return TokenInfo{}, err
	}

	return c.TokenInfo(), nil
}

// HealthCheck вызывает GET {baseURL}/health без аутентификации.
// true только на 2xx; любые ошибки проглатываются.
func (c *Client) HealthCheck(ctx context.Context) bool {
	st := c.snapshot()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, st.profile.URL("/health"), nil)
	if err != nil {
		return false
	}

	resp, err := st.hc.Do(req)
	if err != nil {
		c.log.Debug("partner_health_failed", slog.String("err", err.Error()))
		return false
	}
	drain(resp)

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Do выполняет аутентифицированный запрос и декодирует ответ в out
// (после разворачивания конверта {data, message, success}).
//
// Перед отправкой токен проверяется на валидность и при необходимости
// обновляется. На 401 токен сбрасывается, выполняется ровно одна
// переаутентификация и один повтор; результат повтора окончательный.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var payload []byte
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("partner: encode %s %s: %w", method, path, err)
		}
		payload = b
	}

	st := c.snapshot()

	tok, err := c.ensureToken(ctx, st)
	if err != nil {
		return err
	}

	resp, err := c.send(ctx, st, method, path, query, payload, tok)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		drain(resp)
		c.log.Info("partner_token_rejected", slog.String("method", method), slog.String("path", path))

		c.invalidate(st.gen, tok)
		if tok, err = c.ensureToken(ctx, st); err != nil {
			return err
		}

		if resp, err = c.send(ctx, st, method, path, query, payload, tok); err != nil {
			return err
		}
	}

	return decodeResponse(method, path, resp, out)
}

// snapshot — согласованный срез профиля, транспорта и поколения на время одного вызова.
type snapshot struct {
	profile EnvironmentProfile
	hc      *http.Client
	gen     uint64
}

func (c *Client) snapshot() snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return snapshot{profile: c.profile, hc: c.hc, gen: c.gen}
}

func (c *Client) send(ctx context.Context, st snapshot, method, path string, query url.Values, payload []byte, token string) (*http.Response, error) {
	u := st.profile.URL(path)
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := st.hc.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, Path: path, Err: err}
	}

	return resp, nil
}

func decodeResponse(method, path string, resp *http.Response, out any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &TransportError{Method: method, Path: path, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode,
			Message: errorMessage(resp.StatusCode, body),
		}
	}

	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	if err := json.Unmarshal(unwrapEnvelope(body), out); err != nil {
		return &DecodeError{Status: resp.StatusCode, Err: err}
	}

	return nil
}

// drain дочитывает и закрывает тело, чтобы соединение вернулось в пул.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
	_ = resp.Body.Close()
}
