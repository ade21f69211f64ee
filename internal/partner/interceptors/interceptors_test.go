package interceptors

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

// capHandler — тестовый slog.Handler: копит базовые attrs из With(...)
// и attrs последней записи.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out
	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

// okTransport отвечает 200 и запоминает последний запрос.
type okTransport struct {
	mu   sync.Mutex
	last *http.Request
	code int
}

func (t *okTransport) RoundTrip(r *http.Request) (*http.Response, error) {
	t.mu.Lock()
	t.last = r
	t.mu.Unlock()

	code := t.code
	if code == 0 {
		code = http.StatusOK
	}

	return &http.Response{
		StatusCode: code,
		Body:       io.NopCloser(strings.NewReader(`{}`)),
		Header:     http.Header{},
		Request:    r,
	}, nil
}

func newReq(t *testing.T, ctx context.Context) *http.Request {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://partner.test/leads?cpf=123", nil)
	require.NoError(t, err)
	return req
}

func TestChain_Order(t *testing.T) {
	t.Parallel()

	var order []string
	mk := func(name string) Interceptor {
		return func(next http.RoundTripper) http.RoundTripper {
			return RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next.RoundTrip(r)
			})
		}
	}

	rt := Chain(&okTransport{}, mk("a"), nil, mk("b"))
	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, order)
}

func TestWithMetadata_UsesRequestIDFromContext(t *testing.T) {
	t.Parallel()

	base := &okTransport{}
	rt := Chain(base, WithMetadata("crefaz-test"))

	ctx := context.WithValue(context.Background(), CtxRequestID, "rid-123")
	orig := newReq(t, ctx)
	_, err := rt.RoundTrip(orig)
	require.NoError(t, err)

	require.Equal(t, "rid-123", base.last.Header.Get("X-Request-Id"))
	require.Equal(t, "crefaz-test", base.last.Header.Get("User-Agent"))
	require.Equal(t, "application/json", base.last.Header.Get("Accept"))

	// Исходный запрос не мутирован.
	require.Empty(t, orig.Header.Get("X-Request-Id"))
}

func TestWithMetadata_GeneratesUUID_AndKeepsAccept(t *testing.T) {
	t.Parallel()

	base := &okTransport{}
	rt := Chain(base, WithMetadata(""))

	req := newReq(t, context.Background())
	req.Header.Set("Accept", "text/plain")
	_, err := rt.RoundTrip(req)
	require.NoError(t, err)

	_, err = uuid.Parse(base.last.Header.Get("X-Request-Id"))
	require.NoError(t, err)
	require.Equal(t, "text/plain", base.last.Header.Get("Accept"))
}

func TestWithTimeout_SetsDeadline_AndCancelsOnClose(t *testing.T) {
	t.Parallel()

	var seen context.Context
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		seen = r.Context()
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader("ok"))}, nil
	})

	rt := Chain(base, WithTimeout(time.Second))
	resp, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)

	_, ok := seen.Deadline()
	require.True(t, ok)
	require.NoError(t, seen.Err(), "body ещё не закрыт — контекст жив")

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(b))
	require.NoError(t, resp.Body.Close())
	require.ErrorIs(t, seen.Err(), context.Canceled)
}

func TestWithTimeout_DeadlineExceeded(t *testing.T) {
	t.Parallel()

	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		<-r.Context().Done()
		return nil, r.Context().Err()
	})

	rt := Chain(base, WithTimeout(30*time.Millisecond))
	start := time.Now()
	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestWithTimeout_DoesNotOverrideExistingDeadline(t *testing.T) {
	t.Parallel()

	parent, cancel := context.WithTimeout(context.Background(), 25*time.Millisecond)
	defer cancel()
	parentDL, _ := parent.Deadline()

	var childDL time.Time
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		childDL, _ = r.Context().Deadline()
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(""))}, nil
	})

	rt := Chain(base, WithTimeout(time.Second))
	_, err := rt.RoundTrip(newReq(t, parent))
	require.NoError(t, err)
	require.WithinDuration(t, parentDL, childDL, time.Millisecond)
}

func TestWithTimeout_ZeroDuration_PassThrough(t *testing.T) {
	t.Parallel()

	var hasDL bool
	base := RoundTripperFunc(func(r *http.Request) (*http.Response, error) {
		_, hasDL = r.Context().Deadline()
		return &http.Response{StatusCode: 200, Body: io.NopCloser(strings.NewReader(""))}, nil
	})

	_, err := Chain(base, WithTimeout(0)).RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.False(t, hasDL)
}

func TestNewLimiter(t *testing.T) {
	t.Parallel()

	require.Nil(t, NewLimiter(0))

	l := NewLimiter(1000)
	require.NotNil(t, l)
	require.Equal(t, 16, l.Burst())

	l = NewLimiter(30)
	require.Equal(t, 1, l.Burst())
}

func TestWithRateLimit_RespectsContext(t *testing.T) {
	t.Parallel()

	l := rate.NewLimiter(rate.Every(time.Hour), 1)
	rt := Chain(&okTransport{}, WithRateLimit(l))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = rt.RoundTrip(newReq(t, ctx))
	require.Error(t, err)
}

type capObserver struct {
	method, code string
	calls        int
}

func (o *capObserver) ObservePartnerRequest(method, code string, _ time.Duration) {
	o.method, o.code = method, code
	o.calls++
}

func TestWithMetrics_ObservesStatusAndErrors(t *testing.T) {
	t.Parallel()

	o := &capObserver{}
	_, err := Chain(&okTransport{code: 404}, WithMetrics(o)).RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.Equal(t, "GET", o.method)
	require.Equal(t, "404", o.code)

	failing := RoundTripperFunc(func(*http.Request) (*http.Response, error) { return nil, errors.New("boom") })
	_, err = Chain(failing, WithMetrics(o)).RoundTrip(newReq(t, context.Background()))
	require.Error(t, err)
	require.Equal(t, "error", o.code)
	require.Equal(t, 2, o.calls)
}

func TestWithLogging_WritesSingleRecord_WithoutQuery(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	rt := Chain(&okTransport{}, WithMetadata(""), WithLogging(slog.New(h), true))

	_, err := rt.RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)

	require.Equal(t, 1, h.count["partner_http"])
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "/leads", h.attrs["path"])
	require.Equal(t, int64(200), h.attrs["status"])
	require.NotEmpty(t, h.attrs["request_id"])
	for _, v := range h.attrs {
		if s, ok := v.(string); ok {
			require.NotContains(t, s, "cpf=")
		}
	}
}

func TestWithLogging_Disabled_NoRecords(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	_, err := Chain(&okTransport{}, WithLogging(slog.New(h), false)).RoundTrip(newReq(t, context.Background()))
	require.NoError(t, err)
	require.Empty(t, h.count)
}

func TestWithLogging_TransportError_Warn(t *testing.T) {
	t.Parallel()

	h := &capHandler{}
	failing := RoundTripperFunc(func(*http.Request) (*http.Response, error) { return nil, errors.New("connection refused") })
	_, err := Chain(failing, WithLogging(slog.New(h), true)).RoundTrip(newReq(t, context.Background()))
	require.Error(t, err)

	require.Equal(t, "partner_http", h.lastMsg)
	require.Equal(t, slog.LevelWarn, h.lastLvl)
	require.Equal(t, "connection refused", h.attrs["err"])
}
