package partner

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ensureToken возвращает валидный токен поколения st.gen, при необходимости обновляя его.
func (c *Client) ensureToken(ctx context.Context, st snapshot) (string, error) {
	if v, ok := c.cached(st.gen); ok {
		return v, nil
	}

	return c.refresh(ctx, st)
}

func (c *Client) cached(gen uint64) (string, bool) {
	c.mu.RLock()
	tok := c.token
	c.mu.RUnlock()

	if tok != nil && tok.gen == gen && tok.Valid(c.opts.now()) {
		return tok.Value, true
	}

	return "", false
}

// refresh получает новый токен. С включённым single-flight конкурентные
// вызовы одного поколения ждут один общий запрос к эндпоинту аутентификации.
func (c *Client) refresh(ctx context.Context, st snapshot) (string, error) {
	if !c.opts.singleFlight {
		return c.authenticate(ctx, st)
	}

	ch := c.sf.DoChan(strconv.FormatUint(st.gen, 10), func() (any, error) {
		// Токен мог обновиться, пока вызывающий дошёл до DoChan.
		if v, ok := c.cached(st.gen); ok {
			return v, nil
		}

		// Отмена одного ожидающего не должна ронять обновление для остальных;
		// сам запрос ограничен таймаутом профиля.
		return c.authenticate(context.WithoutCancel(ctx), st)
	})

	select {
	case <-ctx.Done():
		return "", &TransportError{Method: http.MethodPost, Path: st.profile.Endpoints.Auth, Err: ctx.Err()}
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	}
}

// authenticate выполняет обмен client_credentials (form-urlencoded).
// При любой ошибке кэш токена очищается.
func (c *Client) authenticate(ctx context.Context, st snapshot) (string, error) {
	p := st.profile

	fail := func(err *AuthError) (string, error) {
		c.clearToken(st.gen)
		c.log.Warn("partner_auth_failed",
			slog.String("env", p.Name),
			slog.Int("status", err.Status),
			slog.String("err", err.Error()),
		)
		return "", err
	}

	if p.ClientID == "" {
		return fail(&AuthError{Message: ErrMissingClientID.Error(), Err: ErrMissingClientID})
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.URL(p.Endpoints.Auth), strings.NewReader(form.Encode()))
	if err != nil {
		return fail(&AuthError{Err: fmt.Errorf("partner.authenticate: %w", err)})
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := st.hc.Do(req)
	if err != nil {
		terr := &TransportError{Method: http.MethodPost, Path: p.Endpoints.Auth, Err: err}
		return fail(&AuthError{Message: terr.Error(), Err: terr})
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		terr := &TransportError{Method: http.MethodPost, Path: p.Endpoints.Auth, Err: err}
		return fail(&AuthError{Status: resp.StatusCode, Message: terr.Error(), Err: terr})
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(&AuthError{Status: resp.StatusCode, Message: errorMessage(resp.StatusCode, body)})
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return fail(&AuthError{
			Status:  resp.StatusCode,
			Message: "resposta de autenticação inválida",
			Err:     &DecodeError{Status: resp.StatusCode, Err: err},
		})
	}
	if tr.AccessToken == "" {
		return fail(&AuthError{Status: resp.StatusCode, Message: "resposta de autenticação sem access_token"})
	}

	now := c.opts.now()
	tok := &AccessToken{
		Value:      tr.AccessToken,
		TokenType:  tr.TokenType,
		ObtainedAt: now,
		ExpiresIn:  tokenLifetime(tr, now),
		gen:        st.gen,
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}

	c.mu.Lock()
	if c.gen == st.gen {
		c.token = tok
	}
	c.mu.Unlock()

	c.log.Info("partner_auth_ok",
		slog.String("env", p.Name),
		slog.String("token_type", tok.TokenType),
		slog.Duration("expires_in", tok.ExpiresIn),
	)

	return tok.Value, nil
}

// tokenLifetime берёт expires_in; если его нет, а токен — JWT, срок
// вычисляется по claim exp (подпись не проверяется: это токен партнёра,
// нам нужен только срок жизни). Иначе 0: токен годится на один запрос.
func tokenLifetime(tr tokenResponse, now time.Time) time.Duration {
	if tr.ExpiresIn > 0 {
		return time.Duration(tr.ExpiresIn) * time.Second
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tr.AccessToken, claims); err != nil {
		return 0
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return 0
	}
	if d := exp.Sub(now); d > 0 {
		return d
	}

	return 0
}

// invalidate сбрасывает токен, только если в кэше всё ещё отвергнутое значение.
func (c *Client) invalidate(gen uint64, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != nil && c.token.gen == gen && c.token.Value == value {
		c.token = nil
	}
}

func (c *Client) clearToken(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.gen == gen {
		c.token = nil
	}
}
