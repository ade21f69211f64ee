package partner

import "time"

// SafetyMargin вычитается из срока жизни токена: токен обновляется заранее,
// до того как партнёр начнёт отвечать 401.
const SafetyMargin = 300 * time.Second

// AccessToken — закэшированный bearer-токен. Живёт только в памяти клиента.
type AccessToken struct {
	Value      string
	TokenType  string
	ObtainedAt time.Time
	ExpiresIn  time.Duration

	// gen — поколение окружения, в котором токен получен.
	gen uint64
}

// ExpiresAt — момент, после которого токен считается невалидным (с учётом SafetyMargin).
func (t *AccessToken) ExpiresAt() time.Time {
	return t.ObtainedAt.Add(t.ExpiresIn - SafetyMargin)
}

// Valid: есть значение и now < ObtainedAt + ExpiresIn - SafetyMargin.
func (t *AccessToken) Valid(now time.Time) bool {
	if t == nil || t.Value == "" {
		return false
	}

	return now.Before(t.ExpiresAt())
}

// TokenInfo — снимок состояния кэша токена.
type TokenInfo struct {
	HasToken  bool       `json:"hasToken"`
	IsValid   bool       `json:"isValid"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

// tokenResponse — ответ эндпоинта client_credentials.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
	Scope       string `json:"scope,omitempty"`
}
