// resources — тонкие фасады над партнёрским клиентом: один обобщённый
// Resource с CRUD и действиями плюс типизированные обёртки по сущностям.
// Валидация входа выполняется до любого сетевого вызова.
package resources

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Filters кодирует фильтры списка в query-параметры.
type Filters interface {
	Values() url.Values
}

// Resource — CRUD и действия над одной коллекцией партнёра.
// T — сущность, C — запрос создания, U — запрос обновления.
type Resource[T, C, U any] struct {
	client         *partner.Client
	name           partner.Resource
	validateCreate func(C) error
	validateUpdate func(U) error
}

// NewResource связывает коллекцию с клиентом. Валидаторы могут быть nil.
func NewResource[T, C, U any](c *partner.Client, name partner.Resource, create func(C) error, update func(U) error) *Resource[T, C, U] {
	return &Resource[T, C, U]{client: c, name: name, validateCreate: create, validateUpdate: update}
}

// Path собирает путь коллекции из текущего профиля клиента и экранированных сегментов.
func (r *Resource[T, C, U]) Path(parts ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(r.client.Endpoint(r.name), "/"))
	for _, p := range parts {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(p))
	}

	return b.String()
}

func (r *Resource[T, C, U]) Create(ctx context.Context, req C) (T, error) {
	op := "resources/" + string(r.name) + ".Create"

	var zero T
	if r.validateCreate != nil {
		if err := r.validateCreate(req); err != nil {
			return zero, err
		}
	}

	out, err := partner.Post[T](ctx, r.client, r.Path(), req)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *Resource[T, C, U]) Get(ctx context.Context, id string) (T, error) {
	op := "resources/" + string(r.name) + ".Get"

	var zero T
	if err := requireID(id); err != nil {
		return zero, err
	}

	out, err := partner.Get[T](ctx, r.client, r.Path(id), nil)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *Resource[T, C, U]) Update(ctx context.Context, id string, req U) (T, error) {
	op := "resources/" + string(r.name) + ".Update"

	var zero T
	if err := requireID(id); err != nil {
		return zero, err
	}
	if r.validateUpdate != nil {
		if err := r.validateUpdate(req); err != nil {
			return zero, err
		}
	}

	out, err := partner.Put[T](ctx, r.client, r.Path(id), req)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func (r *Resource[T, C, U]) Delete(ctx context.Context, id string) error {
	op := "resources/" + string(r.name) + ".Delete"

	if err := requireID(id); err != nil {
		return err
	}

	if err := r.client.Do(ctx, http.MethodDelete, r.Path(id), nil, nil, nil); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// List возвращает страницу коллекции. f == nil — без фильтров.
func (r *Resource[T, C, U]) List(ctx context.Context, f Filters) (models.Page[T], error) {
	op := "resources/" + string(r.name) + ".List"

	var params url.Values
	if f != nil {
		params = f.Values()
	}

	page, err := partner.Get[models.Page[T]](ctx, r.client, r.Path(), params)
	if err != nil {
		return models.Page[T]{}, fmt.Errorf("%s: %w", op, err)
	}

	return page, nil
}

// Action вызывает POST {collection}/{id}/{action} и возвращает обновлённую сущность.
func (r *Resource[T, C, U]) Action(ctx context.Context, id, action string, body any) (T, error) {
	op := "resources/" + string(r.name) + "." + action

	var zero T
	if err := requireID(id); err != nil {
		return zero, err
	}
	if body == nil {
		body = struct{}{}
	}

	out, err := partner.Post[T](ctx, r.client, r.Path(id, action), body)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

// Sub читает вложенный ресурс GET {collection}/{id}/{sub} с произвольным типом ответа.
func Sub[R, T, C, U any](ctx context.Context, r *Resource[T, C, U], id, sub string, params url.Values) (R, error) {
	op := "resources/" + string(r.name) + "." + sub

	var zero R
	if err := requireID(id); err != nil {
		return zero, err
	}

	out, err := partner.Get[R](ctx, r.client, r.Path(id, sub), params)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", op, err)
	}

	return out, nil
}

func requireID(id string) error {
	if strings.TrimSpace(id) == "" {
		return models.Invalid("id", "ID é obrigatório")
	}

	return nil
}
