package resources

import (
	"context"
	"strings"

	"github.com/brunosoares877/Crefaz/internal/models"
	"github.com/brunosoares877/Crefaz/internal/partner"
)

// Users — фасад пользователей партнёрского кабинета.
type Users struct {
	*Resource[models.Usuario, models.CreateUsuarioRequest, models.UpdateUsuarioRequest]
}

func NewUsers(c *partner.Client) *Users {
	return &Users{Resource: NewResource[models.Usuario](c, partner.ResourceUsers, validateUsuarioCreate, validateUsuarioUpdate)}
}

// ByEmail — точное совпадение email (без учёта регистра) среди результатов поиска.
func (u *Users) ByEmail(ctx context.Context, email string) (models.Usuario, bool, error) {
	page, err := u.List(ctx, models.UsuarioFilters{Busca: email})
	if err != nil {
		return models.Usuario{}, false, err
	}

	for _, it := range page.Data {
		if strings.EqualFold(it.Email, email) {
			return it, true, nil
		}
	}

	return models.Usuario{}, false, nil
}

func (u *Users) Activate(ctx context.Context, id string) (models.Usuario, error) {
	return u.Action(ctx, id, "activate", nil)
}

func (u *Users) Deactivate(ctx context.Context, id string) (models.Usuario, error) {
	return u.Action(ctx, id, "deactivate", nil)
}
