package models

import "net/url"

type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleAgent   UserRole = "agent"
	RoleViewer  UserRole = "viewer"
)

type UserStatus string

const (
	UserAtivo     UserStatus = "ativo"
	UserInativo   UserStatus = "inativo"
	UserSuspenso  UserStatus = "suspenso"
	UserBloqueado UserStatus = "bloqueado"
)

type Usuario struct {
	ID           string     `json:"id"`
	Nome         string     `json:"nome"`
	Email        string     `json:"email"`
	Telefone     string     `json:"telefone,omitempty"`
	Cargo        string     `json:"cargo,omitempty"`
	Departamento string     `json:"departamento,omitempty"`
	Role         UserRole   `json:"role"`
	Status       UserStatus `json:"status"`
	Permissions  []string   `json:"permissions,omitempty"`
	LastLogin    string     `json:"lastLogin,omitempty"`
	CreatedAt    string     `json:"createdAt"`
	UpdatedAt    string     `json:"updatedAt"`
}

type CreateUsuarioRequest struct {
	Nome         string   `json:"nome"`
	Email        string   `json:"email"`
	Password     string   `json:"password"`
	Telefone     string   `json:"telefone,omitempty"`
	Cargo        string   `json:"cargo,omitempty"`
	Departamento string   `json:"departamento,omitempty"`
	Role         UserRole `json:"role"`
	Permissions  []string `json:"permissions,omitempty"`
}

type UpdateUsuarioRequest struct {
	Nome         *string    `json:"nome,omitempty"`
	Email        *string    `json:"email,omitempty"`
	Password     *string    `json:"password,omitempty"`
	Telefone     *string    `json:"telefone,omitempty"`
	Cargo        *string    `json:"cargo,omitempty"`
	Departamento *string    `json:"departamento,omitempty"`
	Role         UserRole   `json:"role,omitempty"`
	Status       UserStatus `json:"status,omitempty"`
}

// UsuarioFilters — фильтры списка пользователей.
type UsuarioFilters struct {
	PageParams
	Role   []UserRole
	Status []UserStatus
	Busca  string
}

func (f UsuarioFilters) Values() url.Values {
	v := url.Values{}
	f.encode(v)
	setList(v, "role", f.Role)
	setList(v, "status", f.Status)
	setStr(v, "busca", f.Busca)
	return v
}
