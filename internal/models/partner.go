// models — сущности партнёрского API Crefaz (транспортируются как есть,
// локально не мастерятся) и локальная запись захваченного лида.
package models

import (
	"net/url"
	"strconv"
	"strings"
)

// Pagination — метаданные страницы в ответах списков.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage"`
	HasNext      bool `json:"hasNext"`
	HasPrevious  bool `json:"hasPrevious"`
}

// Page — пагинированный ответ партнёра.
type Page[T any] struct {
	Data       []T        `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// PageParams — общие параметры пагинации и сортировки.
type PageParams struct {
	Page      int
	Limit     int
	SortBy    string
	SortOrder string // asc | desc
}

func (p PageParams) encode(v url.Values) {
	setInt(v, "page", p.Page)
	setInt(v, "limit", p.Limit)
	setStr(v, "sortBy", p.SortBy)
	setStr(v, "sortOrder", p.SortOrder)
}

// Endereco — адрес.
type Endereco struct {
	CEP         string `json:"cep,omitempty"`
	Logradouro  string `json:"logradouro,omitempty"`
	Numero      string `json:"numero,omitempty"`
	Complemento string `json:"complemento,omitempty"`
	Bairro      string `json:"bairro,omitempty"`
	Cidade      string `json:"cidade,omitempty"`
	Estado      string `json:"estado,omitempty"`
	Pais        string `json:"pais,omitempty"`
}

// Списки уходят в query одной строкой через запятую: status=novo,contatado.
func setList[S ~string](v url.Values, key string, items []S) {
	if len(items) == 0 {
		return
	}

	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = string(it)
	}
	v.Set(key, strings.Join(parts, ","))
}

func setStr(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}

func setInt(v url.Values, key string, val int) {
	if val > 0 {
		v.Set(key, strconv.Itoa(val))
	}
}

func setFloat(v url.Values, key string, val float64) {
	if val > 0 {
		v.Set(key, strconv.FormatFloat(val, 'f', -1, 64))
	}
}
