package models

// ValidationError — входные данные отклонены до любого сетевого вызова.
// Field пустой, если ошибка относится к запросу целиком.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Invalid — короткий конструктор для валидаторов.
func Invalid(field, msg string) *ValidationError {
	return &ValidationError{Field: field, Message: msg}
}
