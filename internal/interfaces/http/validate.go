package http

import "github.com/go-playground/validator/v10"

// validate instancia global del validador de structs (reutilizable y
// concurrente según la doc de la librería).
var validate = validator.New()

// validarRequest valida los tags `validate` del DTO.
func validarRequest(v interface{}) error {
	return validate.Struct(v)
}
