package req

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Decode читает JSON тело запроса и проверяет теги validate
func Decode[T any](body io.Reader) (T, error) {
	var payload T

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid json: %w", err)
	}

	if err := validate.Struct(payload); err != nil {
		return payload, fmt.Errorf("invalid request: %w", err)
	}

	return payload, nil
}
