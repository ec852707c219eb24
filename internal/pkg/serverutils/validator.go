package serverutils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

// ValidateRequest checks a bound request DTO against its validate tags and
// returns a 422 with a readable field list on failure.
func ValidateRequest(req interface{}) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}

	var invalids []string
	for _, fieldErr := range err.(validator.ValidationErrors) {
		invalids = append(invalids, fmt.Sprintf("%s (%s)", fieldErr.Field(), fieldErr.Tag()))
	}

	return fiber.NewError(
		fiber.StatusUnprocessableEntity,
		"Validation failed: "+strings.Join(invalids, ", "),
	)
}
