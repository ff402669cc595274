package handlers

import (
	"fmt"

	"github.com/SscSPs/finance_tracker/internal/exchange"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by the request DTOs.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
	}
	return v.RegisterValidation("iso4217", func(fl validator.FieldLevel) bool {
		return exchange.ValidCode(fl.Field().String())
	})
}
