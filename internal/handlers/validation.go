package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/bookease/bookease/internal/core/domain"
)

// RegisterCustomValidators wires domain enum checks into gin's binding
// validator. Must run before the first request is bound.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("accounttype", func(fl validator.FieldLevel) bool {
			return domain.ValidAccountType(domain.AccountType(fl.Field().String()))
		})
	}
}
