package dto

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Display names allow unicode letters and single inner spaces.
var nameRe = regexp.MustCompile(`^\p{L}+(?: \p{L}+)*$`)

// RegisterCustomValidators installs the request validations that the built-in
// tags cannot express. Must run before the router starts binding.
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("nombre", func(fl validator.FieldLevel) bool {
		return nameRe.MatchString(fl.Field().String())
	})
}
