package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/idelchi/cryptobro/pkg/pathmatch"
	"github.com/idelchi/gogen/pkg/validator"
)

// registerGlob adds a "glob" validator accepting patterns pathmatch can compile,
// together with its error message.
func registerGlob(validator *validator.Validator) error {
	if err := validator.RegisterValidationAndTranslation(
		"glob",
		validateGlob,
		"{0} is an invalid pattern",
	); err != nil {
		return fmt.Errorf("registering glob validation: %w", err)
	}

	return nil
}

// registerLabels reports fields by their flag name instead of the Go field name.
func registerLabels(validator *validator.Validator) {
	validator.Validator().RegisterTagNameFunc(func(fld reflect.StructField) string {
		const splitSize = 2

		name := strings.SplitN(fld.Tag.Get("label"), ",", splitSize)[0]
		if name == "-" || name == "" {
			return fld.Name
		}

		return name
	})
}

// validateGlob checks that the field is a pattern pathmatch can compile.
func validateGlob(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.String {
		return false
	}

	_, err := pathmatch.Match(field.String(), "")

	return err == nil
}
