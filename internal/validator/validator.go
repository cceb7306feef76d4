// Package validator provides custom validation support for Gin's binding engine.
package validator

import (
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"moneta/internal/models"
)

// Register registers custom types with the Gin binding engine so that
// validation tags apply to their underlying values.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterCustomTypeFunc(dateValue, models.Date{})
	}
}

// dateValue exposes the underlying time.Time of a models.Date so tags like
// "required" see through the wrapper.
func dateValue(field reflect.Value) interface{} {
	if d, ok := field.Interface().(models.Date); ok {
		return d.Time
	}
	return nil
}
