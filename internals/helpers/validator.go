// file: internals/helpers/validator.go
package helper

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var (
	clockRe    = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)
	hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)
	Validate   = newValidator()
)

// newValidator reports fields by their json name and registers the custom
// tags used by the DTOs:
//
//	clock      HH:MM or HH:MM:SS ("" allowed, meaning "no time")
//	yearmonth  YYYY-MM
//	isodate    YYYY-MM-DD
//	hexcolor   #rrggbb
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		s := strings.TrimSpace(fl.Field().String())
		return s == "" || clockRe.MatchString(s)
	})
	_ = v.RegisterValidation("yearmonth", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01", strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", strings.TrimSpace(fl.Field().String()))
		return err == nil
	})
	_ = v.RegisterValidation("hexcolor", func(fl validator.FieldLevel) bool {
		return hexColorRe.MatchString(fl.Field().String())
	})
	return v
}
