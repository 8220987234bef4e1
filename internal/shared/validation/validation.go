package validation

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// seatIDPattern matches generated seat ids: row label (A..Z, AA, AB, ...)
// followed by a 1-based seat number.
var seatIDPattern = regexp.MustCompile(`^[A-Z]{1,3}[1-9][0-9]{0,2}$`)

// Register installs custom binding validations on gin's validator engine.
// Must run before the router starts accepting requests.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("seat_id", func(fl validator.FieldLevel) bool {
		return seatIDPattern.MatchString(fl.Field().String())
	})
}
