package providers

import (
	"github.com/gookit/validate"

	"vestd/internal/structures"
)

// CnfValidator validates a loaded Config against the struct tags declared in
// internal/structures.
type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return v.Errors.OneError()
	}
	return nil
}
