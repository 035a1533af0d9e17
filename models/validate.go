package models

import (
	"net/url"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance backing every declarative
// field constraint in this package.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// ws_url accepts well-formed ws:// and wss:// URLs, used by the
	// sportbook provider configs.
	_ = v.RegisterValidation("ws_url", func(fl validator.FieldLevel) bool {
		u, err := url.Parse(fl.Field().String())
		if err != nil {
			return false
		}
		return (u.Scheme == "ws" || u.Scheme == "wss") && u.Host != ""
	})
	return v
}
