package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
}

func TestValidateUsesJSONNames(t *testing.T) {
	errs := Validate(sample{Email: "nope"})
	assert.Equal(t, map[string]string{"email": "email", "password": "required"}, errs)
}

func TestValidateOK(t *testing.T) {
	assert.Nil(t, Validate(sample{Email: "luke@rebellion.org", Password: "x"}))
}
