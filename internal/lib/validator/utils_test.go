package validator

import (
	"testing"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Username string `json:"username" validate:"required,max=150,notreserved"`
	Email    string `json:"email" validate:"required,email"`
}

func newTestValidator(t *testing.T) *govalidator.Validate {
	t.Helper()
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	require.NoError(t, v.RegisterValidation("notreserved", ValidateNotReserved))
	return v
}

// Handlers hand ValidateStruct a pointer to their input struct; field
// lookup must work through the indirection instead of panicking.
func TestValidateStructWithPointer(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, &signupForm{Email: "not-an-email"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "username")
	assert.Contains(t, errs, "email")
}

func TestValidateStructWithValue(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, signupForm{Email: "not-an-email"})
	require.NotNil(t, errs)
	assert.Contains(t, errs, "username")
}

func TestValidateStructReservedUsername(t *testing.T) {
	v := newTestValidator(t)
	errs := ValidateStruct(v, &signupForm{Username: "me", Email: "me@example.com"})
	require.NotNil(t, errs)
	assert.Contains(t, errs["username"], "not allowed")
}

func TestValidateStructValid(t *testing.T) {
	v := newTestValidator(t)
	assert.Nil(t, ValidateStruct(v, &signupForm{Username: "alice", Email: "alice@example.com"}))
}
