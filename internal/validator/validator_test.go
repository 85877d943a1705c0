package validator

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	govalidator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func engine(t *testing.T) *govalidator.Validate {
	t.Helper()
	Setup()
	v, ok := binding.Validator.Engine().(*govalidator.Validate)
	require.True(t, ok)
	return v
}

func TestMobileRule(t *testing.T) {
	v := engine(t)

	valid := []string{"9876543210", "+919876543210", "07123456789"}
	for _, n := range valid {
		assert.NoError(t, v.Var(n, "mobile"), n)
	}

	invalid := []string{"", "12345", "abcdefghij", "98765-43210", "+9198765432109999"}
	for _, n := range invalid {
		assert.Error(t, v.Var(n, "mobile"), n)
	}
}

func TestAadharRule(t *testing.T) {
	v := engine(t)

	assert.NoError(t, v.Var("123456789012", "aadhar"))

	invalid := []string{"", "12345678901", "1234567890123", "12345678901a"}
	for _, n := range invalid {
		assert.Error(t, v.Var(n, "aadhar"), n)
	}
}
