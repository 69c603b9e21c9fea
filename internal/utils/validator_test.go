// internal/utils/validator_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type passwordProbe struct {
	Password string `validate:"strong_password"`
}

type slugProbe struct {
	Slug string `validate:"slug"`
}

type phoneProbe struct {
	Phone string `validate:"phone"`
}

func TestStrongPassword(t *testing.T) {
	assert.NoError(t, ValidateStruct(&passwordProbe{Password: "Sup3rSecret!"}))

	for _, weak := range []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigitsHere!", "NoSpecials123"} {
		assert.Error(t, ValidateStruct(&passwordProbe{Password: weak}), weak)
	}
}

func TestSlug(t *testing.T) {
	for _, good := range []string{"drill", "power-tools", "m18-fuel-2"} {
		assert.NoError(t, ValidateStruct(&slugProbe{Slug: good}), good)
	}
	for _, bad := range []string{"", "Power Tools", "drill_", "-drill", "drill--bit", "UPPER"} {
		assert.Error(t, ValidateStruct(&slugProbe{Slug: bad}), bad)
	}
}

func TestPhone(t *testing.T) {
	for _, good := range []string{"+7 915 123-45-67", "(495) 123-45-67", "88001234567"} {
		assert.NoError(t, ValidateStruct(&phoneProbe{Phone: good}), good)
	}
	for _, bad := range []string{"abc", "12", "+7_915"} {
		assert.Error(t, ValidateStruct(&phoneProbe{Phone: bad}), bad)
	}
}

func TestFileChecksum(t *testing.T) {
	data := []byte("manual contents")
	sum := HashBytes(data)

	assert.Len(t, sum, 64)
	assert.True(t, ValidateFileHash(data, sum))
	assert.False(t, ValidateFileHash([]byte("tampered"), sum))
}
