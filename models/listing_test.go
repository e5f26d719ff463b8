package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEditable(t *testing.T) {
	assert.True(t, Listing{Status: StatusActive}.Editable())
	assert.True(t, Listing{Status: StatusOnModeration}.Editable())
	assert.False(t, Listing{Status: "wasFound"}.Editable())
	assert.False(t, Listing{Status: "archive"}.Editable())
	assert.False(t, Listing{}.Editable())
}

func TestValidDistrict(t *testing.T) {
	assert.True(t, ValidDistrict("Невский"))
	assert.True(t, ValidDistrict("Центральный"))
	assert.False(t, ValidDistrict("Тридевятый"))
	assert.False(t, ValidDistrict(""))
}

func TestAuthenticated(t *testing.T) {
	assert.False(t, Session{Email: "user@mail.ru"}.Authenticated(), "email alone is not authentication")
	assert.True(t, Session{Token: "tok"}.Authenticated())
}
