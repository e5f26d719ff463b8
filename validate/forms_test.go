package validate

import (
	"testing"

	"getpetback/models"

	"github.com/stretchr/testify/assert"
)

func validListingForm() models.ListingForm {
	return models.ListingForm{
		Name:        "Анна",
		Phone:       "+79211234567",
		Email:       "anna@mail.ru",
		Kind:        "кот",
		District:    "Невский",
		Description: "Рыжий кот с белыми лапами, очень ласковый",
		Photos:      []string{"cat.png"},
		Confirm:     true,
	}
}

func TestRegistration(t *testing.T) {
	req := models.RegisterRequest{
		Name:                 "Анна",
		Phone:                "+79211234567",
		Email:                "anna@mail.ru",
		Password:             "Abc1234",
		PasswordConfirmation: "Abc1234",
		Confirm:              1,
	}
	assert.True(t, Registration(req).OK())

	req.PasswordConfirmation = "Abc1235"
	errs := Registration(req)
	assert.False(t, errs.OK())
	assert.Contains(t, errs, "password_confirmation")

	req.PasswordConfirmation = "Abc1234"
	req.Confirm = 0
	errs = Registration(req)
	assert.Contains(t, errs, "confirm")
}

func TestListingForm(t *testing.T) {
	assert.True(t, Listing(validListingForm(), false).OK())

	form := validListingForm()
	form.Photos = nil
	errs := Listing(form, false)
	assert.Contains(t, errs, "photo1")

	form = validListingForm()
	form.District = "Тридевятый"
	errs = Listing(form, false)
	assert.Contains(t, errs, "district")

	form = validListingForm()
	form.Mark = "чип-01"
	errs = Listing(form, false)
	assert.Contains(t, errs, "mark")

	// Registering alongside the listing requires a strong password.
	form = validListingForm()
	form.Register = true
	form.Password = "weak"
	errs = Listing(form, false)
	assert.Contains(t, errs, "password")

	// Relaxed name when the session filled the contact block.
	form = validListingForm()
	form.Name = "John"
	assert.False(t, Listing(form, false).OK())
	assert.True(t, Listing(form, true).OK())
}

func TestListingEdit(t *testing.T) {
	edit := models.ListingEdit{Description: "Обновлённое описание кота", Mark: "VL-0214"}
	assert.True(t, ListingEdit(edit).OK())

	edit.Description = "мало"
	errs := ListingEdit(edit)
	assert.Contains(t, errs, "description")
	assert.NotEmpty(t, errs.First())
}

func TestLoginForm(t *testing.T) {
	assert.True(t, Login("user@mail.ru", "anything").OK())
	assert.Contains(t, Login("bad-email", "pw"), "email")
	assert.Contains(t, Login("user@mail.ru", ""), "password")
}
