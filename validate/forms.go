package validate

import (
	"getpetback/models"
)

// FieldErrors maps a form field name to its first error message,
// mirroring the shape of the server's 422 response so that server
// errors can replace client ones one-for-one.
type FieldErrors map[string]string

// OK reports whether the form passed.
func (f FieldErrors) OK() bool {
	return len(f) == 0
}

// First returns one message for toast display, or "".
func (f FieldErrors) First() string {
	for _, msg := range f {
		return msg
	}
	return ""
}

func (f FieldErrors) add(field string, err error) {
	if err != nil {
		if _, dup := f[field]; !dup {
			f[field] = err.Error()
		}
	}
}

// Registration validates the full registration form.
func Registration(req models.RegisterRequest) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", Name(req.Name, false))
	errs.add("phone", Phone(req.Phone))
	errs.add("email", Email(req.Email))
	errs.add("password", Password(req.Password))
	if req.PasswordConfirmation == "" {
		errs["password_confirmation"] = "password confirmation is required"
	} else if req.Password != req.PasswordConfirmation {
		errs["password_confirmation"] = "passwords do not match"
	}
	if req.Confirm != 1 {
		errs["confirm"] = "consent to personal data processing is required"
	}
	return errs
}

// Login validates the login form.
func Login(email, password string) FieldErrors {
	errs := FieldErrors{}
	errs.add("email", Email(email))
	if password == "" {
		errs["password"] = "password is required"
	}
	return errs
}

// Listing validates the add-listing form. sessionFilled relaxes the
// name rule when contact fields came from the stored session.
func Listing(form models.ListingForm, sessionFilled bool) FieldErrors {
	errs := FieldErrors{}
	errs.add("name", Name(form.Name, sessionFilled))
	errs.add("phone", Phone(form.Phone))
	errs.add("email", Email(form.Email))
	if form.Kind == "" {
		errs["kind"] = "animal kind is required"
	}
	if form.District == "" {
		errs["district"] = "district is required"
	} else if !models.ValidDistrict(form.District) {
		errs["district"] = "unknown district"
	}
	errs.add("description", Description(form.Description))
	errs.add("mark", ChipMark(form.Mark))
	if len(form.Photos) == 0 || form.Photos[0] == "" {
		errs["photo1"] = "the main photo is required"
	}
	for i, photo := range form.Photos {
		errs.add(photoField(i), PhotoFile(photo))
	}
	if form.Register {
		errs.add("password", Password(form.Password))
	}
	if !form.Confirm {
		errs["confirm"] = "consent to personal data processing is required"
	}
	return errs
}

// ListingEdit validates the restricted edit form.
func ListingEdit(edit models.ListingEdit) FieldErrors {
	errs := FieldErrors{}
	errs.add("description", Description(edit.Description))
	errs.add("mark", ChipMark(edit.Mark))
	for i, photo := range edit.Photos {
		errs.add(photoField(i), PhotoFile(photo))
	}
	return errs
}

func photoField(i int) string {
	return [...]string{"photo1", "photo2", "photo3"}[i%3]
}
