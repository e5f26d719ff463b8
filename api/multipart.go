package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"getpetback/models"
)

// encodeListingForm builds the multipart body for POST /api/pets.
// Field names (photo1..photo3, confirm, register) follow the API's
// form contract; empty optional fields are omitted.
func encodeListingForm(form models.ListingForm) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        form.Name,
		"phone":       form.Phone,
		"email":       form.Email,
		"kind":        form.Kind,
		"district":    form.District,
		"description": form.Description,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", err
		}
	}
	if form.Mark != "" {
		if err := w.WriteField("mark", form.Mark); err != nil {
			return nil, "", err
		}
	}
	if form.Confirm {
		if err := w.WriteField("confirm", "1"); err != nil {
			return nil, "", err
		}
	}
	if form.Register {
		if err := w.WriteField("register", "true"); err != nil {
			return nil, "", err
		}
		if err := w.WriteField("password", form.Password); err != nil {
			return nil, "", err
		}
	}
	if err := writePhotos(w, form.Photos); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

// encodeListingEdit builds the multipart body for the restricted edit.
// Only new photos are sent; existing ones stay untouched server-side.
func encodeListingEdit(edit models.ListingEdit) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("description", edit.Description); err != nil {
		return nil, "", err
	}
	if edit.Mark != "" {
		if err := w.WriteField("mark", edit.Mark); err != nil {
			return nil, "", err
		}
	}
	if err := writePhotos(w, edit.Photos); err != nil {
		return nil, "", err
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writePhotos(w *multipart.Writer, paths []string) error {
	if len(paths) > models.MaxListingPhotos {
		return fmt.Errorf("at most %d photos allowed, got %d", models.MaxListingPhotos, len(paths))
	}
	for i, path := range paths {
		if path == "" {
			continue
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		part, err := w.CreateFormFile(fmt.Sprintf("photo%d", i+1), filepath.Base(path))
		if err != nil {
			f.Close()
			return err
		}
		if _, err := io.Copy(part, f); err != nil {
			f.Close()
			return err
		}
		f.Close()
	}
	return nil
}
