package web

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"reflect"
	"strings"
	"unicode"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/JonMunkholm/hrpanel/internal/core"
)

// maxPhotoSize bounds an uploaded photo (5MB).
const maxPhotoSize = 5 << 20

// maxFormMemory is what ParseMultipartForm keeps in memory before spilling
// to disk.
const maxFormMemory = 8 << 20

var errNotImage = errors.New("photo is not an image")

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their form names.
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		r := []rune(f.Name)
		r[0] = unicode.ToLower(r[0])
		return string(r)
	})

	english := en.New()
	uni := ut.New(english, english)
	trans, _ := uni.GetTranslator("en")
	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("register translations: %w", err)
	}
	return validate, trans, nil
}

// validateInput returns translated messages keyed by form field name, or
// nil when the input is valid.
func (s *Server) validateInput(in core.Input) map[string]string {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Field()] = fe.Translate(s.translator)
	}
	return out
}

// parseEmployeeForm reads the multipart create/edit form. A new photo file
// replaces the current one and is stored inline as a data URL.
func parseEmployeeForm(w http.ResponseWriter, r *http.Request) (core.Input, map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPhotoSize+maxFormMemory)
	if err := r.ParseMultipartForm(maxFormMemory); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return core.Input{}, nil, fmt.Errorf("parse form: %w", err)
	}

	in := core.Input{
		Name:       strings.TrimSpace(r.FormValue("name")),
		Number:     strings.TrimSpace(r.FormValue("number")),
		Position:   strings.TrimSpace(r.FormValue("position")),
		Department: r.FormValue("department"),
		DateJoined: r.FormValue("dateJoined"),
		Status:     r.FormValue("status"),
		Photo:      r.FormValue("photoCurrent"),
	}

	file, header, err := r.FormFile("photo")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return in, nil, nil
	case err != nil:
		return core.Input{}, nil, fmt.Errorf("read photo: %w", err)
	}
	defer file.Close()

	if header.Size == 0 {
		return in, nil, nil
	}
	photo, err := photoDataURL(file)
	switch {
	case errors.Is(err, errNotImage):
		return in, map[string]string{"photo": "photo must be an image file"}, nil
	case errors.Is(err, core.ErrFileTooLarge):
		return in, map[string]string{"photo": core.FormatUserError(err)}, nil
	case err != nil:
		return core.Input{}, nil, err
	}
	in.Photo = photo
	return in, nil, nil
}

// photoDataURL encodes an image file as a base64 data URL. The media type is
// sniffed from the content, not taken from the client.
func photoDataURL(f multipart.File) (string, error) {
	data, err := io.ReadAll(io.LimitReader(f, maxPhotoSize+1))
	if err != nil {
		return "", fmt.Errorf("read photo: %w", err)
	}
	if len(data) > maxPhotoSize {
		return "", fmt.Errorf("%w: photo limit is %d bytes", core.ErrFileTooLarge, maxPhotoSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return "", fmt.Errorf("%w: detected %s", errNotImage, mt.String())
	}
	mediaType, _, _ := strings.Cut(mt.String(), ";")
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}
