package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/desertthunder/evloca/internal/shared"
)

// Form is a multipart body made of ordered text fields and file parts.
type Form struct {
	fields []formField
	files  []formFile
}

type formField struct {
	name, value string
}

type formFile struct {
	field, filename string
	path            string
	reader          io.Reader
}

func NewForm() *Form { return &Form{} }

// Set appends a text field.
func (f *Form) Set(name, value string) *Form {
	f.fields = append(f.fields, formField{name, value})
	return f
}

// SetIf appends a text field only when value is non-empty.
func (f *Form) SetIf(name, value string) *Form {
	if value != "" {
		f.Set(name, value)
	}
	return f
}

// AttachFile adds the file at path under field. An empty path is ignored.
// The file is opened when the form is encoded.
func (f *Form) AttachFile(field, path string) *Form {
	if path != "" {
		f.files = append(f.files, formFile{field: field, filename: filepath.Base(path), path: path})
	}
	return f
}

// Attach adds a file part read from r.
func (f *Form) Attach(field, filename string, r io.Reader) *Form {
	f.files = append(f.files, formFile{field: field, filename: filename, reader: r})
	return f
}

// Value returns the first value of a text field.
func (f *Form) Value(name string) (string, bool) {
	for _, fl := range f.fields {
		if fl.name == name {
			return fl.value, true
		}
	}
	return "", false
}

// HasFile reports whether a file part is attached under field.
func (f *Form) HasFile(field string) bool {
	for _, fl := range f.files {
		if fl.field == field {
			return true
		}
	}
	return false
}

// encode writes the multipart body and returns it with its boundary content type.
func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if f != nil {
		for _, fl := range f.fields {
			if err := w.WriteField(fl.name, fl.value); err != nil {
				return nil, "", fmt.Errorf("failed to write field %s: %w", fl.name, err)
			}
		}
		for _, fl := range f.files {
			if err := writeFilePart(w, fl); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to close multipart body: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, fl formFile) error {
	src := fl.reader
	if src == nil {
		file, err := os.Open(fl.path)
		if err != nil {
			return fmt.Errorf("%w: cannot read %s: %v", shared.ErrInvalidInput, fl.path, err)
		}
		defer file.Close()
		src = file
	}

	part, err := w.CreateFormFile(fl.field, fl.filename)
	if err != nil {
		return fmt.Errorf("failed to create file part %s: %w", fl.field, err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy %s: %w", fl.filename, err)
	}
	return nil
}
