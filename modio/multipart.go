package modio

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// Form collects fields and file attachments for a multipart POST, such
// as a modfile upload or a logo image. The dispatcher treats it as an
// opaque body; building the field list is the caller's job.
type Form struct {
	fields []formField
}

type formField struct {
	name     string
	value    string
	filePath string
	reader   io.Reader
	fileName string
}

// NewForm returns an empty multipart form.
func NewForm() *Form {
	return &Form{}
}

// AddField appends a plain text field.
func (f *Form) AddField(name, value string) *Form {
	f.fields = append(f.fields, formField{name: name, value: value})
	return f
}

// AddFile appends a file part read from disk when the form is encoded.
func (f *Form) AddFile(name, path string) *Form {
	f.fields = append(f.fields, formField{name: name, filePath: path})
	return f
}

// AddReader appends a file part streamed from r under the given file name.
func (f *Form) AddReader(name, fileName string, r io.Reader) *Form {
	f.fields = append(f.fields, formField{name: name, reader: r, fileName: fileName})
	return f
}

// encode converts the form into a transport body. It fails only on I/O
// errors while reading attached file parts.
func (f *Form) encode() (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for _, field := range f.fields {
		switch {
		case field.filePath != "":
			if err := writeFilePart(w, field.name, field.filePath); err != nil {
				return nil, "", err
			}
		case field.reader != nil:
			part, err := w.CreateFormFile(field.name, field.fileName)
			if err != nil {
				return nil, "", err
			}
			if _, err := io.Copy(part, field.reader); err != nil {
				return nil, "", fmt.Errorf("reading part %q: %w", field.name, err)
			}
		default:
			if err := w.WriteField(field.name, field.value); err != nil {
				return nil, "", err
			}
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}

func writeFilePart(w *multipart.Writer, name, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening part %q: %w", name, err)
	}
	defer file.Close()

	part, err := w.CreateFormFile(name, filepath.Base(path))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("reading part %q: %w", name, err)
	}
	return nil
}
