package modio

import (
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormEncode(t *testing.T) {
	dir := t.TempDir()
	zipPath := filepath.Join(dir, "release.zip")
	require.NoError(t, os.WriteFile(zipPath, []byte("zip bytes"), 0o644))

	form := NewForm().
		AddField("version", "1.0.0").
		AddField("changelog", "initial release").
		AddFile("filedata", zipPath).
		AddReader("logo", "logo.png", strings.NewReader("png bytes"))

	body, contentType, err := form.encode()
	require.NoError(t, err)

	mediaType, params, err := mime.ParseMediaType(contentType)
	require.NoError(t, err)
	require.Equal(t, "multipart/form-data", mediaType)
	require.NotEmpty(t, params["boundary"])

	reader := multipart.NewReader(body, params["boundary"])
	parts := map[string]string{}
	fileNames := map[string]string{}
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		data, err := io.ReadAll(part)
		require.NoError(t, err)
		parts[part.FormName()] = string(data)
		fileNames[part.FormName()] = part.FileName()
	}

	assert.Equal(t, "1.0.0", parts["version"])
	assert.Equal(t, "initial release", parts["changelog"])
	assert.Equal(t, "zip bytes", parts["filedata"])
	assert.Equal(t, "release.zip", fileNames["filedata"])
	assert.Equal(t, "png bytes", parts["logo"])
	assert.Equal(t, "logo.png", fileNames["logo"])
}

func TestFormMissingFile(t *testing.T) {
	form := NewForm().AddFile("filedata", filepath.Join(t.TempDir(), "missing.zip"))
	_, _, err := form.encode()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"filedata"`)
}

func TestAddModFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "2.0.0", r.FormValue("version"))

		file, header, err := r.FormFile("filedata")
		require.NoError(t, err)
		defer file.Close()
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "zip bytes", string(data))
		assert.Equal(t, "mod.zip", header.Filename)

		writeJSON(t, w, http.StatusCreated, File{ID: 42, Version: "2.0.0"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Token("tok"))
	form := NewForm().
		AddField("version", "2.0.0").
		AddReader("filedata", "mod.zip", strings.NewReader("zip bytes"))

	file, err := client.AddModFile(context.Background(), 1, 2, form)
	require.NoError(t, err)
	assert.Equal(t, int64(42), file.ID)
}

func TestAddModFileUnreadablePart(t *testing.T) {
	// The form references a file that does not exist; the request must
	// fail during construction, before any network I/O.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should reach the server")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, Token("tok"))
	form := NewForm().AddFile("filedata", filepath.Join(t.TempDir(), "missing.zip"))
	_, err := client.AddModFile(context.Background(), 1, 2, form)
	require.Error(t, err)
	var be *BuilderError
	assert.ErrorAs(t, err, &be)
}
