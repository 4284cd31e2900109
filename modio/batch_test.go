package modio

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownloadEach(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "/files/") {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":{"code":404,"error_ref":15010,"message":"no such file"}}`))
			return
		}
		fmt.Fprintf(w, "content of %s", filepath.Base(r.URL.Path))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := newTestClient(t, server.URL, APIKey("key"))

	reqs := []DownloadRequest{
		{Action: DownloadURL{URL: server.URL + "/a.zip"}, Path: filepath.Join(dir, "a.zip")},
		{Action: DownloadFile{GameID: 1, ModID: 2, FileID: 9}, Path: filepath.Join(dir, "broken.zip")},
		{Action: DownloadURL{URL: server.URL + "/c.zip"}, Path: filepath.Join(dir, "c.zip")},
	}

	results := client.DownloadEach(context.Background(), reqs, 2)
	require.Len(t, results, 3)

	assert.False(t, results[0].Failed())
	assert.Equal(t, reqs[0].Path, results[0].Path, "results keep request order")
	data, err := os.ReadFile(results[0].Path)
	require.NoError(t, err)
	assert.Equal(t, "content of a.zip", string(data))

	require.True(t, results[1].Failed(), "one failure must not stop the batch")
	assert.True(t, IsDownload(results[1].Err))
	assert.NoFileExists(t, results[1].Path)

	assert.False(t, results[2].Failed())
	assert.FileExists(t, results[2].Path)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, entry := range entries {
		assert.NotContains(t, entry.Name(), ".partial", "temp files must be cleaned up")
	}
}

func TestDownloadEachEmpty(t *testing.T) {
	client := newTestClient(t, "http://unused.invalid", APIKey("key"))
	results := client.DownloadEach(context.Background(), nil, 0)
	assert.Empty(t, results)
}

func TestDownloadEachBoundsConcurrency(t *testing.T) {
	var mu sync.Mutex
	var active, peak int
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		active++
		if active > peak {
			peak = active
		}
		mu.Unlock()

		<-release

		mu.Lock()
		active--
		mu.Unlock()
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := newTestClient(t, server.URL, APIKey("key"))

	var reqs []DownloadRequest
	for i := 0; i < 6; i++ {
		reqs = append(reqs, DownloadRequest{
			Action: DownloadURL{URL: server.URL},
			Path:   filepath.Join(dir, fmt.Sprintf("file-%d.zip", i)),
		})
	}

	done := make(chan []DownloadResult)
	go func() {
		done <- client.DownloadEach(context.Background(), reqs, 2)
	}()
	close(release)
	results := <-done

	require.Len(t, results, 6)
	for _, res := range results {
		assert.False(t, res.Failed())
	}
	mu.Lock()
	defer mu.Unlock()
	assert.LessOrEqual(t, peak, 2)
}

func TestDownloadEachCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	dir := t.TempDir()
	client := newTestClient(t, server.URL, APIKey("key"))
	reqs := []DownloadRequest{
		{Action: DownloadURL{URL: server.URL}, Path: filepath.Join(dir, "a.zip")},
		{Action: DownloadURL{URL: server.URL}, Path: filepath.Join(dir, "b.zip")},
	}

	results := client.DownloadEach(ctx, reqs, 1)
	require.Len(t, results, 2)
	for _, res := range results {
		if res.Failed() {
			assert.ErrorIs(t, res.Err, context.Canceled)
		}
	}
}

func TestDownloadToFileKeepsDestinationOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"code":404,"error_ref":15010,"message":"no such file"}}`))
	}))
	defer server.Close()

	dir := t.TempDir()
	dest := filepath.Join(dir, "mod.zip")
	require.NoError(t, os.WriteFile(dest, []byte("previous version"), 0o644))

	client := newTestClient(t, server.URL, APIKey("key"))
	reqs := []DownloadRequest{
		{Action: DownloadFile{GameID: 1, ModID: 2, FileID: 3}, Path: dest},
	}
	results := client.DownloadEach(context.Background(), reqs, 1)
	require.True(t, results[0].Failed())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "previous version", string(data), "a failed download must not clobber the old file")
}
