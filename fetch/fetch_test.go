package fetch_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/itchio/wharf/state"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeTestConsumer(t *testing.T) *state.Consumer {
	return &state.Consumer{
		OnMessage: func(lvl string, msg string) {
			t.Logf("[%s] %s", lvl, msg)
		},
	}
}

// makeArchive builds a zip holding the given slash-separated file paths.
func makeArchive(t *testing.T, paths ...string) []byte {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	for _, path := range paths {
		w, err := zw.Create(path)
		require.NoError(t, err)
		_, err = w.Write([]byte("fake dcc binary\n"))
		require.NoError(t, err)
	}

	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func serve(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server
}

func makeSpec(url string) catalog.Spec {
	return catalog.Spec{
		App:            catalog.AppBlender,
		Version:        "4.3",
		DownloadURL:    url,
		ArchiveFormat:  "zip",
		InstallDirName: "blender-4.3.2-test-x64",
		ExeRelPath:     "blender",
		CellarName:     "blender",
	}
}

// assertNoTempArchives checks no tmp-*.zip survived the install attempt.
func assertNoTempArchives(t *testing.T, cellarDir string) {
	entries, err := os.ReadDir(cellarDir)
	if os.IsNotExist(err) {
		return
	}
	require.NoError(t, err)

	for _, entry := range entries {
		assert.False(t, strings.HasPrefix(entry.Name(), "tmp-"), "leftover temp archive %s", entry.Name())
	}
}

func Test_Install(t *testing.T) {
	archive := makeArchive(t,
		"blender-4.3.2-test-x64/blender",
		"blender-4.3.2-test-x64/4.3/python/lib/site.py",
	)
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})

	cellarDir := filepath.Join(t.TempDir(), "blender")

	exe, err := fetch.Install(makeTestConsumer(t), server.Client(), makeSpec(server.URL+"/blender.zip"), cellarDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(cellarDir, "blender-4.3.2-test-x64", "blender"), exe)

	stats, err := os.Stat(exe)
	require.NoError(t, err)
	assert.False(t, stats.IsDir())

	_, err = os.Stat(filepath.Join(cellarDir, "blender-4.3.2-test-x64", "4.3", "python", "lib", "site.py"))
	assert.NoError(t, err)

	assertNoTempArchives(t, cellarDir)
}

func Test_InstallNoDownload(t *testing.T) {
	spec := catalog.Spec{
		App:     catalog.AppMaya,
		Version: "2025",
	}

	_, err := fetch.Install(makeTestConsumer(t), http.DefaultClient, spec, t.TempDir())
	require.Error(t, err)

	var noDownload *fetch.NoDownload
	require.True(t, errors.As(err, &noDownload))
	assert.Equal(t, catalog.AppMaya, noDownload.Spec.App)
}

func Test_InstallDownloadFailed(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	cellarDir := filepath.Join(t.TempDir(), "blender")

	_, err := fetch.Install(makeTestConsumer(t), server.Client(), makeSpec(server.URL+"/gone.zip"), cellarDir)
	require.Error(t, err)

	var failed *fetch.DownloadFailed
	require.True(t, errors.As(err, &failed))
	assert.Contains(t, failed.Status, "404")

	assertNoTempArchives(t, cellarDir)
}

func Test_InstallExtractionFailed(t *testing.T) {
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not an archive at all"))
	})

	cellarDir := filepath.Join(t.TempDir(), "blender")

	_, err := fetch.Install(makeTestConsumer(t), server.Client(), makeSpec(server.URL+"/garbage.zip"), cellarDir)
	require.Error(t, err)

	var extraction *fetch.ExtractionFailed
	require.True(t, errors.As(err, &extraction))

	assertNoTempArchives(t, cellarDir)
}

func Test_InstallVerificationFailed(t *testing.T) {
	// archive extracts fine but holds no executable where one is expected
	archive := makeArchive(t, "blender-4.3.2-test-x64/README.txt")
	server := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write(archive)
	})

	cellarDir := filepath.Join(t.TempDir(), "blender")

	_, err := fetch.Install(makeTestConsumer(t), server.Client(), makeSpec(server.URL+"/blender.zip"), cellarDir)
	require.Error(t, err)

	var verification *fetch.VerificationFailed
	require.True(t, errors.As(err, &verification))
	assert.Equal(t, filepath.Join(cellarDir, "blender-4.3.2-test-x64", "blender"), verification.ExpectedPath)

	assertNoTempArchives(t, cellarDir)
}
