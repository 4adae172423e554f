// Package fetch downloads a DCC version from the vendor's archive server
// and installs it into the cellar. The flow is: GET the archive, stream it
// to a uniquely-named temp file next to its destination, extract, then
// verify the executable actually came out of the archive. The temp archive
// is removed on every exit path, success or not.
package fetch

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/itchio/boar"
	"github.com/itchio/headway/counter"
	"github.com/itchio/headway/united"
	"github.com/itchio/savior"
	"github.com/itchio/wharf/eos"
	"github.com/itchio/wharf/eos/option"
	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
)

// NoDownload means the catalog has no archive for this combination: the
// vendor simply doesn't publish one (Maya, MotionBuilder).
type NoDownload struct {
	Spec catalog.Spec
}

func (e *NoDownload) Error() string {
	return fmt.Sprintf("no downloadable archive known for %s", e.Spec)
}

// DownloadFailed is a non-2xx response or a network-level failure.
type DownloadFailed struct {
	URL    string
	Status string
}

func (e *DownloadFailed) Error() string {
	return fmt.Sprintf("download of %s failed: %s", e.URL, e.Status)
}

// ExtractionFailed is a local IO error while unpacking the archive.
type ExtractionFailed struct {
	Archive string
	Err     error
}

func (e *ExtractionFailed) Error() string {
	return fmt.Sprintf("extracting %s: %s", e.Archive, e.Err)
}

func (e *ExtractionFailed) Unwrap() error {
	return e.Err
}

// VerificationFailed means the archive extracted cleanly but the expected
// executable wasn't in it.
type VerificationFailed struct {
	ExpectedPath string
}

func (e *VerificationFailed) Error() string {
	return fmt.Sprintf("archive extracted but expected executable is missing: %s", e.ExpectedPath)
}

// Install downloads and extracts a DCC version into cellarDir, returning
// the path of the freshly-installed executable. It never retries: a caller
// wanting another attempt calls it again.
func Install(consumer *state.Consumer, client *http.Client, spec catalog.Spec, cellarDir string) (string, error) {
	if spec.DownloadURL == "" {
		return "", errors.WithStack(&NoDownload{Spec: spec})
	}

	err := os.MkdirAll(cellarDir, 0o755)
	if err != nil {
		return "", errors.WithMessagef(err, "creating cellar dir %s", cellarDir)
	}

	consumer.Infof("Downloading %s from %s", spec, spec.DownloadURL)

	req, err := http.NewRequest("GET", spec.DownloadURL, nil)
	if err != nil {
		return "", errors.WithStack(err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", errors.WithMessagef(err, "downloading %s", spec.DownloadURL)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return "", errors.WithStack(&DownloadFailed{
			URL:    spec.DownloadURL,
			Status: resp.Status,
		})
	}

	archivePath := filepath.Join(cellarDir, fmt.Sprintf("tmp-%s.%s", uuid.New(), spec.ArchiveFormat))
	err = writeArchive(consumer, archivePath, resp.Body, resp.ContentLength)

	// the temp archive never outlives this call, whatever happens next
	defer os.Remove(archivePath)

	if err != nil {
		return "", errors.WithMessagef(err, "writing archive to %s", archivePath)
	}

	err = extract(consumer, archivePath, cellarDir)
	if err != nil {
		return "", errors.WithStack(&ExtractionFailed{Archive: archivePath, Err: err})
	}

	exe := filepath.Join(cellarDir, spec.InstallDirName, filepath.FromSlash(spec.ExeRelPath))
	stats, err := os.Stat(exe)
	if err != nil || stats.IsDir() {
		return "", errors.WithStack(&VerificationFailed{ExpectedPath: exe})
	}

	consumer.Infof("Installed %s to %s", spec, filepath.Join(cellarDir, spec.InstallDirName))
	return exe, nil
}

func writeArchive(consumer *state.Consumer, archivePath string, body io.Reader, totalBytes int64) error {
	if totalBytes > 0 {
		consumer.Infof("Fetching %s", united.FormatBytes(totalBytes))
	}

	out, err := os.Create(archivePath)
	if err != nil {
		return errors.WithStack(err)
	}
	defer out.Close()

	prevPercent := 0.0
	onWrite := func(bytesDownloaded int64) {
		if totalBytes <= 0 {
			return
		}
		percent := float64(bytesDownloaded) / float64(totalBytes)
		if math.Abs(percent-prevPercent) < 0.0001 {
			return
		}

		prevPercent = percent
		consumer.Progress(percent)
	}

	_, err = io.Copy(counter.NewWriterCallback(onWrite, out), body)
	if err != nil {
		return errors.WithStack(err)
	}

	return errors.WithStack(out.Close())
}

func extract(consumer *state.Consumer, archivePath string, dir string) error {
	file, err := eos.Open(archivePath, option.WithConsumer(consumer))
	if err != nil {
		return errors.WithMessage(err, "opening archive file")
	}
	defer file.Close()

	archiveInfo, err := boar.Probe(&boar.ProbeParams{
		File:     file,
		Consumer: consumer,
	})
	if err != nil {
		return errors.WithMessage(err, "probing archive")
	}

	ex, err := archiveInfo.GetExtractor(file, consumer)
	if err != nil {
		return errors.WithMessage(err, "getting extractor for archive")
	}
	ex.SetConsumer(consumer)

	sink := &savior.FolderSink{
		Directory: dir,
	}

	res, err := ex.Resume(nil, sink)
	if err != nil {
		return errors.WithMessage(err, "extracting archive")
	}

	consumer.Infof("Extracted %s", united.FormatBytes(res.Size()))
	return nil
}
