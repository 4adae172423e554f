// Package launcher ties resolution, provisioning, and environment
// composition together and actually starts the DCC. One Launch call owns
// one child process from resolve to exit.
package launcher

import (
	"io"
	"net/http"
	"os"
	"os/exec"

	"github.com/itchio/wharf/state"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/cmd/wipe"
	"github.com/stagehand-dcc/stagehand/fetch"
	"github.com/stagehand-dcc/stagehand/launchenv"
	"github.com/stagehand-dcc/stagehand/locate"
	"github.com/stagehand-dcc/stagehand/scripts"
)

// Request is built fresh for every launch; nothing in it is reused or
// mutated across calls.
type Request struct {
	Spec catalog.Spec

	// Override skips discovery entirely when set (must be an existing file)
	Override string

	// AutoInstall downloads the version into the cellar when discovery fails
	AutoInstall bool

	Args []string
	Env  launchenv.Options

	// TempConfigDir launches with the app's user-config dir pointed at a
	// fresh temp dir, removed when the child exits
	TempConfigDir bool

	RootDir   string
	CellarDir string

	Consumer   *state.Consumer
	HTTPClient *http.Client

	// std streams default to the stagehand process's own
	Stdin          io.Reader
	Stdout, Stderr io.Writer
}

// Launch resolves, prepares and runs the DCC, blocking until it exits.
// The child's exit code is returned verbatim; err is non-nil only for
// failures of stagehand's own doing (resolution, download, spawn).
func Launch(req Request) (int, error) {
	consumer := req.Consumer

	exe, err := resolve(req)
	if err != nil {
		return 0, err
	}

	bootstrapDir, err := scripts.Ensure(req.RootDir, req.Spec.App)
	if err != nil {
		return 0, err
	}

	opts := req.Env
	opts.Spec = req.Spec
	opts.BootstrapDir = bootstrapDir
	env := launchenv.Build(os.Environ(), opts)

	if req.TempConfigDir {
		configDir, err := os.MkdirTemp("", "stagehand-config-")
		if err != nil {
			return 0, errors.WithMessage(err, "creating temp config dir")
		}
		consumer.Infof("Created temp config dir: %s", configDir)

		// removal must happen whether the child runs, fails, or never starts
		defer func() {
			if wipeErr := wipe.Do(consumer, configDir); wipeErr != nil {
				consumer.Warnf("%s", wipeErr.Error())
			} else {
				consumer.Infof("Deleted temp config dir: %s", configDir)
			}
		}()

		env = launchenv.Set(env, req.Spec.Env.ConfigDir, configDir)
	}

	consumer.Infof("Launching %s", exe)

	cmd := exec.Command(exe, req.Args...)
	cmd.Env = env
	cmd.Stdin = orStdin(req.Stdin)
	cmd.Stdout = orStdout(req.Stdout)
	cmd.Stderr = orStderr(req.Stderr)

	err = cmd.Run()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			// the DCC ran and failed; that's its business, pass the code along
			return exitError.ExitCode(), nil
		}
		return 0, errors.WithMessagef(err, "launching %s", exe)
	}

	return 0, nil
}

// resolve runs discovery, falling back to a one-shot install + rediscovery
// when the caller allows it.
func resolve(req Request) (string, error) {
	exe, err := locate.Resolve(req.Consumer, req.Spec, req.CellarDir, req.Override)
	if err == nil {
		return exe, nil
	}

	var notFound *locate.ExecutableNotFound
	if !errors.As(err, &notFound) || !req.AutoInstall {
		return "", err
	}

	req.Consumer.Infof("%s, installing it", notFound.Error())
	_, err = fetch.Install(req.Consumer, req.HTTPClient, req.Spec, req.CellarDir)
	if err != nil {
		return "", err
	}

	return locate.Resolve(req.Consumer, req.Spec, req.CellarDir, req.Override)
}

func orStdin(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return os.Stdin
}

func orStdout(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stdout
}

func orStderr(w io.Writer) io.Writer {
	if w != nil {
		return w
	}
	return os.Stderr
}
