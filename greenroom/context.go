package greenroom

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/itchio/httpkit/timeout"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/comm"
	kingpin "gopkg.in/alecthomas/kingpin.v2"
)

// RootDirEnvVar overrides where stagehand keeps everything it owns
// (downloaded DCCs, materialized bootstrap scripts, settings file).
const RootDirEnvVar = "STAGEHAND_ROOT_DIR"

type DoCommand func(ctx *Context)

type Context struct {
	App      *kingpin.Application
	Commands map[string]DoCommand

	// VersionString is the complete version string
	VersionString string

	// Version is just the version number, as a string
	Version string

	// Quiet silences all output
	Quiet bool

	// Verbose enables chatty output
	Verbose bool

	// JSON enables JSON-lines output
	JSON bool

	// RootDir is where stagehand keeps its own files, ~/.stagehand by default
	RootDir string

	// CellarRoot is the directory under which downloaded DCC versions accumulate
	CellarRoot string

	Settings Settings
	Catalog  *catalog.Catalog

	HTTPClient *http.Client
}

func NewContext(app *kingpin.Application) *Context {
	ctx := &Context{
		App:        app,
		Commands:   make(map[string]DoCommand),
		RootDir:    defaultRootDir(),
		Catalog:    catalog.Default(),
		HTTPClient: timeout.NewDefaultClient(),
	}

	settings, err := LoadSettings(ctx.RootDir)
	if err != nil {
		comm.Warnf("Ignoring settings file: %s", err.Error())
	}
	ctx.Settings = settings

	ctx.CellarRoot = filepath.Join(ctx.RootDir, "cellar")
	if settings.Cellar != "" {
		ctx.CellarRoot = settings.Cellar
	}

	return ctx
}

func (ctx *Context) Register(clause *kingpin.CmdClause, do DoCommand) {
	ctx.Commands[clause.FullCommand()] = do
}

func (ctx *Context) Must(err error) {
	if err != nil {
		if ctx.Verbose || ctx.JSON {
			comm.Dief("%+v", err)
		} else {
			comm.Dief("%s", err)
		}
	}
}

// CellarDir returns the managed install directory for a given DCC.
// Interpreter variants (mayapy, mobupy) share their host app's cellar.
func (ctx *Context) CellarDir(spec catalog.Spec) string {
	return filepath.Join(ctx.CellarRoot, spec.CellarName)
}

func (ctx *Context) UserAgent() string {
	return "stagehand/" + ctx.VersionString
}

func defaultRootDir() string {
	if dir := os.Getenv(RootDirEnvVar); dir != "" {
		return dir
	}

	home, err := os.UserHomeDir()
	if err != nil {
		// no home dir at all - a temp root still lets us launch
		return filepath.Join(os.TempDir(), "stagehand")
	}
	return filepath.Join(home, ".stagehand")
}
