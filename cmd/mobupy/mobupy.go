package mobupy

import (
	"os"

	"github.com/itchio/ox"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/cmd/dccflag"
	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/greenroom"
	"github.com/stagehand-dcc/stagehand/launchenv"
	"github.com/stagehand-dcc/stagehand/launcher"
	"github.com/stagehand-dcc/stagehand/scripts"
)

var args = struct {
	flags *dccflag.Flags
}{}

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("mobupy", "Launch MotionBuilder's standalone python interpreter")
	args.flags = dccflag.Register(cmd, ctx.Catalog.Versions(catalog.AppMobupy), "2025")
	ctx.Register(cmd, do)
}

func do(ctx *greenroom.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *greenroom.Context) error {
	consumer := comm.NewStateConsumer()

	platform := ox.CurrentRuntime().Platform
	spec, ok := ctx.Catalog.Lookup(catalog.AppMobupy, *args.flags.Version, platform)
	if !ok {
		return errors.Errorf("mobupy %s is not supported on %s", *args.flags.Version, platform)
	}

	sitePaths, err := args.flags.SitePaths(consumer, spec)
	if err != nil {
		return err
	}

	extraArgs, err := ctx.Settings.ExtraArgs("mobupy")
	if err != nil {
		comm.Warnf("%s", err.Error())
	}

	code, err := launcher.Launch(launcher.Request{
		Spec:     spec,
		Override: *args.flags.Executable,
		Args:     append(extraArgs, *args.flags.Args...),
		Env: launchenv.Options{
			SitePaths: sitePaths,
			// mobupy is a plain interpreter, the bootstrap runs via PYTHONSTARTUP
			PythonStartupFile: scripts.StartupFile(ctx.RootDir, catalog.AppMobupy),
		},
		TempConfigDir: *args.flags.TempConfigDir,
		RootDir:       ctx.RootDir,
		CellarDir:     ctx.CellarDir(spec),
		Consumer:      consumer,
		HTTPClient:    ctx.HTTPClient,
	})
	if err != nil {
		return err
	}

	if code != 0 {
		comm.Debugf("mobupy exited with code %d", code)
		os.Exit(code)
	}
	return nil
}
