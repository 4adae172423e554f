package mobu

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
)

var args = struct {
	flags         *dccflag.Flags
	pluginPath    *[]string
	modulePath    *[]string
	pythonStartup *[]string
}{}

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("mobu", "Launch Autodesk MotionBuilder")
	args.flags = dccflag.Register(cmd, ctx.Catalog.Versions(catalog.AppMobu), "2025")
	args.pluginPath = cmd.Flag("plugin-path", "Extra paths to add to MOTIONBUILDER_PLUGIN_PATH").Strings()
	args.modulePath = cmd.Flag("module-path", "Extra paths to add to MOTIONBUILDER_MODULE_PATH").Strings()
	args.pythonStartup = cmd.Flag("python-startup", "Extra paths to add to MOTIONBUILDER_PYTHON_STARTUP").Strings()
	ctx.Register(cmd, do)
}

func do(ctx *greenroom.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *greenroom.Context) error {
	consumer := comm.NewStateConsumer()

	platform := ox.CurrentRuntime().Platform
	spec, ok := ctx.Catalog.Lookup(catalog.AppMobu, *args.flags.Version, platform)
	if !ok {
		return errors.Errorf("mobu %s is not supported on %s", *args.flags.Version, platform)
	}

	sitePaths, err := args.flags.SitePaths(consumer, spec)
	if err != nil {
		return err
	}

	extraArgs, err := ctx.Settings.ExtraArgs("mobu")
	if err != nil {
		comm.Warnf("%s", err.Error())
	}

	code, err := launcher.Launch(launcher.Request{
		Spec:     spec,
		Override: *args.flags.Executable,
		Args:     append(extraArgs, *args.flags.Args...),
		Env: launchenv.Options{
			PluginPaths:  *args.pluginPath,
			ModulePaths:  *args.modulePath,
			StartupPaths: *args.pythonStartup,
			SitePaths:    sitePaths,
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
		comm.Debugf("mobu exited with code %d", code)
		os.Exit(code)
	}
	return nil
}
