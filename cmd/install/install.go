package install

import (
	"github.com/itchio/ox"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/fetch"
	"github.com/stagehand-dcc/stagehand/greenroom"
)

var args = struct {
	app     *string
	version *string
}{}

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("install", "Download a DCC version into the cellar without launching it")
	args.app = cmd.Arg("app", "The DCC to install (blender)").Required().
		Enum("maya", "mayapy", "mobu", "mobupy", "blender")
	args.version = cmd.Arg("version", "The version to install").Required().String()
	ctx.Register(cmd, do)
}

func do(ctx *greenroom.Context) {
	ctx.Must(Do(ctx, catalog.App(*args.app), *args.version))
}

func Do(ctx *greenroom.Context, app catalog.App, version string) error {
	platform := ox.CurrentRuntime().Platform
	spec, ok := ctx.Catalog.Lookup(app, version, platform)
	if !ok {
		return errors.Errorf("%s %s is not supported on %s", app, version, platform)
	}

	comm.Opf("Installing %s", spec)

	comm.StartProgress()
	exe, err := fetch.Install(comm.NewStateConsumer(), ctx.HTTPClient, spec, ctx.CellarDir(spec))
	comm.EndProgress()

	if err != nil {
		return err
	}

	comm.Statf("Installed: %s", exe)
	comm.Result(exe)
	return nil
}
