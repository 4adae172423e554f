package locate

import (
	"github.com/itchio/ox"
	"github.com/pkg/errors"
	"github.com/stagehand-dcc/stagehand/catalog"
	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/greenroom"
	locator "github.com/stagehand-dcc/stagehand/locate"
)

var args = struct {
	app     *string
	version *string
}{}

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("locate", "Print the path a DCC version would launch from")
	args.app = cmd.Arg("app", "The DCC to locate").Required().
		Enum("maya", "mayapy", "mobu", "mobupy", "blender")
	args.version = cmd.Arg("version", "The version to locate").Required().String()
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

	exe, err := locator.Resolve(comm.NewStateConsumer(), spec, ctx.CellarDir(spec), "")
	if err != nil {
		return err
	}

	comm.ResultOrPrint(exe, func() {
		comm.Logf("%s", exe)
	})
	return nil
}
