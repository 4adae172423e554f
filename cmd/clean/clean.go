package clean

import (
	"os"

	"github.com/stagehand-dcc/stagehand/cmd/wipe"
	"github.com/stagehand-dcc/stagehand/comm"
	"github.com/stagehand-dcc/stagehand/greenroom"
)

func Register(ctx *greenroom.Context) {
	cmd := ctx.App.Command("clean", "Remove every DCC version stagehand has downloaded")
	ctx.Register(cmd, do)
}

func do(ctx *greenroom.Context) {
	ctx.Must(Do(ctx))
}

func Do(ctx *greenroom.Context) error {
	_, err := os.Stat(ctx.CellarRoot)
	if os.IsNotExist(err) {
		comm.Logf("Cellar %s is already gone", ctx.CellarRoot)
		return nil
	}

	err = wipe.Do(comm.NewStateConsumer(), ctx.CellarRoot)
	if err != nil {
		return err
	}

	comm.Statf("Cleared cellar %s", ctx.CellarRoot)
	return nil
}
