package cmd

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/loader"
)

type NewContestCmd struct {
	ConfigFile string    `default:".onehundredbeers.toml" help:"Path to config file" short:"c"`
	Name       string    `arg:""                          help:"Contest name"`
	BeerList   string    `arg:""                          help:"Path to the beer list CSV"            type:"existingfile"`
	Runner     string    `help:"Username of the contest runner"                      required:""`
	Start      time.Time `format:"2006-01-02"             help:"Contest start date"  required:""`
	End        time.Time `format:"2006-01-02"             help:"Contest end date"    required:""`
}

func (n *NewContestCmd) Run(_ *Context) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	repo, err := openRepository(n.ConfigFile, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()

	runner, err := repo.GetPlayerByUsername(ctx, n.Runner)
	if err != nil {
		logger.Error("could not find contest runner", zap.String("runner", n.Runner), zap.Error(err))

		return err
	}

	stream, err := os.Open(n.BeerList)
	if err != nil {
		return err
	}
	defer stream.Close() //nolint:errcheck // read-only file

	con, err := loader.CreateContestFromCSV(ctx, repo, logger, n.Name, n.Start, n.End, runner, stream)
	if err != nil {
		logger.Error("contest load failed", zap.String("contest", n.Name), zap.Error(err))

		return err
	}

	logger.Info("created contest",
		zap.String("contest", con.Name), zap.Uint("id", con.ID),
		zap.Time("start", con.StartDate), zap.Time("end", con.EndDate))

	return nil
}
