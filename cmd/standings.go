package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/contest"
)

type StandingsCmd struct {
	ConfigFile string `default:".onehundredbeers.toml" help:"Path to config file" short:"c"`
	Contest    string `arg:""                          help:"Contest name"`
}

func (s *StandingsCmd) Run(_ *Context) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	repo, err := openRepository(s.ConfigFile, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()

	con, err := repo.GetContestByName(ctx, s.Contest)
	if err != nil {
		logger.Error("no such contest", zap.String("contest", s.Contest), zap.Error(err))

		return err
	}

	engine := contest.NewEngine(repo, logger, contest.Policy{})

	ranked, err := engine.RankedPlayers(ctx, con.ID)
	if err != nil {
		return err
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintf(writer, "rank\tplayer\tbeers\ttotal\n")

	for _, entry := range ranked {
		fmt.Fprintf(writer, "%d\t%s\t%d\t%d\n",
			entry.Rank, entry.Player.UserName, entry.Player.BeerCount, entry.Player.TotalPoints)
	}

	return writer.Flush()
}
