package cmd

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/ingest"
	"github.com/nvembar/onehundredbeers/pkg/model"
)

type LoadCheckinsCmd struct {
	ConfigFile string     `default:".onehundredbeers.toml" help:"Path to config file" short:"c"`
	Player     string     `help:"Limit the load to one player's feed"`
	Contest    *uint      `help:"Limit the load to one contest ID"`
	AfterDate  *time.Time `format:"2006-01-02"             help:"Only load checkins published after this date"`
}

func (l *LoadCheckinsCmd) Run(_ *Context) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	repo, err := openRepository(l.ConfigFile, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()

	var players []model.Player

	if l.Player != "" {
		player, err := repo.GetPlayerByUsername(ctx, l.Player)
		if err != nil {
			logger.Error("no such player", zap.String("player", l.Player), zap.Error(err))

			return err
		}

		players = []model.Player{*player}
	} else {
		if players, err = repo.GetPlayers(ctx); err != nil {
			return err
		}
	}

	if l.Contest != nil {
		if _, err := repo.GetContest(ctx, *l.Contest); err != nil {
			logger.Error("no such contest", zap.Uintp("contest", l.Contest), zap.Error(err))

			return err
		}
	}

	checkinLoader := ingest.NewLoader(repo, ingest.NewRSSFeedSource(logger), logger)
	opts := ingest.LoadOptions{ContestID: l.Contest, FromDate: l.AfterDate}

	// One player's failure does not stop the rest of the run.
	for i := range players {
		stats, err := checkinLoader.LoadPlayerCheckins(ctx, &players[i], opts)
		if err != nil {
			logger.Error("checkin load failed",
				zap.String("player", players[i].Username), zap.Error(err))

			continue
		}

		logger.Info("loaded checkins",
			zap.String("player", players[i].Username),
			zap.Int("created", stats.Created),
			zap.Int("skipped", stats.Skipped),
			zap.Int("malformed", stats.Malformed))
	}

	return nil
}
