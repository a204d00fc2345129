package cmd

import (
	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/configs"
	"github.com/nvembar/onehundredbeers/pkg/repository"
)

type Context struct {
	Debug bool
}

var CLI struct {
	Debug bool `help:"Enable debug mode"`

	Migrate      MigrateCmd      `cmd:"" help:"Run database migrations"`
	NewContest   NewContestCmd   `cmd:"" help:"Create a contest from a beer list CSV"`
	LoadCheckins LoadCheckinsCmd `cmd:"" help:"Pull player feeds into unvalidated checkins"`
	ParseCheckin ParseCheckinCmd `cmd:"" help:"Back-fill an unvalidated checkin from its untappd page"`
	Standings    StandingsCmd    `cmd:"" default:"1"                                               help:"Print the contest leaderboard"`
}

func newLogger() *zap.Logger {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()

	return logger
}

func openRepository(configFile string, logger *zap.Logger) (*repository.Repository, error) {
	conf, err := configs.GetConfig(configFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return nil, err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Error("error connecting to database", zap.Error(err))

		return nil, err
	}

	return repo, nil
}
