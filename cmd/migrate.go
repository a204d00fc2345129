package cmd

import (
	"github.com/nvembar/onehundredbeers/pkg/model"
)

type MigrateCmd struct {
	ConfigFile string `default:".onehundredbeers.toml" help:"Path to config file" short:"c"`
}

func (m *MigrateCmd) Run(_ *Context) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	repo, err := openRepository(m.ConfigFile, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	return repo.DB.AutoMigrate(
		&model.Player{},
		&model.Beer{}, &model.Brewery{},
		&model.Contest{}, &model.ContestPlayer{},
		&model.ContestBeer{}, &model.ContestBrewery{}, &model.ContestBonus{},
		&model.UnvalidatedCheckin{}, &model.ContestCheckin{})
}
