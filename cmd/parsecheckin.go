package cmd

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/configs"
	"github.com/nvembar/onehundredbeers/pkg/integrations"
)

var errNoIntegration = errors.New("no checkin integration configured")

type ParseCheckinCmd struct {
	ConfigFile string `default:".onehundredbeers.toml" help:"Path to config file"                 short:"c"`
	CheckinID  uint   `arg:""                          help:"Unvalidated checkin ID to back-fill"`
}

// Run re-scrapes the checkin's untappd page and back-fills the stored
// record with canonical URLs, the photo, and the rating. The record's
// identity and extracted names are left alone; this is enrichment only.
func (p *ParseCheckinCmd) Run(_ *Context) error {
	logger := newLogger()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	conf, err := configs.GetConfig(p.ConfigFile, logger)
	if err != nil {
		return err
	}

	repo, err := openRepository(p.ConfigFile, logger)
	if err != nil {
		return err
	}
	defer repo.Close()

	ctx := context.Background()

	checkin, err := repo.GetUnvalidatedCheckin(ctx, p.CheckinID)
	if err != nil {
		logger.Error("no such unvalidated checkin", zap.Uint("id", p.CheckinID), zap.Error(err))

		return err
	}

	for _, name := range conf.Integrations.Checkin {
		integration := integrations.GetIntegration(name, logger)
		if integration == nil {
			continue
		}

		parsed, err := integration.ParseCheckin(checkin.UntappdCheckin)
		if err != nil {
			logger.Error("failed to parse checkin page",
				zap.String("integration", name),
				zap.String("url", checkin.UntappdCheckin), zap.Error(err))

			continue
		}

		checkin.BeerURL = parsed.BeerURL
		checkin.BreweryURL = parsed.BreweryURL
		checkin.PhotoURL = parsed.PhotoURL
		checkin.Rating = parsed.Rating

		if parsed.UntappdTitle != "" {
			checkin.UntappdTitle = parsed.UntappdTitle
		}

		if err := repo.SaveUnvalidatedCheckin(ctx, checkin); err != nil {
			return err
		}

		logger.Info("back-filled checkin",
			zap.Uint("id", checkin.ID), zap.String("beer", checkin.Beer))

		return nil
	}

	return errNoIntegration
}
