// Package loader bulk-creates a contest and its beer list from a CSV
// stream. The whole load is one transaction: a malformed row aborts
// everything.
package loader

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nvembar/onehundredbeers/pkg/contest"
	"github.com/nvembar/onehundredbeers/pkg/model"
	"github.com/nvembar/onehundredbeers/pkg/repository"
)

// Columns of the beer list CSV. The first row is a header and is
// skipped.
const (
	breweryNameIndex = 0
	beerNameIndex    = 1
	untappdLinkIndex = 2
	beerStateIndex   = 3
	beerPointsIndex  = 4
	columnCount      = 5
)

// CreateContestFromCSV creates a contest owned by the creator, enrolls
// the creator as its first player, and adds one contest beer per CSV
// row, reusing catalog beers that already exist. Any malformed row fails
// the whole load.
func CreateContestFromCSV(ctx context.Context, repo *repository.Repository, logger *zap.Logger, name string, startDate time.Time, endDate time.Time, creator *model.Player, stream io.Reader) (*model.Contest, error) {
	if !startDate.Before(endDate) {
		return nil, fmt.Errorf("%w: contest start must precede its end", contest.ErrValidation)
	}

	var created *model.Contest

	err := repo.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &repository.Repository{DB: tx, Logger: repo.Logger}

		con := &model.Contest{
			Name:      name,
			CreatorID: creator.ID,
			StartDate: startDate,
			EndDate:   endDate,
		}

		if err := txRepo.CreateContest(ctx, con); err != nil {
			return err
		}

		runner := &model.ContestPlayer{
			ContestID:       con.ID,
			PlayerID:        creator.ID,
			UserName:        creator.Username,
			LastCheckinLoad: con.StartDate,
		}

		if err := txRepo.CreateContestPlayer(ctx, runner); err != nil {
			return err
		}

		if err := loadBeers(ctx, txRepo, logger, con, stream); err != nil {
			return err
		}

		created = con

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func loadBeers(ctx context.Context, repo *repository.Repository, logger *zap.Logger, con *model.Contest, stream io.Reader) error {
	reader := csv.NewReader(stream)
	reader.FieldsPerRecord = columnCount

	line := 0

	for {
		row, err := reader.Read()
		if err == io.EOF {
			return nil
		}

		line++

		if err != nil {
			return fmt.Errorf("%w: line %d: %v", contest.ErrValidation, line, err)
		}

		// Header row.
		if line == 1 {
			continue
		}

		points, err := strconv.Atoi(row[beerPointsIndex])
		if err != nil {
			return fmt.Errorf("%w: invalid point value %q on line %d",
				contest.ErrValidation, row[beerPointsIndex], line)
		}

		beer, err := repo.FindOrCreateBeer(ctx, model.Beer{
			Name:         row[beerNameIndex],
			Brewery:      row[breweryNameIndex],
			BreweryState: row[beerStateIndex],
			UntappdURL:   optional(row[untappdLinkIndex]),
		})
		if err != nil {
			return err
		}

		logger.Info("adding beer to contest",
			zap.String("contest", con.Name), zap.String("beer", beer.Name),
			zap.String("brewery", beer.Brewery), zap.Int("points", points))

		contestBeer := &model.ContestBeer{
			ContestID:   con.ID,
			BeerID:      beer.ID,
			BeerName:    beer.Name,
			BreweryName: beer.Brewery,
			PointValue:  points,
		}

		if err := repo.CreateContestBeer(ctx, contestBeer); err != nil {
			return err
		}
	}
}

func optional(value string) *string {
	if value == "" {
		return nil
	}

	return &value
}
