package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

var ErrAssociationNotFound = errors.New("contest association not found")

// FindOrCreateBeer looks a beer up by its (name, brewery) identity and
// creates it on first reference.
func (r *Repository) FindOrCreateBeer(ctx context.Context, beer model.Beer) (*model.Beer, error) {
	var existing model.Beer

	result := r.DB.WithContext(ctx).
		Where("name = ? AND brewery = ?", beer.Name, beer.Brewery).
		First(&existing)
	if result.Error == nil {
		return &existing, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	if result := r.DB.WithContext(ctx).Create(&beer); result.Error != nil {
		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) FindOrCreateBrewery(ctx context.Context, brewery model.Brewery) (*model.Brewery, error) {
	var existing model.Brewery

	result := r.DB.WithContext(ctx).
		Where("name = ?", brewery.Name).
		First(&existing)
	if result.Error == nil {
		return &existing, nil
	}

	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, result.Error
	}

	if result := r.DB.WithContext(ctx).Create(&brewery); result.Error != nil {
		return nil, result.Error
	}

	return &brewery, nil
}

func (r *Repository) CreateContestBeer(ctx context.Context, beer *model.ContestBeer) error {
	if result := r.DB.WithContext(ctx).Create(beer); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) CreateContestBrewery(ctx context.Context, brewery *model.ContestBrewery) error {
	if result := r.DB.WithContext(ctx).Create(brewery); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) CreateContestBonus(ctx context.Context, bonus *model.ContestBonus) error {
	if result := r.DB.WithContext(ctx).Create(bonus); result.Error != nil {
		return result.Error
	}

	return nil
}

// GetContestBeer fetches a contest beer with a FOR UPDATE lock. Two
// resolutions against the same challenge beer serialize here, which keeps
// the cumulative loss cap race-free.
func (r *Repository) GetContestBeer(ctx context.Context, contestBeerID uint) (*model.ContestBeer, error) {
	var beer model.ContestBeer

	result := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&beer, contestBeerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAssociationNotFound
		}

		return nil, result.Error
	}

	return &beer, nil
}

func (r *Repository) GetContestBrewery(ctx context.Context, contestBreweryID uint) (*model.ContestBrewery, error) {
	var brewery model.ContestBrewery

	result := r.DB.WithContext(ctx).First(&brewery, contestBreweryID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAssociationNotFound
		}

		return nil, result.Error
	}

	return &brewery, nil
}

func (r *Repository) GetContestBonusByName(ctx context.Context, contestID uint, name string) (*model.ContestBonus, error) {
	var bonus model.ContestBonus

	result := r.DB.WithContext(ctx).
		Where("contest_id = ? AND name = ?", contestID, name).
		First(&bonus)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrAssociationNotFound
		}

		return nil, result.Error
	}

	return &bonus, nil
}

// BonusesForContest returns all bonus definitions for the contest;
// ingestion intersects their hashtags with each entry's description.
func (r *Repository) BonusesForContest(ctx context.Context, contestID uint) ([]model.ContestBonus, error) {
	var bonuses []model.ContestBonus

	result := r.DB.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("name").
		Find(&bonuses)
	if result.Error != nil {
		return nil, result.Error
	}

	return bonuses, nil
}

// FindBonusByHashtag returns the bonus already claiming the tag within
// the contest, or nil when the tag is free. The hashtag list is stored
// serialized, so the scan happens here rather than in SQL.
func (r *Repository) FindBonusByHashtag(ctx context.Context, contestID uint, tag string) (*model.ContestBonus, error) {
	bonuses, err := r.BonusesForContest(ctx, contestID)
	if err != nil {
		return nil, err
	}

	for i := range bonuses {
		for _, existing := range bonuses[i].Hashtags {
			if existing == tag {
				return &bonuses[i], nil
			}
		}
	}

	return nil, nil //nolint:nilnil // absence is not an error here
}
