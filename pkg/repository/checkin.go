package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

var ErrCheckinNotFound = errors.New("checkin not found")

func (r *Repository) CreateCheckin(ctx context.Context, checkin *model.ContestCheckin) error {
	if result := r.DB.WithContext(ctx).Create(checkin); result.Error != nil {
		return result.Error
	}

	return nil
}

// HasBeerCheckin reports whether the player already has a ledger entry
// for this contest beer. CHALLENGE_LOSS rows are excluded: those only say
// somebody else drank the player's challenge beer.
func (r *Repository) HasBeerCheckin(ctx context.Context, contestPlayerID uint, contestBeerID uint) (bool, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.ContestCheckin{}).
		Where("contest_player_id = ? AND contest_beer_id = ? AND tx_type <> ?",
			contestPlayerID, contestBeerID, model.TxChallengeLoss).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *Repository) HasBreweryCheckin(ctx context.Context, contestPlayerID uint, contestBreweryID uint) (bool, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.ContestCheckin{}).
		Where("contest_player_id = ? AND contest_brewery_id = ?",
			contestPlayerID, contestBreweryID).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// ChallengeLossTotal sums the (negative) CHALLENGE_LOSS points charged to
// the challenger for one specific contest beer. The cap check reads this
// inside the resolution transaction.
func (r *Repository) ChallengeLossTotal(ctx context.Context, challengerID uint, contestBeerID uint) (int, error) {
	var total *int

	result := r.DB.WithContext(ctx).Model(&model.ContestCheckin{}).
		Select("sum(checkin_points)").
		Where("contest_player_id = ? AND contest_beer_id = ? AND tx_type = ?",
			challengerID, contestBeerID, model.TxChallengeLoss).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	if total == nil {
		return 0, nil
	}

	return *total, nil
}

// SumCheckinPoints totals the player's ledger points across the given
// transaction types. The recompute path is built entirely from this.
func (r *Repository) SumCheckinPoints(ctx context.Context, contestPlayerID uint, types ...model.TxType) (int, error) {
	var total *int

	result := r.DB.WithContext(ctx).Model(&model.ContestCheckin{}).
		Select("sum(checkin_points)").
		Where("contest_player_id = ? AND tx_type IN ?", contestPlayerID, types).
		Scan(&total)
	if result.Error != nil {
		return 0, result.Error
	}

	if total == nil {
		return 0, nil
	}

	return *total, nil
}

func (r *Repository) CreateUnvalidatedCheckin(ctx context.Context, checkin *model.UnvalidatedCheckin) error {
	if result := r.DB.WithContext(ctx).Create(checkin); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) GetUnvalidatedCheckin(ctx context.Context, checkinID uint) (*model.UnvalidatedCheckin, error) {
	var checkin model.UnvalidatedCheckin

	result := r.DB.WithContext(ctx).First(&checkin, checkinID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCheckinNotFound
		}

		return nil, result.Error
	}

	return &checkin, nil
}

func (r *Repository) DeleteUnvalidatedCheckin(ctx context.Context, checkinID uint) error {
	result := r.DB.WithContext(ctx).Delete(&model.UnvalidatedCheckin{}, checkinID)

	return result.Error
}

// UnvalidatedCheckinsForContest lists the contest's pending checkins in
// checkin-time order for the runner to work through.
func (r *Repository) UnvalidatedCheckinsForContest(ctx context.Context, contestID uint) ([]model.UnvalidatedCheckin, error) {
	var checkins []model.UnvalidatedCheckin

	result := r.DB.WithContext(ctx).
		Joins("ContestPlayer").
		Where("\"ContestPlayer\".contest_id = ?", contestID).
		Order("unvalidated_checkins.untappd_checkin_date").
		Find(&checkins)
	if result.Error != nil {
		return nil, result.Error
	}

	return checkins, nil
}

// SeenCheckin reports whether this checkin URL is already known for the
// contest player, either pending or on the ledger. This is the ingestion
// idempotency guard.
func (r *Repository) SeenCheckin(ctx context.Context, contestPlayerID uint, untappdCheckin string) (bool, error) {
	var count int64

	result := r.DB.WithContext(ctx).Model(&model.UnvalidatedCheckin{}).
		Where("contest_player_id = ? AND untappd_checkin = ?", contestPlayerID, untappdCheckin).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	if count > 0 {
		return true, nil
	}

	result = r.DB.WithContext(ctx).Model(&model.ContestCheckin{}).
		Where("contest_player_id = ? AND untappd_checkin = ?", contestPlayerID, untappdCheckin).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

// MarkPossibleMatches flags the player's pending checkins whose extracted
// names exactly match a contest beer's denormalized names. One bulk
// statement, run at the end of an ingestion pass.
func (r *Repository) MarkPossibleMatches(ctx context.Context, contestPlayerID uint, contestID uint) error {
	result := r.DB.WithContext(ctx).Exec(
		`UPDATE unvalidated_checkins uv
		    SET has_possibles = TRUE
		   FROM contest_beers b
		  WHERE uv.contest_player_id = ?
		    AND b.contest_id = ?
		    AND b.beer_name = uv.beer
		    AND b.brewery_name = uv.brewery`, contestPlayerID, contestID)

	return result.Error
}

func (r *Repository) SaveUnvalidatedCheckin(ctx context.Context, checkin *model.UnvalidatedCheckin) error {
	if result := r.DB.WithContext(ctx).Save(checkin); result.Error != nil {
		return result.Error
	}

	return nil
}
