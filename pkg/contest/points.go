package contest

import (
	"context"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// ComputePoints rebuilds every denormalized total for the player from the
// checkin ledger and persists the result. After any sequence of
// incremental updates this must land on exactly the same numbers; the
// totals are a materialized view of the ledger, nothing more.
func (e *Engine) ComputePoints(ctx context.Context, contestPlayerID uint) (*model.ContestPlayer, error) {
	var player *model.ContestPlayer

	err := e.store.Transact(ctx, func(tx Store) error {
		var err error

		player, err = tx.GetContestPlayer(ctx, contestPlayerID)
		if err != nil {
			return err
		}

		gain, err := tx.SumCheckinPoints(ctx, player.ID, model.TxChallengeSelf)
		if err != nil {
			return err
		}

		lossSum, err := tx.SumCheckinPoints(ctx, player.ID, model.TxChallengeLoss)
		if err != nil {
			return err
		}

		beerPoints, err := tx.SumCheckinPoints(ctx, player.ID, model.TxBeer, model.TxChallengeOther)
		if err != nil {
			return err
		}

		breweryPoints, err := tx.SumCheckinPoints(ctx, player.ID, model.TxBrewery)
		if err != nil {
			return err
		}

		bonusPoints, err := tx.SumCheckinPoints(ctx, player.ID, model.TxBonus)
		if err != nil {
			return err
		}

		player.ChallengePointGain = gain
		// The ledger stores losses as negative points; the field holds the
		// positive magnitude.
		player.ChallengePointLoss = -lossSum
		player.BeerPoints = beerPoints
		player.BreweryPoints = breweryPoints
		player.BonusPoints = bonusPoints
		player.TotalPoints = totalPoints(player)

		return tx.SaveContestPlayer(ctx, player)
	})
	if err != nil {
		return nil, err
	}

	return player, nil
}
