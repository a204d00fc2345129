package contest

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// Policy holds the configurable rules that are deployment choices rather
// than invariants.
type Policy struct {
	// AllowActiveEdits permits catalog changes on an active contest. Some
	// runners add beers mid-contest; most deployments keep this off.
	AllowActiveEdits bool
}

// Engine applies runner decisions to unvalidated checkins: it writes the
// ledger, keeps the denormalized player totals in step, and applies the
// challenge beer side effects. Every decision commits in one transaction.
type Engine struct {
	store  Store
	logger *zap.Logger
	policy Policy
}

func NewEngine(store Store, logger *zap.Logger, policy Policy) *Engine {
	return &Engine{store: store, logger: logger, policy: policy}
}

// Decision is the runner's ruling on one unvalidated checkin: which
// contest beer or brewery it matches (at most one of the two), which
// bonus names apply, and whether to keep the unvalidated record around
// after it is resolved.
type Decision struct {
	BeerID    *uint
	BreweryID *uint
	Bonuses   []string
	Preserve  bool
}

// ResolveResult reports everything a resolution touched so callers can
// assert on every side effect, not just the primary one.
type ResolveResult struct {
	Checkins       []*model.ContestCheckin
	TouchedPlayers []uint
	// Duplicate is set when the beer or brewery had already been recorded
	// for this player; the call was a no-op for that part of the decision.
	Duplicate bool
}

// Resolve validates an unvalidated checkin against the runner's decision.
// The ledger writes, the total updates for every touched player, and the
// removal of the unvalidated record all commit atomically; any error
// rolls the whole decision back.
func (e *Engine) Resolve(ctx context.Context, contestID uint, checkinID uint, decision Decision) (*ResolveResult, error) {
	var result *ResolveResult

	err := e.store.Transact(ctx, func(tx Store) error {
		uv, err := tx.GetUnvalidatedCheckin(ctx, checkinID)
		if err != nil {
			return err
		}

		player, err := tx.GetContestPlayer(ctx, uv.ContestPlayerID)
		if err != nil {
			return err
		}

		if player.ContestID != contestID {
			return fmt.Errorf("%w: checkin belongs to contest %d", ErrContestMismatch, player.ContestID)
		}

		res := &ResolveResult{TouchedPlayers: []uint{player.ID}}

		switch {
		case decision.BeerID != nil:
			beer, err := tx.GetContestBeer(ctx, *decision.BeerID)
			if err != nil {
				return fmt.Errorf("%w: contest beer %d", ErrNoSuchAssociation, *decision.BeerID)
			}

			checkin, challengerID, err := e.drinkBeer(ctx, tx, player, beer, uv.UntappdCheckinDate, uv.UntappdCheckin)
			if err != nil {
				return err
			}

			if checkin == nil {
				res.Duplicate = true
			} else {
				res.Checkins = append(res.Checkins, checkin)
			}

			if challengerID != 0 {
				res.TouchedPlayers = append(res.TouchedPlayers, challengerID)
			}
		case decision.BreweryID != nil:
			brewery, err := tx.GetContestBrewery(ctx, *decision.BreweryID)
			if err != nil {
				return fmt.Errorf("%w: contest brewery %d", ErrNoSuchAssociation, *decision.BreweryID)
			}

			checkin, err := e.drinkAtBrewery(ctx, tx, player, brewery, uv.UntappdCheckinDate, uv.UntappdCheckin)
			if err != nil {
				return err
			}

			if checkin == nil {
				res.Duplicate = true
			} else {
				res.Checkins = append(res.Checkins, checkin)
			}
		}

		// Bonus checkins are never deduplicated: the same tag earns points
		// each time the runner applies it.
		for _, name := range decision.Bonuses {
			checkin, err := e.drinkBonus(ctx, tx, player, name, uv.UntappdCheckinDate, uv.UntappdCheckin)
			if err != nil {
				return err
			}

			res.Checkins = append(res.Checkins, checkin)
		}

		if !decision.Preserve {
			if err := tx.DeleteUnvalidatedCheckin(ctx, uv.ID); err != nil {
				return err
			}
		}

		result = res

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// drinkBeer records a beer checkin for the player, applying challenge
// mechanics when the beer has a challenger. It returns a nil checkin when
// the beer was already recorded, and the challenger's contest player ID
// when the challenger's row was touched.
func (e *Engine) drinkBeer(ctx context.Context, tx Store, player *model.ContestPlayer, beer *model.ContestBeer, checkinTime time.Time, untappdCheckin string) (*model.ContestCheckin, uint, error) {
	if beer.ContestID != player.ContestID {
		return nil, 0, fmt.Errorf("%w: cannot check into a beer not in the contest", ErrContestMismatch)
	}

	// A CHALLENGE_LOSS row against this beer only means someone else
	// drank it; it does not block the player's own genuine drink.
	exists, err := tx.HasBeerCheckin(ctx, player.ID, beer.ID)
	if err != nil {
		return nil, 0, err
	}

	if exists {
		e.logger.Info("already checked into beer",
			zap.String("player", player.UserName), zap.String("beer", beer.BeerName))

		return nil, 0, nil
	}

	var (
		checkin      *model.ContestCheckin
		challengerID uint
	)

	switch {
	case !beer.IsChallenge():
		checkin = model.NewBeerCheckin(*player, *beer, checkinTime, untappdCheckin)
		player.BeerPoints += beer.PointValue
	case *beer.ChallengerID == player.ID:
		checkin = model.NewChallengeSelfCheckin(*player, *beer, checkinTime, untappdCheckin)
		player.ChallengePointGain += beer.ChallengePointValue
	default:
		checkin = model.NewChallengeOtherCheckin(*player, *beer, checkinTime, untappdCheckin)
		player.BeerPoints += beer.PointValue
		challengerID = *beer.ChallengerID
	}

	if err := tx.CreateCheckin(ctx, checkin); err != nil {
		return nil, 0, err
	}

	if challengerID != 0 {
		if err := e.penalizeChallenger(ctx, tx, challengerID, beer, checkinTime, untappdCheckin); err != nil {
			return nil, 0, err
		}
	}

	player.BeerCount++
	player.LastCheckinDate = &checkinTime
	player.LastCheckinBeer = &beer.BeerName
	player.LastCheckinBrewery = nil
	player.TotalPoints = totalPoints(player)

	if err := tx.SaveContestPlayer(ctx, player); err != nil {
		return nil, 0, err
	}

	return checkin, challengerID, nil
}

// penalizeChallenger charges the challenge point loss against the
// challenger, unless their cumulative losses on this beer have reached
// the cap. The cumulative figure comes from the ledger rather than a
// counter so racing drinkers never overshoot the cap; the store
// serializes transactions on the contest beer row.
func (e *Engine) penalizeChallenger(ctx context.Context, tx Store, challengerID uint, beer *model.ContestBeer, checkinTime time.Time, untappdCheckin string) error {
	challenger, err := tx.GetContestPlayer(ctx, challengerID)
	if err != nil {
		return err
	}

	priorLoss, err := tx.ChallengeLossTotal(ctx, challenger.ID, beer.ID)
	if err != nil {
		return err
	}

	// priorLoss is a sum of negative ledger points.
	if -priorLoss+beer.ChallengePointLoss <= beer.MaxPointLoss {
		loss := model.NewChallengeLossCheckin(*challenger, *beer, checkinTime, untappdCheckin)
		if err := tx.CreateCheckin(ctx, loss); err != nil {
			return err
		}
	} else {
		e.logger.Info("challenge loss cap reached",
			zap.String("challenger", challenger.UserName),
			zap.String("beer", beer.BeerName),
			zap.Int("max_point_loss", beer.MaxPointLoss))
	}

	lossSum, err := tx.SumCheckinPoints(ctx, challenger.ID, model.TxChallengeLoss)
	if err != nil {
		return err
	}

	challenger.ChallengePointLoss = -lossSum
	challenger.TotalPoints = totalPoints(challenger)

	return tx.SaveContestPlayer(ctx, challenger)
}

// drinkAtBrewery records a brewery visit. No challenge mechanics apply.
func (e *Engine) drinkAtBrewery(ctx context.Context, tx Store, player *model.ContestPlayer, brewery *model.ContestBrewery, checkinTime time.Time, untappdCheckin string) (*model.ContestCheckin, error) {
	if brewery.ContestID != player.ContestID {
		return nil, fmt.Errorf("%w: cannot check into a brewery not in the contest", ErrContestMismatch)
	}

	exists, err := tx.HasBreweryCheckin(ctx, player.ID, brewery.ID)
	if err != nil {
		return nil, err
	}

	if exists {
		return nil, nil
	}

	checkin := model.NewBreweryCheckin(*player, *brewery, checkinTime, untappdCheckin)
	if err := tx.CreateCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	player.BreweryPoints += brewery.PointValue
	player.LastCheckinDate = &checkinTime
	player.LastCheckinBeer = nil
	player.LastCheckinBrewery = &brewery.BreweryName
	player.TotalPoints = totalPoints(player)

	if err := tx.SaveContestPlayer(ctx, player); err != nil {
		return nil, err
	}

	return checkin, nil
}

// drinkBonus records a bonus checkin by name. Repeats accumulate.
func (e *Engine) drinkBonus(ctx context.Context, tx Store, player *model.ContestPlayer, bonusName string, checkinTime time.Time, untappdCheckin string) (*model.ContestCheckin, error) {
	bonus, err := tx.GetContestBonusByName(ctx, player.ContestID, bonusName)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrNoSuchBonus, bonusName)
	}

	checkin := model.NewBonusCheckin(*player, *bonus, checkinTime, untappdCheckin)
	if err := tx.CreateCheckin(ctx, checkin); err != nil {
		return nil, err
	}

	player.BonusPoints += bonus.PointValue
	player.TotalPoints = totalPoints(player)

	if err := tx.SaveContestPlayer(ctx, player); err != nil {
		return nil, err
	}

	return checkin, nil
}

func totalPoints(player *model.ContestPlayer) int {
	return player.BeerPoints +
		player.BreweryPoints +
		player.BonusPoints +
		player.ChallengePointGain -
		player.ChallengePointLoss
}
