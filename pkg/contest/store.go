package contest

import (
	"context"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// Store is the persistence surface the engine needs. It is implemented by
// the repository package; tests supply an in-memory fake.
//
// Transact hands the closure a Store bound to one database transaction.
// Implementations must serialize concurrent access to the same contest
// beer row (the challenge loss cap is computed from the ledger inside the
// transaction, so two drinkers of the same challenge beer must not
// interleave).
type Store interface { //nolint:interfacebloat // the engine owns the whole reconciliation surface
	Transact(ctx context.Context, fn func(Store) error) error

	GetContest(ctx context.Context, contestID uint) (*model.Contest, error)
	GetContestPlayer(ctx context.Context, contestPlayerID uint) (*model.ContestPlayer, error)
	SaveContestPlayer(ctx context.Context, player *model.ContestPlayer) error
	ContestPlayers(ctx context.Context, contestID uint) ([]model.ContestPlayer, error)

	CreateContestPlayer(ctx context.Context, player *model.ContestPlayer) error
	CreateContestBeer(ctx context.Context, beer *model.ContestBeer) error
	CreateContestBrewery(ctx context.Context, brewery *model.ContestBrewery) error
	CreateContestBonus(ctx context.Context, bonus *model.ContestBonus) error

	GetContestBeer(ctx context.Context, contestBeerID uint) (*model.ContestBeer, error)
	GetContestBrewery(ctx context.Context, contestBreweryID uint) (*model.ContestBrewery, error)
	GetContestBonusByName(ctx context.Context, contestID uint, name string) (*model.ContestBonus, error)
	FindBonusByHashtag(ctx context.Context, contestID uint, tag string) (*model.ContestBonus, error)

	CreateCheckin(ctx context.Context, checkin *model.ContestCheckin) error
	HasBeerCheckin(ctx context.Context, contestPlayerID uint, contestBeerID uint) (bool, error)
	HasBreweryCheckin(ctx context.Context, contestPlayerID uint, contestBreweryID uint) (bool, error)
	ChallengeLossTotal(ctx context.Context, challengerID uint, contestBeerID uint) (int, error)
	SumCheckinPoints(ctx context.Context, contestPlayerID uint, types ...model.TxType) (int, error)

	GetUnvalidatedCheckin(ctx context.Context, checkinID uint) (*model.UnvalidatedCheckin, error)
	DeleteUnvalidatedCheckin(ctx context.Context, checkinID uint) error
}
