package contest_test

import (
	"context"
	"time"

	"github.com/nvembar/onehundredbeers/pkg/contest"
	"github.com/nvembar/onehundredbeers/pkg/model"
)

// fakeStore is an in-memory Store. The reconciliation scenarios are
// stateful across many calls, so a real (if tiny) store reads better
// than expectation mocks here.
type fakeStore struct {
	contests    map[uint]*model.Contest
	players     map[uint]*model.ContestPlayer
	beers       map[uint]*model.ContestBeer
	breweries   map[uint]*model.ContestBrewery
	bonuses     map[uint]*model.ContestBonus
	checkins    []*model.ContestCheckin
	unvalidated map[uint]*model.UnvalidatedCheckin
	nextID      uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		contests:    make(map[uint]*model.Contest),
		players:     make(map[uint]*model.ContestPlayer),
		beers:       make(map[uint]*model.ContestBeer),
		breweries:   make(map[uint]*model.ContestBrewery),
		bonuses:     make(map[uint]*model.ContestBonus),
		unvalidated: make(map[uint]*model.UnvalidatedCheckin),
	}
}

func (s *fakeStore) id() uint {
	s.nextID++

	return s.nextID
}

func (s *fakeStore) addContest(con model.Contest) *model.Contest {
	con.ID = s.id()
	s.contests[con.ID] = &con

	return &con
}

func (s *fakeStore) addUnvalidated(checkin model.UnvalidatedCheckin) *model.UnvalidatedCheckin {
	checkin.ID = s.id()
	s.unvalidated[checkin.ID] = &checkin

	return &checkin
}

func (s *fakeStore) Transact(_ context.Context, fn func(contest.Store) error) error {
	return fn(s)
}

func (s *fakeStore) GetContest(_ context.Context, contestID uint) (*model.Contest, error) {
	con, ok := s.contests[contestID]
	if !ok {
		return nil, contest.ErrNoSuchAssociation
	}

	clone := *con

	return &clone, nil
}

func (s *fakeStore) GetContestPlayer(_ context.Context, contestPlayerID uint) (*model.ContestPlayer, error) {
	player, ok := s.players[contestPlayerID]
	if !ok {
		return nil, contest.ErrNoSuchAssociation
	}

	clone := *player

	return &clone, nil
}

func (s *fakeStore) SaveContestPlayer(_ context.Context, player *model.ContestPlayer) error {
	clone := *player
	s.players[player.ID] = &clone

	return nil
}

func (s *fakeStore) ContestPlayers(_ context.Context, contestID uint) ([]model.ContestPlayer, error) {
	var players []model.ContestPlayer

	for _, player := range s.players {
		if player.ContestID == contestID {
			players = append(players, *player)
		}
	}

	return players, nil
}

func (s *fakeStore) CreateContestPlayer(_ context.Context, player *model.ContestPlayer) error {
	player.ID = s.id()
	clone := *player
	s.players[player.ID] = &clone

	return nil
}

func (s *fakeStore) CreateContestBeer(_ context.Context, beer *model.ContestBeer) error {
	beer.ID = s.id()
	clone := *beer
	s.beers[beer.ID] = &clone

	return nil
}

func (s *fakeStore) CreateContestBrewery(_ context.Context, brewery *model.ContestBrewery) error {
	brewery.ID = s.id()
	clone := *brewery
	s.breweries[brewery.ID] = &clone

	return nil
}

func (s *fakeStore) CreateContestBonus(_ context.Context, bonus *model.ContestBonus) error {
	bonus.ID = s.id()
	clone := *bonus
	s.bonuses[bonus.ID] = &clone

	return nil
}

func (s *fakeStore) GetContestBeer(_ context.Context, contestBeerID uint) (*model.ContestBeer, error) {
	beer, ok := s.beers[contestBeerID]
	if !ok {
		return nil, contest.ErrNoSuchAssociation
	}

	clone := *beer

	return &clone, nil
}

func (s *fakeStore) GetContestBrewery(_ context.Context, contestBreweryID uint) (*model.ContestBrewery, error) {
	brewery, ok := s.breweries[contestBreweryID]
	if !ok {
		return nil, contest.ErrNoSuchAssociation
	}

	clone := *brewery

	return &clone, nil
}

func (s *fakeStore) GetContestBonusByName(_ context.Context, contestID uint, name string) (*model.ContestBonus, error) {
	for _, bonus := range s.bonuses {
		if bonus.ContestID == contestID && bonus.Name == name {
			clone := *bonus

			return &clone, nil
		}
	}

	return nil, contest.ErrNoSuchBonus
}

func (s *fakeStore) FindBonusByHashtag(_ context.Context, contestID uint, tag string) (*model.ContestBonus, error) {
	for _, bonus := range s.bonuses {
		if bonus.ContestID != contestID {
			continue
		}

		for _, existing := range bonus.Hashtags {
			if existing == tag {
				clone := *bonus

				return &clone, nil
			}
		}
	}

	return nil, nil //nolint:nilnil // absence is not an error here
}

func (s *fakeStore) CreateCheckin(_ context.Context, checkin *model.ContestCheckin) error {
	checkin.ID = s.id()
	clone := *checkin
	s.checkins = append(s.checkins, &clone)

	return nil
}

func (s *fakeStore) HasBeerCheckin(_ context.Context, contestPlayerID uint, contestBeerID uint) (bool, error) {
	for _, checkin := range s.checkins {
		if checkin.ContestPlayerID == contestPlayerID &&
			checkin.ContestBeerID != nil && *checkin.ContestBeerID == contestBeerID &&
			checkin.TxType != model.TxChallengeLoss {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeStore) HasBreweryCheckin(_ context.Context, contestPlayerID uint, contestBreweryID uint) (bool, error) {
	for _, checkin := range s.checkins {
		if checkin.ContestPlayerID == contestPlayerID &&
			checkin.ContestBreweryID != nil && *checkin.ContestBreweryID == contestBreweryID {
			return true, nil
		}
	}

	return false, nil
}

func (s *fakeStore) ChallengeLossTotal(_ context.Context, challengerID uint, contestBeerID uint) (int, error) {
	total := 0

	for _, checkin := range s.checkins {
		if checkin.ContestPlayerID == challengerID &&
			checkin.ContestBeerID != nil && *checkin.ContestBeerID == contestBeerID &&
			checkin.TxType == model.TxChallengeLoss {
			total += checkin.CheckinPoints
		}
	}

	return total, nil
}

func (s *fakeStore) SumCheckinPoints(_ context.Context, contestPlayerID uint, types ...model.TxType) (int, error) {
	total := 0

	for _, checkin := range s.checkins {
		if checkin.ContestPlayerID != contestPlayerID {
			continue
		}

		for _, txType := range types {
			if checkin.TxType == txType {
				total += checkin.CheckinPoints

				break
			}
		}
	}

	return total, nil
}

func (s *fakeStore) GetUnvalidatedCheckin(_ context.Context, checkinID uint) (*model.UnvalidatedCheckin, error) {
	checkin, ok := s.unvalidated[checkinID]
	if !ok {
		return nil, contest.ErrNoSuchAssociation
	}

	clone := *checkin

	return &clone, nil
}

func (s *fakeStore) DeleteUnvalidatedCheckin(_ context.Context, checkinID uint) error {
	delete(s.unvalidated, checkinID)

	return nil
}

func (s *fakeStore) checkinsOfType(txType model.TxType) []*model.ContestCheckin {
	var matches []*model.ContestCheckin

	for _, checkin := range s.checkins {
		if checkin.TxType == txType {
			matches = append(matches, checkin)
		}
	}

	return matches
}

var checkinTime = time.Date(2016, 3, 5, 18, 30, 0, 0, time.UTC)
