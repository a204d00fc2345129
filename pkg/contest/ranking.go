package contest

import (
	"context"
	"sort"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

// RankedPlayer pairs a contest player with their standard competition
// rank.
type RankedPlayer struct {
	Player model.ContestPlayer
	Rank   int
}

// RankedPlayers returns the contest standings in standard competition
// ("1224") order: tied totals share a rank, and the next distinct total
// takes its 1-based position in the sorted sequence. The username
// tie-break exists only to make the output deterministic; tied players
// still share a rank. Nothing is mutated.
func (e *Engine) RankedPlayers(ctx context.Context, contestID uint) ([]RankedPlayer, error) {
	players, err := e.store.ContestPlayers(ctx, contestID)
	if err != nil {
		return nil, err
	}

	return rankPlayers(players), nil
}

func rankPlayers(players []model.ContestPlayer) []RankedPlayer {
	sort.SliceStable(players, func(i, j int) bool {
		if players[i].TotalPoints != players[j].TotalPoints {
			return players[i].TotalPoints > players[j].TotalPoints
		}

		return players[i].UserName < players[j].UserName
	})

	ranked := make([]RankedPlayer, 0, len(players))

	for i, player := range players {
		rank := i + 1
		if i > 0 && player.TotalPoints == players[i-1].TotalPoints {
			rank = ranked[i-1].Rank
		}

		ranked = append(ranked, RankedPlayer{Player: player, Rank: rank})
	}

	return ranked
}
