package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/nvembar/onehundredbeers/pkg/model"
)

var (
	ErrContestNotFound = errors.New("contest not found")
	ErrPlayerNotFound  = errors.New("player not found")
)

func (r *Repository) CreateContest(ctx context.Context, con *model.Contest) error {
	if result := r.DB.WithContext(ctx).Create(con); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) GetContest(ctx context.Context, contestID uint) (*model.Contest, error) {
	var con model.Contest

	result := r.DB.WithContext(ctx).First(&con, contestID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}

		return nil, result.Error
	}

	return &con, nil
}

func (r *Repository) GetContestByName(ctx context.Context, name string) (*model.Contest, error) {
	var con model.Contest

	result := r.DB.WithContext(ctx).Where("name = ?", name).First(&con)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrContestNotFound
		}

		return nil, result.Error
	}

	return &con, nil
}

func (r *Repository) GetPlayerByUsername(ctx context.Context, username string) (*model.Player, error) {
	var player model.Player

	result := r.DB.WithContext(ctx).Where("username = ?", username).First(&player)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}

		return nil, result.Error
	}

	return &player, nil
}

func (r *Repository) GetPlayers(ctx context.Context) ([]model.Player, error) {
	var players []model.Player

	if result := r.DB.WithContext(ctx).Order("username").Find(&players); result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

func (r *Repository) CreateContestPlayer(ctx context.Context, player *model.ContestPlayer) error {
	if result := r.DB.WithContext(ctx).Create(player); result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *Repository) GetContestPlayer(ctx context.Context, contestPlayerID uint) (*model.ContestPlayer, error) {
	var player model.ContestPlayer

	result := r.DB.WithContext(ctx).First(&player, contestPlayerID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrPlayerNotFound
		}

		return nil, result.Error
	}

	return &player, nil
}

func (r *Repository) SaveContestPlayer(ctx context.Context, player *model.ContestPlayer) error {
	if result := r.DB.WithContext(ctx).Save(player); result.Error != nil {
		r.Logger.Error("error saving contest player",
			zap.Uint("contest_player_id", player.ID), zap.Error(result.Error))

		return result.Error
	}

	return nil
}

// ContestPlayers returns the contest's players ordered for the
// leaderboard: total points descending, username ascending.
func (r *Repository) ContestPlayers(ctx context.Context, contestID uint) ([]model.ContestPlayer, error) {
	var players []model.ContestPlayer

	result := r.DB.WithContext(ctx).
		Where("contest_id = ?", contestID).
		Order("total_points desc, user_name asc").
		Find(&players)
	if result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}

// ContestPlayersForPlayer returns the player's memberships, optionally
// narrowed to one contest. Ingestion iterates these.
func (r *Repository) ContestPlayersForPlayer(ctx context.Context, playerID uint, contestID *uint) ([]model.ContestPlayer, error) {
	var players []model.ContestPlayer

	query := r.DB.WithContext(ctx).
		Joins("Contest").
		Where("contest_players.player_id = ?", playerID)

	if contestID != nil {
		query = query.Where("contest_players.contest_id = ?", *contestID)
	}

	if result := query.Find(&players); result.Error != nil {
		return nil, result.Error
	}

	return players, nil
}
