package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/nvembar/onehundredbeers/pkg/contest"
	"github.com/nvembar/onehundredbeers/pkg/model"
	"github.com/nvembar/onehundredbeers/pkg/repository"
)

type ContestTestSuite struct {
	RepositorySuite
}

func TestContestTestSuite(t *testing.T) {
	suite.Run(t, new(ContestTestSuite))
}

func (suite *ContestTestSuite) TearDownTest() {
	suite.NoError(suite.mock.ExpectationsWereMet())
}

func (suite *ContestTestSuite) TestGetContest_GetsContest() {
	start := time.Date(2016, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2016, 12, 31, 0, 0, 0, 0, time.UTC)

	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contests" WHERE "contests"."id" = $1 AND "contests"."deleted_at" IS NULL ORDER BY "contests"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "active", "start_date", "end_date"}).
			AddRow(1, "100 Beers 2016", true, start, end))

	con, err := suite.repository.GetContest(context.Background(), 1)

	suite.Require().NoError(err)
	suite.Equal(uint(1), con.ID)
	suite.Equal("100 Beers 2016", con.Name)
	suite.True(con.Active)
	suite.Equal(start, con.StartDate)
	suite.Equal(end, con.EndDate)
}

func (suite *ContestTestSuite) TestGetContest_NotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	con, err := suite.repository.GetContest(context.Background(), 99)

	suite.Nil(con)
	suite.ErrorIs(err, repository.ErrContestNotFound)
}

func (suite *ContestTestSuite) TestGetContestByName_GetsContest() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contests" WHERE name = $1 AND "contests"."deleted_at" IS NULL ORDER BY "contests"."id" LIMIT $2`)).
		WithArgs("100 Beers 2016", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "100 Beers 2016"))

	con, err := suite.repository.GetContestByName(context.Background(), "100 Beers 2016")

	suite.Require().NoError(err)
	suite.Equal(uint(1), con.ID)
}

func (suite *ContestTestSuite) TestGetPlayerByUsername_NotFound() {
	suite.mock.ExpectQuery("^SELECT (.+)").WillReturnError(gorm.ErrRecordNotFound)

	player, err := suite.repository.GetPlayerByUsername(context.Background(), "nobody")

	suite.Nil(player)
	suite.ErrorIs(err, repository.ErrPlayerNotFound)
}

func (suite *ContestTestSuite) TestGetContestPlayer_GetsPlayer() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contest_players" WHERE "contest_players"."id" = $1 AND "contest_players"."deleted_at" IS NULL ORDER BY "contest_players"."id" LIMIT $2`)).
		WithArgs(10, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contest_id", "player_id", "user_name", "total_points"}).
			AddRow(10, 1, 5, "runner1", 27))

	player, err := suite.repository.GetContestPlayer(context.Background(), 10)

	suite.Require().NoError(err)
	suite.Equal(uint(10), player.ID)
	suite.Equal("runner1", player.UserName)
	suite.Equal(27, player.TotalPoints)
}

func (suite *ContestTestSuite) TestSaveContestPlayer_LogsError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("^UPDATE (.+)").WillReturnError(gorm.ErrInvalidData)
	suite.mock.ExpectRollback()

	player := model.ContestPlayer{Model: gorm.Model{ID: 10}, ContestID: 1, PlayerID: 5}
	err := suite.repository.SaveContestPlayer(context.Background(), &player)

	suite.Require().Error(err)
	suite.Equal(1, suite.observedLogs.FilterMessage("error saving contest player").Len())
}

func (suite *ContestTestSuite) TestContestPlayers_OrdersForLeaderboard() {
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contest_players" WHERE contest_id = $1 AND "contest_players"."deleted_at" IS NULL ORDER BY total_points desc, user_name asc`)).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_name", "total_points"}).
			AddRow(11, "alice", 40).
			AddRow(12, "bob", 25))

	players, err := suite.repository.ContestPlayers(context.Background(), 1)

	suite.Require().NoError(err)
	suite.Len(players, 2)
	suite.Equal("alice", players[0].UserName)
	suite.Equal("bob", players[1].UserName)
}

func (suite *ContestTestSuite) TestContestPlayersForPlayer_FiltersByContest() {
	contestID := uint(2)

	suite.mock.ExpectQuery(`SELECT (.+) FROM "contest_players" LEFT JOIN "contests" "Contest" ON "contest_players"\."contest_id" \= "Contest"\."id" (.+) WHERE contest_players\.player_id \= \$1 AND contest_players\.contest_id \= \$2 (.+)`).
		WithArgs(5, 2).
		WillReturnRows(sqlmock.NewRows([]string{"id", "contest_id", "player_id", "Contest__id", "Contest__name"}).
			AddRow(10, 2, 5, 2, "100 Beers 2016"))

	players, err := suite.repository.ContestPlayersForPlayer(context.Background(), 5, &contestID)

	suite.Require().NoError(err)
	suite.Len(players, 1)
	suite.Equal(uint(2), players[0].ContestID)
	suite.Equal("100 Beers 2016", players[0].Contest.Name)
}

func (suite *ContestTestSuite) TestTransact_CommitsOnSuccess() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "contests" WHERE "contests"."id" = $1 AND "contests"."deleted_at" IS NULL ORDER BY "contests"."id" LIMIT $2`)).
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "100 Beers 2016"))
	suite.mock.ExpectCommit()

	err := suite.repository.Transact(context.Background(), func(store contest.Store) error {
		_, err := store.GetContest(context.Background(), 1)

		return err
	})

	suite.NoError(err)
}

func (suite *ContestTestSuite) TestTransact_RollsBackOnError() {
	suite.mock.ExpectBegin()
	suite.mock.ExpectRollback()

	err := suite.repository.Transact(context.Background(), func(contest.Store) error {
		return gorm.ErrInvalidData
	})

	suite.ErrorIs(err, gorm.ErrInvalidData)
}
