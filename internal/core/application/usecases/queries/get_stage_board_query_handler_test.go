package queries_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/application/usecases/queries"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

func TestNewGetStageBoardQuery_Valid(t *testing.T) {
	require.NoError(t, queries.NewGetStageBoardQuery().Validate())
}

func TestGetStageBoardQuery_NotConstructedViaConstructor(t *testing.T) {
	err := queries.GetStageBoardQuery{}.Validate()
	assert.ErrorIs(t, err, queries.ErrGetStageBoardQueryIsNotConstructed)
}

func TestNewGetOrderGroupQuery_BlankKey(t *testing.T) {
	_, err := queries.NewGetOrderGroupQuery("  ")
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

type BoardQueriesTestSuite struct {
	suite.Suite
	pg    *pgtest.Database
	repo  *orderrepo.GormOrderRepository
	board queries.GetStageBoardQueryHandler
	group queries.GetOrderGroupQueryHandler
}

func (suite *BoardQueriesTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repo = orderrepo.NewGormOrderRepository(pg.DB)
	suite.board = queries.NewGetStageBoardQueryHandler(pg.DB)
	suite.group = queries.NewGetOrderGroupQueryHandler(pg.DB)
}

func (suite *BoardQueriesTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *BoardQueriesTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *BoardQueriesTestSuite) TestBoard_EmptyStore_HasEveryStage() {
	resp, err := suite.board.Handle(context.Background(), queries.NewGetStageBoardQuery())
	suite.Require().NoError(err)
	suite.Require().Len(resp.Columns, len(order.AllStages()))
	for i, stage := range order.AllStages() {
		suite.Equal(stage, resp.Columns[i].Stage)
		suite.Empty(resp.Columns[i].Groups)
	}
	suite.Zero(resp.Total)
}

func (suite *BoardQueriesTestSuite) TestBoard_GroupsSiblingsPerStage() {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.add("a", "100", order.Markers{}, day)
	suite.add("b", "100", order.Markers{}, day.Add(time.Hour))
	suite.add("c", "100", order.Markers{Despachado: order.BoolMarker(true)}, day)
	suite.add("d", "", order.Markers{EmProducao: order.NewMarker("x")}, day.Add(48*time.Hour))
	suite.add("e", "200", order.Markers{EmProducao: order.NewMarker("x")}, day.Add(24*time.Hour))

	resp, err := suite.board.Handle(context.Background(), queries.NewGetStageBoardQuery())
	suite.Require().NoError(err)
	suite.Equal(5, resp.Total)

	newColumn := resp.Columns[0]
	suite.Equal(order.New, newColumn.Stage)
	suite.Equal(2, newColumn.Count)
	suite.Require().Len(newColumn.Groups, 1)
	suite.Equal("100", newColumn.Groups[0].Key)
	suite.True(day.Equal(newColumn.Groups[0].Date))

	production := resp.Columns[2]
	suite.Equal(order.InProduction, production.Stage)
	suite.Require().Len(production.Groups, 2)
	suite.Equal("d", production.Groups[0].Key)
	suite.Equal("200", production.Groups[1].Key)

	dispatched := resp.Columns[4]
	suite.Require().Len(dispatched.Groups, 1)
	suite.Equal(order.ID("c"), dispatched.Groups[0].Items[0].ID)
}

func (suite *BoardQueriesTestSuite) TestGroup_AcrossStages() {
	day := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	suite.add("a", "100", order.Markers{}, day)
	suite.add("c", "100", order.Markers{Despachado: order.BoolMarker(true)}, day.Add(time.Hour))
	suite.add("x", "101", order.Markers{}, day)

	q, err := queries.NewGetOrderGroupQuery("100")
	suite.Require().NoError(err)
	resp, err := suite.group.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Require().Len(resp.Items, 2)
	suite.Equal(order.ID("c"), resp.Items[0].ID)
	suite.Equal(order.Dispatched, resp.Items[0].Stage)
	suite.Equal(order.New, resp.Items[1].Stage)
}

func (suite *BoardQueriesTestSuite) TestGroup_FallsBackToID() {
	suite.add("solo", "", order.Markers{}, time.Now().UTC())

	q, err := queries.NewGetOrderGroupQuery("solo")
	suite.Require().NoError(err)
	resp, err := suite.group.Handle(context.Background(), q)
	suite.Require().NoError(err)
	suite.Len(resp.Items, 1)
}

func (suite *BoardQueriesTestSuite) TestGroup_NotFound() {
	q, err := queries.NewGetOrderGroupQuery("404")
	suite.Require().NoError(err)
	_, err = suite.group.Handle(context.Background(), q)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *BoardQueriesTestSuite) add(id order.ID, number string, markers order.Markers, createdAt time.Time) {
	o, err := order.Restore(order.Record{ID: id, Number: number, Markers: markers, CreatedAt: createdAt})
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repo.Add(context.Background(), o))
}

func TestBoardQueriesTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(BoardQueriesTestSuite))
}
