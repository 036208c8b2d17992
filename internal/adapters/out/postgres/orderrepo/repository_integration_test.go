package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

// OrderRepositoryIntegrationTestSuite verifies persistence of orders against
// a real PostgreSQL.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.repository = orderrepo.NewGormOrderRepository(pg.DB)
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTripsEveryColumn() {
	ctx := context.Background()
	owner := kernel.NewUUID()
	orderedAt := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	created, err := order.Restore(order.Record{
		ID:     "abc-1",
		Number: "1042",
		Markers: order.Markers{
			Insumos:    order.NewMarker("2025-03-02"),
			EmProducao: order.NewMarker("sim"),
			Despachado: order.BoolMarker(false),
		},
		TrackingCode: "BR123",
		Attributes:   order.Attributes{Color: "preto", Size: "M", Mirror: "sim"},
		OrderedAt:    &orderedAt,
		CreatedAt:    time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC),
		OwnerID:      &owner,
	})
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.Add(ctx, created))

	loaded, err := suite.repository.Get(ctx, "abc-1")
	suite.Require().NoError(err)
	suite.Equal("1042", loaded.Number())
	suite.Equal("BR123", loaded.TrackingCode())
	suite.Equal(order.Attributes{Color: "preto", Size: "M", Mirror: "sim"}, loaded.Attributes())
	suite.Equal(order.InProduction, loaded.Stage())
	suite.Require().NotNil(loaded.Owner())
	suite.True(owner.IsEqual(*loaded.Owner()))
	suite.Require().NotNil(loaded.OrderedAt())
	suite.True(orderedAt.Equal(loaded.OrderedAt().UTC()))

	desp, _ := loaded.Markers().Get(order.FieldDespachado)
	suite.False(desp.IsSet())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsMarkers() {
	ctx := context.Background()
	o := suite.newOrder("1", order.Markers{Insumos: order.NewMarker("x"), Despachado: order.BoolMarker(true)})
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(o.SetMarker(order.FieldDespachado, order.Marker{}))
	suite.Require().NoError(o.SetMarker(order.FieldInsumos, order.Marker{}))
	o.SetTrackingCode("BR9")
	suite.Require().NoError(suite.repository.Update(ctx, o))

	loaded, err := suite.repository.Get(ctx, "1")
	suite.Require().NoError(err)
	suite.Equal(order.New, loaded.Stage())
	suite.Equal("BR9", loaded.TrackingCode())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_MissingOrder() {
	err := suite.repository.Update(context.Background(), suite.newOrder("missing", order.Markers{}))
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), "nope")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_BlankID() {
	_, err := suite.repository.Get(context.Background(), " ")
	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("1", order.Markers{})))

	tx := suite.pg.DB.Begin()
	defer tx.Rollback()

	loaded, err := orderrepo.NewGormOrderRepository(tx).GetForUpdate(ctx, "1")
	suite.Require().NoError(err)
	suite.Equal(order.ID("1"), loaded.ID())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_DuplicateID() {
	ctx := context.Background()
	suite.Require().NoError(suite.repository.Add(ctx, suite.newOrder("1", order.Markers{})))
	suite.Require().Error(suite.repository.Add(ctx, suite.newOrder("1", order.Markers{})))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructed() {
	suite.Require().ErrorIs(suite.repository.Add(context.Background(), &order.Order{}), order.ErrOrderIsNotConstructed)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(id order.ID, markers order.Markers) *order.Order {
	o, err := order.Restore(order.Record{ID: id, Markers: markers, CreatedAt: time.Now().UTC()})
	suite.Require().NoError(err)
	return o
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
