package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "orderflow/internal/adapters/out/postgres"
	"orderflow/internal/adapters/out/postgres/pgtest"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/notification"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM unit of work against a
// real PostgreSQL, including the change trigger.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	pg      *pgtest.Database
	factory ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()
	pg, err := pgtest.Start(ctx)
	suite.Require().NoError(err)
	suite.pg = pg

	suite.Require().NoError(postgres_adapter.InstallChangeTrigger(ctx, pg.DB))
	// Installing twice must be harmless.
	suite.Require().NoError(postgres_adapter.InstallChangeTrigger(ctx, pg.DB))

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(pg.DB)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommitPersistsAcrossRepositories() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("1")))
	token, err := notification.NewToken("tok-1", kernel.NewUUID(), nil, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TokenRepository().Upsert(ctx, token))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, "1")
	suite.Require().NoError(err)
	tokens, err := reader.TokenRepository().ListAll(ctx)
	suite.Require().NoError(err)
	suite.Len(tokens, 1)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollbackDiscardsWrites() {
	ctx := context.Background()
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("1")))
	suite.Require().NoError(uow.Rollback(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, "1")
	suite.Require().True(errors.Is(err, errs.ErrObjectNotFound))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestChangeTriggerPublishesCommittedWrites() {
	ctx := context.Background()

	listener := pq.NewListener(suite.pg.DSN, 10*time.Millisecond, time.Second, nil)
	defer listener.Close()
	suite.Require().NoError(listener.Listen(postgres_adapter.OrderChangesChannel))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, suite.newOrder("trig-1")))
	suite.Require().NoError(uow.Commit(ctx))

	select {
	case n := <-listener.Notify:
		suite.Require().NotNil(n)
		suite.Contains(n.Extra, `"type" : "INSERT"`)
		suite.Contains(n.Extra, `"change_id" : "`)
		suite.Contains(n.Extra, `"id":"trig-1"`)
	case <-time.After(5 * time.Second):
		suite.Fail("no notification received")
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) newOrder(id order.ID) *order.Order {
	o, err := order.Restore(order.Record{ID: id, Number: "77", CreatedAt: time.Now().UTC()})
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
