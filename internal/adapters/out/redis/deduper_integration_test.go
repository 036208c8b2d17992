package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	rds "github.com/redis/go-redis/v9"
)

type DeduperTestSuite struct {
	suite.Suite
	ctx       context.Context
	container testcontainers.Container
	client    *rds.Client
}

func TestDeduperTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}
	suite.Run(t, new(DeduperTestSuite))
}

func (s *DeduperTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := testcontainers.GenericContainer(s.ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(30 * time.Second),
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = container

	addr, err := container.Endpoint(s.ctx, "")
	s.Require().NoError(err)

	s.client = NewClient(Config{Addr: addr})
	s.Require().NoError(Ping(s.ctx, s.client))
}

func (s *DeduperTestSuite) TearDownSuite() {
	if s.client != nil {
		_ = s.client.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *DeduperTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(s.ctx).Err())
}

func (s *DeduperTestSuite) TestClaim_FirstWins() {
	d := NewTransitionDeduper(s.client, "", 0)

	first, err := d.Claim(s.ctx, "42:despachado:chg-1")
	s.Require().NoError(err)
	second, err := d.Claim(s.ctx, "42:despachado:chg-1")
	s.Require().NoError(err)
	other, err := d.Claim(s.ctx, "43:despachado:chg-1")
	s.Require().NoError(err)

	s.True(first)
	s.False(second)
	s.True(other)
}

func (s *DeduperTestSuite) TestClaim_SetsTTL() {
	d := NewTransitionDeduper(s.client, "test:", time.Minute)

	_, err := d.Claim(s.ctx, "42:insumos:chg-2")
	s.Require().NoError(err)

	ttl, err := s.client.TTL(s.ctx, "test:42:insumos:chg-2").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *DeduperTestSuite) TestRelease_AllowsReclaim() {
	d := NewTransitionDeduper(s.client, "", 0)

	claimed, err := d.Claim(s.ctx, "42:despachado:chg-3")
	s.Require().NoError(err)
	s.Require().True(claimed)

	s.Require().NoError(d.Release(s.ctx, "42:despachado:chg-3"))

	again, err := d.Claim(s.ctx, "42:despachado:chg-3")
	s.Require().NoError(err)
	s.True(again)
}

func (s *DeduperTestSuite) TestRelease_UnknownKey() {
	d := NewTransitionDeduper(s.client, "", 0)

	s.NoError(d.Release(s.ctx, "missing"))
}

func TestNewTransitionDeduper_Defaults(t *testing.T) {
	d := NewTransitionDeduper(nil, "", 0)

	assert.Equal(t, DefaultKeyPrefix, d.prefix)
	require.Equal(t, DefaultTTL, d.ttl)
}
