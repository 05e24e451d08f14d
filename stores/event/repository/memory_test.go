package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	bCtx "github.com/heritage-x/goapi/base/ctx"
	"github.com/heritage-x/goapi/domain"
	"github.com/heritage-x/goapi/domain/event"
)

var (
	alice = domain.Address("0x000000000000000000000000000000000000a11c")
	bob   = domain.Address("0x0000000000000000000000000000000000000b0b")
)

type memoryRepoTestSuite struct {
	suite.Suite

	repo event.Repo
}

func TestMemoryRepoSuite(t *testing.T) {
	suite.Run(t, new(memoryRepoTestSuite))
}

func tokenId(v uint64) *domain.TokenId {
	id := domain.TokenId(v)
	return &id
}

func (s *memoryRepoTestSuite) SetupTest() {
	ctx := bCtx.Background()
	s.repo = NewMemoryRepo()

	entries := []*event.Event{
		{Type: event.TypeCollectionCreated, CollectionId: 1, Actor: alice, Time: time.Now()},
		{Type: event.TypeArtifactMinted, CollectionId: 1, TokenId: tokenId(0), Actor: alice, Time: time.Now()},
		{Type: event.TypeArtifactMinted, CollectionId: 1, TokenId: tokenId(1), Actor: alice, Time: time.Now()},
		{Type: event.TypeListed, CollectionId: 1, TokenId: tokenId(0), Actor: bob, Time: time.Now()},
		{Type: event.TypeCollectionCreated, CollectionId: 2, Actor: bob, Time: time.Now()},
	}
	for _, ev := range entries {
		s.Require().NoError(s.repo.Insert(ctx, ev))
	}
}

func (s *memoryRepoTestSuite) TestFindAll() {
	ctx := bCtx.Background()

	res, err := s.repo.FindAll(ctx)
	s.Require().NoError(err)
	s.Len(res, 5)
}

func (s *memoryRepoTestSuite) TestFilterByType() {
	ctx := bCtx.Background()

	res, err := s.repo.FindAll(ctx, event.WithTypes(event.TypeArtifactMinted))
	s.Require().NoError(err)
	s.Len(res, 2)

	res, err = s.repo.FindAll(ctx, event.WithTypes(event.TypeArtifactMinted, event.TypeListed))
	s.Require().NoError(err)
	s.Len(res, 3)
}

func (s *memoryRepoTestSuite) TestFilterByCollectionAndToken() {
	ctx := bCtx.Background()

	res, err := s.repo.FindAll(ctx, event.WithCollectionId(1), event.WithTokenId(0))
	s.Require().NoError(err)
	s.Len(res, 2)
}

func (s *memoryRepoTestSuite) TestFilterByActor() {
	ctx := bCtx.Background()

	res, err := s.repo.FindAll(ctx, event.WithActor(bob))
	s.Require().NoError(err)
	s.Len(res, 2)
}

func (s *memoryRepoTestSuite) TestPagination() {
	ctx := bCtx.Background()

	res, err := s.repo.FindAll(ctx, event.WithPagination(0, 2))
	s.Require().NoError(err)
	s.Len(res, 2)

	res, err = s.repo.FindAll(ctx, event.WithPagination(4, 10))
	s.Require().NoError(err)
	s.Len(res, 1)

	res, err = s.repo.FindAll(ctx, event.WithPagination(10, 10))
	s.Require().NoError(err)
	s.Len(res, 0)
}

func (s *memoryRepoTestSuite) TestCount() {
	ctx := bCtx.Background()

	n, err := s.repo.Count(ctx, event.WithTypes(event.TypeCollectionCreated))
	s.Require().NoError(err)
	s.Equal(2, n)
}

func (s *memoryRepoTestSuite) TestInsertCopiesValue() {
	ctx := bCtx.Background()

	ev := &event.Event{Type: event.TypeBurned, CollectionId: 3, Actor: alice, Time: time.Now()}
	s.Require().NoError(s.repo.Insert(ctx, ev))
	ev.Actor = bob

	res, err := s.repo.FindAll(ctx, event.WithTypes(event.TypeBurned))
	s.Require().NoError(err)
	s.Require().Len(res, 1)
	s.Equal(alice, res[0].Actor)
}
