package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"followdiff-be/internal/entity"
	"followdiff-be/internal/repository/memory"
	"followdiff-be/pkg/extract"
)

func newDiffFixture(repo *fakeSnapshotRepo) (IDiffService, *memory.ResultRepository) {
	resultRepo := memory.NewResultRepository()
	svc := NewDiffService(
		&fakeRepositoryFactory{repo: repo},
		resultRepo,
		nil,
		nil,
		nopLogger{},
		0,
	)
	return svc, resultRepo
}

func TestDiffFirstRun(t *testing.T) {
	repo := newFakeSnapshotRepo()
	svc, resultRepo := newDiffFixture(repo)
	userId := uuid.New()

	following := extract.NewUserSet("alice", "bob", "carol")
	followers := extract.NewUserSet("bob", "carol", "dave")

	summary, err := svc.Diff(context.Background(), userId, following, followers)
	assert.NoError(t, err)
	assert.True(t, summary.FirstRun)
	assert.True(t, summary.BaselineSaved)
	assert.Nil(t, summary.BaselineTs)
	assert.Equal(t, 3, summary.Following)
	assert.Equal(t, 3, summary.Followers)
	assert.Equal(t, 2, summary.Mutual)

	result, found := resultRepo.Get(userId)
	assert.True(t, found)
	assert.Equal(t, []string{"bob", "carol"}, result.Lists[entity.ListMutual])
	assert.Equal(t, []string{"alice"}, result.Lists[entity.ListOnlyInFollowing])
	assert.Equal(t, []string{"dave"}, result.Lists[entity.ListOnlyInFollowers])

	// No baseline means all six temporal lists stay empty.
	for _, name := range []string{
		entity.ListNewFollowers, entity.ListUnfollowers,
		entity.ListNewFollowing, entity.ListUnfollowedByYou,
		entity.ListNewMutuals, entity.ListLostMutuals,
	} {
		assert.Empty(t, result.Lists[name], name)
	}

	// The submitted sets became the stored baseline.
	assert.Len(t, repo.snapshots, 1)
	assert.Equal(t, []string{"alice", "bob", "carol"}, repo.snapshots[0].Following)
}

func TestDiffStructuralInvariants(t *testing.T) {
	svc, resultRepo := newDiffFixture(newFakeSnapshotRepo())
	userId := uuid.New()

	following := extract.NewUserSet("a1", "b1", "c1", "d1")
	followers := extract.NewUserSet("c1", "d1", "e1")

	_, err := svc.Diff(context.Background(), userId, following, followers)
	assert.NoError(t, err)

	result, _ := resultRepo.Get(userId)
	mutual := extract.NewUserSet(result.Lists[entity.ListMutual]...)
	onlyFollowing := extract.NewUserSet(result.Lists[entity.ListOnlyInFollowing]...)
	onlyFollowers := extract.NewUserSet(result.Lists[entity.ListOnlyInFollowers]...)

	assert.Equal(t, 0, mutual.Intersect(onlyFollowing).Len())
	assert.Equal(t, 0, mutual.Intersect(onlyFollowers).Len())
	assert.Equal(t, 0, onlyFollowing.Intersect(onlyFollowers).Len())

	reFollowing := extract.NewUserSet(mutual.Sorted()...)
	reFollowing.Merge(onlyFollowing)
	assert.ElementsMatch(t, following.Sorted(), reFollowing.Sorted())

	reFollowers := extract.NewUserSet(mutual.Sorted()...)
	reFollowers.Merge(onlyFollowers)
	assert.ElementsMatch(t, followers.Sorted(), reFollowers.Sorted())
}

func TestDiffAgainstBaseline(t *testing.T) {
	repo := newFakeSnapshotRepo()
	svc, resultRepo := newDiffFixture(repo)
	userId := uuid.New()

	// prev: following {alice,bob}, followers {bob,carol} -> mutual {bob}
	_, err := svc.Diff(context.Background(), userId,
		extract.NewUserSet("alice", "bob"),
		extract.NewUserSet("bob", "carol"))
	assert.NoError(t, err)

	// now: following {alice,carol}, followers {alice,bob} -> mutual {alice}
	summary, err := svc.Diff(context.Background(), userId,
		extract.NewUserSet("alice", "carol"),
		extract.NewUserSet("alice", "bob"))
	assert.NoError(t, err)
	assert.False(t, summary.FirstRun)
	assert.NotNil(t, summary.BaselineTs)

	result, _ := resultRepo.Get(userId)
	assert.Equal(t, []string{"alice"}, result.Lists[entity.ListNewFollowers])
	assert.Equal(t, []string{"carol"}, result.Lists[entity.ListUnfollowers])
	assert.Equal(t, []string{"carol"}, result.Lists[entity.ListNewFollowing])
	assert.Equal(t, []string{"bob"}, result.Lists[entity.ListUnfollowedByYou])
	assert.Equal(t, []string{"alice"}, result.Lists[entity.ListNewMutuals])
	assert.Equal(t, []string{"bob"}, result.Lists[entity.ListLostMutuals])

	assert.Equal(t, 1, summary.NewFollowers)
	assert.Equal(t, 1, summary.Unfollowers)
	assert.Equal(t, 1, summary.NewMutuals)
	assert.Equal(t, 1, summary.LostMutuals)

	// Each run appends a snapshot; the second one is the new baseline.
	assert.Len(t, repo.snapshots, 2)
}

func TestDiffPersistFailureStillServesResult(t *testing.T) {
	repo := newFakeSnapshotRepo()
	svc, resultRepo := newDiffFixture(repo)
	userId := uuid.New()

	_, err := svc.Diff(context.Background(), userId,
		extract.NewUserSet("alice"), extract.NewUserSet("alice", "bob"))
	assert.NoError(t, err)

	repo.failCreate = true
	summary, err := svc.Diff(context.Background(), userId,
		extract.NewUserSet("alice", "carol"), extract.NewUserSet("alice"))
	assert.NoError(t, err)
	assert.False(t, summary.BaselineSaved)
	assert.False(t, summary.FirstRun)

	// Lists were computed and cached even though the write failed.
	result, found := resultRepo.Get(userId)
	assert.True(t, found)
	assert.Equal(t, []string{"bob"}, result.Lists[entity.ListUnfollowers])
	assert.Len(t, repo.snapshots, 1)
}

func TestDiffIdempotentAgainstSameBaseline(t *testing.T) {
	repo := newFakeSnapshotRepo()
	svc, resultRepo := newDiffFixture(repo)
	userId := uuid.New()

	_, err := svc.Diff(context.Background(), userId,
		extract.NewUserSet("alice", "bob"), extract.NewUserSet("bob"))
	assert.NoError(t, err)

	// Block further persists so both reruns see the same stored baseline.
	repo.failCreate = true
	following := extract.NewUserSet("alice", "carol")
	followers := extract.NewUserSet("carol", "dave")

	_, err = svc.Diff(context.Background(), userId, following, followers)
	assert.NoError(t, err)
	first, _ := resultRepo.Get(userId)

	_, err = svc.Diff(context.Background(), userId, following, followers)
	assert.NoError(t, err)
	second, _ := resultRepo.Get(userId)

	assert.Equal(t, first.Lists, second.Lists)
}
