package service

import (
	"context"
	"errors"
	"testing"

	"socialmedia/backend/internal/apperror"
	"socialmedia/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type subscriptionFixture struct {
	store *memStore
	svc   *SubscriptionService
	users *UserService
}

func newSubscriptionFixture() *subscriptionFixture {
	store := newMemStore()
	return &subscriptionFixture{
		store: store,
		svc:   NewSubscriptionService(store, memUsers{store}, memSubs{store}, testLog),
		users: NewUserService(memUsers{store}, memSubs{store}, memPosts{store}, memMessages{store}, testLog),
	}
}

func (f *subscriptionFixture) change(t *testing.T, actor *models.User, target string) string {
	t.Helper()
	status, err := f.svc.ChangeSubscription(context.Background(), actor, target)
	require.NoError(t, err)
	return status
}

func (f *subscriptionFixture) friendNames(t *testing.T, u *models.User) []string {
	t.Helper()
	friends, err := f.users.Friends(context.Background(), u)
	require.NoError(t, err)
	names := []string{}
	for _, fr := range friends {
		names = append(names, fr.Username)
	}
	return names
}

func TestChangeSubscription_CreatesPendingEdge(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")
	b := f.store.addUser("bob")

	assert.Equal(t, "you subscribe bob now", f.change(t, a, "bob"))

	edge, ok := f.store.edge(b.ID, a.ID)
	require.True(t, ok)
	assert.False(t, edge.Accepted)
	_, reverse := f.store.edge(a.ID, b.ID)
	assert.False(t, reverse)
	assert.Equal(t, [][2]uint{{a.ID, b.ID}}, f.store.locks)
}

func TestChangeSubscription_SecondCallCancels(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")
	f.store.addUser("bob")

	f.change(t, a, "bob")
	assert.Equal(t, "subscription on bob canceled", f.change(t, a, "bob"))
	assert.Empty(t, f.store.edges)
}

func TestChangeSubscription_ReciprocatingAcceptsBothEdges(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")
	b := f.store.addUser("bob")
	require.NoError(t, memSubs{f.store}.Save(context.Background(), &models.Subscription{UserID: a.ID, SubscriberID: b.ID}))

	assert.Equal(t, "subscription of bob accepted", f.change(t, a, "bob"))

	incoming, ok := f.store.edge(a.ID, b.ID)
	require.True(t, ok)
	assert.True(t, incoming.Accepted)
	outgoing, ok := f.store.edge(b.ID, a.ID)
	require.True(t, ok)
	assert.True(t, outgoing.Accepted)

	assert.Equal(t, []string{"bob"}, f.friendNames(t, a))
	assert.Equal(t, []string{"alice"}, f.friendNames(t, b))
}

func TestChangeSubscription_SelfIsNoop(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")

	for i := 0; i < 2; i++ {
		assert.Equal(t, SelfSubscriptionStatus, f.change(t, a, "alice"))
	}
	assert.Zero(t, f.store.writes)
	assert.Empty(t, f.store.edges)
	assert.Empty(t, f.store.locks)
}

func TestChangeSubscription_UnknownTarget(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")

	_, err := f.svc.ChangeSubscription(context.Background(), a, "nobody")
	require.Error(t, err)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Zero(t, f.store.writes)
	assert.Empty(t, f.store.locks)
}

func TestChangeSubscription_UnsubscribingFriendDemotesReverseEdge(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")
	b := f.store.addUser("bob")

	f.change(t, a, "bob")
	f.change(t, b, "alice")
	assert.Equal(t, "subscription on bob canceled", f.change(t, a, "bob"))

	_, ok := f.store.edge(b.ID, a.ID)
	assert.False(t, ok, "alice must not follow bob anymore")
	edge, ok := f.store.edge(a.ID, b.ID)
	require.True(t, ok, "bob still follows alice")
	assert.False(t, edge.Accepted)

	assert.Empty(t, f.friendNames(t, a))
	assert.Empty(t, f.friendNames(t, b))

	// alice can become friends again by reciprocating
	assert.Equal(t, "subscription of bob accepted", f.change(t, a, "bob"))
	assert.Equal(t, []string{"bob"}, f.friendNames(t, a))
}

func TestChangeSubscription_AliceBobScenario(t *testing.T) {
	f := newSubscriptionFixture()
	alice := f.store.addUser("alice")
	bob := f.store.addUser("bob")

	assert.Equal(t, "you subscribe bob now", f.change(t, alice, "bob"))
	assert.Equal(t, "subscription of alice accepted", f.change(t, bob, "alice"))
	assert.Equal(t, []string{"bob"}, f.friendNames(t, alice))
}

func TestChangeSubscription_NeverMoreThanOneEdgePerDirection(t *testing.T) {
	f := newSubscriptionFixture()
	a := f.store.addUser("alice")
	b := f.store.addUser("bob")
	c := f.store.addUser("carol")

	actors := []*models.User{a, b, c, a, a, c, b, b, a, c}
	targets := []string{"bob", "alice", "alice", "carol", "bob", "bob", "carol", "alice", "carol", "alice"}
	for i := range actors {
		f.change(t, actors[i], targets[i])

		for key, edge := range f.store.edges {
			assert.Equal(t, key, [2]uint{edge.UserID, edge.SubscriberID})
			assert.NotEqual(t, edge.UserID, edge.SubscriberID)
			if edge.Accepted {
				back, ok := f.store.edge(edge.SubscriberID, edge.UserID)
				assert.True(t, ok && back.Accepted, "accepted edges come in pairs")
			}
		}
	}
}

func TestAcceptSubscription(t *testing.T) {
	t.Run("accepts pending request and subscribes back", func(t *testing.T) {
		f := newSubscriptionFixture()
		a := f.store.addUser("alice")
		b := f.store.addUser("bob")
		f.change(t, b, "alice")

		status, err := f.svc.AcceptSubscription(context.Background(), a, "bob")
		require.NoError(t, err)
		assert.Equal(t, "accepted subscription for bob", status)

		incoming, _ := f.store.edge(a.ID, b.ID)
		outgoing, _ := f.store.edge(b.ID, a.ID)
		assert.True(t, incoming.Accepted)
		assert.True(t, outgoing.Accepted)

		// accepting again is harmless
		status, err = f.svc.AcceptSubscription(context.Background(), a, "bob")
		require.NoError(t, err)
		assert.Equal(t, "accepted subscription for bob", status)
		assert.Len(t, f.store.edges, 2)
	})

	t.Run("missing request", func(t *testing.T) {
		f := newSubscriptionFixture()
		a := f.store.addUser("alice")
		f.store.addUser("bob")

		_, err := f.svc.AcceptSubscription(context.Background(), a, "bob")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
		assert.Empty(t, f.store.edges)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newSubscriptionFixture()
		a := f.store.addUser("alice")

		_, err := f.svc.AcceptSubscription(context.Background(), a, "ghost")
		assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	})
}

type subsRepoMock struct{ mock.Mock }

func (m *subsRepoMock) LockPair(ctx context.Context, a, b uint) error {
	return m.Called(ctx, a, b).Error(0)
}

func (m *subsRepoMock) FindEdge(ctx context.Context, userID, subscriberID uint) (*models.Subscription, error) {
	args := m.Called(ctx, userID, subscriberID)
	edge, _ := args.Get(0).(*models.Subscription)
	return edge, args.Error(1)
}

func (m *subsRepoMock) Save(ctx context.Context, edge *models.Subscription) error {
	return m.Called(ctx, edge).Error(0)
}

func (m *subsRepoMock) Delete(ctx context.Context, edge *models.Subscription) error {
	return m.Called(ctx, edge).Error(0)
}

func (m *subsRepoMock) FindAcceptedForUser(ctx context.Context, userID uint) ([]models.Subscription, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *subsRepoMock) FindByUser(ctx context.Context, userID uint) ([]models.Subscription, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func (m *subsRepoMock) FindBySubscriber(ctx context.Context, subscriberID uint) ([]models.Subscription, error) {
	args := m.Called(ctx, subscriberID)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

func TestChangeSubscription_StoreFailureRollsBack(t *testing.T) {
	store := newMemStore()
	a := store.addUser("alice")
	b := store.addUser("bob")

	repo := new(subsRepoMock)
	repo.On("LockPair", mock.Anything, a.ID, b.ID).Return(nil).Once()
	repo.On("FindEdge", mock.Anything, b.ID, a.ID).Return(nil, errors.New("connection reset")).Once()

	svc := NewSubscriptionService(store, memUsers{store}, repo, testLog)
	_, err := svc.ChangeSubscription(context.Background(), a, "bob")

	require.Error(t, err)
	assert.Equal(t, apperror.KindInternal, apperror.KindOf(err))
	repo.AssertExpectations(t)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
