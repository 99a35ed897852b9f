package service

import (
	"context"
	"errors"
	"io"
	"sort"

	"socialmedia/backend/internal/hub"
	"socialmedia/backend/internal/models"
	"socialmedia/backend/internal/repository"

	"go.uber.org/zap"
)

var testLog = zap.NewNop()

// memStore is an in-memory database shared by the fake repositories.
// Transactions snapshot the whole store and restore it on error.
type memStore struct {
	users    map[uint]*models.User
	edges    map[[2]uint]models.Subscription
	posts    map[uint]*models.Post
	images   map[uint]*models.PostImage
	messages []models.Message
	nextID   uint
	writes   int
	locks    [][2]uint

	// createUserErr, when set, is returned by memUsers.Create.
	createUserErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:  make(map[uint]*models.User),
		edges:  make(map[[2]uint]models.Subscription),
		posts:  make(map[uint]*models.Post),
		images: make(map[uint]*models.PostImage),
	}
}

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) addUser(username string) *models.User {
	u := &models.User{ID: s.id(), Username: username, Email: username + "@example.com"}
	s.users[u.ID] = u
	return u
}

func (s *memStore) edge(userID, subscriberID uint) (models.Subscription, bool) {
	e, ok := s.edges[[2]uint{userID, subscriberID}]
	return e, ok
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	edges := make(map[[2]uint]models.Subscription, len(s.edges))
	for k, v := range s.edges {
		edges[k] = v
	}
	images := make(map[uint]*models.PostImage, len(s.images))
	for k, v := range s.images {
		images[k] = v
	}
	posts := make(map[uint]*models.Post, len(s.posts))
	for k, v := range s.posts {
		posts[k] = v
	}

	if err := fn(ctx); err != nil {
		s.edges, s.images, s.posts = edges, images, posts
		return err
	}
	return nil
}

// users

type memUsers struct{ *memStore }

func (r memUsers) Create(_ context.Context, user *models.User) error {
	if r.createUserErr != nil {
		return r.createUserErr
	}
	r.writes++
	user.ID = r.id()
	r.users[user.ID] = user
	return nil
}

func (r memUsers) FindByID(_ context.Context, id uint) (*models.User, error) {
	if u, ok := r.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) FindByUsername(_ context.Context, username string) (*models.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r memUsers) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r memUsers) FindByIDs(_ context.Context, ids []uint) ([]models.User, error) {
	var out []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok {
			out = append(out, *u)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) FindAll(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memUsers) FindRoleByName(_ context.Context, name string) (*models.Role, error) {
	return &models.Role{ID: 1, Name: name}, nil
}

// subscriptions

type memSubs struct{ *memStore }

func (r memSubs) LockPair(_ context.Context, a, b uint) error {
	if a > b {
		a, b = b, a
	}
	r.locks = append(r.locks, [2]uint{a, b})
	return nil
}

func (r memSubs) FindEdge(_ context.Context, userID, subscriberID uint) (*models.Subscription, error) {
	if e, ok := r.edge(userID, subscriberID); ok {
		return &e, nil
	}
	return nil, repository.ErrNotFound
}

func (r memSubs) Save(_ context.Context, edge *models.Subscription) error {
	r.writes++
	r.edges[[2]uint{edge.UserID, edge.SubscriberID}] = *edge
	return nil
}

func (r memSubs) Delete(_ context.Context, edge *models.Subscription) error {
	r.writes++
	delete(r.edges, [2]uint{edge.UserID, edge.SubscriberID})
	return nil
}

func (r memSubs) filter(keep func(models.Subscription) bool) []models.Subscription {
	var out []models.Subscription
	for _, e := range r.edges {
		if keep(e) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].UserID != out[j].UserID {
			return out[i].UserID < out[j].UserID
		}
		return out[i].SubscriberID < out[j].SubscriberID
	})
	return out
}

func (r memSubs) FindAcceptedForUser(_ context.Context, userID uint) ([]models.Subscription, error) {
	return r.filter(func(e models.Subscription) bool { return e.UserID == userID && e.Accepted }), nil
}

func (r memSubs) FindByUser(_ context.Context, userID uint) ([]models.Subscription, error) {
	return r.filter(func(e models.Subscription) bool { return e.UserID == userID }), nil
}

func (r memSubs) FindBySubscriber(_ context.Context, subscriberID uint) ([]models.Subscription, error) {
	return r.filter(func(e models.Subscription) bool { return e.SubscriberID == subscriberID }), nil
}

// posts

type memPosts struct{ *memStore }

func (r memPosts) Create(_ context.Context, post *models.Post) error {
	r.writes++
	post.ID = r.id()
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r memPosts) FindByID(_ context.Context, id uint) (*models.Post, error) {
	if p, ok := r.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r memPosts) Update(_ context.Context, post *models.Post) error {
	r.writes++
	cp := *post
	r.posts[post.ID] = &cp
	return nil
}

func (r memPosts) Delete(_ context.Context, id uint) error {
	r.writes++
	delete(r.posts, id)
	return nil
}

func (r memPosts) FindPage(_ context.Context, page, size int, sortField string, desc bool) (*repository.Page[models.Post], error) {
	var all []models.Post
	for _, p := range r.posts {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		less := all[i].ID < all[j].ID
		if sortField == "title" {
			less = all[i].Title < all[j].Title
		}
		if desc {
			return !less
		}
		return less
	})

	start := page * size
	if start > len(all) {
		start = len(all)
	}
	end := start + size
	if end > len(all) {
		end = len(all)
	}
	return &repository.Page[models.Post]{Items: all[start:end], TotalItems: int64(len(all)), Page: page, Size: size}, nil
}

func (r memPosts) FindByUser(_ context.Context, userID uint) ([]models.Post, error) {
	var out []models.Post
	for _, p := range r.posts {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// post images

type memImages struct{ *memStore }

func (r memImages) Create(_ context.Context, image *models.PostImage) error {
	r.writes++
	image.ID = r.id()
	cp := *image
	r.images[image.ID] = &cp
	return nil
}

func (r memImages) FindByID(_ context.Context, id uint) (*models.PostImage, error) {
	if img, ok := r.images[id]; ok {
		cp := *img
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (r memImages) FindByPost(_ context.Context, postID uint) ([]models.PostImage, error) {
	var out []models.PostImage
	for _, img := range r.images {
		if img.PostID == postID {
			out = append(out, *img)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r memImages) FindByPosts(ctx context.Context, postIDs []uint) (map[uint][]models.PostImage, error) {
	grouped := make(map[uint][]models.PostImage)
	for _, id := range postIDs {
		images, _ := r.FindByPost(ctx, id)
		if len(images) > 0 {
			grouped[id] = images
		}
	}
	return grouped, nil
}

func (r memImages) Delete(_ context.Context, id uint) error {
	r.writes++
	delete(r.images, id)
	return nil
}

// messages

type memMessages struct{ *memStore }

func (r memMessages) Create(_ context.Context, message *models.Message) error {
	r.writes++
	message.ID = r.id()
	r.messages = append(r.messages, *message)
	return nil
}

func (r memMessages) FindByRecipient(_ context.Context, recipientID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.RecipientID == recipientID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r memMessages) FindBetween(_ context.Context, senderID, recipientID uint) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.SenderID == senderID && m.RecipientID == recipientID {
			out = append(out, m)
		}
	}
	return out, nil
}

// storage

type memFiles struct {
	files   map[string][]byte
	failing bool
}

func newMemFiles() *memFiles {
	return &memFiles{files: make(map[string][]byte)}
}

func (f *memFiles) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if f.failing {
		return errors.New("disk full")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.files[key] = data
	return nil
}

func (f *memFiles) Delete(_ context.Context, key string) error {
	delete(f.files, key)
	return nil
}

func (f *memFiles) URL(key string) string {
	return "/uploads/" + key
}

// events

type recordedEvent struct {
	userID uint
	event  hub.Event
}

type memEvents struct {
	published []recordedEvent
}

func (e *memEvents) Publish(userID uint, event hub.Event) {
	e.published = append(e.published, recordedEvent{userID: userID, event: event})
}
