package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/itchan-dev/postadmin/shared/api"
	"github.com/itchan-dev/postadmin/shared/domain"
	"github.com/itchan-dev/postadmin/shared/logger"
	"github.com/itchan-dev/postadmin/shared/utils"
)

const (
	defaultEditMessage   = "Post updated successfully"
	defaultDeleteMessage = "Post deleted successfully"
)

// PostAPI is the subset of the API client the store needs.
type PostAPI interface {
	GetPosts(ctx context.Context) (domain.Posts, error)
	EditPost(ctx context.Context, id domain.PostId, data api.EditPostRequest) (api.EditPostResponse, error)
	DeletePost(ctx context.Context, id domain.PostId) (string, error)
}

// State is a consistent copy of the store's observable fields.
type State struct {
	Posts     domain.Posts
	IsLoading bool
	Error     string
	Message   string
	UpdatedAt time.Time // last successful fetch
}

// PostStore caches the remote post collection and mediates API calls.
// Every operation records its outcome in Error or Message; callers read
// them through Snapshot.
type PostStore struct {
	api      PostAPI
	mu       sync.RWMutex
	posts    domain.Posts
	inFlight int // running operations; IsLoading while > 0
	err      string
	message  string
	updated  time.Time
}

func New(api PostAPI) *PostStore {
	return &PostStore{
		api:   api,
		posts: domain.Posts{},
	}
}

func (s *PostStore) begin(clearError bool) {
	s.mu.Lock()
	s.inFlight++
	if clearError {
		s.err = ""
	}
	s.mu.Unlock()
}

// finish ends an operation and applies its outcome under the write lock.
func (s *PostStore) finish(op string, err error, apply func()) {
	s.mu.Lock()
	s.inFlight--
	if err != nil {
		s.err = err.Error()
	} else if apply != nil {
		apply()
	}
	s.mu.Unlock()
	observe(op, err)
}

// GetAllPosts refreshes the collection from the API.
func (s *PostStore) GetAllPosts(ctx context.Context) error {
	s.begin(true)

	posts, err := s.api.GetPosts(ctx)
	s.finish(opGetAll, err, func() {
		s.posts = posts
		s.updated = time.Now()
	})
	if err != nil {
		return err
	}

	logger.Log.Debug("posts fetched", "component", "post_store", "count", len(posts))
	return nil
}

// EditPost replaces one post's description.
func (s *PostStore) EditPost(ctx context.Context, id domain.PostId, description string) error {
	s.begin(true)

	resp, err := s.api.EditPost(ctx, id, api.EditPostRequest{Description: description})
	s.finish(opEdit, err, func() {
		s.message = resp.Message
		if s.message == "" {
			s.message = defaultEditMessage
		}

		updated := make(domain.Posts, len(s.posts))
		copy(updated, s.posts)
		for i := range updated {
			if updated[i].Id != id {
				continue
			}
			if adoptable(resp.Post, id) {
				updated[i] = *resp.Post
			} else {
				desc := description
				updated[i].Description = &desc
			}
		}
		s.posts = updated
	})
	if err != nil {
		return err
	}

	logger.Log.Info("post edited", "component", "post_store", "post_id", id)
	return nil
}

// adoptable reports whether a post returned by the API may replace the cached
// copy of id. Anything incomplete only contributes the description.
func adoptable(p *domain.Post, id domain.PostId) bool {
	if p == nil || p.Id != id {
		return false
	}
	if err := utils.Validator().Struct(*p); err != nil {
		return false
	}
	return utils.Validator().Var(p.CreatedAt, "required") == nil
}

// DeletePost deletes a post and drops it from the collection.
func (s *PostStore) DeletePost(ctx context.Context, id domain.PostId) error {
	s.begin(true)

	msg, err := s.api.DeletePost(ctx, id)
	s.finish(opDelete, err, func() {
		s.posts = s.posts.Without(id)
		s.message = msg
		if s.message == "" {
			s.message = defaultDeleteMessage
		}
	})
	if err != nil {
		return err
	}

	logger.Log.Info("post deleted", "component", "post_store", "post_id", id)
	return nil
}

// Snapshot returns a copy of the current state.
func (s *PostStore) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make(domain.Posts, len(s.posts))
	copy(posts, s.posts)
	return State{
		Posts:     posts,
		IsLoading: s.inFlight > 0,
		Error:     s.err,
		Message:   s.message,
		UpdatedAt: s.updated,
	}
}

// StartBackgroundRefresh periodically refetches the collection until ctx is done.
func (s *PostStore) StartBackgroundRefresh(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	logger.Log.Info("started post store background refresh",
		"component", "post_store",
		"interval", interval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := s.GetAllPosts(ctx); err != nil && !errors.Is(err, context.Canceled) {
					logger.Log.Error("background refresh failed",
						"component", "post_store",
						"error", err)
				}
			case <-ctx.Done():
				logger.Log.Info("post store refresh shutting down",
					"component", "post_store")
				return
			}
		}
	}()
}
