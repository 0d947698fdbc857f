package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockVoteRepository is a mock of the VoteRepository interface
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Find(ctx context.Context, userID, postID uint) (*models.Vote, error) {
	args := m.Called(ctx, userID, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) Add(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func (m *MockVoteRepository) Remove(ctx context.Context, userID, postID uint) error {
	args := m.Called(ctx, userID, postID)
	return args.Error(0)
}

func newVoteTestApp(voteRepo *MockVoteRepository, postRepo *MockPostRepository) *fiber.App {
	app := fiber.New()
	s := &Server{voteRepo: voteRepo, postRepo: postRepo}
	s.voteService = service.NewVoteService(voteRepo, postRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", uint(2))
		return c.Next()
	})
	app.Post("/vote", s.Vote)
	return app
}

func postVote(t *testing.T, app *fiber.App, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/vote", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestVote(t *testing.T) {
	t.Run("up adds and answers 201", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1}, nil)
		voteRepo.On("Find", mock.Anything, uint(2), uint(1)).Return(nil, nil)
		voteRepo.On("Add", mock.Anything, uint(2), uint(1)).Return(nil)
		app := newVoteTestApp(voteRepo, postRepo)

		resp := postVote(t, app, `{"post_id":1,"direction":"up"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "successfully added vote", out["message"])
		voteRepo.AssertExpectations(t)
	})

	t.Run("up on existing vote is conflict", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1}, nil)
		voteRepo.On("Find", mock.Anything, uint(2), uint(1)).
			Return(&models.Vote{UserID: 2, PostID: 1}, nil)
		app := newVoteTestApp(voteRepo, postRepo)

		resp := postVote(t, app, `{"post_id":1,"direction":"up"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("down removes and answers 201", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1}, nil)
		voteRepo.On("Find", mock.Anything, uint(2), uint(1)).
			Return(&models.Vote{UserID: 2, PostID: 1}, nil)
		voteRepo.On("Remove", mock.Anything, uint(2), uint(1)).Return(nil)
		app := newVoteTestApp(voteRepo, postRepo)

		resp := postVote(t, app, `{"post_id":1,"direction":"down"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var out map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, "successfully deleted vote", out["message"])
	})

	t.Run("down without vote is not found", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.Post{ID: 1}, nil)
		voteRepo.On("Find", mock.Anything, uint(2), uint(1)).Return(nil, nil)
		app := newVoteTestApp(voteRepo, postRepo)

		resp := postVote(t, app, `{"post_id":1,"direction":"down"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("missing post is not found", func(t *testing.T) {
		voteRepo := new(MockVoteRepository)
		postRepo := new(MockPostRepository)
		postRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("Post", uint(99)))
		app := newVoteTestApp(voteRepo, postRepo)

		resp := postVote(t, app, `{"post_id":99,"direction":"up"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid direction", func(t *testing.T) {
		app := newVoteTestApp(new(MockVoteRepository), new(MockPostRepository))
		resp := postVote(t, app, `{"post_id":1,"direction":"sideways"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing post_id", func(t *testing.T) {
		app := newVoteTestApp(new(MockVoteRepository), new(MockPostRepository))
		resp := postVote(t, app, `{"direction":"up"}`)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
