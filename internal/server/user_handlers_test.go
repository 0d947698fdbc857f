package server

import (
	"bytes"
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

// newUserTestApp wires the user CRUD routes with the caller authenticated
// as the given user id.
func newUserTestApp(userRepo *MockUserRepository, callerID uint) *fiber.App {
	app := fiber.New()
	s := &Server{userRepo: userRepo}
	s.userService = service.NewUserService(userRepo)

	app.Use(func(c *fiber.Ctx) error {
		c.Locals("userID", callerID)
		return c.Next()
	})
	app.Get("/users", s.GetUsers)
	app.Get("/users/:id", s.GetUser)
	app.Put("/users/:id", s.UpdateUser)
	app.Delete("/users/:id", s.DeleteUser)
	return app
}

func TestGetUsers(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("List", mock.Anything, 10, 0).Return([]models.User{
		{ID: 1, Email: "a@example.com"},
		{ID: 2, Email: "b@example.com"},
	}, nil)
	app := newUserTestApp(userRepo, 1)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users", nil))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var users []models.User
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	assert.Len(t, users, 2)
	userRepo.AssertExpectations(t)
}

func TestGetUser(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&models.User{ID: 2, Email: "b@example.com"}, nil)
		app := newUserTestApp(userRepo, 1)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/2", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("Not Found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", uint(99)))
		app := newUserTestApp(userRepo, 1)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/99", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateUser(t *testing.T) {
	body := []byte(`{"email":"new@example.com"}`)

	t.Run("Self Update Is Accepted", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).
			Return(&models.User{ID: 1, Email: "old@example.com"}, nil)
		userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
			return u.Email == "new@example.com"
		})).Return(nil)
		app := newUserTestApp(userRepo, 1)

		req := httptest.NewRequest(http.MethodPut, "/users/1", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusAccepted, resp.StatusCode)
		userRepo.AssertExpectations(t)
	})

	t.Run("Other Account Is Forbidden", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).
			Return(&models.User{ID: 2}, nil)
		app := newUserTestApp(userRepo, 1)

		req := httptest.NewRequest(http.MethodPut, "/users/2", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("Missing Account Is Not Found", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(99)).
			Return(nil, models.NewNotFoundError("User", uint(99)))
		app := newUserTestApp(userRepo, 1)

		req := httptest.NewRequest(http.MethodPut, "/users/99", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestDeleteUser(t *testing.T) {
	t.Run("Self Delete Is No Content", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(1)).Return(&models.User{ID: 1}, nil)
		userRepo.On("Delete", mock.Anything, uint(1)).Return(nil)
		app := newUserTestApp(userRepo, 1)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/users/1", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		userRepo.AssertExpectations(t)
	})

	t.Run("Other Account Is Forbidden", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		userRepo.On("GetByID", mock.Anything, uint(2)).Return(&models.User{ID: 2}, nil)
		app := newUserTestApp(userRepo, 1)

		resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/users/2", nil))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
