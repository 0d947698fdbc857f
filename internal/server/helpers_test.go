package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePagination(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		defaultLimit  int
		expectedLimit int
		expectedSkip  int
	}{
		{"defaults", "", 10, 10, 0},
		{"explicit", "limit=25&skip=50", 10, 25, 50},
		{"zero limit", "limit=0", 10, 10, 0},
		{"negative limit", "limit=-3", 10, 10, 0},
		{"over cap", "limit=500", 10, 100, 0},
		{"negative skip", "skip=-1", 10, 10, 0},
		{"garbage values", "limit=abc&skip=xyz", 10, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			var got Pagination
			app.Get("/", func(c *fiber.Ctx) error {
				got = parsePagination(c, tt.defaultLimit)
				return c.SendStatus(fiber.StatusOK)
			})

			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/?"+tt.query, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()

			assert.Equal(t, tt.expectedLimit, got.Limit)
			assert.Equal(t, tt.expectedSkip, got.Skip)
		})
	}
}

func TestParseID(t *testing.T) {
	s := &Server{}

	app := fiber.New()
	app.Get("/items/:id", func(c *fiber.Ctx) error {
		id, err := s.parseID(c, "id")
		if err != nil {
			return nil
		}
		return c.JSON(fiber.Map{"id": id})
	})

	tests := []struct {
		name           string
		path           string
		expectedStatus int
	}{
		{"valid", "/items/7", http.StatusOK},
		{"zero", "/items/0", http.StatusBadRequest},
		{"negative", "/items/-4", http.StatusBadRequest},
		{"non numeric", "/items/abc", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil))
			require.NoError(t, err)
			_ = resp.Body.Close()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}
