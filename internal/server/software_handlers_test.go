package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"accesshub/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSoftwareApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Get("/api/software", s.GetSoftwareList)
	protected := app.Group("", fakeAuth(userID))
	protected.Post("/api/software", s.AdminRequired(), s.CreateSoftware)
	protected.Post("/api/software/suggestions", s.SuggestSoftware)
	protected.Get("/api/software/:id", s.GetSoftware)
	protected.Get("/api/admin/suggestions", s.AdminRequired(), s.GetSoftwareSuggestions)
	return app
}

func TestCreateSoftware(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())
	admin := mustCreateUser(t, db, "root", models.RoleAdmin)
	app := newSoftwareApp(s, admin.ID)

	t.Run("defaults applied", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software", `{"name":"Jira"}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Jira", body["name"])
		assert.Equal(t, "", body["description"])
		assert.ElementsMatch(t, []any{"Write", "Read", "Admin"}, body["access_levels"].([]any))
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software", `{"name":"Jira"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("name matching is case-sensitive", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software", `{"name":"jira"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("empty name rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software", `{"name":"  "}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("supplied tiers kept", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software",
			`{"name":"Grafana","description":"dashboards","access_levels":["Read"]}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, []any{"Read"}, body["access_levels"].([]any))
	})

	t.Run("invalid tier rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/software",
			`{"name":"Vault","access_levels":["Owner"]}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("non-admin blocked", func(t *testing.T) {
		employee := mustCreateUser(t, db, "emp", models.RoleEmployee)
		empApp := newSoftwareApp(s, employee.ID)
		resp := postJSON(t, empApp, "/api/software", `{"name":"Datadog"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}

func TestGetSoftwareList(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())
	mustCreateSoftware(t, db, "Jira")
	mustCreateSoftware(t, db, "Grafana")
	app := newSoftwareApp(s, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/software", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Len(t, body["software"].([]any), 2)
}

func TestGetSoftwareByID(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())
	user := mustCreateUser(t, db, "reader", models.RoleEmployee)
	sw := mustCreateSoftware(t, db, "Jira")
	app := newSoftwareApp(s, user.ID)

	req := httptest.NewRequest(http.MethodGet, "/api/software/"+itoa(sw.ID), nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Jira", body["name"])

	req = httptest.NewRequest(http.MethodGet, "/api/software/999", nil)
	resp, err = app.Test(req)
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSoftwareSuggestions(t *testing.T) {
	t.Parallel()

	t.Run("flag off blocks suggestions", func(t *testing.T) {
		s, db := newTestServer(t, testConfig())
		user := mustCreateUser(t, db, "suggester", models.RoleEmployee)
		app := newSoftwareApp(s, user.ID)

		resp := postJSON(t, app, "/api/software/suggestions", `{"name":"Linear"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("flag on records and admin reads back", func(t *testing.T) {
		cfg := testConfig()
		cfg.FeatureFlags = "software_suggestions=on"
		s, db := newTestServer(t, cfg)

		mr := miniredis.RunT(t)
		s.redis = redis.NewClient(&redis.Options{Addr: mr.Addr()})

		user := mustCreateUser(t, db, "suggester2", models.RoleEmployee)
		admin := mustCreateUser(t, db, "root2", models.RoleAdmin)

		app := newSoftwareApp(s, user.ID)
		resp := postJSON(t, app, "/api/software/suggestions",
			`{"name":"Linear","description":"issue tracking"}`)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusAccepted, resp.StatusCode)

		adminApp := newSoftwareApp(s, admin.ID)
		req := httptest.NewRequest(http.MethodGet, "/api/admin/suggestions", nil)
		listResp, err := adminApp.Test(req)
		require.NoError(t, err)
		body := decodeBody(t, listResp)
		suggestions := body["suggestions"].([]any)
		require.Len(t, suggestions, 1)
		first := suggestions[0].(map[string]any)
		assert.Equal(t, "Linear", first["name"])
		assert.EqualValues(t, user.ID, first["user_id"])
	})
}
