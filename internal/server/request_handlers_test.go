package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"accesshub/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRequestApp(s *Server, userID uint) *fiber.App {
	app := fiber.New()
	app.Use(fakeAuth(userID))
	app.Post("/api/requests", s.CreateRequest)
	app.Get("/api/requests/me", s.GetMyRequests)
	app.Get("/api/requests", s.ManagerRequired(), s.GetAllRequests)
	app.Patch("/api/requests/:id", s.ManagerRequired(), s.UpdateRequestStatus)
	return app
}

func TestCreateRequest_Flow(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())

	employee := mustCreateUser(t, db, "requester", models.RoleEmployee)
	software := mustCreateSoftware(t, db, "Jira")
	app := newRequestApp(s, employee.ID)

	t.Run("first request admitted as pending", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":`+itoa(software.ID)+`,"access_type":"Write","reason":"  deploy builds  "}`)
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Pending", body["status"])
		assert.Equal(t, "Write", body["access_type"])
		assert.Equal(t, "deploy builds", body["reason"], "reason should be trimmed")
	})

	t.Run("second request blocked by pending conflict", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":`+itoa(software.ID)+`,"access_type":"Admin","reason":"more access"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody(t, resp)
		meta := body["meta"].(map[string]any)
		existing := meta["existingRequest"].(map[string]any)
		assert.Equal(t, "Pending", existing["status"])
		assert.Equal(t, "Write", existing["accessType"])
		assert.NotZero(t, existing["id"])
	})

	t.Run("unknown software not found", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":9999,"access_type":"Read","reason":"any"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("whitespace reason rejected", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":`+itoa(software.ID)+`,"access_type":"Read","reason":"   "}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestCreateRequest_ApprovedCoverage(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())

	employee := mustCreateUser(t, db, "coverage", models.RoleEmployee)
	software := mustCreateSoftware(t, db, "Grafana")
	require.NoError(t, db.Create(&models.AccessRequest{
		UserID:     employee.ID,
		SoftwareID: software.ID,
		AccessType: models.TierWrite,
		Reason:     "granted earlier",
		Status:     models.StatusApproved,
	}).Error)

	app := newRequestApp(s, employee.ID)

	t.Run("covered tier conflicts with current access", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":`+itoa(software.ID)+`,"access_type":"Read","reason":"view dashboards"}`)
		require.Equal(t, http.StatusConflict, resp.StatusCode)
		body := decodeBody(t, resp)
		meta := body["meta"].(map[string]any)
		current := meta["currentAccess"].(map[string]any)
		assert.Equal(t, "Write", current["accessType"])
		assert.Equal(t, "Approved", current["status"])
	})

	t.Run("upgrade above coverage admitted", func(t *testing.T) {
		resp := postJSON(t, app, "/api/requests",
			`{"software_id":`+itoa(software.ID)+`,"access_type":"Admin","reason":"manage alerts"}`)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	})
}

func TestGetMyRequests(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())

	mine := mustCreateUser(t, db, "mine", models.RoleEmployee)
	other := mustCreateUser(t, db, "other", models.RoleEmployee)
	software := mustCreateSoftware(t, db, "Confluence")
	require.NoError(t, db.Create(&models.AccessRequest{
		UserID: mine.ID, SoftwareID: software.ID,
		AccessType: models.TierRead, Reason: "docs", Status: models.StatusPending,
	}).Error)
	require.NoError(t, db.Create(&models.AccessRequest{
		UserID: other.ID, SoftwareID: software.ID,
		AccessType: models.TierRead, Reason: "docs", Status: models.StatusPending,
	}).Error)

	app := newRequestApp(s, mine.ID)
	req := httptest.NewRequest(http.MethodGet, "/api/requests/me", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	body := decodeBody(t, resp)
	requests := body["requests"].([]any)
	require.Len(t, requests, 1)
	first := requests[0].(map[string]any)
	assert.NotNil(t, first["software"], "software should be populated")
}

func TestManagerRequestRoutes(t *testing.T) {
	t.Parallel()
	s, db := newTestServer(t, testConfig())

	employee := mustCreateUser(t, db, "emp", models.RoleEmployee)
	manager := mustCreateUser(t, db, "mgr", models.RoleManager)
	software := mustCreateSoftware(t, db, "Vault")

	request := &models.AccessRequest{
		UserID: employee.ID, SoftwareID: software.ID,
		AccessType: models.TierWrite, Reason: "secrets", Status: models.StatusPending,
	}
	require.NoError(t, db.Create(request).Error)

	t.Run("employee blocked from queue and decisions", func(t *testing.T) {
		app := newRequestApp(s, employee.ID)

		req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)

		resp = patchJSON(t, app, "/api/requests/"+itoa(request.ID), `{"status":"Approved"}`)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("manager lists every request with requester", func(t *testing.T) {
		app := newRequestApp(s, manager.ID)
		req := httptest.NewRequest(http.MethodGet, "/api/requests", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		body := decodeBody(t, resp)
		requests := body["requests"].([]any)
		require.Len(t, requests, 1)
		first := requests[0].(map[string]any)
		assert.NotNil(t, first["user"])
		assert.NotNil(t, first["software"])
	})

	t.Run("approve then reject both succeed", func(t *testing.T) {
		app := newRequestApp(s, manager.ID)

		resp := patchJSON(t, app, "/api/requests/"+itoa(request.ID), `{"status":"Approved"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body := decodeBody(t, resp)
		assert.Equal(t, "Approved", body["status"])

		// No terminal-state guard: the decision can be overwritten.
		resp = patchJSON(t, app, "/api/requests/"+itoa(request.ID), `{"status":"Rejected"}`)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		body = decodeBody(t, resp)
		assert.Equal(t, "Rejected", body["status"])

		var stored models.AccessRequest
		require.NoError(t, db.First(&stored, request.ID).Error)
		assert.Equal(t, models.StatusRejected, stored.Status)
	})

	t.Run("invalid status label", func(t *testing.T) {
		app := newRequestApp(s, manager.ID)
		resp := patchJSON(t, app, "/api/requests/"+itoa(request.ID), `{"status":"Granted"}`)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing request", func(t *testing.T) {
		app := newRequestApp(s, manager.ID)
		resp := patchJSON(t, app, "/api/requests/424242", `{"status":"Approved"}`)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("invalid id param", func(t *testing.T) {
		app := newRequestApp(s, manager.ID)
		resp := patchJSON(t, app, "/api/requests/not-a-number", `{"status":"Approved"}`)
		_ = resp.Body.Close()
		require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
