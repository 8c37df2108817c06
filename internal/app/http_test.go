package app

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"careerpath/internal/config"
	"careerpath/internal/delivery/http/handler"
	"careerpath/internal/delivery/http/middleware"
	"careerpath/internal/delivery/http/routes"
	"careerpath/internal/domain/roadmap"
	"careerpath/internal/pkg/jwt"
	"careerpath/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoadmapUsecase struct {
	calls    int
	in       usecase.GenerateRoadmapInput
	err      error
	panicMsg string
}

func (s *stubRoadmapUsecase) Generate(_ context.Context, in usecase.GenerateRoadmapInput) (roadmap.Document, error) {
	s.calls++
	s.in = in
	if s.panicMsg != "" {
		panic(s.panicMsg)
	}
	if s.err != nil {
		return roadmap.Document{}, s.err
	}
	summary := roadmap.NewSummary(roadmap.ResolveLevel(in.ExperienceLevel), in.TargetRole, "")
	return roadmap.NewDocument(in.UserID, roadmap.FallbackRoadmap(), summary, nil, nil, time.Now()), nil
}

type stubProgressUsecase struct {
	doc roadmap.Document
	err error
}

func (s *stubProgressUsecase) Get(context.Context, string) (roadmap.Document, error) {
	return s.doc, s.err
}

func (s *stubProgressUsecase) SetMilestone(_ context.Context, _ string, milestone string, completed bool) (roadmap.Document, error) {
	if s.err != nil {
		return roadmap.Document{}, s.err
	}
	if err := s.doc.SetMilestone(milestone, completed, time.Now()); err != nil {
		return roadmap.Document{}, usecase.ErrUnknownMilestone
	}
	return s.doc, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type testServer struct {
	app      *fiber.App
	roadmaps *stubRoadmapUsecase
	progress *stubProgressUsecase
	jwt      *jwt.HMACService
}

func newTestServer(t *testing.T, env string) *testServer {
	t.Helper()

	cfg := config.AppConfig{
		AppName:     "careerpath-test",
		Environment: env,
		Region:      "local",
		CORSOrigins: []string{"http://localhost:5173"},
	}
	jwtSvc := jwt.NewHMACService("test-secret", time.Hour)
	roadmaps := &stubRoadmapUsecase{}
	progress := &stubProgressUsecase{
		doc: roadmap.NewDocument("u1", roadmap.FallbackRoadmap(), roadmap.Summary{}, nil, nil, time.Now()),
	}

	reg := &routes.Registry{
		Health:   handler.NewHealthHandler(cfg, stubPinger{}, stubPinger{err: errors.New("down")}),
		Roadmap:  handler.NewRoadmapHandler(roadmaps),
		Progress: handler.NewProgressHandler(progress),
		Auth:     middleware.NewAuthMiddleware(jwtSvc),
	}

	logger := log.New(io.Discard, "", 0)
	return &testServer{app: NewFiber(cfg, reg, logger), roadmaps: roadmaps, progress: progress, jwt: jwtSvc}
}

func (s *testServer) do(t *testing.T, req *http.Request) (int, map[string]any) {
	t.Helper()
	res, err := s.app.Test(req)
	require.NoError(t, err)
	defer res.Body.Close()

	var body map[string]any
	raw, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return res.StatusCode, body
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

const validRoadmapBody = `{
  "personalInfo": {"userId": "u1"},
  "careerGoals": {
    "targetRoles": ["Data Analyst", "BI Analyst"],
    "experienceLevel": "Beginner",
    "detailedAspiration": "Work with data",
    "objectives": "Get hired"
  },
  "skillsEducation": {"skills": ["SQL"]}
}`

func TestPostRoadmap_Success(t *testing.T) {
	s := newTestServer(t, "development")

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/roadmap", validRoadmapBody))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.EqualValues(t, 0, body["completion"])
	assert.Len(t, body["roadmap"], 2)
	assert.NotNil(t, body["relevantJobs"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, "Intermediate", summary["nextLevel"])
	assert.Equal(t, "Data Analyst", summary["targetRole"])

	assert.Equal(t, "Data Analyst", s.roadmaps.in.TargetRole)
	assert.Equal(t, "Work with data", s.roadmaps.in.Aspirations)
}

func TestPostRoadmap_OnlyFirstRoleRequired(t *testing.T) {
	s := newTestServer(t, "development")
	payload := `{"personalInfo": {"userId": "u1"}, "careerGoals": {"targetRoles": ["Data Analyst", ""]}}`

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/roadmap", payload))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, 1, s.roadmaps.calls)
	assert.Equal(t, "Data Analyst", s.roadmaps.in.TargetRole)
}

func TestPostRoadmap_PanicUsesRouteMessage(t *testing.T) {
	s := newTestServer(t, "development")
	s.roadmaps.panicMsg = "nil map write"

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/roadmap", validRoadmapBody))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate roadmap", body["error"])
	assert.Equal(t, "nil map write", body["details"])

	prod := newTestServer(t, config.EnvProduction)
	prod.roadmaps.panicMsg = "nil map write"
	status, body = prod.do(t, jsonRequest(http.MethodPost, "/api/roadmap", validRoadmapBody))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"error": "Failed to generate roadmap"}, body)
}

func TestPostRoadmap_MissingData(t *testing.T) {
	cases := map[string]string{
		"no user id":       `{"personalInfo": {}, "careerGoals": {"targetRoles": ["Dev"]}}`,
		"empty roles":      `{"personalInfo": {"userId": "u1"}, "careerGoals": {"targetRoles": []}}`,
		"blank role":       `{"personalInfo": {"userId": "u1"}, "careerGoals": {"targetRoles": [" "]}}`,
		"blank first role": `{"personalInfo": {"userId": "u1"}, "careerGoals": {"targetRoles": ["", "Dev"]}}`,
		"no career goals":  `{"personalInfo": {"userId": "u1"}}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, "development")
			status, body := s.do(t, jsonRequest(http.MethodPost, "/api/roadmap", payload))
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, map[string]any{"error": "Missing required user data"}, body)
			assert.Zero(t, s.roadmaps.calls)
		})
	}
}

func TestPostRoadmap_FailureDetails(t *testing.T) {
	s := newTestServer(t, "development")
	s.roadmaps.err = errors.New("failed to persist roadmap: connection refused")

	status, body := s.do(t, jsonRequest(http.MethodPost, "/api/roadmap", validRoadmapBody))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Failed to generate roadmap", body["error"])
	assert.Equal(t, "failed to persist roadmap: connection refused", body["details"])

	prod := newTestServer(t, config.EnvProduction)
	prod.roadmaps.err = errors.New("boom")
	status, body = prod.do(t, jsonRequest(http.MethodPost, "/api/roadmap", validRoadmapBody))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, map[string]any{"error": "Failed to generate roadmap"}, body)
}

func TestProgressRoutes(t *testing.T) {
	s := newTestServer(t, "development")
	tok, err := s.jwt.GenerateAccessToken("u1")
	require.NoError(t, err)

	req := jsonRequest(http.MethodPut, "/api/roadmap/me/milestones", `{"milestone": "Build first project", "completed": true}`)
	req.Header.Set("Authorization", "Bearer "+tok)
	status, body := s.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 13, body["completion"])
	assert.Equal(t, []any{"Build first project"}, body["completedMilestones"])

	req = jsonRequest(http.MethodPut, "/api/roadmap/me/milestones", `{"milestone": "Unknown", "completed": true}`)
	req.Header.Set("Authorization", "Bearer "+tok)
	status, _ = s.do(t, req)
	assert.Equal(t, http.StatusBadRequest, status)

	req = httptest.NewRequest(http.MethodGet, "/api/roadmap/me?token="+tok, nil)
	status, body = s.do(t, req)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "u1", body["userId"])

	s.progress.err = usecase.ErrRoadmapNotFound
	req = httptest.NewRequest(http.MethodGet, "/api/roadmap/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	status, body = s.do(t, req)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Roadmap not found", body["error"])
}

func TestProgressRoutes_RequireToken(t *testing.T) {
	s := newTestServer(t, "development")

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/roadmap/me", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body["error"])

	req := httptest.NewRequest(http.MethodGet, "/api/roadmap/me", nil)
	req.Header.Set("Authorization", "Bearer nope")
	status, body = s.do(t, req)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid token", body["error"])
}

func TestExperienceLevels(t *testing.T) {
	s := newTestServer(t, "development")
	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/roadmap/experience-levels", nil))
	require.Equal(t, http.StatusOK, status)

	levels := body["levels"].([]any)
	require.Len(t, levels, 5)
	expert := levels[4].(map[string]any)
	assert.Equal(t, "Expert", expert["level"])
	assert.Nil(t, expert["maxYears"])
	assert.Nil(t, expert["nextLevel"])
}

func TestHealthAndIndex(t *testing.T) {
	s := newTestServer(t, "development")

	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "development", body["environment"])
	assert.Equal(t, "local", body["region"])
	assert.Equal(t, map[string]any{"database": "ok", "cache": "unavailable"}, body["checks"])

	status, body = s.do(t, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "operational", body["status"])
	assert.NotEmpty(t, body["endpoints"])
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, "development")
	status, body := s.do(t, httptest.NewRequest(http.MethodGet, "/api/nope?x=1", nil))
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found", body["error"])
	assert.Equal(t, "The requested resource /api/nope?x=1 was not found", body["message"])
}

func TestRequestIDHeader(t *testing.T) {
	s := newTestServer(t, "development")
	res, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.NoError(t, err)
	defer res.Body.Close()
	assert.NotEmpty(t, res.Header.Get(middleware.HeaderRequestID))
}
