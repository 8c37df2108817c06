package jobsearch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"careerpath/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewAdzunaClient(config.JobSearchConfig{
		AppID:   "id",
		AppKey:  "key",
		BaseURL: srv.URL + "/",
		Country: "gb",
	}, srv.Client(), nil)
}

func TestAdzunaClient_Search_MapsResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gb/search/1", r.URL.Path)
		assert.Equal(t, "Data Analyst", r.URL.Query().Get("what"))
		assert.Equal(t, "id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "5", r.URL.Query().Get("results_per_page"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results": [
			{"title": "Analyst", "company": {"display_name": "Acme"}, "location": {"display_name": "London"},
			 "salary_min": 30000, "salary_max": 40000.5, "salary_is_predicted": "1", "redirect_url": "https://jobs/1"},
			{"title": "", "salary_min": 0, "salary_is_predicted": "0"}
		]}`))
	})

	jobs, err := c.Search(context.Background(), "Data Analyst")
	require.NoError(t, err)
	require.Len(t, jobs, 2)

	assert.Equal(t, "Analyst", jobs[0].Title)
	assert.Equal(t, "Acme", jobs[0].Company)
	assert.Equal(t, "London", jobs[0].Location)
	assert.Equal(t, "30000-40000.5 (estimated)", jobs[0].Salary)
	assert.Equal(t, "https://jobs/1", jobs[0].URL)
	assert.Equal(t, "Data Analyst", jobs[0].SourceQuery)

	assert.Equal(t, notSpecified, jobs[1].Title)
	assert.Equal(t, notSpecified, jobs[1].Company)
	assert.Equal(t, notSpecified, jobs[1].Salary)
	assert.Equal(t, "#", jobs[1].URL)
}

func TestAdzunaClient_Search_HTMLBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<!DOCTYPE html><html></html>"))
	})

	_, err := c.Search(context.Background(), "Chef")
	assert.ErrorIs(t, err, ErrHTMLResponse)
}

func TestAdzunaClient_Search_ErrorStatus(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"exception": "AUTH_FAIL"}`))
	})

	_, err := c.Search(context.Background(), "Chef")
	assert.Error(t, err)
}

func TestAdzunaClient_Search_CapsResults(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"results": [{},{},{},{},{},{},{}]}`))
	})

	jobs, err := c.Search(context.Background(), "Chef")
	require.NoError(t, err)
	assert.Len(t, jobs, 5)
}
