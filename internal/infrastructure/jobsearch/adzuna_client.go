package jobsearch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"careerpath/internal/config"
	"careerpath/internal/domain/roadmap"
)

const notSpecified = "Not specified"

var ErrHTMLResponse = errors.New("job search returned html")

// Client runs one job-board query for a title.
type Client interface {
	Search(ctx context.Context, title string) ([]roadmap.JobListing, error)
}

type adzunaClient struct {
	baseURL        string
	country        string
	appID          string
	appKey         string
	resultsPerPage int
	client         *http.Client
	logger         *log.Logger
}

type adzunaResponse struct {
	Results []adzunaJob `json:"results"`
}

type adzunaJob struct {
	Title   string `json:"title"`
	Company struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin         float64 `json:"salary_min"`
	SalaryMax         float64 `json:"salary_max"`
	SalaryIsPredicted any     `json:"salary_is_predicted"`
	RedirectURL       string  `json:"redirect_url"`
}

// NewAdzunaClient builds a client without a request timeout when httpClient
// is nil; calls are then bounded only by ctx.
func NewAdzunaClient(cfg config.JobSearchConfig, httpClient *http.Client, logger *log.Logger) Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	perPage := cfg.ResultsPerPage
	if perPage <= 0 {
		perPage = 5
	}
	country := strings.TrimSpace(cfg.Country)
	if country == "" {
		country = "gb"
	}
	return &adzunaClient{
		baseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		country:        country,
		appID:          cfg.AppID,
		appKey:         cfg.AppKey,
		resultsPerPage: perPage,
		client:         httpClient,
		logger:         logger,
	}
}

func (c *adzunaClient) Search(ctx context.Context, title string) ([]roadmap.JobListing, error) {
	if c == nil || c.client == nil {
		return nil, errors.New("nil job search client")
	}

	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("app_key", c.appKey)
	q.Set("results_per_page", strconv.Itoa(c.resultsPerPage))
	q.Set("what", title)
	q.Set("content-type", "application/json")
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", c.baseURL, url.PathEscape(c.country), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(text, "<") {
		return nil, ErrHTMLResponse
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if c.logger != nil {
			c.logger.Printf("[JobSearch] Adzuna error title=%q status=%d", title, resp.StatusCode)
		}
		return nil, fmt.Errorf("job search failed: status=%d", resp.StatusCode)
	}

	var out adzunaResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, err
	}

	jobs := make([]roadmap.JobListing, 0, len(out.Results))
	for _, j := range out.Results {
		if len(jobs) == c.resultsPerPage {
			break
		}
		jobs = append(jobs, toListing(j, title))
	}
	return jobs, nil
}

func toListing(j adzunaJob, query string) roadmap.JobListing {
	return roadmap.JobListing{
		Title:       orNotSpecified(j.Title),
		Company:     orNotSpecified(j.Company.DisplayName),
		Location:    orNotSpecified(j.Location.DisplayName),
		Salary:      formatSalary(j),
		URL:         orDefault(j.RedirectURL, "#"),
		SourceQuery: query,
	}
}

func formatSalary(j adzunaJob) string {
	if j.SalaryMin == 0 {
		return notSpecified
	}
	s := strconv.FormatFloat(j.SalaryMin, 'f', -1, 64) + "-" + strconv.FormatFloat(j.SalaryMax, 'f', -1, 64)
	if truthy(j.SalaryIsPredicted) {
		s += " (estimated)"
	}
	return s
}

// salary_is_predicted arrives as "1"/"0" strings or as numbers.
func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != "" && t != "0"
	default:
		return false
	}
}

func orNotSpecified(s string) string {
	return orDefault(s, notSpecified)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

var _ Client = (*adzunaClient)(nil)
