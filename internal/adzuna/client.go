package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"jobpulse/internal/config"
	"jobpulse/internal/logging"
	"jobpulse/pkg/models"
	"jobpulse/pkg/utils"
)

// SearchParams holds every filter the search endpoints accept. Zero values
// mean "not set"; a blank keyword falls back to the configured default term.
type SearchParams struct {
	Keyword        string
	Location       string
	IsRemote       bool
	CountryCode    string
	Page           int
	ResultsPerPage int
	MaxDays        int
	SalaryMin      float64
	SalaryMax      float64
	FullTime       bool
	PartTime       bool
	Contract       bool
	Permanent      bool
	Category       string
	CompanyName    string
}

// SearchResult is the adapter's envelope. Error is populated instead of the
// call failing: on missing credentials or an upstream fault the caller gets
// an empty list with total 0, never a panic or a raised error, so the UI and
// the scheduler stay up through transient source outages.
type SearchResult struct {
	Jobs           []models.NormalizedJob
	Total          int
	Page           int
	ResultsPerPage int
	Error          string
}

// Client queries the Adzuna job-search API and normalizes the results.
type Client struct {
	cfg    *config.Config
	client *http.Client
	logger logging.Logger
	now    func() time.Time
}

// NewClient constructs a client with a shared HTTP client bounded by the
// configured request timeout.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Adzuna.RequestTimeout},
		logger: logging.GetGlobalLogger(),
		now:    time.Now,
	}
}

// apiResponse mirrors the top-level Adzuna JSON response.
type apiResponse struct {
	Results []rawJob `json:"results"`
	Count   int      `json:"count"`
}

// rawJob mirrors a single Adzuna listing.
type rawJob struct {
	ID                json.Number `json:"id"`
	Title             string      `json:"title"`
	Description       string      `json:"description"`
	Company           rawCompany  `json:"company"`
	Location          rawLocation `json:"location"`
	SalaryMin         float64     `json:"salary_min"`
	SalaryMax         float64     `json:"salary_max"`
	SalaryIsPredicted string      `json:"salary_is_predicted"`
	ContractType      string      `json:"contract_type"`
	ContractTime      string      `json:"contract_time"`
	Category          rawCategory `json:"category"`
	Created           string      `json:"created"`
	RedirectURL       string      `json:"redirect_url"`
}

type rawCompany struct {
	DisplayName string `json:"display_name"`
}

type rawLocation struct {
	DisplayName string   `json:"display_name"`
	Area        []string `json:"area"`
}

type rawCategory struct {
	Tag   string `json:"tag"`
	Label string `json:"label"`
}

// FetchJobs queries the source with server-side filters, then re-applies the
// age and remote filters client-side since the server-side variants are
// unreliable, and normalizes every surviving record.
func (c *Client) FetchJobs(ctx context.Context, params SearchParams) *SearchResult {
	page := params.Page
	if page < 1 {
		page = 1
	}
	perPage := params.ResultsPerPage
	if perPage < 1 {
		perPage = 10
	}

	result := &SearchResult{
		Jobs:           []models.NormalizedJob{},
		Page:           page,
		ResultsPerPage: perPage,
	}

	if !c.cfg.HasAdzunaCredentials() {
		c.logger.Warn("Adzuna credentials not configured, returning empty result")
		result.Error = "job source credentials are not configured"
		return result
	}

	country := utils.GetStringOrDefault(params.CountryCode, c.cfg.Adzuna.CountryCode)
	maxDays := params.MaxDays
	if maxDays <= 0 {
		maxDays = c.cfg.Adzuna.MaxDays
	}

	reqURL := c.searchURL(params, country, page, perPage, maxDays)

	apiResp, err := c.doJSON(ctx, reqURL)
	if err != nil {
		c.logger.Error("Adzuna fetch failed", map[string]interface{}{
			"keyword": params.Keyword,
			"country": country,
			"page":    page,
			"error":   err.Error(),
		})
		result.Error = err.Error()
		return result
	}

	for _, raw := range apiResp.Results {
		if !c.passesClientFilters(raw, maxDays, params.IsRemote) {
			continue
		}
		result.Jobs = append(result.Jobs, normalizeJob(raw, country))
	}
	result.Total = apiResp.Count

	c.logger.Info("Adzuna fetch completed", map[string]interface{}{
		"keyword":  utils.GetStringOrDefault(params.Keyword, c.cfg.Adzuna.DefaultKeyword),
		"country":  country,
		"fetched":  len(apiResp.Results),
		"returned": len(result.Jobs),
		"total":    apiResp.Count,
	})

	return result
}

// searchURL builds the query with all server-side filters applied.
func (c *Client) searchURL(params SearchParams, country string, page, perPage, maxDays int) string {
	endpoint := fmt.Sprintf("%s/%s/search/%d", c.cfg.Adzuna.BaseURL, country, page)

	q := url.Values{}
	q.Set("app_id", c.cfg.Adzuna.AppID)
	q.Set("app_key", c.cfg.Adzuna.AppKey)
	q.Set("results_per_page", strconv.Itoa(perPage))
	q.Set("content-type", "application/json")
	q.Set("what", utils.GetStringOrDefault(params.Keyword, c.cfg.Adzuna.DefaultKeyword))
	q.Set("sort_by", "date")
	q.Set("max_days_old", strconv.Itoa(maxDays))

	if params.Location != "" {
		q.Set("where", params.Location)
	}
	if params.SalaryMin > 0 {
		q.Set("salary_min", strconv.FormatFloat(params.SalaryMin, 'f', -1, 64))
	}
	if params.SalaryMax > 0 {
		q.Set("salary_max", strconv.FormatFloat(params.SalaryMax, 'f', -1, 64))
	}
	if params.FullTime {
		q.Set("full_time", "1")
	}
	if params.PartTime {
		q.Set("part_time", "1")
	}
	if params.Contract {
		q.Set("contract", "1")
	}
	if params.Permanent {
		q.Set("permanent", "1")
	}
	if params.Category != "" {
		q.Set("category", params.Category)
	}
	if params.CompanyName != "" {
		q.Set("company", params.CompanyName)
	}

	return endpoint + "?" + q.Encode()
}

// passesClientFilters re-checks listing age and the remote keyword filter.
func (c *Client) passesClientFilters(raw rawJob, maxDays int, wantRemote bool) bool {
	if raw.Created != "" && maxDays > 0 {
		if created, err := time.Parse(time.RFC3339, raw.Created); err == nil {
			if c.now().Sub(created) > time.Duration(maxDays)*24*time.Hour {
				return false
			}
		}
	}

	if wantRemote && !mentionsRemote(raw.Title, raw.Description) {
		return false
	}

	return true
}

// FetchJobByID fetches a single listing through the details endpoint. A nil
// job with a nil error means the listing is gone upstream.
func (c *Client) FetchJobByID(ctx context.Context, jobID, countryCode string) (*models.NormalizedJob, error) {
	if !c.cfg.HasAdzunaCredentials() {
		return nil, nil
	}

	country := utils.GetStringOrDefault(countryCode, c.cfg.Adzuna.CountryCode)
	endpoint := fmt.Sprintf("%s/%s/details/%s", c.cfg.Adzuna.BaseURL, country, url.PathEscape(jobID))

	q := url.Values{}
	q.Set("app_id", c.cfg.Adzuna.AppID)
	q.Set("app_key", c.cfg.Adzuna.AppKey)
	q.Set("content-type", "application/json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	var raw rawJob
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	job := normalizeJob(raw, country)
	return &job, nil
}

// FetchCategories returns the source's category list for a country.
func (c *Client) FetchCategories(ctx context.Context, countryCode string) ([]models.JobCategory, error) {
	if !c.cfg.HasAdzunaCredentials() {
		return nil, fmt.Errorf("job source credentials are not configured")
	}

	country := utils.GetStringOrDefault(countryCode, c.cfg.Adzuna.CountryCode)
	endpoint := fmt.Sprintf("%s/%s/categories", c.cfg.Adzuna.BaseURL, country)

	q := url.Values{}
	q.Set("app_id", c.cfg.Adzuna.AppID)
	q.Set("app_key", c.cfg.Adzuna.AppKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d", resp.StatusCode)
	}

	var parsed struct {
		Results []rawCategory `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}

	categories := make([]models.JobCategory, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		categories = append(categories, models.JobCategory{Tag: r.Tag, Label: r.Label})
	}
	return categories, nil
}

func (c *Client) doJSON(ctx context.Context, reqURL string) (*apiResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("adzuna returned %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	return &parsed, nil
}
