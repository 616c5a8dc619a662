package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/julianstephens/lockclock/internal/logger"
)

// maxResponseBytes caps how much of a response body is read
const maxResponseBytes = 1 << 20

// Client resolves locations against an Open-Meteo compatible geocoding API
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

type searchResponse struct {
	Results []struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
		Country   string  `json:"country"`
		Admin1    string  `json:"admin1"`
	} `json:"results"`
}

// NewClient creates a client for baseURL. A nil httpClient uses http.DefaultClient.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		language:   "en",
		httpClient: httpClient,
	}
}

// Resolve looks up query and returns the best match. Deadlines come from ctx.
func (c *Client) Resolve(ctx context.Context, query string) Result {
	query = strings.TrimSpace(query)
	if query == "" {
		return Fail(ReasonNoMatch, ErrEmptyQuery)
	}

	params := url.Values{}
	params.Set("name", query)
	params.Set("count", "1")
	params.Set("language", c.language)
	params.Set("format", "json")
	endpoint := c.baseURL + "/v1/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Fail(ReasonNetwork, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	logger.Debug("Geocode request", "query", query)
	res, err := c.httpClient.Do(req)
	if err != nil {
		return Fail(classify(ctx, err), err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		return Fail(ReasonBadResponse, fmt.Errorf("geocoder returned status %d: %s", res.StatusCode, strings.TrimSpace(string(body))))
	}

	var payload searchResponse
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseBytes)).Decode(&payload); err != nil {
		if ctx.Err() != nil {
			return Fail(classify(ctx, err), err)
		}
		return Fail(ReasonBadResponse, fmt.Errorf("decode response: %w", err))
	}
	if len(payload.Results) == 0 {
		return Fail(ReasonNoMatch, ErrNoMatch)
	}

	best := payload.Results[0]
	if best.ID == 0 {
		return Fail(ReasonBadResponse, fmt.Errorf("result for %q has no id", query))
	}
	loc := Location{
		Code:      strconv.FormatInt(best.ID, 10),
		Name:      best.Name,
		Region:    best.Admin1,
		Country:   best.Country,
		Latitude:  best.Latitude,
		Longitude: best.Longitude,
	}
	logger.Debug("Geocode resolved", "query", query, "code", loc.Code, "name", loc.Label())
	return Success(loc)
}
