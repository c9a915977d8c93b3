package osm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/nurpe/ecoreports/internal/config"
)

var ErrAreaNotFound = errors.New("area not found")

const maxErrorBody = 512

// Element is a node or way returned by the Overpass API.
type Element struct {
	Type string            `json:"type"`
	ID   int64             `json:"id"`
	Lat  float64           `json:"lat"`
	Lon  float64           `json:"lon"`
	Tags map[string]string `json:"tags"`
}

type Client struct {
	httpClient   *http.Client
	nominatimURL string
	overpassURL  string
	userAgent    string
	log          zerolog.Logger
}

func NewClient(cfg *config.Config, log zerolog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.OSM.RequestTimeout,
		},
		nominatimURL: strings.TrimRight(cfg.OSM.NominatimURL, "/"),
		overpassURL:  cfg.OSM.OverpassURL,
		userAgent:    cfg.OSM.UserAgent,
		log:          log,
	}
}

type nominatimResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode resolves a free-form area name to the coordinates of its best match.
func (c *Client) Geocode(ctx context.Context, area string) (float64, float64, error) {
	params := url.Values{}
	params.Set("q", area)
	params.Set("format", "json")
	params.Set("limit", "1")
	endpoint := c.nominatimURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	var results []nominatimResult
	if err := c.do(req, &results); err != nil {
		return 0, 0, fmt.Errorf("nominatim: %w", err)
	}
	if len(results) == 0 {
		return 0, 0, fmt.Errorf("%w: %s", ErrAreaNotFound, area)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("nominatim: invalid longitude %q: %w", results[0].Lon, err)
	}
	c.log.Debug().Str("area", area).Float64("lat", lat).Float64("lon", lon).Msg("area geocoded")
	return lat, lon, nil
}

// RecyclingQuery builds the Overpass QL query for amenity=recycling nodes and
// ways within radiusKm of the given point.
func RecyclingQuery(lat, lon, radiusKm float64) string {
	around := fmt.Sprintf("(around:%s,%s,%s)",
		strconv.FormatFloat(radiusKm*1000, 'f', -1, 64),
		strconv.FormatFloat(lat, 'f', -1, 64),
		strconv.FormatFloat(lon, 'f', -1, 64),
	)
	return `[out:json][timeout:25];
(
node["amenity"="recycling"]` + around + `;
way["amenity"="recycling"]` + around + `;
);
out body;
>;
out skel qt;`
}

type overpassResponse struct {
	Elements []Element `json:"elements"`
}

func (c *Client) RecyclingElements(ctx context.Context, lat, lon, radiusKm float64) ([]Element, error) {
	form := url.Values{}
	form.Set("data", RecyclingQuery(lat, lon, radiusKm))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.overpassURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	var resp overpassResponse
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("overpass: %w", err)
	}
	c.log.Debug().
		Int("elements", len(resp.Elements)).
		Dur("took", time.Since(started)).
		Msg("overpass query done")
	return resp.Elements, nil
}

func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("status %d, body: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
