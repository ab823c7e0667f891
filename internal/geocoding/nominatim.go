package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/koya1616/koko-pic/internal/models"
	"golang.org/x/time/rate"
)

// NominatimProvider implements the Provider interface using OpenStreetMap's
// Nominatim API. This is a free geocoding service with usage limits
// (1 request/second for fair use), enforced here with a rate limiter.
type NominatimProvider struct {
	client  HTTPClient    // HTTP client for making requests
	baseURL string        // Base URL for the Nominatim API
	log     *slog.Logger  // Logger for logging operations
	limiter *rate.Limiter // Fair-use rate limiter
	// userAgent is required by Nominatim usage policy
	userAgent string
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// nominatimPlace represents a single place in a Nominatim jsonv2 response.
type nominatimPlace struct {
	Lat         string `json:"lat"`          // Latitude as string
	Lon         string `json:"lon"`          // Longitude as string
	DisplayName string `json:"display_name"` // Full display label
	Name        string `json:"name"`         // Short name, may be empty
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
	ErrNominatimNoDisplayName = errors.New("nominatim API returned no display name")
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org"

// NewNominatimProvider creates a new Nominatim geocoding provider.
// Uses the public Nominatim API endpoint by default.
func NewNominatimProvider(log *slog.Logger) *NominatimProvider {
	const timeout = 10
	return NewNominatimProviderWithClient(&http.Client{
		Timeout: timeout * time.Second,
	}, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom
// HTTP client. Useful for testing with mocked HTTP clients.
func NewNominatimProviderWithClient(client HTTPClient, log *slog.Logger) *NominatimProvider {
	return &NominatimProvider{
		client:  client,
		baseURL: nominatimBaseURL,
		log:     log,
		limiter: rate.NewLimiter(rate.Limit(1), 1),
		// User-Agent MUST include valid contact info per Nominatim usage policy:
		// https://operations.osmfoundation.org/policies/nominatim/
		userAgent: "koko-pic/1.0 (https://github.com/koya1616/koko-pic)",
	}
}

// Search resolves a free-text query into candidate places. When the query
// carries a bias location, results are restricted to a viewbox around it
// (bounded=1), matching how the client limits search to the user's area.
func (np *NominatimProvider) Search(ctx context.Context, query SearchQuery) ([]models.GeocodeResult, error) {
	np.log.DebugContext(ctx, "Searching using Nominatim", "query", query.Query)

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("limit", "10")
	params.Set("q", query.Query)
	params.Set("accept-language", query.Language)
	if query.Near != nil {
		box := viewboxAround(*query.Near)
		params.Set("viewbox", fmt.Sprintf("%g,%g,%g,%g", box.Left, box.Top, box.Right, box.Bottom))
		params.Set("bounded", "1")
	}

	body, err := np.get(ctx, "/search", params, query.Language)
	if err != nil {
		return nil, err
	}

	var places []nominatimPlace
	if err = json.Unmarshal(body, &places); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return nil, fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	if len(places) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	results := make([]models.GeocodeResult, 0, len(places))
	for _, place := range places {
		coord, coordErr := parsePlaceCoordinates(place)
		if coordErr != nil {
			return nil, coordErr
		}
		results = append(results, models.GeocodeResult{
			DisplayName: place.DisplayName,
			Coordinate:  *coord,
		})
	}

	return results, nil
}

// Reverse resolves a coordinate into a display name. Falls back to the short
// place name when the full display name is missing.
func (np *NominatimProvider) Reverse(ctx context.Context, coord models.Coordinate, language string) (string, error) {
	np.log.DebugContext(ctx, "Reverse geocoding using Nominatim",
		"lat", coord.Latitude, "lon", coord.Longitude)

	params := url.Values{}
	params.Set("format", "jsonv2")
	params.Set("lat", strconv.FormatFloat(coord.Latitude, 'f', -1, 64))
	params.Set("lon", strconv.FormatFloat(coord.Longitude, 'f', -1, 64))
	params.Set("accept-language", language)

	body, err := np.get(ctx, "/reverse", params, language)
	if err != nil {
		return "", err
	}

	var place nominatimPlace
	if err = json.Unmarshal(body, &place); err != nil {
		np.log.ErrorContext(ctx, "Failed to parse Nominatim response", "error", err, "body", string(body))
		return "", fmt.Errorf("failed to decode nominatim response: %w", err)
	}

	label := place.DisplayName
	if label == "" {
		label = place.Name
	}
	if label == "" {
		return "", ErrNominatimNoDisplayName
	}

	return label, nil
}

// get performs a rate-limited request against a Nominatim endpoint and
// returns the raw response body.
func (np *NominatimProvider) get(ctx context.Context, path string, params url.Values, language string) ([]byte, error) {
	if err := np.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	reqURL, err := url.Parse(np.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	reqURL.RawQuery = params.Encode()

	np.log.DebugContext(ctx, "Nominatim request URL", "url", reqURL.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	// Set required headers per Nominatim usage policy
	req.Header.Set("User-Agent", np.userAgent)
	if language != "" {
		req.Header.Set("Accept-Language", language)
	}

	resp, err := np.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		np.log.ErrorContext(ctx, "Nominatim API error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("nominatim API returned status %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

func parsePlaceCoordinates(place nominatimPlace) (*models.Coordinate, error) {
	lat, err := strconv.ParseFloat(place.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, place.Lat)
	}
	lon, err := strconv.ParseFloat(place.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, place.Lon)
	}

	return &models.Coordinate{Latitude: lat, Longitude: lon}, nil
}
