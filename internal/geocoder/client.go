// Package geocoder wraps the external geocoding HTTP API. The wire format is
// fixed by the provider: the first featureMember carries a "longitude latitude"
// pair as a single space-separated string.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 5 * time.Second

var (
	// ErrNoResults means the service found no candidate for the address.
	ErrNoResults = errors.New("geocoder: no results for address")
	// ErrBadResponse means the service answered with something we could not
	// parse. Distinct from ErrNoResults for diagnostics.
	ErrBadResponse = errors.New("geocoder: malformed response")
)

type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}
}

type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// FetchCoordinates resolves a free-text address against the remote service.
// Network and non-200 failures are transient and surface as plain errors;
// an empty result set is ErrNoResults; unparseable bodies are ErrBadResponse.
func (c *Client) FetchCoordinates(ctx context.Context, address string) (*Coordinates, error) {
	params := url.Values{}
	params.Set("geocode", address)
	params.Set("apikey", c.apiKey)
	params.Set("format", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder returned status %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return nil, ErrNoResults
	}

	// Most relevant result comes first; pos is "lon lat".
	pos := members[0].GeoObject.Point.Pos
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return nil, fmt.Errorf("%w: unexpected pos %q", ErrBadResponse, pos)
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad longitude %q", ErrBadResponse, parts[0])
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad latitude %q", ErrBadResponse, parts[1])
	}

	return &Coordinates{Latitude: lat, Longitude: lon}, nil
}
