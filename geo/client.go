package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Geocoder resolves coordinates to addresses and back via the external
// mapping service.
type Geocoder interface {
	Reverse(ctx context.Context, p Point) (string, error)
	Forward(ctx context.Context, address string) (Point, error)
}

// Router computes driving distances between coordinates.
type Router interface {
	DrivingKM(ctx context.Context, from, to Point) (float64, error)
}

// Client talks to a Nominatim-compatible geocoder and an OSRM-compatible
// router. It performs no retries: a transient upstream failure degrades the
// affected row for the current request.
type Client struct {
	geocoderURL string
	routerURL   string
	userAgent   string
	httpClient  *http.Client
}

// NewClient creates a client for the given service base URLs.
func NewClient(geocoderURL, routerURL string, timeout time.Duration) *Client {
	return &Client{
		geocoderURL: geocoderURL,
		routerURL:   routerURL,
		userAgent:   "ridelog-filter/1.0",
		httpClient:  &http.Client{Timeout: timeout},
	}
}

type geocodeResponse struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Reverse resolves a coordinate to a formatted address.
func (c *Client) Reverse(ctx context.Context, p Point) (string, error) {
	params := url.Values{}
	params.Set("lat", fmt.Sprintf("%.6f", p.Lat))
	params.Set("lon", fmt.Sprintf("%.6f", p.Lon))
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("accept-language", "en")

	var res geocodeResponse
	if err := c.getJSON(ctx, c.geocoderURL+"/reverse?"+params.Encode(), &res); err != nil {
		return "", err
	}
	if res.DisplayName == "" {
		return "", fmt.Errorf("no address found for %.6f, %.6f", p.Lat, p.Lon)
	}
	return res.DisplayName, nil
}

// Forward resolves an address string to a coordinate.
func (c *Client) Forward(ctx context.Context, address string) (Point, error) {
	params := url.Values{}
	params.Set("q", address)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("accept-language", "en")

	var res []geocodeResponse
	if err := c.getJSON(ctx, c.geocoderURL+"/search?"+params.Encode(), &res); err != nil {
		return Point{}, err
	}
	if len(res) == 0 {
		return Point{}, fmt.Errorf("no match for address %q", address)
	}
	lat, err := strconv.ParseFloat(res[0].Lat, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad latitude in geocode response: %w", err)
	}
	lon, err := strconv.ParseFloat(res[0].Lon, 64)
	if err != nil {
		return Point{}, fmt.Errorf("bad longitude in geocode response: %w", err)
	}
	return Point{Lat: lat, Lon: lon}, nil
}

type routeResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		Distance float64 `json:"distance"`
	} `json:"routes"`
}

// DrivingKM returns the driving distance between two points in kilometers.
func (c *Client) DrivingKM(ctx context.Context, from, to Point) (float64, error) {
	u := fmt.Sprintf("%s/route/v1/driving/%.6f,%.6f;%.6f,%.6f?overview=false",
		c.routerURL, from.Lon, from.Lat, to.Lon, to.Lat)
	var res routeResponse
	if err := c.getJSON(ctx, u, &res); err != nil {
		return 0, err
	}
	if res.Code != "Ok" || len(res.Routes) == 0 {
		return 0, fmt.Errorf("no route between %.6f,%.6f and %.6f,%.6f", from.Lat, from.Lon, to.Lat, to.Lon)
	}
	return res.Routes[0].Distance / 1000, nil
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
