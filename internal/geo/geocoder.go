// Package geo resolves free-text addresses into coordinates. Google serves
// the general case; Yandex covers Belarus, where its data is stronger.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"foodshare/internal/lib/sl"
)

// Result is a geocoded point. Sure is set when the geocoder found exactly
// one match.
type Result struct {
	Latitude  string
	Longitude string
	Sure      bool
}

// Geocoder resolves an address within an optional country bias.
type Geocoder interface {
	Geocode(ctx context.Context, address, countryCode string) (*Result, error)
}

const requestTimeout = 5 * time.Second

// Yandex bounding boxes per country bias.
var yandexBBox = map[string]string{
	"by": "23.579,51.5~32.6,56.2",
}

// Google bounds per country bias.
var googleBounds = map[string]string{
	"pl": "49.13,14.3|55,24.5",
}

// GoogleGeocoder calls the Google Maps geocoding API.
type GoogleGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewGoogleGeocoder(apiKey string, log *slog.Logger) *GoogleGeocoder {
	return &GoogleGeocoder{
		apiKey:  apiKey,
		baseURL: "https://maps.googleapis.com/maps/api/geocode/json",
		client:  &http.Client{Timeout: requestTimeout},
		log:     log.With(sl.Module("geo.google")),
	}
}

func (g *GoogleGeocoder) Geocode(ctx context.Context, address, countryCode string) (*Result, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)
	if bounds, ok := googleBounds[countryCode]; ok {
		params.Set("bounds", bounds)
	}

	body, err := g.get(ctx, g.baseURL+"?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var data struct {
		Results []struct {
			Geometry struct {
				Location struct {
					Lat float64 `json:"lat"`
					Lng float64 `json:"lng"`
				} `json:"location"`
			} `json:"geometry"`
		} `json:"results"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}
	if len(data.Results) == 0 {
		return nil, nil
	}

	loc := data.Results[0].Geometry.Location
	return &Result{
		Latitude:  strconv.FormatFloat(loc.Lat, 'f', -1, 64),
		Longitude: strconv.FormatFloat(loc.Lng, 'f', -1, 64),
		Sure:      len(data.Results) == 1,
	}, nil
}

func (g *GoogleGeocoder) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// YandexGeocoder calls the Yandex geocoding API.
type YandexGeocoder struct {
	apiKey  string
	baseURL string
	client  *http.Client
	log     *slog.Logger
}

func NewYandexGeocoder(apiKey string, log *slog.Logger) *YandexGeocoder {
	return &YandexGeocoder{
		apiKey:  apiKey,
		baseURL: "https://geocode-maps.yandex.ru/1.x/",
		client:  &http.Client{Timeout: requestTimeout},
		log:     log.With(sl.Module("geo.yandex")),
	}
}

func (g *YandexGeocoder) Geocode(ctx context.Context, address, countryCode string) (*Result, error) {
	params := url.Values{}
	params.Set("apikey", g.apiKey)
	params.Set("geocode", address)
	params.Set("rspn", "1")
	params.Set("format", "json")
	if bbox, ok := yandexBBox[countryCode]; ok {
		params.Set("bbox", bbox)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder status %d", resp.StatusCode)
	}

	var data struct {
		Response struct {
			GeoObjectCollection struct {
				MetaDataProperty struct {
					GeocoderResponseMetaData struct {
						Found string `json:"found"`
					} `json:"GeocoderResponseMetaData"`
				} `json:"metaDataProperty"`
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
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding geocoder response: %w", err)
	}

	collection := data.Response.GeoObjectCollection
	found, err := strconv.Atoi(collection.MetaDataProperty.GeocoderResponseMetaData.Found)
	if err != nil {
		return nil, fmt.Errorf("unexpected found counter: %w", err)
	}
	if found == 0 || len(collection.FeatureMember) == 0 {
		return nil, nil
	}

	// Yandex returns "longitude latitude".
	parts := strings.Fields(collection.FeatureMember[0].GeoObject.Point.Pos)
	if len(parts) != 2 {
		return nil, fmt.Errorf("unexpected point format %q", collection.FeatureMember[0].GeoObject.Point.Pos)
	}
	return &Result{Latitude: parts[1], Longitude: parts[0], Sure: found == 1}, nil
}

// Resolver picks the geocoder per country and prefixes the city for
// better precision.
type Resolver struct {
	google Geocoder
	yandex Geocoder
	log    *slog.Logger
}

func NewResolver(google, yandex Geocoder, log *slog.Logger) *Resolver {
	return &Resolver{google: google, yandex: yandex, log: log.With(sl.Module("geo.resolver"))}
}

// Resolve geocodes the address in the context of the user's stored
// location ("country" or "country:city"). A nil result with nil error
// means "address not found".
func (r *Resolver) Resolve(ctx context.Context, address, location string) (*Result, error) {
	countryCode, cityName := SplitLocation(location)
	if cityName != "" {
		address = cityName + ", " + address
	}

	geocoder := r.google
	if countryCode == "by" && r.yandex != nil {
		geocoder = r.yandex
	}
	if geocoder == nil {
		// No backend configured, treated as an address the map can't find.
		return nil, nil
	}

	result, err := geocoder.Geocode(ctx, address, countryCode)
	if err != nil {
		r.log.Warn("geocoding failed", slog.String("country", countryCode), sl.Err(err))
		return nil, err
	}
	return result, nil
}
