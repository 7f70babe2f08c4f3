package geocode

import (
	"context"
	"fmt"
	"strings"

	"googlemaps.github.io/maps"

	locerrors "github.com/anshif14/petzify-sub001/internal/locations/errors"
	"github.com/anshif14/petzify-sub001/pkg/logger"
)

// Geocoder converts coordinates into a human-readable place name.
// An empty name with a nil error is never returned; absence of a name is
// reported as ErrNoPlaceName and is not fatal for callers.
type Geocoder interface {
	PlaceName(ctx context.Context, lat, lng float64) (string, error)
}

type googleGeocoder struct {
	client *maps.Client
	log    *logger.Logger
}

func NewGoogleGeocoder(client *maps.Client, log *logger.Logger) Geocoder {
	return &googleGeocoder{client: client, log: log}
}

func (g *googleGeocoder) PlaceName(ctx context.Context, lat, lng float64) (string, error) {
	if g.client == nil {
		return "", locerrors.ErrGeocoderUnavailable
	}

	results, err := g.client.ReverseGeocode(ctx, &maps.GeocodingRequest{
		LatLng: &maps.LatLng{Lat: lat, Lng: lng},
	})
	if err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	if len(results) == 0 {
		return "", locerrors.ErrNoPlaceName
	}

	name := placeNameFromResult(results[0])
	if name == "" {
		return "", locerrors.ErrNoPlaceName
	}

	g.log.Debug("Place name resolved", "lat", lat, "lng", lng, "place_name", name)
	return name, nil
}

// placeNameFromResult extracts the most specific readable name from a
// geocoding result, in order of preference:
//  1. "{sublocality}, {locality}"
//  2. locality alone
//  3. sublocality or neighborhood alone
//  4. broader administrative area (county, then state-equivalent)
//  5. the first two comma-separated segments of the formatted address
func placeNameFromResult(result maps.GeocodingResult) string {
	var sublocality, locality, neighborhood, county, state string

	for _, component := range result.AddressComponents {
		for _, t := range component.Types {
			switch t {
			case "sublocality", "sublocality_level_1":
				if sublocality == "" {
					sublocality = component.LongName
				}
			case "locality":
				if locality == "" {
					locality = component.LongName
				}
			case "neighborhood":
				if neighborhood == "" {
					neighborhood = component.LongName
				}
			case "administrative_area_level_2":
				if county == "" {
					county = component.LongName
				}
			case "administrative_area_level_1":
				if state == "" {
					state = component.LongName
				}
			}
		}
	}

	switch {
	case sublocality != "" && locality != "":
		return sublocality + ", " + locality
	case locality != "":
		return locality
	case sublocality != "":
		return sublocality
	case neighborhood != "":
		return neighborhood
	case county != "":
		return county
	case state != "":
		return state
	}

	segments := strings.SplitN(result.FormattedAddress, ",", 3)
	if len(segments) >= 2 {
		return strings.TrimSpace(segments[0]) + ", " + strings.TrimSpace(segments[1])
	}
	return strings.TrimSpace(result.FormattedAddress)
}
