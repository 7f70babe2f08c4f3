package errors

import "errors"

var (
	// ErrUnresolved is returned when no enabled tier produced a location.
	ErrUnresolved = errors.New("location could not be resolved from any tier")

	ErrGeolocatorUnavailable = errors.New("geolocation capability is not available")

	ErrGeocoderUnavailable = errors.New("reverse geocoding capability is not available")

	ErrNoPlaceName = errors.New("no place name found for coordinates")
)
