package ports

import (
	"context"

	"deliverybot/internal/core/domain/model/kernel"
)

// ResolvedAddress is the best match returned by a geocoding lookup.
type ResolvedAddress struct {
	// DisplayName is the human-readable name of the matched place.
	DisplayName string

	// Point is the geographic coordinate of the match.
	Point kernel.GeoPoint
}

// Geocoder resolves a free-text query to geographic coordinates.
//
// Resolution is best effort: transport failures, timeouts, malformed
// responses, and empty result sets all surface as found == false, never as
// an error. A failed lookup is a recoverable, user-facing condition.
type Geocoder interface {
	// Resolve looks up the single best match for the query.
	Resolve(ctx context.Context, query string) (ResolvedAddress, bool)
}
