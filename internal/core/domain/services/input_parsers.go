package services

import (
	"regexp"
	"strconv"
	"strings"

	"deliverybot/internal/core/domain/model/kernel"
)

// bareWeightPattern matches a whole message that is nothing but a number with
// an optional kg unit, e.g. "230", "230кг", "18.5kg".
var bareWeightPattern = regexp.MustCompile(`^([0-9]*\.?[0-9]+)(кг|kg)?$`)

var whitespacePattern = regexp.MustCompile(`\s+`)

// ParseBareWeight recognizes a message consisting of a single cargo weight.
// The comparison is lenient: case and all spaces are ignored, a decimal comma
// is accepted. Zero and negative values are rejected.
func ParseBareWeight(text string) (kernel.Weight, bool) {
	t := strings.ToLower(strings.TrimSpace(text))
	t = strings.ReplaceAll(t, " ", "")
	t = strings.ReplaceAll(t, ",", ".")

	m := bareWeightPattern.FindStringSubmatch(t)
	if m == nil {
		return kernel.Weight{}, false
	}

	kg, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return kernel.Weight{}, false
	}

	weight, err := kernel.NewWeight(kg)
	if err != nil {
		return kernel.Weight{}, false
	}

	return weight, true
}

// ParseCoordinates recognizes a message carrying a "latitude, longitude"
// pair. A semicolon works as a separator too, and a bare space between the
// two numbers is accepted when there is no comma. Out-of-range coordinates
// are rejected.
func ParseCoordinates(text string) (kernel.GeoPoint, bool) {
	t := strings.TrimSpace(text)
	t = strings.ReplaceAll(t, ";", ",")
	t = whitespacePattern.ReplaceAllString(t, " ")

	var parts []string
	if strings.Contains(t, ",") {
		for _, p := range strings.Split(t, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	} else {
		parts = strings.Split(t, " ")
	}

	if len(parts) != 2 {
		return kernel.GeoPoint{}, false
	}

	lat, latErr := strconv.ParseFloat(parts[0], 64)
	lon, lonErr := strconv.ParseFloat(parts[1], 64)
	if latErr != nil || lonErr != nil {
		return kernel.GeoPoint{}, false
	}

	point, err := kernel.NewGeoPoint(lat, lon)
	if err != nil {
		return kernel.GeoPoint{}, false
	}

	return point, true
}
