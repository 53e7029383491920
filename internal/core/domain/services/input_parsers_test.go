package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deliverybot/internal/core/domain/services"
)

func TestParseBareWeight(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		wantKg float64
		wantOk bool
	}{
		{name: "plain number", text: "230", wantKg: 230, wantOk: true},
		{name: "with cyrillic unit", text: "230кг", wantKg: 230, wantOk: true},
		{name: "with latin unit", text: "230kg", wantKg: 230, wantOk: true},
		{name: "unit separated by space", text: "230 кг", wantKg: 230, wantOk: true},
		{name: "decimal point", text: "18.5кг", wantKg: 18.5, wantOk: true},
		{name: "decimal comma", text: "18,5 кг", wantKg: 18.5, wantOk: true},
		{name: "fraction without integer part", text: ".5", wantKg: 0.5, wantOk: true},
		{name: "uppercase unit", text: "230КГ", wantKg: 230, wantOk: true},
		{name: "surrounding spaces", text: "  230кг  ", wantKg: 230, wantOk: true},
		{name: "zero rejected", text: "0"},
		{name: "zero with unit rejected", text: "0кг"},
		{name: "negative rejected", text: "-5"},
		{name: "words rejected", text: "двести тридцать"},
		{name: "trailing garbage rejected", text: "230кг примерно"},
		{name: "empty rejected", text: ""},
		{name: "order text rejected", text: "Название: Краска 14кг Количество: 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, ok := services.ParseBareWeight(tt.text)

			require.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.InDelta(t, tt.wantKg, w.Kg(), 1e-9)
			}
		})
	}
}

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantLat float64
		wantLon float64
		wantOk  bool
	}{
		{name: "comma separated", text: "55.7558, 37.6173", wantLat: 55.7558, wantLon: 37.6173, wantOk: true},
		{name: "comma without space", text: "55.7558,37.6173", wantLat: 55.7558, wantLon: 37.6173, wantOk: true},
		{name: "space separated", text: "55.7558 37.6173", wantLat: 55.7558, wantLon: 37.6173, wantOk: true},
		{name: "semicolon separated", text: "55.7558; 37.6173", wantLat: 55.7558, wantLon: 37.6173, wantOk: true},
		{name: "extra whitespace", text: "  55.7558   37.6173  ", wantLat: 55.7558, wantLon: 37.6173, wantOk: true},
		{name: "negative coordinates", text: "-33.8688, 151.2093", wantLat: -33.8688, wantLon: 151.2093, wantOk: true},
		{name: "latitude out of range", text: "200, 37"},
		{name: "longitude out of range", text: "55, 200"},
		{name: "single number", text: "55.7558"},
		{name: "three numbers", text: "55.7 37.6 12.1"},
		{name: "not numbers", text: "Москва, Тверская"},
		{name: "empty", text: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := services.ParseCoordinates(tt.text)

			require.Equal(t, tt.wantOk, ok)
			if tt.wantOk {
				assert.InDelta(t, tt.wantLat, p.Latitude(), 1e-9)
				assert.InDelta(t, tt.wantLon, p.Longitude(), 1e-9)
			}
		})
	}
}

func TestParseCoordinates_SeparatorsAgree(t *testing.T) {
	comma, ok1 := services.ParseCoordinates("55.7558, 37.6173")
	space, ok2 := services.ParseCoordinates("55.7558 37.6173")

	require.True(t, ok1)
	require.True(t, ok2)
	eq, err := comma.IsEqual(space)
	require.NoError(t, err)
	assert.True(t, eq)
}
