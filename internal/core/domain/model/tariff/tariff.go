package tariff

import (
	"errors"
	"fmt"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/pkg/errs"
)

// MaxGridWeightKg is the upper weight limit of the tariff grid. Cargo heavier
// than this cannot be priced and must be rejected at the weight-entry step.
const MaxGridWeightKg = 2000.0

// ErrWeightExceedsGrid is returned by AssignTariff when the cargo weight
// exceeds MaxGridWeightKg.
var ErrWeightExceedsGrid = errors.New("weight exceeds tariff grid limits")

// Tariff represents a shipping service tier. Each tier covers a weight
// bracket and carries its own base fee and per-kilometer rate.
//
// Tier selection:
//
//	≤ 20 кг   → Express
//	≤ 300 кг  → CargoS
//	≤ 700 кг  → CargoM
//	≤ 1400 кг → CargoL
//	≤ 2000 кг → CargoXL
//	> 2000 кг → no tier (ErrWeightExceedsGrid)
type Tariff int

const (
	// Unknown represents an invalid or unassigned tariff.
	// This value (0) helps catch uninitialized Tariff values.
	Unknown Tariff = iota

	// Express covers cargo up to 20 kg.
	Express

	// CargoS covers cargo up to 300 kg.
	CargoS

	// CargoM covers cargo up to 700 kg.
	CargoM

	// CargoL covers cargo up to 1400 kg.
	CargoL

	// CargoXL covers cargo up to 2000 kg, the grid limit.
	CargoXL
)

// terms holds the commercial parameters of a tier: the weight bracket's upper
// bound and the calibrated pricing pair.
type terms struct {
	name        string
	maxWeightKg float64
	baseFeeRub  int64
	perKmRub    int64
}

// getTariffTerms returns the commercial terms per tier.
// The fees are the calibrated model constants, in rubles.
func getTariffTerms() map[Tariff]terms {
	return map[Tariff]terms{
		Express: {name: "Экспресс (до 20кг)", maxWeightKg: 20, baseFeeRub: 1500, perKmRub: 60},
		CargoS:  {name: "Карго S (до 300кг)", maxWeightKg: 300, baseFeeRub: 1550, perKmRub: 63},
		CargoM:  {name: "Карго M (до 700кг)", maxWeightKg: 700, baseFeeRub: 1850, perKmRub: 75},
		CargoL:  {name: "Карго L (до 1400кг)", maxWeightKg: 1400, baseFeeRub: 2100, perKmRub: 85},
		CargoXL: {name: "Карго XL (до 2000кг)", maxWeightKg: 2000, baseFeeRub: 3200, perKmRub: 130},
	}
}

// gridOrder lists the tiers in ascending weight-bracket order, the order in
// which AssignTariff probes them.
func gridOrder() []Tariff {
	return []Tariff{Express, CargoS, CargoM, CargoL, CargoXL}
}

// AssignTariff selects the first tier whose weight bracket accommodates the
// given cargo weight. Returns ErrWeightExceedsGrid for weights above
// MaxGridWeightKg.
func AssignTariff(weight kernel.Weight) (Tariff, error) {
	if err := weight.Validate(); err != nil {
		return Unknown, err
	}

	catalog := getTariffTerms()
	for _, t := range gridOrder() {
		if weight.Kg() <= catalog[t].maxWeightKg {
			return t, nil
		}
	}

	return Unknown, ErrWeightExceedsGrid
}

// Validate checks that the Tariff is one of the defined tiers.
func (t Tariff) Validate() error {
	if _, ok := getTariffTerms()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("tariff",
			fmt.Errorf("%d is not a valid tariff", int(t)))
	}
	return nil
}

// String returns the user-facing tier name, e.g. "Карго S (до 300кг)".
// Implements fmt.Stringer; safe to call on invalid values.
func (t Tariff) String() string {
	if tt, ok := getTariffTerms()[t]; ok {
		return tt.name
	}
	return "Unknown"
}

// MaxWeightKg returns the upper weight bound of the tier's bracket.
func (t Tariff) MaxWeightKg() float64 {
	return getTariffTerms()[t].maxWeightKg
}

// BaseFeeRub returns the tier's base fee in rubles.
func (t Tariff) BaseFeeRub() int64 {
	return getTariffTerms()[t].baseFeeRub
}

// PerKmRub returns the tier's per-kilometer rate in rubles.
func (t Tariff) PerKmRub() int64 {
	return getTariffTerms()[t].perKmRub
}

// All returns the defined tiers in ascending weight-bracket order.
// Used by read-side facades exposing the catalog.
func All() []Tariff {
	return gridOrder()
}
