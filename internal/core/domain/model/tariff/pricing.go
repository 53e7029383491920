package tariff

import (
	"fmt"
	"math"

	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency is the fixed settlement currency of all quotes.
const Currency = "RUB"

// roundingStepRub is the rounding unit: final amounts are rounded up to the
// nearest multiple of this value.
const roundingStepRub = 500

// marginPercent is the calibration margin applied after base distance pricing.
const marginPercent = 20

// ErrPriceQuoteIsNotConstructed is returned when attempting to use an
// improperly initialized PriceQuote.
var ErrPriceQuoteIsNotConstructed = errs.NewValueIsRequiredError(
	"price quote must be created via ComputePrice")

// PriceQuote is the priced result of a delivery calculation: a final amount
// in whole rubles plus a human-readable trace of how it was derived.
// The amount is always a non-negative multiple of 500.
type PriceQuote struct {
	currency    string
	amountRub   int64
	explanation string
	guard       guard.ConstructorGuard
}

// ComputePrice prices a delivery on the given tier over the given distance.
//
// The calibrated model:
//
//	raw    = baseFee + perKmRate × max(distanceKm, 0)
//	padded = raw × 1.20
//	amount = padded rounded up to the nearest 500 (0 when padded ≤ 0)
//
// Money math is done in decimals so that exact multiples of 500 are not
// pushed over the rounding boundary by binary float drift.
func ComputePrice(t Tariff, distanceKm float64) (PriceQuote, error) {
	if err := t.Validate(); err != nil {
		return PriceQuote{}, err
	}

	base := decimal.NewFromInt(t.BaseFeeRub())
	rate := decimal.NewFromInt(t.PerKmRub())
	dist := decimal.NewFromFloat(math.Max(distanceKm, 0))

	raw := base.Add(rate.Mul(dist))
	padded := raw.Mul(decimal.NewFromInt(100 + marginPercent).Div(decimal.NewFromInt(100)))
	amount := ceilToStep(padded)

	explanation := fmt.Sprintf(
		"(%d баз.) + %d ₽/км × %.2f км = %s ₽; +%d%% → %s ₽; округление ↑ до %d → %d ₽",
		t.BaseFeeRub(), t.PerKmRub(), math.Max(distanceKm, 0),
		raw.Round(0), marginPercent, padded.Round(0), roundingStepRub, amount,
	)

	return PriceQuote{
		currency:    Currency,
		amountRub:   amount,
		explanation: explanation,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the PriceQuote was created via ComputePrice.
func (q PriceQuote) Validate() error {
	return q.guard.Validate(ErrPriceQuoteIsNotConstructed)
}

// CurrencyCode returns the quote currency, always "RUB".
func (q PriceQuote) CurrencyCode() string {
	return q.currency
}

// AmountRub returns the final amount in whole rubles, a non-negative
// multiple of 500.
func (q PriceQuote) AmountRub() int64 {
	return q.amountRub
}

// Explanation returns the human-readable derivation trace: the raw
// base-plus-distance figure, the post-margin figure, and the rounded result.
func (q PriceQuote) Explanation() string {
	return q.explanation
}

// ceilToStep rounds a positive amount up to the nearest roundingStepRub;
// non-positive amounts collapse to zero.
func ceilToStep(amount decimal.Decimal) int64 {
	if amount.Sign() <= 0 {
		return 0
	}
	step := decimal.NewFromInt(roundingStepRub)
	return amount.Div(step).Ceil().Mul(step).IntPart()
}
