package kernel

import (
	"fmt"

	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"
)

// ErrWeightIsNotConstructed is returned when attempting to use an improperly
// initialized Weight. Weights must be created via NewWeight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight constructor")

// Weight represents a cargo weight in kilograms. It is an immutable value
// object; the weight is always strictly positive for properly constructed
// instances, and the zero value fails validation.
type Weight struct { //nolint:recvcheck //using for validation
	kg    float64
	guard guard.ConstructorGuard
}

// NewWeight creates a Weight from a kilogram value. The value must be
// strictly greater than zero.
func NewWeight(kg float64) (Weight, error) {
	w := Weight{
		guard: guard.NewConstructorGuard(),
	}

	if err := w.setKg(kg); err != nil {
		return Weight{}, err
	}

	return w, nil
}

// Validate checks that the Weight was created through its constructor.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}

// Kg returns the weight in kilograms.
func (w Weight) Kg() float64 {
	return w.kg
}

// String returns the weight formatted without trailing decimals, e.g. "230 кг".
func (w Weight) String() string {
	return fmt.Sprintf("%.0f кг", w.kg)
}

// IsEqual compares two weights for exact equality.
// Both weights must be properly constructed.
func (w Weight) IsEqual(other Weight) (bool, error) {
	if err := w.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}

	return w.kg == other.kg, nil
}

func (w *Weight) setKg(kg float64) error {
	if kg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%v kg is not a positive weight", kg))
	}

	w.kg = kg
	return nil
}
