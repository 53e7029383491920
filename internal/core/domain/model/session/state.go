package session

import (
	"fmt"

	"deliverybot/internal/pkg/errs"
)

// State represents the resting step of the pricing conversation.
// It implements a state machine with defined transitions so a conversation
// always moves through the flow in order.
//
// State transitions:
//
//	AwaitingWeight ──> AwaitingAddressOrCoords ──┬──> ConfirmingAddress ──┐
//	                            │                │          │             │
//	                            │                └──────────┴──> AwaitingCoords
//	                            │
//	                            └──> (destination accepted, quote computed)
//
// Accepting a destination is terminal for the conversation: the session is
// removed after the quote is sent, so no terminal state is stored.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// AwaitingWeight is the initial state: the chat has been greeted and the
	// next message is expected to carry the cargo weight or an order text.
	AwaitingWeight

	// AwaitingAddressOrCoords means weight and tariff are fixed; the next
	// message is expected to carry a destination address or raw coordinates.
	AwaitingAddressOrCoords

	// ConfirmingAddress means a geocoded candidate has been presented and the
	// chat must answer yes or no.
	ConfirmingAddress

	// AwaitingCoords means geocoding failed or was rejected; only raw
	// coordinates are accepted from here.
	AwaitingCoords
)

// getStateStrings returns a map of State values to their string representations.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:                 "Unknown",
		AwaitingWeight:          "AwaitingWeight",
		AwaitingAddressOrCoords: "AwaitingAddressOrCoords",
		ConfirmingAddress:       "ConfirmingAddress",
		AwaitingCoords:          "AwaitingCoords",
	}
}

// getValidStateStrings returns a map of only valid State values.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		AwaitingWeight:          "AwaitingWeight",
		AwaitingAddressOrCoords: "AwaitingAddressOrCoords",
		ConfirmingAddress:       "ConfirmingAddress",
		AwaitingCoords:          "AwaitingCoords",
	}
}

// Validate checks if the State value is one of the defined resting states.
// Unknown (0) and any other values are invalid.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%d is not a valid state", int(s)))
	}
	return nil
}

// String returns the name of the state, or "Unknown" for invalid values.
// Implements the fmt.Stringer interface.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// AssignTariff transitions the state after weight and tariff are fixed.
//
// Valid transitions:
//   - AwaitingWeight -> AwaitingAddressOrCoords
func (s State) AssignTariff() (State, error) {
	if s != AwaitingWeight {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid state to assign a tariff", s))
	}
	return AwaitingAddressOrCoords, nil
}

// ProposeAddress transitions the state after a geocoded candidate is found.
//
// Valid transitions:
//   - AwaitingAddressOrCoords -> ConfirmingAddress
func (s State) ProposeAddress() (State, error) {
	if s != AwaitingAddressOrCoords {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid state to propose an address", s))
	}
	return ConfirmingAddress, nil
}

// RequireManualCoords transitions the state to manual coordinate entry,
// after geocoding found nothing or the chat rejected the candidate.
//
// Valid transitions:
//   - AwaitingAddressOrCoords -> AwaitingCoords
//   - ConfirmingAddress -> AwaitingCoords
func (s State) RequireManualCoords() (State, error) {
	if s != AwaitingAddressOrCoords && s != ConfirmingAddress {
		return Unknown, errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid state to require manual coordinates", s))
	}
	return AwaitingCoords, nil
}

// ValidateSetDestination checks whether a destination may be accepted from
// the current state without performing a transition. Accepting a destination
// ends the conversation, so there is no target state.
//
// Valid states:
//   - AwaitingAddressOrCoords (raw coordinates sent directly)
//   - ConfirmingAddress (candidate confirmed)
//   - AwaitingCoords (manual coordinate entry)
func (s State) ValidateSetDestination() error {
	if s != AwaitingAddressOrCoords && s != ConfirmingAddress && s != AwaitingCoords {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid state to set a destination", s))
	}
	return nil
}
