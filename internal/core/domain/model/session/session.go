package session

import (
	"errors"
	"fmt"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/model/tariff"
	"deliverybot/internal/pkg/errs"
	"deliverybot/internal/pkg/guard"
)

// ErrSessionIsNotConstructed is returned when a Session instance was not
// created through NewSession or RestoreSession.
var ErrSessionIsNotConstructed = errors.New(
	"Session must be created via NewSession or RestoreSession constructor")

// Session is the aggregate root of one pricing conversation. It is keyed by
// the chat identifier and accumulates the data collected across messages:
// cargo weight, assigned tariff, a geocoded candidate pending confirmation,
// and finally the destination point.
//
// Invariants:
//   - chat id is never zero
//   - state is always one of the defined resting states
//   - weight and tariff are set together, when leaving AwaitingWeight
//   - a candidate address exists only in ConfirmingAddress
type Session struct {
	// chatID identifies the conversation; one session per chat
	chatID int64

	// state is the current resting step of the flow
	state State

	// weight is the cargo weight (nil until parsed)
	weight *kernel.Weight

	// tariff is the tier assigned for the weight (Unknown until assigned)
	tariff tariff.Tariff

	// candidateAddress and candidatePoint hold the geocoded match awaiting
	// a yes/no answer
	candidateAddress string
	candidatePoint   *kernel.GeoPoint

	// destination is the accepted delivery point; confirmedAddress is its
	// display name when it came from a confirmed geocoded match
	destination      *kernel.GeoPoint
	confirmedAddress string

	guard guard.ConstructorGuard
}

// NewSession creates a fresh conversation session in the AwaitingWeight state.
func NewSession(chatID int64) (*Session, error) {
	s := &Session{
		state: AwaitingWeight,
		guard: guard.NewConstructorGuard(),
	}

	if err := s.setChatID(chatID); err != nil {
		return nil, err
	}

	return s, nil
}

// RestoreSession reconstructs a Session from persistent storage.
// Unlike NewSession it accepts any resting state, but it still enforces the
// aggregate invariants: states past AwaitingWeight require weight and tariff,
// and a candidate exists only while an address is being confirmed.
func RestoreSession(
	chatID int64,
	state State,
	weight *kernel.Weight,
	assignedTariff tariff.Tariff,
	candidateAddress string,
	candidatePoint *kernel.GeoPoint,
) (*Session, error) {
	s := &Session{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setChatID(chatID),
		s.setState(state),
		s.setWeight(weight),
		s.setTariff(assignedTariff),
		s.setCandidate(candidateAddress, candidatePoint),
	); err != nil {
		return nil, err
	}

	if err := s.validateConsistency(); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Session was properly constructed.
func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionIsNotConstructed
	}
	return s.guard.Validate(ErrSessionIsNotConstructed)
}

// IsEqual compares two sessions by their chat identifiers.
func (s *Session) IsEqual(other *Session) bool {
	return other != nil && s.chatID == other.chatID
}

// ChatID returns the identifier of the conversation.
func (s *Session) ChatID() int64 {
	return s.chatID
}

// State returns the current resting step of the flow.
func (s *Session) State() State {
	return s.state
}

// Weight returns the parsed cargo weight, or nil before the weight step.
func (s *Session) Weight() *kernel.Weight {
	return s.weight
}

// Tariff returns the assigned tier, or tariff.Unknown before assignment.
func (s *Session) Tariff() tariff.Tariff {
	return s.tariff
}

// CandidateAddress returns the display name of the geocoded match awaiting
// confirmation, or "" when no candidate is pending.
func (s *Session) CandidateAddress() string {
	return s.candidateAddress
}

// CandidatePoint returns the coordinates of the geocoded match awaiting
// confirmation, or nil when no candidate is pending.
func (s *Session) CandidatePoint() *kernel.GeoPoint {
	return s.candidatePoint
}

// Destination returns the accepted delivery point, or nil until one is set.
func (s *Session) Destination() *kernel.GeoPoint {
	return s.destination
}

// ConfirmedAddress returns the display name of the accepted destination when
// it came from a confirmed geocoded match, "" when coordinates were entered
// directly.
func (s *Session) ConfirmedAddress() string {
	return s.confirmedAddress
}

// AssignTariff fixes the cargo weight and its tariff tier and advances the
// conversation to the destination step.
//
// Business rules:
//   - only allowed from AwaitingWeight
//   - weight must be valid and the tariff must be a defined tier
func (s *Session) AssignTariff(weight kernel.Weight, assignedTariff tariff.Tariff) error {
	if err := errors.Join(weight.Validate(), assignedTariff.Validate()); err != nil {
		return err
	}

	newState, err := s.state.AssignTariff()
	if err != nil {
		return err
	}

	s.state = newState
	s.weight = &weight
	s.tariff = assignedTariff
	return nil
}

// ProposeAddress records a geocoded candidate and moves the conversation to
// the confirmation step.
func (s *Session) ProposeAddress(displayName string, point kernel.GeoPoint) error {
	if displayName == "" {
		return errs.NewValueIsRequiredError("displayName")
	}
	if err := point.Validate(); err != nil {
		return err
	}

	newState, err := s.state.ProposeAddress()
	if err != nil {
		return err
	}

	s.state = newState
	s.candidateAddress = displayName
	s.candidatePoint = &point
	return nil
}

// RequireManualCoords discards any pending candidate and moves the
// conversation to manual coordinate entry.
func (s *Session) RequireManualCoords() error {
	newState, err := s.state.RequireManualCoords()
	if err != nil {
		return err
	}

	s.state = newState
	s.candidateAddress = ""
	s.candidatePoint = nil
	return nil
}

// ConfirmProposedAddress adopts the pending candidate as the destination.
// Only allowed while an address is being confirmed.
func (s *Session) ConfirmProposedAddress() error {
	if s.state != ConfirmingAddress {
		return errs.NewValueIsInvalidErrorWithCause("state",
			fmt.Errorf("%s is not a valid state to confirm an address", s.state))
	}
	if s.candidatePoint == nil {
		return errs.NewValueIsRequiredError("candidate address")
	}

	s.destination = s.candidatePoint
	s.confirmedAddress = s.candidateAddress
	s.candidateAddress = ""
	s.candidatePoint = nil
	return nil
}

// SetDestination accepts directly entered coordinates as the destination.
// No address name is attached. Allowed wherever a destination may be
// accepted, which lets raw coordinates short-circuit the confirmation step.
func (s *Session) SetDestination(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}
	if err := s.state.ValidateSetDestination(); err != nil {
		return err
	}

	s.destination = &point
	s.confirmedAddress = ""
	s.candidateAddress = ""
	s.candidatePoint = nil
	return nil
}

// setChatID validates and sets the conversation identifier.
func (s *Session) setChatID(chatID int64) error {
	if chatID == 0 {
		return errs.NewValueIsRequiredError("chatID")
	}
	s.chatID = chatID
	return nil
}

// setState validates and sets the resting state.
func (s *Session) setState(state State) error {
	if err := state.Validate(); err != nil {
		return err
	}
	s.state = state
	return nil
}

// setWeight validates and sets the optional cargo weight.
func (s *Session) setWeight(weight *kernel.Weight) error {
	if weight == nil {
		return nil
	}
	if err := weight.Validate(); err != nil {
		return err
	}
	s.weight = weight
	return nil
}

// setTariff validates and sets the optional tariff tier.
func (s *Session) setTariff(assignedTariff tariff.Tariff) error {
	if assignedTariff == tariff.Unknown {
		return nil
	}
	if err := assignedTariff.Validate(); err != nil {
		return err
	}
	s.tariff = assignedTariff
	return nil
}

// setCandidate validates and sets the optional pending candidate.
// Name and point come and go together.
func (s *Session) setCandidate(displayName string, point *kernel.GeoPoint) error {
	if displayName == "" && point == nil {
		return nil
	}
	if displayName == "" || point == nil {
		return errs.NewValueIsInvalidErrorWithCause("candidate",
			errors.New("candidate address and point must be set together"))
	}
	if err := point.Validate(); err != nil {
		return err
	}

	s.candidateAddress = displayName
	s.candidatePoint = point
	return nil
}

// validateConsistency enforces the cross-field invariants after restoration.
func (s *Session) validateConsistency() error {
	if s.state != AwaitingWeight && (s.weight == nil || s.tariff == tariff.Unknown) {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("state %s requires weight and tariff", s.state))
	}
	if s.state == AwaitingWeight && (s.weight != nil || s.tariff != tariff.Unknown) {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("state %s must not carry weight or tariff", s.state))
	}
	if s.state == ConfirmingAddress && s.candidatePoint == nil {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("state %s requires a pending candidate", s.state))
	}
	if s.state != ConfirmingAddress && s.candidatePoint != nil {
		return errs.NewValueIsInvalidErrorWithCause("session",
			fmt.Errorf("state %s must not carry a pending candidate", s.state))
	}
	return nil
}
