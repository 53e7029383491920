// Package sessionrepo provides data transfer objects and mapping functions
// for session persistence. This package implements the repository pattern for
// the session aggregate, handling the conversion between the domain model and
// its database representation.
package sessionrepo

import (
	"time"

	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/core/domain/model/tariff"
)

// SessionDTO represents the database structure for persisting conversation
// sessions. The chat identifier is the primary key, one row per live
// conversation. UpdatedAt is maintained by GORM on every write and drives
// the stale-session cleanup.
//
// The destination is intentionally not persisted: a conversation that has
// accepted a destination is priced and removed within the same message
// handling, so the column would never carry data.
type SessionDTO struct {
	ChatID           int64 `gorm:"primaryKey;autoIncrement:false"`
	State            int   `gorm:"index"`
	WeightKg         *float64
	Tariff           int
	CandidateAddress *string
	CandidateLat     *float64
	CandidateLon     *float64
	UpdatedAt        time.Time `gorm:"index;autoUpdateTime"`
}

// TableName specifies the database table name for session entities.
// Overrides GORM's default naming convention to use "sessions".
func (SessionDTO) TableName() string {
	return "sessions"
}

// fromDomain converts a session domain aggregate to its database representation.
func fromDomain(sess *session.Session) SessionDTO {
	dto := SessionDTO{
		ChatID: sess.ChatID(),
		State:  int(sess.State()),
		Tariff: int(sess.Tariff()),
	}

	if w := sess.Weight(); w != nil {
		kg := w.Kg()
		dto.WeightKg = &kg
	}

	if p := sess.CandidatePoint(); p != nil {
		addr := sess.CandidateAddress()
		lat := p.Latitude()
		lon := p.Longitude()
		dto.CandidateAddress = &addr
		dto.CandidateLat = &lat
		dto.CandidateLon = &lon
	}

	return dto
}

// toDomain converts a database DTO to a session domain aggregate.
// Reconstructs the aggregate through RestoreSession so all invariants are
// re-validated on the way out of storage.
func toDomain(dto SessionDTO) (*session.Session, error) {
	var weight *kernel.Weight
	if dto.WeightKg != nil {
		w, err := kernel.NewWeight(*dto.WeightKg)
		if err != nil {
			return nil, err
		}
		weight = &w
	}

	var (
		candidateAddress string
		candidatePoint   *kernel.GeoPoint
	)
	if dto.CandidateAddress != nil && dto.CandidateLat != nil && dto.CandidateLon != nil {
		p, err := kernel.NewGeoPoint(*dto.CandidateLat, *dto.CandidateLon)
		if err != nil {
			return nil, err
		}
		candidateAddress = *dto.CandidateAddress
		candidatePoint = &p
	}

	return session.RestoreSession(
		dto.ChatID,
		session.State(dto.State),
		weight,
		tariff.Tariff(dto.Tariff),
		candidateAddress,
		candidatePoint,
	)
}
