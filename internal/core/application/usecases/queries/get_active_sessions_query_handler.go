package queries

import (
	"context"

	"gorm.io/gorm"

	"deliverybot/internal/core/domain/model/session"
	"deliverybot/internal/core/domain/model/tariff"
)

// GetActiveSessionsQueryHandler reads live conversations from the database.
//
// Example:
//
//	handler := NewGetActiveSessionsQueryHandler(db)
//	query := NewGetActiveSessionsQuery()
//
//	sessions, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d conversations in progress\n", len(sessions))
type GetActiveSessionsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveSessionsQueryHandler creates a handler for live-session queries.
// Requires a GORM database connection for query execution.
func NewGetActiveSessionsQueryHandler(db *gorm.DB) GetActiveSessionsQueryHandler {
	return GetActiveSessionsQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by last activity, most
// recent first. A session still at the weight step has no weight and an
// empty tariff.
func (h GetActiveSessionsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveSessionsQuery,
) ([]GetActiveSessionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	sessions := make([]GetActiveSessionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			chat_id,
			state,
			weight_kg,
			tariff,
			updated_at
		FROM sessions
		ORDER BY updated_at DESC
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetActiveSessionsQueryResponse
		var state int
		var assignedTariff int

		err = rows.Scan(
			&resp.ChatID,
			&state,
			&resp.WeightKg,
			&assignedTariff,
			&resp.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		resp.State = session.State(state).String()
		if t := tariff.Tariff(assignedTariff); t != tariff.Unknown {
			resp.Tariff = t.String()
		}
		sessions = append(sessions, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
