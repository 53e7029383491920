// Package http exposes the REST facade of the calculator: the tariff catalog,
// one-shot quoting, and a read model of live chat conversations.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"deliverybot/internal/core/application/usecases/queries"
	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/model/tariff"
)

// Error is the JSON error envelope returned by all endpoints.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// TariffResponse is one tier of the tariff catalog.
type TariffResponse struct {
	Name        string  `json:"name"`
	MaxWeightKg float64 `json:"max_weight_kg"`
	BaseFeeRub  int64   `json:"base_fee_rub"`
	PerKmRub    int64   `json:"per_km_rub"`
}

// QuoteRequest asks for a one-shot price: cargo weight plus destination
// coordinates, bypassing the chat conversation.
type QuoteRequest struct {
	WeightKg  float64 `json:"weight_kg"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// QuoteResponse is a priced delivery.
type QuoteResponse struct {
	QuoteID     string  `json:"quote_id"`
	Tariff      string  `json:"tariff"`
	DistanceKm  float64 `json:"distance_km"`
	AmountRub   int64   `json:"amount_rub"`
	Currency    string  `json:"currency"`
	Explanation string  `json:"explanation"`
}

// SessionResponse is one live chat conversation.
type SessionResponse struct {
	ChatID    int64     `json:"chat_id"`
	State     string    `json:"state"`
	WeightKg  *float64  `json:"weight_kg,omitempty"`
	Tariff    string    `json:"tariff,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	getActiveSessionsHandler queries.GetActiveSessionsQueryHandler
	origin                   kernel.GeoPoint
}

// NewServer creates the HTTP server around the session read handler and the
// warehouse origin all quoted distances are measured from.
func NewServer(
	getActiveSessionsHandler queries.GetActiveSessionsQueryHandler,
	origin kernel.GeoPoint,
) (*Server, error) {
	if err := origin.Validate(); err != nil {
		return nil, err
	}

	return &Server{
		getActiveSessionsHandler: getActiveSessionsHandler,
		origin:                   origin,
	}, nil
}

// RegisterRoutes attaches all endpoints to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)
	e.GET("/api/v1/tariffs", s.GetTariffs)
	e.POST("/api/v1/quote", s.CreateQuote)
	e.GET("/api/v1/sessions", s.GetSessions)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetTariffs handles GET /api/v1/tariffs - returns the tariff catalog in
// ascending weight-bracket order.
func (s *Server) GetTariffs(ctx echo.Context) error {
	tiers := tariff.All()

	response := make([]TariffResponse, 0, len(tiers))
	for _, t := range tiers {
		response = append(response, TariffResponse{
			Name:        t.String(),
			MaxWeightKg: t.MaxWeightKg(),
			BaseFeeRub:  t.BaseFeeRub(),
			PerKmRub:    t.PerKmRub(),
		})
	}

	return ctx.JSON(http.StatusOK, response)
}

// CreateQuote handles POST /api/v1/quote - prices a delivery without a chat
// conversation: assigns the tariff by weight, measures the distance from the
// warehouse and computes the final amount.
func (s *Server) CreateQuote(ctx echo.Context) error {
	var req QuoteRequest
	if err := ctx.Bind(&req); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	weight, err := kernel.NewWeight(req.WeightKg)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid weight: " + err.Error(),
		})
	}

	assigned, err := tariff.AssignTariff(weight)
	if err != nil {
		if errors.Is(err, tariff.ErrWeightExceedsGrid) {
			return ctx.JSON(http.StatusUnprocessableEntity, Error{
				Code:    http.StatusUnprocessableEntity,
				Message: "Weight exceeds tariff grid limits",
			})
		}
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid weight: " + err.Error(),
		})
	}

	destination, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid coordinates: " + err.Error(),
		})
	}

	distanceKm, err := s.origin.DistanceKm(destination)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute distance",
		})
	}

	quote, err := tariff.ComputePrice(assigned, distanceKm)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute price",
		})
	}

	return ctx.JSON(http.StatusOK, QuoteResponse{
		QuoteID:     kernel.NewUUID().String(),
		Tariff:      assigned.String(),
		DistanceKm:  distanceKm,
		AmountRub:   quote.AmountRub(),
		Currency:    quote.CurrencyCode(),
		Explanation: quote.Explanation(),
	})
}

// GetSessions handles GET /api/v1/sessions - returns live chat conversations,
// most recently active first.
func (s *Server) GetSessions(ctx echo.Context) error {
	query := queries.NewGetActiveSessionsQuery()

	sessions, err := s.getActiveSessionsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to retrieve sessions",
		})
	}

	response := make([]SessionResponse, 0, len(sessions))
	for _, sess := range sessions {
		response = append(response, SessionResponse{
			ChatID:    sess.ChatID,
			State:     sess.State,
			WeightKg:  sess.WeightKg,
			Tariff:    sess.Tariff,
			UpdatedAt: sess.UpdatedAt,
		})
	}

	return ctx.JSON(http.StatusOK, response)
}
