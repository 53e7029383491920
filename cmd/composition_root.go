package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"deliverybot/internal/adapters/out/nominatim"
	"deliverybot/internal/adapters/out/postgres"
	"deliverybot/internal/core/application/usecases/commands"
	"deliverybot/internal/core/application/usecases/queries"
	"deliverybot/internal/core/domain/model/kernel"
	"deliverybot/internal/core/domain/services"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	flow       *services.CalculationFlow
	origin     kernel.GeoPoint
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	origin, err := kernel.NewGeoPoint(config.OriginLatitude, config.OriginLongitude)
	if err != nil {
		return CompositionRoot{}, err
	}

	geocoder := nominatim.NewClient(
		config.GeocoderBaseURL,
		config.GeocoderUserAgent,
		config.GeocoderTimeout,
		logger,
	)

	flow, err := services.NewCalculationFlow(geocoder, origin)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		flow:       flow,
		origin:     origin,
	}, nil
}

// Origin returns the warehouse origin point.
func (c *CompositionRoot) Origin() kernel.GeoPoint {
	return c.origin
}

func (c *CompositionRoot) CreateProcessMessageCommandHandler() commands.ProcessMessageCommandHandler {
	return commands.NewProcessMessageCommandHandler(c.sessionUoWFactory(), c.flow)
}

func (c *CompositionRoot) CreateResetSessionCommandHandler() commands.ResetSessionCommandHandler {
	return commands.NewResetSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateCleanupSessionsCommandHandler() commands.CleanupSessionsCommandHandler {
	return commands.NewCleanupSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateGetActiveSessionsQueryHandler() queries.GetActiveSessionsQueryHandler {
	return queries.NewGetActiveSessionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}
