package app

import (
	"context"
	"fmt"

	"github.com/newrelic/go-agent/v3/newrelic"

	"wanderlust/internal/config"
	"wanderlust/internal/repository"
	"wanderlust/internal/repository/mongodb"
	"wanderlust/internal/repository/postgres"
)

// Repositories bundles the persistence layer chosen by configuration.
type Repositories struct {
	Users    repository.UserRepository
	Trips    repository.TripRepository
	Ratings  repository.RatingRepository
	Comments repository.CommentRepository

	// Close releases the underlying connection.
	Close func() error
}

// NewRepositories opens the configured database and builds its repositories.
func NewRepositories(ctx context.Context, cfg config.DatabaseConfig, nrApp *newrelic.Application) (*Repositories, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		db, err := NewDatabase(ctx, cfg, nrApp)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users:    postgres.NewUserRepository(db),
			Trips:    postgres.NewTripRepository(db),
			Ratings:  postgres.NewRatingRepository(db),
			Comments: postgres.NewCommentRepository(db),
			Close:    db.Close,
		}, nil

	case config.DriverMongo:
		client, db, err := NewMongoDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &Repositories{
			Users:    mongodb.NewUserRepository(db),
			Trips:    mongodb.NewTripRepository(db),
			Ratings:  mongodb.NewRatingRepository(db),
			Comments: mongodb.NewCommentRepository(db),
			Close: func() error {
				return client.Disconnect(context.Background())
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
