package server

import (
	"log/slog"

	"parlour/internal/config"
	"parlour/internal/database"
	"parlour/internal/repositories"
)

// Store groups the four collections the shop persists.
type Store struct {
	Users    repositories.UserRepository
	Products repositories.ProductRepository
	Feedback repositories.FeedbackRepository
	Orders   repositories.OrderRepository
}

// NewMemoryStore returns a Store kept entirely in process memory.
func NewMemoryStore() Store {
	return Store{
		Users:    repositories.NewMemoryUserRepository(),
		Products: repositories.NewMemoryProductRepository(),
		Feedback: repositories.NewMemoryFeedbackRepository(),
		Orders:   repositories.NewMemoryOrderRepository(),
	}
}

// OpenStore opens the store selected by cfg.DBDriver. The returned cleanup
// closes any database connection.
func OpenStore(cfg config.Config) (Store, func(), error) {
	if cfg.DBDriver == "memory" {
		slog.Warn("using in-memory store, data is lost on restart")
		return NewMemoryStore(), func() {}, nil
	}

	db, err := database.Open(cfg.DBDriver, cfg.DatabaseDSN)
	if err != nil {
		return Store{}, nil, err
	}

	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return Store{
		Users:    repositories.NewGORMUserRepository(db),
		Products: repositories.NewGORMProductRepository(db),
		Feedback: repositories.NewGORMFeedbackRepository(db),
		Orders:   repositories.NewGORMOrderRepository(db),
	}, cleanup, nil
}
