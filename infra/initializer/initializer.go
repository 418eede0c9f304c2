package initializer

import (
	"github.com/propertyos/rentledger/infra"
	infra_repository "github.com/propertyos/rentledger/infra/repository"
	"github.com/propertyos/rentledger/pkg/app"
	"github.com/propertyos/rentledger/pkg/config"
)

// InitializeDependencies initializes all the application dependencies
func InitializeDependencies(cfg *config.App) (
	deps *app.Deps,
	err error,
) {
	deps = &app.Deps{}
	logger := setupLogger(cfg.Log)
	deps.Logger = logger

	// Initialize database
	db, err := infra.NewDBConnection(cfg.DB, cfg.Env)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		return nil, err
	}

	// Initialize unit of work
	deps.Uow = infra_repository.NewUoW(db)

	return
}
