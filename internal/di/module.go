package di

import (
	"go.uber.org/fx"

	"github.com/conzooming/mealsub/internal/adapter/gateway"
	"github.com/conzooming/mealsub/internal/app"
	"github.com/conzooming/mealsub/internal/config"
	"github.com/conzooming/mealsub/internal/events"
	"github.com/conzooming/mealsub/internal/logger"
	"github.com/conzooming/mealsub/internal/pkg/auth"
	"github.com/conzooming/mealsub/internal/server/http/handlers"
	"github.com/conzooming/mealsub/internal/server/http/router"
	"github.com/conzooming/mealsub/internal/storage/postgres"
	"github.com/conzooming/mealsub/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		gateway.Module,
		events.Module,
		usecase.Module,
		fx.Provide(
			func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f },
			func(s *postgres.Storage) router.HealthChecker { return s },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
