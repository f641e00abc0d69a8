package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"clinica-core/internal/app/config"
	"clinica-core/internal/console"
)

// Application arranca el bucle de consola bajo el ciclo de vida de Fx y
// pide el apagado del proceso cuando el usuario sale del menú.
type Application struct {
	config  *config.Config
	handler *console.Handler
	log     *zap.Logger
}

func NewApplication(cfg *config.Config, handler *console.Handler, log *zap.Logger) *Application {
	return &Application{
		config:  cfg,
		handler: handler,
		log:     log,
	}
}

func (a *Application) Start(lc fx.Lifecycle, shutdowner fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			a.log.Info("consola iniciada", zap.String("env", a.config.Environment))

			go func() {
				a.handler.Run(context.Background())
				if err := shutdowner.Shutdown(); err != nil {
					a.log.Error("fallo al apagar la aplicación", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			a.log.Info("consola detenida")
			return nil
		},
	})
}

func (a *Application) IsDevelopment() bool {
	return a.config.Environment == "development"
}
