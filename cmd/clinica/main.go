package main

import (
	"context"
	"log"

	"clinica-core/internal/app"

	"go.uber.org/fx"
)

func main() {

	fx.New(
		app.AppModule,
		fx.Invoke(func(lifecycle fx.Lifecycle) {
			lifecycle.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					log.Println("Gestión de Clínica iniciando...")
					return nil
				},
				OnStop: func(ctx context.Context) error {
					log.Println("Gestión de Clínica deteniéndose...")
					return nil
				},
			})
		}),
	).Run()
}
