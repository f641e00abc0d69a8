package app

import (
	"go.uber.org/fx"

	"clinica-core/internal/app/config"
	"clinica-core/internal/console"
	"clinica-core/internal/infrastructure/database/postgres"
	"clinica-core/internal/infrastructure/logger"
	"clinica-core/internal/modules/historias"
	"clinica-core/internal/modules/pacientes"
)

var AppModule = fx.Options(
	// Configuración (debe proveerse primero)
	fx.Provide(config.NewConfig),
	fx.Provide(config.NewPostgresConfig),

	// Infraestructura
	logger.Module,
	postgres.Module,

	// Módulos de dominio
	historias.Module,
	pacientes.Module,

	// Consola
	fx.Provide(console.NewHandler),

	// Aplicación
	fx.Provide(NewApplication),
	fx.Invoke((*Application).Start),
)
