package historias

import (
	"go.uber.org/fx"

	"clinica-core/internal/modules/historias/repository"
	"clinica-core/internal/modules/historias/services"
)

// Module agrupa el repositorio y el servicio de Historia Clínica. El
// servicio no posee transacciones: participa en las del módulo de
// pacientes.
var Module = fx.Options(
	fx.Provide(repository.NewHistoriaRepository),
	fx.Provide(services.NewHistoriaClinicaService),
)
