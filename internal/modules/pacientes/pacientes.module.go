package pacientes

import (
	"go.uber.org/fx"

	"clinica-core/internal/modules/pacientes/repository"
	"clinica-core/internal/modules/pacientes/services"
)

// Module agrupa el repositorio y el servicio de Paciente, dueño del
// ciclo de vida de las transacciones compuestas.
var Module = fx.Options(
	fx.Provide(repository.NewPacienteRepository),
	fx.Provide(services.NewPacienteService),
)
