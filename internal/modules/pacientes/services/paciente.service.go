package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
	historias "clinica-core/internal/modules/historias/services"
	"clinica-core/internal/modules/pacientes/repository"
)

// PacienteService es el orquestador transaccional del sistema: la única
// capa que abre, confirma y revierte transacciones. Cada operación
// compuesta encierra un paso sobre el paciente y otro sobre su historia
// clínica; ambos se confirman o ninguno lo hace.
type PacienteService struct {
	repo      repository.PacienteRepository
	historias historias.HistoriaClinicaService
	runner    postgres.TxRunner
	log       *zap.Logger
}

func NewPacienteService(
	repo repository.PacienteRepository,
	historias historias.HistoriaClinicaService,
	runner postgres.TxRunner,
	log *zap.Logger,
) *PacienteService {
	return &PacienteService{
		repo:      repo,
		historias: historias,
		runner:    runner,
		log:       log,
	}
}

// validarPaciente corre antes de abrir sesión alguna; sus errores salen
// sin envolver.
func validarPaciente(p *domain.Paciente) error {
	if p == nil {
		return domain.NewValidationError("Paciente nulo.")
	}
	if strings.TrimSpace(p.Nombre) == "" {
		return domain.NewValidationError("Nombre obligatorio.")
	}
	if strings.TrimSpace(p.Apellido) == "" {
		return domain.NewValidationError("Apellido obligatorio.")
	}
	if strings.TrimSpace(p.Dni) == "" {
		return domain.NewValidationError("DNI obligatorio.")
	}
	if p.Historia == nil {
		return domain.NewValidationError("Historia clínica obligatoria (Relación 1-1).")
	}
	return nil
}

// Insertar da de alta al paciente y su historia clínica en una única
// transacción: primero el paciente, para obtener el id generado; luego
// la historia, que lo usa como clave foránea.
func (s *PacienteService) Insertar(ctx context.Context, p *domain.Paciente) (*domain.Paciente, error) {
	if err := validarPaciente(p); err != nil {
		return nil, err
	}

	err := s.runner.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if err := s.repo.CreateTx(ctx, tx, p); err != nil {
			return err
		}
		return s.historias.InsertarConPaciente(ctx, tx, p.Historia, p.ID)
	})
	if err != nil {
		s.log.Error("alta de paciente revertida", zap.Error(err))
		return nil, domain.NewStorageErrorTransaccional("insertar", err)
	}

	s.log.Info("paciente creado",
		zap.Int64("paciente_id", p.ID),
		zap.Int64("historia_id", p.Historia.ID),
		zap.String("dni", p.Dni),
	)
	return p, nil
}

// Actualizar persiste paciente e historia en una misma transacción. El
// orden relativo de los dos pasos no es semánticamente crítico; la
// consistencia sí.
func (s *PacienteService) Actualizar(ctx context.Context, p *domain.Paciente) error {
	if p == nil || !p.TieneID() {
		return domain.NewValidationError("Id requerido.")
	}
	if err := validarPaciente(p); err != nil {
		return err
	}

	err := s.runner.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if err := s.repo.UpdateTx(ctx, tx, p); err != nil {
			return err
		}
		return s.historias.ActualizarTx(ctx, tx, p.Historia)
	})
	if err != nil {
		s.log.Error("actualización de paciente revertida", zap.Error(err))
		return domain.NewStorageErrorTransaccional("actualizar", err)
	}

	s.log.Info("paciente actualizado", zap.Int64("paciente_id", p.ID))
	return nil
}

// Eliminar ejecuta la baja lógica compuesta. La historia va primero: su
// chequeo estricto (cero filas afectadas es error) detecta la violación
// de invariantes antes de tocar al paciente, de modo que un rollback
// deja ambas filas intactas.
func (s *PacienteService) Eliminar(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("El ID de Paciente es inválido.")
	}

	err := s.runner.WithTransaction(ctx, func(tx *postgres.Transaction) error {
		if err := s.historias.EliminarPorPacienteID(ctx, tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(ctx, tx, id)
	})
	if err != nil {
		s.log.Error("baja de paciente revertida", zap.Int64("paciente_id", id), zap.Error(err))
		return domain.NewStorageErrorTransaccional("eliminar", err)
	}

	s.log.Info("paciente dado de baja", zap.Int64("paciente_id", id))
	return nil
}

// GetByID delega en el repositorio, que devuelve el paciente enriquecido
// con su historia clínica en una sola consulta. Un resultado nil, nil
// significa que no hay paciente activo con ese id.
func (s *PacienteService) GetByID(ctx context.Context, id int64) (*domain.Paciente, error) {
	return s.repo.Read(ctx, id)
}

// GetAll devuelve los pacientes activos enriquecidos, ordenados por id
// descendente.
func (s *PacienteService) GetAll(ctx context.Context) ([]*domain.Paciente, error) {
	return s.repo.ReadAll(ctx)
}

// FindByDni busca por la clave de negocio natural del paciente.
func (s *PacienteService) FindByDni(ctx context.Context, dni string) (*domain.Paciente, error) {
	return s.repo.FindByDni(ctx, dni)
}
