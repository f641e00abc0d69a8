package services

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
	"clinica-core/internal/modules/historias/repository"
)

// HistoriaClinicaService no posee ninguna transacción: los métodos que
// reciben una *postgres.Transaction participan en la del invocador y los
// demás delegan en la variante autogestionada del repositorio
// (semántica auto-commit).
type HistoriaClinicaService interface {
	// Insertar está prohibido: una historia no se crea sin su paciente.
	// Valida y luego falla siempre con ContractError.
	Insertar(ctx context.Context, h *domain.HistoriaClinica) error

	// InsertarConPaciente persiste la historia dentro de la transacción
	// del invocador, asociada al paciente dado. Asigna FechaApertura con
	// la fecha local actual cuando no viene establecida.
	InsertarConPaciente(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error

	Actualizar(ctx context.Context, h *domain.HistoriaClinica) error
	ActualizarTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error

	Eliminar(ctx context.Context, id int64) error
	EliminarPorPacienteID(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error

	GetByID(ctx context.Context, id int64) (*domain.HistoriaClinica, error)
	GetAll(ctx context.Context) ([]*domain.HistoriaClinica, error)
}

type historiaClinicaService struct {
	repo repository.HistoriaRepository
	log  *zap.Logger
}

func NewHistoriaClinicaService(repo repository.HistoriaRepository, log *zap.Logger) HistoriaClinicaService {
	return &historiaClinicaService{
		repo: repo,
		log:  log,
	}
}

func validar(h *domain.HistoriaClinica) error {
	if h == nil {
		return domain.NewValidationError("La Historia Clínica no puede ser nula.")
	}
	if strings.TrimSpace(h.NroHistoria) == "" {
		return domain.NewValidationError("El Nro. de Historia es obligatorio.")
	}
	if h.GrupoSanguineo != nil && !h.GrupoSanguineo.EsValido() {
		return domain.NewValidationError("El grupo sanguíneo no es válido.")
	}
	return nil
}

func (s *historiaClinicaService) Insertar(ctx context.Context, h *domain.HistoriaClinica) error {
	if err := validar(h); err != nil {
		return err
	}
	return domain.NewContractError(repository.MensajeCreateSinPaciente)
}

func (s *historiaClinicaService) InsertarConPaciente(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error {
	if err := validar(h); err != nil {
		return err
	}

	if h.FechaApertura == nil {
		hoy := fechaActual()
		h.FechaApertura = &hoy
	}

	if err := s.repo.CreateConPacienteTx(ctx, tx, h, pacienteID); err != nil {
		return err
	}

	s.log.Info("historia clínica creada",
		zap.Int64("historia_id", h.ID),
		zap.Int64("paciente_id", pacienteID),
	)
	return nil
}

func (s *historiaClinicaService) Actualizar(ctx context.Context, h *domain.HistoriaClinica) error {
	if err := validarParaActualizar(h); err != nil {
		return err
	}
	if err := s.repo.Update(ctx, h); err != nil {
		return err
	}
	s.log.Info("historia clínica actualizada", zap.Int64("historia_id", h.ID))
	return nil
}

func (s *historiaClinicaService) ActualizarTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error {
	if err := validarParaActualizar(h); err != nil {
		return err
	}
	return s.repo.UpdateTx(ctx, tx, h)
}

func (s *historiaClinicaService) Eliminar(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.NewValidationError("El ID debe ser mayor a 0.")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("historia clínica dada de baja", zap.Int64("historia_id", id))
	return nil
}

func (s *historiaClinicaService) EliminarPorPacienteID(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error {
	if pacienteID <= 0 {
		return domain.NewValidationError("El ID de Paciente debe ser mayor a 0.")
	}
	return s.repo.DeleteByPacienteIDTx(ctx, tx, pacienteID)
}

func (s *historiaClinicaService) GetByID(ctx context.Context, id int64) (*domain.HistoriaClinica, error) {
	return s.repo.Read(ctx, id)
}

func (s *historiaClinicaService) GetAll(ctx context.Context) ([]*domain.HistoriaClinica, error) {
	return s.repo.ReadAll(ctx)
}

func validarParaActualizar(h *domain.HistoriaClinica) error {
	if err := validar(h); err != nil {
		return err
	}
	if h.ID <= 0 {
		return domain.NewValidationError("El ID de la Historia Clínica es inválido para actualizar.")
	}
	return nil
}

// fechaActual devuelve la fecha local de hoy, sin componente horario.
func fechaActual() time.Time {
	ahora := time.Now()
	return time.Date(ahora.Year(), ahora.Month(), ahora.Day(), 0, 0, 0, 0, ahora.Location())
}
