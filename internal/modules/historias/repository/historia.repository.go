package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
	"clinica-core/internal/modules/historias/queries"
)

// MensajeCreateSinPaciente es el error de contrato de las variantes de
// alta sin propietario: una historia huérfana no puede persistirse.
const MensajeCreateSinPaciente = "una Historia Clínica no puede crearse sin Paciente: use la variante con pacienteId"

// HistoriaRepository expone las operaciones CRUD de HistoriaClinica. El
// alta sólo es posible junto a un paciente propietario:
// CreateConPacienteTx es el único camino de persistencia; Create y
// CreateTx fallan siempre con ContractError.
type HistoriaRepository interface {
	Create(ctx context.Context, h *domain.HistoriaClinica) error
	CreateTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error
	CreateConPacienteTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error

	Read(ctx context.Context, id int64) (*domain.HistoriaClinica, error)
	ReadTx(ctx context.Context, tx *postgres.Transaction, id int64) (*domain.HistoriaClinica, error)

	ReadAll(ctx context.Context) ([]*domain.HistoriaClinica, error)
	ReadAllTx(ctx context.Context, tx *postgres.Transaction) ([]*domain.HistoriaClinica, error)

	// Update es silenciosamente un no-op si la fila no existe.
	Update(ctx context.Context, h *domain.HistoriaClinica) error
	UpdateTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error

	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx *postgres.Transaction, id int64) error

	// DeleteByPacienteIDTx da de baja la única historia activa cuya clave
	// foránea apunta al paciente. Cero filas afectadas es un StorageError:
	// así se detecta, y revierte, un paciente sin historia activa.
	DeleteByPacienteIDTx(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error
}

type historiaRepository struct {
	db *postgres.Client
}

func NewHistoriaRepository(db *postgres.Client) HistoriaRepository {
	return &historiaRepository{db: db}
}

func (r *historiaRepository) Create(ctx context.Context, h *domain.HistoriaClinica) error {
	return domain.NewContractError(MensajeCreateSinPaciente)
}

func (r *historiaRepository) CreateTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error {
	return domain.NewContractError(MensajeCreateSinPaciente)
}

func (r *historiaRepository) CreateConPacienteTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error {
	err := tx.QueryRow(ctx, queries.HistoriaQueries.CreateConPaciente,
		h.Eliminado, h.NroHistoria, grupoArg(h.GrupoSanguineo),
		nullIfEmpty(h.Antecedentes), nullIfEmpty(h.MedicacionActual), nullIfEmpty(h.Observaciones),
		h.FechaApertura, pacienteID,
	).Scan(&h.ID)
	if err != nil {
		return domain.NewStorageError("historia.create", "no se pudo insertar la historia clínica", err)
	}
	return nil
}

func (r *historiaRepository) Read(ctx context.Context, id int64) (*domain.HistoriaClinica, error) {
	return r.read(ctx, r.db, id)
}

func (r *historiaRepository) ReadTx(ctx context.Context, tx *postgres.Transaction, id int64) (*domain.HistoriaClinica, error) {
	return r.read(ctx, tx, id)
}

func (r *historiaRepository) read(ctx context.Context, ex postgres.Executor, id int64) (*domain.HistoriaClinica, error) {
	h, err := scanHistoria(ex.QueryRow(ctx, queries.HistoriaQueries.Read, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("historia.read", "no se pudo leer la historia clínica", err)
	}
	return h, nil
}

func (r *historiaRepository) ReadAll(ctx context.Context) ([]*domain.HistoriaClinica, error) {
	return r.readAll(ctx, r.db)
}

func (r *historiaRepository) ReadAllTx(ctx context.Context, tx *postgres.Transaction) ([]*domain.HistoriaClinica, error) {
	return r.readAll(ctx, tx)
}

func (r *historiaRepository) readAll(ctx context.Context, ex postgres.Executor) ([]*domain.HistoriaClinica, error) {
	rows, err := ex.Query(ctx, queries.HistoriaQueries.ReadAll)
	if err != nil {
		return nil, domain.NewStorageError("historia.readAll", "no se pudo listar historias clínicas", err)
	}
	defer rows.Close()

	historias := make([]*domain.HistoriaClinica, 0)
	for rows.Next() {
		h, err := scanHistoria(rows)
		if err != nil {
			return nil, domain.NewStorageError("historia.readAll", "no se pudo mapear la fila", err)
		}
		historias = append(historias, h)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("historia.readAll", "error al recorrer resultados", err)
	}
	return historias, nil
}

func (r *historiaRepository) Update(ctx context.Context, h *domain.HistoriaClinica) error {
	return r.update(ctx, r.db, h)
}

func (r *historiaRepository) UpdateTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error {
	return r.update(ctx, tx, h)
}

func (r *historiaRepository) update(ctx context.Context, ex postgres.Executor, h *domain.HistoriaClinica) error {
	_, err := ex.Exec(ctx, queries.HistoriaQueries.Update,
		h.Eliminado, h.NroHistoria, grupoArg(h.GrupoSanguineo),
		nullIfEmpty(h.Antecedentes), nullIfEmpty(h.MedicacionActual), nullIfEmpty(h.Observaciones),
		h.FechaApertura, h.ID,
	)
	if err != nil {
		return domain.NewStorageError("historia.update", "no se pudo actualizar la historia clínica", err)
	}
	return nil
}

func (r *historiaRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, r.db, id)
}

func (r *historiaRepository) DeleteTx(ctx context.Context, tx *postgres.Transaction, id int64) error {
	return r.delete(ctx, tx, id)
}

func (r *historiaRepository) delete(ctx context.Context, ex postgres.Executor, id int64) error {
	_, err := ex.Exec(ctx, queries.HistoriaQueries.Delete, id)
	if err != nil {
		return domain.NewStorageError("historia.delete", "no se pudo dar de baja la historia clínica", err)
	}
	return nil
}

func (r *historiaRepository) DeleteByPacienteIDTx(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error {
	tag, err := tx.Exec(ctx, queries.HistoriaQueries.DeleteByPacienteID, pacienteID)
	if err != nil {
		return domain.NewStorageError("historia.deleteByPacienteId", "no se pudo dar de baja la historia clínica", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewStorageError("historia.deleteByPacienteId",
			fmt.Sprintf("Error de integridad: No se encontró Historia Clínica activa para el paciente ID: %d", pacienteID), nil)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanHistoria(row rowScanner) (*domain.HistoriaClinica, error) {
	var (
		h             domain.HistoriaClinica
		grupo         *string
		antecedentes  *string
		medicacion    *string
		observaciones *string
		fechaApertura *time.Time
	)

	err := row.Scan(
		&h.ID, &h.Eliminado, &h.NroHistoria, &grupo,
		&antecedentes, &medicacion, &observaciones, &fechaApertura,
	)
	if err != nil {
		return nil, err
	}

	if grupo != nil {
		g, err := domain.GrupoSanguineoFromDB(*grupo)
		if err != nil {
			return nil, err
		}
		h.GrupoSanguineo = &g
	}
	h.Antecedentes = derefString(antecedentes)
	h.MedicacionActual = derefString(medicacion)
	h.Observaciones = derefString(observaciones)
	h.FechaApertura = fechaApertura

	return &h, nil
}

func grupoArg(g *domain.GrupoSanguineo) interface{} {
	if g == nil {
		return nil
	}
	return g.DB()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
