package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
	"clinica-core/internal/modules/pacientes/queries"
)

// PacienteRepository expone cada operación en dos formas: la
// autogestionada adquiere su propia sesión con semántica auto-commit; la
// variante Tx participa en la transacción del invocador y jamás la
// confirma, revierte ni cierra.
//
// Las lecturas devuelven pacientes enriquecidos con su historia clínica
// activa (un único LEFT JOIN); la ausencia de fila se señala con un
// resultado nil, no con error.
type PacienteRepository interface {
	Create(ctx context.Context, p *domain.Paciente) error
	CreateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error

	Read(ctx context.Context, id int64) (*domain.Paciente, error)
	ReadTx(ctx context.Context, tx *postgres.Transaction, id int64) (*domain.Paciente, error)

	ReadAll(ctx context.Context) ([]*domain.Paciente, error)
	ReadAllTx(ctx context.Context, tx *postgres.Transaction) ([]*domain.Paciente, error)

	// Update es silenciosamente un no-op si la fila no existe.
	Update(ctx context.Context, p *domain.Paciente) error
	UpdateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error

	Delete(ctx context.Context, id int64) error
	DeleteTx(ctx context.Context, tx *postgres.Transaction, id int64) error

	FindByDni(ctx context.Context, dni string) (*domain.Paciente, error)
	FindByDniTx(ctx context.Context, tx *postgres.Transaction, dni string) (*domain.Paciente, error)
}

type pacienteRepository struct {
	db *postgres.Client
}

func NewPacienteRepository(db *postgres.Client) PacienteRepository {
	return &pacienteRepository{db: db}
}

func (r *pacienteRepository) Create(ctx context.Context, p *domain.Paciente) error {
	return r.create(ctx, r.db, p)
}

func (r *pacienteRepository) CreateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
	return r.create(ctx, tx, p)
}

func (r *pacienteRepository) create(ctx context.Context, ex postgres.Executor, p *domain.Paciente) error {
	err := ex.QueryRow(ctx, queries.PacienteQueries.Create,
		p.Eliminado, p.Nombre, p.Apellido, p.Dni, p.FechaNacimiento,
	).Scan(&p.ID)
	if err != nil {
		return domain.NewStorageError("paciente.create", "no se pudo insertar el paciente", err)
	}
	return nil
}

func (r *pacienteRepository) Read(ctx context.Context, id int64) (*domain.Paciente, error) {
	return r.read(ctx, r.db, id)
}

func (r *pacienteRepository) ReadTx(ctx context.Context, tx *postgres.Transaction, id int64) (*domain.Paciente, error) {
	return r.read(ctx, tx, id)
}

func (r *pacienteRepository) read(ctx context.Context, ex postgres.Executor, id int64) (*domain.Paciente, error) {
	p, err := scanPacienteEnriquecido(ex.QueryRow(ctx, queries.PacienteQueries.Read, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("paciente.read", "no se pudo leer el paciente", err)
	}
	return p, nil
}

func (r *pacienteRepository) ReadAll(ctx context.Context) ([]*domain.Paciente, error) {
	return r.readAll(ctx, r.db)
}

func (r *pacienteRepository) ReadAllTx(ctx context.Context, tx *postgres.Transaction) ([]*domain.Paciente, error) {
	return r.readAll(ctx, tx)
}

func (r *pacienteRepository) readAll(ctx context.Context, ex postgres.Executor) ([]*domain.Paciente, error) {
	rows, err := ex.Query(ctx, queries.PacienteQueries.ReadAll)
	if err != nil {
		return nil, domain.NewStorageError("paciente.readAll", "no se pudo listar pacientes", err)
	}
	defer rows.Close()

	pacientes := make([]*domain.Paciente, 0)
	for rows.Next() {
		p, err := scanPacienteEnriquecido(rows)
		if err != nil {
			return nil, domain.NewStorageError("paciente.readAll", "no se pudo mapear la fila", err)
		}
		pacientes = append(pacientes, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStorageError("paciente.readAll", "error al recorrer resultados", err)
	}
	return pacientes, nil
}

func (r *pacienteRepository) Update(ctx context.Context, p *domain.Paciente) error {
	return r.update(ctx, r.db, p)
}

func (r *pacienteRepository) UpdateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
	return r.update(ctx, tx, p)
}

func (r *pacienteRepository) update(ctx context.Context, ex postgres.Executor, p *domain.Paciente) error {
	_, err := ex.Exec(ctx, queries.PacienteQueries.Update,
		p.Eliminado, p.Nombre, p.Apellido, p.Dni, p.FechaNacimiento, p.ID,
	)
	if err != nil {
		return domain.NewStorageError("paciente.update", "no se pudo actualizar el paciente", err)
	}
	return nil
}

func (r *pacienteRepository) Delete(ctx context.Context, id int64) error {
	return r.delete(ctx, r.db, id)
}

func (r *pacienteRepository) DeleteTx(ctx context.Context, tx *postgres.Transaction, id int64) error {
	return r.delete(ctx, tx, id)
}

func (r *pacienteRepository) delete(ctx context.Context, ex postgres.Executor, id int64) error {
	_, err := ex.Exec(ctx, queries.PacienteQueries.Delete, id)
	if err != nil {
		return domain.NewStorageError("paciente.delete", "no se pudo dar de baja el paciente", err)
	}
	return nil
}

func (r *pacienteRepository) FindByDni(ctx context.Context, dni string) (*domain.Paciente, error) {
	return r.findByDni(ctx, r.db, dni)
}

func (r *pacienteRepository) FindByDniTx(ctx context.Context, tx *postgres.Transaction, dni string) (*domain.Paciente, error) {
	return r.findByDni(ctx, tx, dni)
}

func (r *pacienteRepository) findByDni(ctx context.Context, ex postgres.Executor, dni string) (*domain.Paciente, error) {
	p, err := scanPacienteEnriquecido(ex.QueryRow(ctx, queries.PacienteQueries.FindByDni, dni))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.NewStorageError("paciente.findByDni", "no se pudo buscar por DNI", err)
	}
	return p, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanPacienteEnriquecido mapea una fila del LEFT JOIN. La historia se
// adjunta sólo cuando la columna hc_id viene con un id positivo; un
// paciente sin historia activa (que los invariantes prohíben pero el
// código tolera) queda con Historia nil.
func scanPacienteEnriquecido(row rowScanner) (*domain.Paciente, error) {
	var (
		p               domain.Paciente
		fechaNacimiento *time.Time

		hcID          *int64
		hcEliminado   *bool
		nroHistoria   *string
		grupo         *string
		antecedentes  *string
		medicacion    *string
		observaciones *string
		fechaApertura *time.Time
	)

	err := row.Scan(
		&p.ID, &p.Eliminado, &p.Nombre, &p.Apellido, &p.Dni, &fechaNacimiento,
		&hcID, &hcEliminado, &nroHistoria,
		&grupo, &antecedentes, &medicacion,
		&observaciones, &fechaApertura,
	)
	if err != nil {
		return nil, err
	}

	p.FechaNacimiento = fechaNacimiento

	if hcID != nil && *hcID > 0 {
		h := &domain.HistoriaClinica{
			NroHistoria:      derefString(nroHistoria),
			Antecedentes:     derefString(antecedentes),
			MedicacionActual: derefString(medicacion),
			Observaciones:    derefString(observaciones),
			FechaApertura:    fechaApertura,
		}
		h.ID = *hcID
		if hcEliminado != nil {
			h.Eliminado = *hcEliminado
		}
		if grupo != nil {
			g, err := domain.GrupoSanguineoFromDB(*grupo)
			if err != nil {
				return nil, err
			}
			h.GrupoSanguineo = &g
		}
		p.Historia = h
	}

	return &p, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
