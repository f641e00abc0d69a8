package services

import (
	"context"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
)

// fakeTxRunner ejecuta el cuerpo de la transacción sin base de datos y
// cuenta cuántas sesiones se abrieron.
type fakeTxRunner struct {
	calls int
	err   error
}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn postgres.TxFunc) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(new(postgres.Transaction))
}

type mockPacienteRepository struct {
	CreateTxFn  func(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error
	ReadFn      func(ctx context.Context, id int64) (*domain.Paciente, error)
	ReadAllFn   func(ctx context.Context) ([]*domain.Paciente, error)
	UpdateTxFn  func(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error
	DeleteTxFn  func(ctx context.Context, tx *postgres.Transaction, id int64) error
	FindByDniFn func(ctx context.Context, dni string) (*domain.Paciente, error)
}

func (m *mockPacienteRepository) Create(ctx context.Context, p *domain.Paciente) error {
	return m.CreateTxFn(ctx, nil, p)
}

func (m *mockPacienteRepository) CreateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
	return m.CreateTxFn(ctx, tx, p)
}

func (m *mockPacienteRepository) Read(ctx context.Context, id int64) (*domain.Paciente, error) {
	return m.ReadFn(ctx, id)
}

func (m *mockPacienteRepository) ReadTx(ctx context.Context, tx *postgres.Transaction, id int64) (*domain.Paciente, error) {
	return m.ReadFn(ctx, id)
}

func (m *mockPacienteRepository) ReadAll(ctx context.Context) ([]*domain.Paciente, error) {
	return m.ReadAllFn(ctx)
}

func (m *mockPacienteRepository) ReadAllTx(ctx context.Context, tx *postgres.Transaction) ([]*domain.Paciente, error) {
	return m.ReadAllFn(ctx)
}

func (m *mockPacienteRepository) Update(ctx context.Context, p *domain.Paciente) error {
	return m.UpdateTxFn(ctx, nil, p)
}

func (m *mockPacienteRepository) UpdateTx(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
	return m.UpdateTxFn(ctx, tx, p)
}

func (m *mockPacienteRepository) Delete(ctx context.Context, id int64) error {
	return m.DeleteTxFn(ctx, nil, id)
}

func (m *mockPacienteRepository) DeleteTx(ctx context.Context, tx *postgres.Transaction, id int64) error {
	return m.DeleteTxFn(ctx, tx, id)
}

func (m *mockPacienteRepository) FindByDni(ctx context.Context, dni string) (*domain.Paciente, error) {
	return m.FindByDniFn(ctx, dni)
}

func (m *mockPacienteRepository) FindByDniTx(ctx context.Context, tx *postgres.Transaction, dni string) (*domain.Paciente, error) {
	return m.FindByDniFn(ctx, dni)
}

type mockHistoriaService struct {
	InsertarConPacienteFn   func(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error
	ActualizarTxFn          func(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error
	EliminarPorPacienteIDFn func(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error
}

func (m *mockHistoriaService) Insertar(ctx context.Context, h *domain.HistoriaClinica) error {
	return domain.NewContractError("una Historia Clínica no puede crearse sin Paciente: use la variante con pacienteId")
}

func (m *mockHistoriaService) InsertarConPaciente(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error {
	return m.InsertarConPacienteFn(ctx, tx, h, pacienteID)
}

func (m *mockHistoriaService) Actualizar(ctx context.Context, h *domain.HistoriaClinica) error {
	return m.ActualizarTxFn(ctx, nil, h)
}

func (m *mockHistoriaService) ActualizarTx(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error {
	return m.ActualizarTxFn(ctx, tx, h)
}

func (m *mockHistoriaService) Eliminar(ctx context.Context, id int64) error {
	return nil
}

func (m *mockHistoriaService) EliminarPorPacienteID(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error {
	return m.EliminarPorPacienteIDFn(ctx, tx, pacienteID)
}

func (m *mockHistoriaService) GetByID(ctx context.Context, id int64) (*domain.HistoriaClinica, error) {
	return nil, nil
}

func (m *mockHistoriaService) GetAll(ctx context.Context) ([]*domain.HistoriaClinica, error) {
	return nil, nil
}
