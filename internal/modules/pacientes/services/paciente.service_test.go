package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"clinica-core/internal/domain"
	"clinica-core/internal/infrastructure/database/postgres"
)

func pacienteValido() *domain.Paciente {
	g := domain.GrupoOPositivo
	return &domain.Paciente{
		Nombre:   "Ana",
		Apellido: "Lopez",
		Dni:      "30111222",
		Historia: &domain.HistoriaClinica{
			NroHistoria:    "HC-100",
			GrupoSanguineo: &g,
		},
	}
}

func TestInsertar_EncadenaPacienteEHistoria(t *testing.T) {
	var fkRecibida int64
	repo := &mockPacienteRepository{
		CreateTxFn: func(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
			p.ID = 42
			return nil
		},
	}
	historias := &mockHistoriaService{
		InsertarConPacienteFn: func(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error {
			fkRecibida = pacienteID
			h.ID = 77
			return nil
		},
	}
	runner := &fakeTxRunner{}
	svc := NewPacienteService(repo, historias, runner, zap.NewNop())

	p, err := svc.Insertar(context.Background(), pacienteValido())
	require.NoError(t, err)

	assert.Equal(t, 1, runner.calls)
	assert.Equal(t, int64(42), p.ID)
	assert.Equal(t, int64(42), fkRecibida)
	assert.Equal(t, int64(77), p.Historia.ID)
}

func TestInsertar_SinHistoriaNoAbreTransaccion(t *testing.T) {
	runner := &fakeTxRunner{}
	svc := NewPacienteService(&mockPacienteRepository{}, &mockHistoriaService{}, runner, zap.NewNop())

	p := pacienteValido()
	p.Historia = nil

	_, err := svc.Insertar(context.Background(), p)

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Contains(t, err.Error(), "Historia clínica obligatoria")
	assert.Equal(t, 0, runner.calls)
}

func TestInsertar_CamposObligatorios(t *testing.T) {
	svc := NewPacienteService(&mockPacienteRepository{}, &mockHistoriaService{}, &fakeTxRunner{}, zap.NewNop())

	casos := map[string]func(p *domain.Paciente){
		"Nombre obligatorio.":   func(p *domain.Paciente) { p.Nombre = "  " },
		"Apellido obligatorio.": func(p *domain.Paciente) { p.Apellido = "" },
		"DNI obligatorio.":      func(p *domain.Paciente) { p.Dni = "" },
	}
	for mensaje, romper := range casos {
		p := pacienteValido()
		romper(p)

		_, err := svc.Insertar(context.Background(), p)

		var validationErr *domain.ValidationError
		require.ErrorAs(t, err, &validationErr, mensaje)
		assert.Equal(t, mensaje, validationErr.Error())
	}
}

func TestInsertar_FalloDeLaHistoriaEnvuelveYRevierte(t *testing.T) {
	causa := errors.New("unique_violation")
	repo := &mockPacienteRepository{
		CreateTxFn: func(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
			p.ID = 42
			return nil
		},
	}
	historias := &mockHistoriaService{
		InsertarConPacienteFn: func(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica, pacienteID int64) error {
			return causa
		},
	}
	svc := NewPacienteService(repo, historias, &fakeTxRunner{}, zap.NewNop())

	_, err := svc.Insertar(context.Background(), pacienteValido())

	var storageErr *domain.StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Contains(t, err.Error(), "Error transaccional al insertar")
	assert.ErrorIs(t, err, causa)
}

func TestActualizar_RequiereID(t *testing.T) {
	runner := &fakeTxRunner{}
	svc := NewPacienteService(&mockPacienteRepository{}, &mockHistoriaService{}, runner, zap.NewNop())

	err := svc.Actualizar(context.Background(), pacienteValido())

	var validationErr *domain.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Id requerido.", validationErr.Error())
	assert.Equal(t, 0, runner.calls)
}

func TestActualizar_PersisteAmbosEnUnaTransaccion(t *testing.T) {
	pacienteActualizado := false
	historiaActualizada := false
	repo := &mockPacienteRepository{
		UpdateTxFn: func(ctx context.Context, tx *postgres.Transaction, p *domain.Paciente) error {
			pacienteActualizado = true
			return nil
		},
	}
	historias := &mockHistoriaService{
		ActualizarTxFn: func(ctx context.Context, tx *postgres.Transaction, h *domain.HistoriaClinica) error {
			historiaActualizada = true
			return nil
		},
	}
	runner := &fakeTxRunner{}
	svc := NewPacienteService(repo, historias, runner, zap.NewNop())

	p := pacienteValido()
	p.ID = 6
	p.Historia.ID = 13

	require.NoError(t, svc.Actualizar(context.Background(), p))
	assert.Equal(t, 1, runner.calls)
	assert.True(t, pacienteActualizado)
	assert.True(t, historiaActualizada)
}

func TestEliminar_LaHistoriaVaPrimero(t *testing.T) {
	var orden []string
	repo := &mockPacienteRepository{
		DeleteTxFn: func(ctx context.Context, tx *postgres.Transaction, id int64) error {
			orden = append(orden, "paciente")
			return nil
		},
	}
	historias := &mockHistoriaService{
		EliminarPorPacienteIDFn: func(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error {
			orden = append(orden, "historia")
			return nil
		},
	}
	svc := NewPacienteService(repo, historias, &fakeTxRunner{}, zap.NewNop())

	require.NoError(t, svc.Eliminar(context.Background(), 8))
	assert.Equal(t, []string{"historia", "paciente"}, orden)
}

func TestEliminar_SinHistoriaActivaNoTocaAlPaciente(t *testing.T) {
	pacienteBorrado := false
	repo := &mockPacienteRepository{
		DeleteTxFn: func(ctx context.Context, tx *postgres.Transaction, id int64) error {
			pacienteBorrado = true
			return nil
		},
	}
	fallo := domain.NewStorageError("historia.deleteByPacienteId",
		"Error de integridad: No se encontró Historia Clínica activa para el paciente ID: 8", nil)
	historias := &mockHistoriaService{
		EliminarPorPacienteIDFn: func(ctx context.Context, tx *postgres.Transaction, pacienteID int64) error {
			return fallo
		},
	}
	svc := NewPacienteService(repo, historias, &fakeTxRunner{}, zap.NewNop())

	err := svc.Eliminar(context.Background(), 8)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Error transaccional al eliminar")
	assert.ErrorIs(t, err, fallo)
	assert.False(t, pacienteBorrado)
}

func TestEliminar_IDInvalido(t *testing.T) {
	runner := &fakeTxRunner{}
	svc := NewPacienteService(&mockPacienteRepository{}, &mockHistoriaService{}, runner, zap.NewNop())

	var validationErr *domain.ValidationError
	assert.ErrorAs(t, svc.Eliminar(context.Background(), 0), &validationErr)
	assert.ErrorAs(t, svc.Eliminar(context.Background(), -1), &validationErr)
	assert.Equal(t, 0, runner.calls)
}

func TestGetByID_DelegaEnElRepositorio(t *testing.T) {
	repo := &mockPacienteRepository{
		ReadFn: func(ctx context.Context, id int64) (*domain.Paciente, error) {
			if id != 3 {
				return nil, nil
			}
			p := pacienteValido()
			p.ID = 3
			return p, nil
		},
	}
	svc := NewPacienteService(repo, &mockHistoriaService{}, &fakeTxRunner{}, zap.NewNop())

	p, err := svc.GetByID(context.Background(), 3)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(3), p.ID)

	ausente, err := svc.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, ausente)
}

func TestFindByDni_Delega(t *testing.T) {
	repo := &mockPacienteRepository{
		FindByDniFn: func(ctx context.Context, dni string) (*domain.Paciente, error) {
			p := pacienteValido()
			p.ID = 5
			return p, nil
		},
	}
	svc := NewPacienteService(repo, &mockHistoriaService{}, &fakeTxRunner{}, zap.NewNop())

	p, err := svc.FindByDni(context.Background(), "30111222")
	require.NoError(t, err)
	assert.Equal(t, int64(5), p.ID)
}
