package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinica-core/internal/domain"
)

// filaPaciente simula una fila del LEFT JOIN paciente/historia_clinica.
type filaPaciente struct {
	id        int64
	eliminado bool
	nombre    string
	apellido  string
	dni       string
	fechaNac  *time.Time

	hcID          *int64
	hcEliminado   *bool
	nroHistoria   *string
	grupo         *string
	antecedentes  *string
	medicacion    *string
	observaciones *string
	fechaApertura *time.Time
}

func (f *filaPaciente) Scan(dest ...interface{}) error {
	*dest[0].(*int64) = f.id
	*dest[1].(*bool) = f.eliminado
	*dest[2].(*string) = f.nombre
	*dest[3].(*string) = f.apellido
	*dest[4].(*string) = f.dni
	*dest[5].(**time.Time) = f.fechaNac
	*dest[6].(**int64) = f.hcID
	*dest[7].(**bool) = f.hcEliminado
	*dest[8].(**string) = f.nroHistoria
	*dest[9].(**string) = f.grupo
	*dest[10].(**string) = f.antecedentes
	*dest[11].(**string) = f.medicacion
	*dest[12].(**string) = f.observaciones
	*dest[13].(**time.Time) = f.fechaApertura
	return nil
}

func ptr[T any](v T) *T { return &v }

func TestScanPacienteEnriquecido_AdjuntaHistoriaActiva(t *testing.T) {
	apertura := time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local)
	fila := &filaPaciente{
		id: 7, nombre: "Ana", apellido: "Lopez", dni: "30111222",
		hcID:          ptr(int64(12)),
		hcEliminado:   ptr(false),
		nroHistoria:   ptr("HC-001"),
		grupo:         ptr("A+"),
		antecedentes:  ptr("asma"),
		fechaApertura: &apertura,
	}

	p, err := scanPacienteEnriquecido(fila)
	require.NoError(t, err)

	assert.Equal(t, int64(7), p.ID)
	require.NotNil(t, p.Historia)
	assert.Equal(t, int64(12), p.Historia.ID)
	assert.Equal(t, "HC-001", p.Historia.NroHistoria)
	require.NotNil(t, p.Historia.GrupoSanguineo)
	assert.Equal(t, domain.GrupoAPositivo, *p.Historia.GrupoSanguineo)
	assert.Equal(t, "asma", p.Historia.Antecedentes)
	assert.Equal(t, "", p.Historia.MedicacionActual)
	assert.Equal(t, apertura, *p.Historia.FechaApertura)
}

func TestScanPacienteEnriquecido_SinHistoriaQuedaNil(t *testing.T) {
	// Los invariantes prohíben un paciente sin historia activa, pero el
	// mapeo lo tolera devolviendo Historia nil.
	fila := &filaPaciente{id: 3, nombre: "Juan", apellido: "Perez", dni: "28000111"}

	p, err := scanPacienteEnriquecido(fila)
	require.NoError(t, err)

	assert.Equal(t, int64(3), p.ID)
	assert.Nil(t, p.Historia)
}

func TestScanPacienteEnriquecido_GrupoDesconocidoFalla(t *testing.T) {
	fila := &filaPaciente{
		id: 9, nombre: "Eva", apellido: "Gomez", dni: "31222333",
		hcID:        ptr(int64(4)),
		hcEliminado: ptr(false),
		nroHistoria: ptr("HC-009"),
		grupo:       ptr("Z+"),
	}

	_, err := scanPacienteEnriquecido(fila)

	var storageErr *domain.StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestScanPacienteEnriquecido_GrupoAusenteQuedaNil(t *testing.T) {
	fila := &filaPaciente{
		id: 5, nombre: "Mia", apellido: "Diaz", dni: "29555666",
		hcID:        ptr(int64(2)),
		hcEliminado: ptr(false),
		nroHistoria: ptr("HC-005"),
	}

	p, err := scanPacienteEnriquecido(fila)
	require.NoError(t, err)

	require.NotNil(t, p.Historia)
	assert.Nil(t, p.Historia.GrupoSanguineo)
}
