package domain

import (
	"strings"
	"time"
)

// Paciente es el propietario de la relación 1:1 unidireccional con
// HistoriaClinica. La clave foránea vive únicamente en la base de datos;
// en memoria el modelo es un árbol, nunca un ciclo.
type Paciente struct {
	Base

	Nombre          string
	Apellido        string
	Dni             string
	FechaNacimiento *time.Time

	// Historia es la historia clínica asociada. Un Paciente sin historia
	// no es un estado de dominio válido para operaciones de escritura.
	Historia *HistoriaClinica
}

// NombreCompleto devuelve "Apellido, Nombre" para listados.
func (p *Paciente) NombreCompleto() string {
	return strings.TrimSpace(p.Apellido + ", " + p.Nombre)
}
