package domain

import "time"

// HistoriaClinica se alcanza siempre a través de su Paciente propietario.
// El atributo paciente_id existe sólo como columna en la base de datos.
type HistoriaClinica struct {
	Base

	NroHistoria      string
	GrupoSanguineo   *GrupoSanguineo
	Antecedentes     string
	MedicacionActual string
	Observaciones    string

	// FechaApertura la asigna el servicio al crear la historia.
	FechaApertura *time.Time
}
