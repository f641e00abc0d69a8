package queries

// HistoriaQueries contiene todas las sentencias SQL de la entidad
// HistoriaClinica. La clave foránea paciente_id sólo aparece aquí: la
// entidad en memoria se alcanza a través de su Paciente propietario.
var HistoriaQueries = struct {
	CreateConPaciente  string
	Read               string
	ReadAll            string
	Update             string
	Delete             string
	DeleteByPacienteID string
}{
	CreateConPaciente: `
		INSERT INTO historia_clinica
			(eliminado, nro_historia, grupo_sanguineo, antecedentes,
			 medicacion_actual, observaciones, fecha_apertura, paciente_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,

	Read: `
		SELECT id, eliminado, nro_historia, grupo_sanguineo, antecedentes,
		       medicacion_actual, observaciones, fecha_apertura
		FROM historia_clinica
		WHERE id = $1
	`,

	ReadAll: `
		SELECT id, eliminado, nro_historia, grupo_sanguineo, antecedentes,
		       medicacion_actual, observaciones, fecha_apertura
		FROM historia_clinica
		WHERE eliminado = FALSE
		ORDER BY id DESC
	`,

	Update: `
		UPDATE historia_clinica
		SET eliminado = $1, nro_historia = $2, grupo_sanguineo = $3,
		    antecedentes = $4, medicacion_actual = $5, observaciones = $6,
		    fecha_apertura = $7
		WHERE id = $8
	`,

	Delete: `
		UPDATE historia_clinica SET eliminado = TRUE WHERE id = $1
	`,

	DeleteByPacienteID: `
		UPDATE historia_clinica SET eliminado = TRUE
		WHERE paciente_id = $1 AND eliminado = FALSE
	`,
}
