package queries

// PacienteQueries contiene todas las sentencias SQL de la entidad Paciente.
// Las lecturas enriquecen al paciente con su historia clínica activa en un
// único LEFT JOIN; las columnas de la historia viajan bajo alias hc_*.
var PacienteQueries = struct {
	Create    string
	Read      string
	ReadAll   string
	Update    string
	Delete    string
	FindByDni string
}{
	Create: `
		INSERT INTO paciente (eliminado, nombre, apellido, dni, fecha_nacimiento)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`,

	Read: `
		SELECT p.id, p.eliminado, p.nombre, p.apellido, p.dni, p.fecha_nacimiento,
		       hc.id AS hc_id, hc.eliminado AS hc_eliminado, hc.nro_historia,
		       hc.grupo_sanguineo, hc.antecedentes, hc.medicacion_actual,
		       hc.observaciones, hc.fecha_apertura
		FROM paciente p
		LEFT JOIN historia_clinica hc ON p.id = hc.paciente_id AND hc.eliminado = FALSE
		WHERE p.id = $1 AND p.eliminado = FALSE
	`,

	ReadAll: `
		SELECT p.id, p.eliminado, p.nombre, p.apellido, p.dni, p.fecha_nacimiento,
		       hc.id AS hc_id, hc.eliminado AS hc_eliminado, hc.nro_historia,
		       hc.grupo_sanguineo, hc.antecedentes, hc.medicacion_actual,
		       hc.observaciones, hc.fecha_apertura
		FROM paciente p
		LEFT JOIN historia_clinica hc ON p.id = hc.paciente_id AND hc.eliminado = FALSE
		WHERE p.eliminado = FALSE
		ORDER BY p.id DESC
	`,

	Update: `
		UPDATE paciente
		SET eliminado = $1, nombre = $2, apellido = $3, dni = $4, fecha_nacimiento = $5
		WHERE id = $6
	`,

	Delete: `
		UPDATE paciente SET eliminado = TRUE WHERE id = $1
	`,

	FindByDni: `
		SELECT p.id, p.eliminado, p.nombre, p.apellido, p.dni, p.fecha_nacimiento,
		       hc.id AS hc_id, hc.eliminado AS hc_eliminado, hc.nro_historia,
		       hc.grupo_sanguineo, hc.antecedentes, hc.medicacion_actual,
		       hc.observaciones, hc.fecha_apertura
		FROM paciente p
		LEFT JOIN historia_clinica hc ON p.id = hc.paciente_id AND hc.eliminado = FALSE
		WHERE p.dni = $1 AND p.eliminado = FALSE
	`,
}
