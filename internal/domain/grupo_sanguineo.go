package domain

// GrupoSanguineo es un enumerado cerrado cuyos ocho valores coinciden
// exactamente con la representación almacenada en la base de datos.
type GrupoSanguineo string

const (
	GrupoAPositivo  GrupoSanguineo = "A+"
	GrupoANegativo  GrupoSanguineo = "A-"
	GrupoBPositivo  GrupoSanguineo = "B+"
	GrupoBNegativo  GrupoSanguineo = "B-"
	GrupoABPositivo GrupoSanguineo = "AB+"
	GrupoABNegativo GrupoSanguineo = "AB-"
	GrupoOPositivo  GrupoSanguineo = "O+"
	GrupoONegativo  GrupoSanguineo = "O-"
)

// GruposSanguineos enumera los valores válidos en orden estable, para
// menús y validaciones.
var GruposSanguineos = []GrupoSanguineo{
	GrupoAPositivo, GrupoANegativo,
	GrupoBPositivo, GrupoBNegativo,
	GrupoABPositivo, GrupoABNegativo,
	GrupoOPositivo, GrupoONegativo,
}

// EsValido informa si g es uno de los ocho grupos conocidos.
func (g GrupoSanguineo) EsValido() bool {
	switch g {
	case GrupoAPositivo, GrupoANegativo,
		GrupoBPositivo, GrupoBNegativo,
		GrupoABPositivo, GrupoABNegativo,
		GrupoOPositivo, GrupoONegativo:
		return true
	}
	return false
}

// DB devuelve el token tal como se almacena en la columna grupo_sanguineo.
func (g GrupoSanguineo) DB() string {
	return string(g)
}

// GrupoSanguineoFromDB reconstruye el enumerado desde su token almacenado.
// La biyección es total para los ocho tokens conocidos; cualquier otro
// valor no nulo leído de la base de datos es un StorageError.
func GrupoSanguineoFromDB(token string) (GrupoSanguineo, error) {
	g := GrupoSanguineo(token)
	if !g.EsValido() {
		return "", NewStorageError("grupo_sanguineo", "token de grupo sanguíneo desconocido: "+token, nil)
	}
	return g, nil
}
