package domain

// Base agrupa los atributos comunes a toda entidad persistida: el
// identificador generado por la base de datos y la marca de baja lógica.
type Base struct {
	ID        int64
	Eliminado bool
}

// TieneID indica si la entidad ya fue persistida.
func (b *Base) TieneID() bool {
	return b.ID > 0
}
