package domain

import "fmt"

// Los cuatro tipos de error del sistema. Ninguna capa se recupera
// localmente: todo error burbujea hasta el invocador del servicio.

// ValidationError señala una regla de dominio violada antes de cualquier
// acceso a la base de datos.
type ValidationError struct {
	Mensaje string
}

func (e *ValidationError) Error() string {
	return e.Mensaje
}

// NewValidationError construye un ValidationError con el mensaje dado.
func NewValidationError(mensaje string) *ValidationError {
	return &ValidationError{Mensaje: mensaje}
}

// StorageError envuelve cualquier fallo reportado por la capa de datos:
// conexión, SQL, violación de clave única o fila ausente donde se
// requería una.
type StorageError struct {
	Op      string
	Mensaje string
	Err     error
}

func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Mensaje, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Mensaje)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError construye un StorageError; err puede ser nil cuando el
// fallo se detecta en la propia capa de datos (ej. cero filas afectadas).
func NewStorageError(op, mensaje string, err error) *StorageError {
	return &StorageError{Op: op, Mensaje: mensaje, Err: err}
}

// NewStorageErrorTransaccional identifica el fallo como transaccional y
// retiene la causa original para diagnóstico.
func NewStorageErrorTransaccional(op string, err error) *StorageError {
	return &StorageError{
		Op:      op,
		Mensaje: fmt.Sprintf("Error transaccional al %s", op),
		Err:     err,
	}
}

// ConfigurationError indica que db.properties no pudo localizarse o
// leerse; es fatal para cualquier operación.
type ConfigurationError struct {
	Mensaje string
	Err     error
}

func (e *ConfigurationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Mensaje, e.Err)
	}
	return e.Mensaje
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError construye un ConfigurationError.
func NewConfigurationError(mensaje string, err error) *ConfigurationError {
	return &ConfigurationError{Mensaje: mensaje, Err: err}
}

// ContractError señala un uso prohibido de la API, como intentar crear
// una historia clínica sin paciente propietario.
type ContractError struct {
	Mensaje string
}

func (e *ContractError) Error() string {
	return e.Mensaje
}

// NewContractError construye un ContractError.
func NewContractError(mensaje string) *ContractError {
	return &ContractError{Mensaje: mensaje}
}
