package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStorageErrorTransaccional_RetieneLaCausa(t *testing.T) {
	causa := NewStorageError("historia.deleteByPacienteId", "No se encontró Historia Clínica activa para el paciente ID: 8", nil)

	err := NewStorageErrorTransaccional("eliminar", causa)

	assert.Contains(t, err.Error(), "Error transaccional al eliminar")
	assert.ErrorIs(t, err, causa)
}

func TestTiposDeError_SonDistinguibles(t *testing.T) {
	var (
		validation *ValidationError
		storage    *StorageError
		contract   *ContractError
		configErr  *ConfigurationError
	)

	assert.True(t, errors.As(NewValidationError("Nombre obligatorio."), &validation))
	assert.True(t, errors.As(NewStorageError("op", "fallo", nil), &storage))
	assert.True(t, errors.As(NewContractError("uso prohibido"), &contract))
	assert.True(t, errors.As(NewConfigurationError("falta db.properties", nil), &configErr))

	assert.False(t, errors.As(NewValidationError("x"), &storage))
	assert.False(t, errors.As(NewContractError("x"), &validation))
}
