package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Executor es la superficie común de Client y Transaction. Los
// repositorios escriben cada sentencia una sola vez y la ejecutan tanto
// en su variante autogestionada (sesión propia, auto-commit) como en la
// variante participante (sesión provista por el invocador).
type Executor interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

var (
	_ Executor = (*Client)(nil)
	_ Executor = (*Transaction)(nil)
)
