package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Transaction envuelve una pgx.Tx abierta. Las operaciones participantes
// la reciben del invocador y nunca la confirman, revierten ni cierran.
type Transaction struct {
	tx     pgx.Tx
	closed bool
}

// TxFunc es el cuerpo de una transacción: dos o más pasos imperativos
// que comparten la misma sesión.
type TxFunc func(tx *Transaction) error

// TxRunner es el combinador de adquisición con alcance: commit si fn
// retorna nil, rollback ante cualquier error, liberación de la sesión en
// todo camino de salida.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn TxFunc) error
}

type TransactionManager struct {
	client *Client
}

var _ TxRunner = (*TransactionManager)(nil)

func NewTransactionManager(client *Client) *TransactionManager {
	return &TransactionManager{
		client: client,
	}
}

func (tm *TransactionManager) WithTransaction(ctx context.Context, fn TxFunc) error {
	// READ COMMITTED explícito: los invariantes del dominio no dependen
	// del valor por defecto del driver.
	return tm.WithTransactionIsolation(ctx, pgx.ReadCommitted, fn)
}

func (tm *TransactionManager) WithTransactionIsolation(ctx context.Context, isoLevel pgx.TxIsoLevel, fn TxFunc) error {
	if tm.client.pool == nil {
		return fmt.Errorf("database pool is nil")
	}

	conn, err := tm.client.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection for transaction: %w", err)
	}
	defer conn.Release()

	txOptions := pgx.TxOptions{}
	if isoLevel != "" {
		txOptions.IsoLevel = isoLevel
	}

	pgxTx, err := conn.BeginTx(ctx, txOptions)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	tx := &Transaction{
		tx:     pgxTx,
		closed: false,
	}

	// Rollback automático si fn o el commit fallan; no enmascara el
	// error original.
	defer func() {
		if !tx.closed {
			if rollbackErr := tx.Rollback(ctx); rollbackErr != nil {
				fmt.Printf("Warning: failed to rollback transaction: %v\n", rollbackErr)
			}
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (t *Transaction) Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error) {
	if t.closed {
		return nil, fmt.Errorf("transaction is closed")
	}
	return t.tx.Query(ctx, sql, args...)
}

func (t *Transaction) QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row {
	if t.closed {
		// El error aparece al hacer Scan.
		return &closedTxRow{err: fmt.Errorf("transaction is closed")}
	}
	return t.tx.QueryRow(ctx, sql, args...)
}

func (t *Transaction) Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error) {
	if t.closed {
		return pgconn.CommandTag{}, fmt.Errorf("transaction is closed")
	}
	return t.tx.Exec(ctx, sql, args...)
}

func (t *Transaction) Commit(ctx context.Context) error {
	if t.closed {
		return fmt.Errorf("transaction is already closed")
	}

	err := t.tx.Commit(ctx)
	t.closed = true
	return err
}

func (t *Transaction) Rollback(ctx context.Context) error {
	if t.closed {
		return nil
	}

	err := t.tx.Rollback(ctx)
	t.closed = true
	return err
}

func (t *Transaction) IsClosed() bool {
	return t.closed
}

type closedTxRow struct {
	err error
}

func (r *closedTxRow) Scan(dest ...interface{}) error {
	return r.err
}
