package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

// RecordRepository stores imported records of any registered schema. Target tables are expected to have
// an id column and an updated_at column.
type RecordRepository struct {
	pool *pgxpool.Pool
}

func NewRecordRepository(pool *pgxpool.Pool) *RecordRepository {
	return &RecordRepository{pool: pool}
}

func (r *RecordRepository) FindExisting(ctx context.Context, schema domain.Schema, keys []string) (map[string]string, error) {
	existing := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return existing, nil
	}

	rows, err := r.pool.Query(ctx, existenceQuery(schema), keys)
	if err != nil {
		return nil, fmt.Errorf("query existing %s: %w", schema.Table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, key string
		if err := rows.Scan(&id, &key); err != nil {
			return nil, fmt.Errorf("scan existing %s: %w", schema.Table, err)
		}
		existing[key] = id
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate existing %s: %w", schema.Table, err)
	}
	return existing, nil
}

func (r *RecordRepository) InsertBatch(ctx context.Context, schema domain.Schema, records []domain.CandidateRecord) (domain.BatchResult, error) {
	statements := make([]rowStatement, 0, len(records))
	for _, record := range records {
		sql, args := insertStatement(schema, record)
		statements = append(statements, rowStatement{rowIndex: record.RowIndex, sql: sql, args: args})
	}
	return r.execRows(ctx, statements)
}

func (r *RecordRepository) UpdateBatch(ctx context.Context, schema domain.Schema, updates []domain.PendingUpdate) (domain.BatchResult, error) {
	statements := make([]rowStatement, 0, len(updates))
	for _, update := range updates {
		sql, args := updateStatement(schema, update)
		statements = append(statements, rowStatement{rowIndex: update.Record.RowIndex, sql: sql, args: args})
	}
	return r.execRows(ctx, statements)
}

type rowStatement struct {
	rowIndex int
	sql      string
	args     []any
}

// execRows runs every statement inside one transaction, each under its own savepoint, so a rejected
// row only rolls back itself.
func (r *RecordRepository) execRows(ctx context.Context, statements []rowStatement) (domain.BatchResult, error) {
	if len(statements) == 0 {
		return domain.BatchResult{}, nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return domain.BatchResult{}, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result := domain.BatchResult{}
	for _, stmt := range statements {
		savepoint, err := tx.Begin(ctx)
		if err != nil {
			return domain.BatchResult{}, fmt.Errorf("begin savepoint: %w", err)
		}

		tag, err := savepoint.Exec(ctx, stmt.sql, stmt.args...)
		if err == nil && tag.RowsAffected() == 0 {
			err = errors.New("no rows affected")
		}
		if err != nil {
			if rbErr := savepoint.Rollback(ctx); rbErr != nil {
				return domain.BatchResult{}, fmt.Errorf("rollback savepoint: %w", rbErr)
			}
			result.Failures = append(result.Failures, domain.ImportFailure{RowIndex: stmt.rowIndex, Reason: rowFailureReason(err)})
			continue
		}

		if err := savepoint.Commit(ctx); err != nil {
			return domain.BatchResult{}, fmt.Errorf("release savepoint: %w", err)
		}
		result.Succeeded++
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.BatchResult{}, fmt.Errorf("commit batch: %w", err)
	}
	return result, nil
}

func existenceQuery(schema domain.Schema) string {
	key := pgx.Identifier{schema.KeyField().ColumnName()}.Sanitize()
	return fmt.Sprintf(
		"SELECT id::text, %s FROM %s WHERE %s = ANY($1)",
		key, pgx.Identifier{schema.Table}.Sanitize(), key,
	)
}

// insertStatement only names the columns the row carries, so table defaults apply to the rest.
func insertStatement(schema domain.Schema, record domain.CandidateRecord) (string, []any) {
	columns := make([]string, 0, len(schema.Fields))
	placeholders := make([]string, 0, len(schema.Fields))
	args := make([]any, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		v := record.Value(f.Name)
		if !v.Present() {
			continue
		}
		args = append(args, v.Arg())
		columns = append(columns, pgx.Identifier{f.ColumnName()}.Sanitize())
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}

	return fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		pgx.Identifier{schema.Table}.Sanitize(),
		strings.Join(columns, ", "),
		strings.Join(placeholders, ", "),
	), args
}

// updateStatement sets only the columns present in the row. Blank optional cells leave stored values alone.
func updateStatement(schema domain.Schema, update domain.PendingUpdate) (string, []any) {
	assignments := make([]string, 0, len(schema.Fields)+1)
	args := make([]any, 0, len(schema.Fields)+1)
	for _, f := range schema.Fields {
		if f.Name == schema.NaturalKey {
			continue
		}
		v := update.Record.Value(f.Name)
		if !v.Present() {
			continue
		}
		args = append(args, v.Arg())
		assignments = append(assignments, fmt.Sprintf("%s = $%d", pgx.Identifier{f.ColumnName()}.Sanitize(), len(args)))
	}
	assignments = append(assignments, `"updated_at" = NOW()`)
	args = append(args, update.ExistingID)

	return fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d",
		pgx.Identifier{schema.Table}.Sanitize(),
		strings.Join(assignments, ", "),
		len(args),
	), args
}

func rowFailureReason(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Detail != "" {
			return pgErr.Message + ": " + pgErr.Detail
		}
		return pgErr.Message
	}
	return err.Error()
}
