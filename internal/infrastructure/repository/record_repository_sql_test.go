package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/mohammadpnp/backoffice-import/internal/domain/employee"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

func employeeRecord() domain.CandidateRecord {
	return domain.CandidateRecord{
		RowIndex: 4,
		Values: map[string]domain.Value{
			"nome":          domain.TextValue("Ana"),
			"funcao":        domain.TextValue("Tecnico"),
			"matricula":     domain.TextValue("001"),
			"cpf":           domain.TextValue("111.111.111-11"),
			"data_admissao": domain.DateValue(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
			"salario":       domain.NumberValue(decimal.RequireFromString("3500.5")),
		},
	}
}

func TestExistenceQuery(t *testing.T) {
	t.Parallel()

	require.Equal(t,
		`SELECT id::text, "cpf" FROM "employees" WHERE "cpf" = ANY($1)`,
		existenceQuery(employee.Schema()),
	)
}

func TestInsertStatementSkipsAbsentColumns(t *testing.T) {
	t.Parallel()

	sql, args := insertStatement(employee.Schema(), employeeRecord())

	require.Equal(t,
		`INSERT INTO "employees" ("nome", "funcao", "matricula", "cpf", "data_admissao", "salario") VALUES ($1, $2, $3, $4, $5, $6)`,
		sql,
	)
	require.Equal(t, []any{"Ana", "Tecnico", "001", "111.111.111-11", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "3500.5"}, args)
}

func TestUpdateStatementTargetsPresentColumns(t *testing.T) {
	t.Parallel()

	record := employeeRecord()
	delete(record.Values, "data_admissao")
	delete(record.Values, "salario")

	sql, args := updateStatement(employee.Schema(), domain.PendingUpdate{Record: record, ExistingID: "emp-1"})

	require.Equal(t,
		`UPDATE "employees" SET "nome" = $1, "funcao" = $2, "matricula" = $3, "updated_at" = NOW() WHERE id = $4`,
		sql,
	)
	require.Equal(t, []any{"Ana", "Tecnico", "001", "emp-1"}, args)
}

func TestRowFailureReason(t *testing.T) {
	t.Parallel()

	pgErr := &pgconn.PgError{
		Message: `duplicate key value violates unique constraint "employees_matricula_key"`,
		Detail:  "Key (matricula)=(001) already exists.",
	}
	require.Equal(t,
		`duplicate key value violates unique constraint "employees_matricula_key": Key (matricula)=(001) already exists.`,
		rowFailureReason(pgErr),
	)
	require.Equal(t, "boom", rowFailureReason(errors.New("boom")))
}
