package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mohammadpnp/backoffice-import/internal/domain/employee"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/db/models"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/repository"
)

func TestRecordRepositoryIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set")
	}
	ctx := context.Background()

	pool, err := db.NewPool(ctx, dsn, db.DefaultPoolConfig())
	if err != nil {
		t.Fatalf("failed to create pgx pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(ctx, pool, filepath.Join("..", "..", "..", "migrations"), nil); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	gdb, err := db.OpenGorm(dsn)
	if err != nil {
		t.Fatalf("failed to connect db: %v", err)
	}
	cleanupSQL := `
    DELETE FROM employees;
    DELETE FROM cost_centers;
    `
	if err := gdb.Exec(cleanupSQL).Error; err != nil {
		t.Fatalf("failed cleanup: %v", err)
	}
	if err := gdb.Create(&models.CostCenter{Code: "CC-100", Name: "Manutencao"}).Error; err != nil {
		t.Fatalf("failed to seed cost center: %v", err)
	}

	schema := employee.Schema()
	repo := repository.NewRecordRepository(pool)

	admitted := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := []domain.CandidateRecord{
		{RowIndex: 1, Values: map[string]domain.Value{
			"nome":          domain.TextValue("Ana"),
			"funcao":        domain.TextValue("Tecnico"),
			"matricula":     domain.TextValue("001"),
			"cpf":           domain.TextValue("111.111.111-11"),
			"data_admissao": domain.DateValue(admitted),
			"centro_custo":  domain.TextValue("CC-100"),
			"salario":       domain.NumberValue(decimal.RequireFromString("3500.50")),
		}},
		{RowIndex: 2, Values: map[string]domain.Value{
			"nome":      domain.TextValue("Bia"),
			"funcao":    domain.TextValue("Eng"),
			"matricula": domain.TextValue("001"),
			"cpf":       domain.TextValue("222.222.222-22"),
		}},
	}

	result, err := repo.InsertBatch(ctx, schema, records)
	if err != nil {
		t.Fatalf("insert batch failed: %v", err)
	}
	if result.Succeeded != 1 || len(result.Failures) != 1 || result.Failures[0].RowIndex != 2 {
		t.Fatalf("expected row 2 to fail on matricula, got %+v", result)
	}

	existing, err := repo.FindExisting(ctx, schema, []string{"111.111.111-11", "222.222.222-22"})
	if err != nil {
		t.Fatalf("find existing failed: %v", err)
	}
	id, ok := existing["111.111.111-11"]
	if !ok || len(existing) != 1 {
		t.Fatalf("expected only row 1 to exist, got %v", existing)
	}

	update := domain.PendingUpdate{ExistingID: id, Record: domain.CandidateRecord{RowIndex: 5, Values: map[string]domain.Value{
		"nome":   domain.TextValue("Ana Souza"),
		"cpf":    domain.TextValue("111.111.111-11"),
		"status": domain.TextValue("afastado"),
	}}}
	result, err = repo.UpdateBatch(ctx, schema, []domain.PendingUpdate{update})
	if err != nil {
		t.Fatalf("update batch failed: %v", err)
	}
	if result.Succeeded != 1 {
		t.Fatalf("expected updated=1, got %+v", result)
	}

	emp, err := repository.NewEmployeeQueryRepository(gdb).GetByCPF(ctx, "111.111.111-11")
	if err != nil {
		t.Fatalf("get employee failed: %v", err)
	}
	if emp.Nome != "Ana Souza" || emp.Status != "afastado" {
		t.Fatalf("expected targeted update, got %+v", emp)
	}
	if emp.Funcao != "Tecnico" || emp.Salario != "3500.5" {
		t.Fatalf("expected untouched columns to survive, got %+v", emp)
	}

	codes, err := repository.NewReferenceRepository(gdb).ExistingCodes(ctx, employee.CostCenters, []string{"CC-100", "CC-999"})
	if err != nil {
		t.Fatalf("reference lookup failed: %v", err)
	}
	if len(codes) != 1 || codes[0] != "CC-100" {
		t.Fatalf("expected CC-100 only, got %v", codes)
	}
}
