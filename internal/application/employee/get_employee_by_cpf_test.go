package employee_test

import (
	"context"
	"errors"
	"testing"
	"time"

	app "github.com/mohammadpnp/backoffice-import/internal/application/employee"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/employee"
)

type fakeEmployeeQueryRepo struct {
	employee  *domain.Employee
	returnErr error
	gotCPF    string
}

func (f *fakeEmployeeQueryRepo) GetByCPF(ctx context.Context, cpf string) (*domain.Employee, error) {
	f.gotCPF = cpf
	if f.returnErr != nil {
		return nil, f.returnErr
	}
	return f.employee, nil
}

func TestGetEmployeeByCPFSuccess(t *testing.T) {
	t.Parallel()

	admitted := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo := &fakeEmployeeQueryRepo{employee: &domain.Employee{
		ID:           "a3f91a91-7fdd-43bf-bfd2-00bc02f6c53e",
		Nome:         "Ana Souza",
		Funcao:       "Tecnico",
		Matricula:    "0001",
		CPF:          "123.456.789-01",
		DataAdmissao: &admitted,
		Status:       "ativo",
		Salario:      "4500.5",
	}}

	uc := app.NewGetEmployeeByCPF(repo)

	out, err := uc.Execute(context.Background(), app.GetEmployeeByCPFInput{CPF: "12345678901"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if repo.gotCPF != "123.456.789-01" {
		t.Fatalf("expected normalized cpf lookup, got %q", repo.gotCPF)
	}
	if out.DataAdmissao != "2024-01-01" {
		t.Fatalf("unexpected admission date: %s", out.DataAdmissao)
	}
	if out.Matricula != "0001" {
		t.Fatalf("unexpected matricula: %s", out.Matricula)
	}
}

func TestGetEmployeeByCPFInvalidCPF(t *testing.T) {
	t.Parallel()

	uc := app.NewGetEmployeeByCPF(&fakeEmployeeQueryRepo{})

	_, err := uc.Execute(context.Background(), app.GetEmployeeByCPFInput{CPF: "123"})
	if !errors.Is(err, app.ErrInvalidCPF) {
		t.Fatalf("expected ErrInvalidCPF, got %v", err)
	}
}

func TestGetEmployeeByCPFNotFound(t *testing.T) {
	t.Parallel()

	uc := app.NewGetEmployeeByCPF(&fakeEmployeeQueryRepo{returnErr: domain.ErrEmployeeNotFound})

	_, err := uc.Execute(context.Background(), app.GetEmployeeByCPFInput{CPF: "123.456.789-01"})
	if !errors.Is(err, app.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestGetEmployeeByCPFRepositoryError(t *testing.T) {
	t.Parallel()

	uc := app.NewGetEmployeeByCPF(&fakeEmployeeQueryRepo{returnErr: errors.New("db down")})

	_, err := uc.Execute(context.Background(), app.GetEmployeeByCPFInput{CPF: "123.456.789-01"})
	if !errors.Is(err, app.ErrGetEmployeeByCPF) {
		t.Fatalf("expected ErrGetEmployeeByCPF, got %v", err)
	}
}
