package echo_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	empapp "github.com/mohammadpnp/backoffice-import/internal/application/employee"
	httpecho "github.com/mohammadpnp/backoffice-import/internal/interfaces/http/echo"
)

func TestGetEmployeeByCPFHandlerSuccess(t *testing.T) {
	t.Parallel()

	e := newServer(httpecho.ImportUseCases{}, &fakeGetEmployeeUseCase{out: empapp.GetEmployeeByCPFOutput{
		ID:        "emp-1",
		Nome:      "Ana",
		Matricula: "001",
		CPF:       "111.111.111-11",
		Status:    "ativo",
	}}, 1024)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/11111111111", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data, ok := decodeBody(t, rec)["data"].(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload: %s", rec.Body.String())
	}
	if data["cpf"] != "111.111.111-11" {
		t.Fatalf("unexpected cpf: %#v", data["cpf"])
	}
}

func TestGetEmployeeByCPFHandlerErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		err    error
		status int
	}{
		{empapp.ErrInvalidCPF, http.StatusBadRequest},
		{empapp.ErrEmployeeNotFound, http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		e := newServer(httpecho.ImportUseCases{}, &fakeGetEmployeeUseCase{err: tc.err}, 1024)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/123", nil))

		if rec.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, rec.Code)
		}
	}
}
