package echo

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	app "github.com/mohammadpnp/backoffice-import/internal/application/employee"
)

type EmployeeHandler struct {
	useCase app.GetEmployeeByCPF
}

func NewEmployeeHandler(useCase app.GetEmployeeByCPF) *EmployeeHandler {
	return &EmployeeHandler{useCase: useCase}
}

func (h *EmployeeHandler) GetByCPF(c echo.Context) error {
	out, err := h.useCase.Execute(c.Request().Context(), app.GetEmployeeByCPFInput{
		CPF: c.Param("cpf"),
	})
	if err != nil {
		if errors.Is(err, app.ErrInvalidCPF) {
			return c.JSON(http.StatusBadRequest, apiResponse{Error: &errorBody{
				Code:    "invalid_cpf",
				Message: "cpf must have 11 digits",
			}})
		}
		if errors.Is(err, app.ErrEmployeeNotFound) {
			return c.JSON(http.StatusNotFound, apiResponse{Error: &errorBody{
				Code:    "not_found",
				Message: "employee not found",
			}})
		}

		return c.JSON(http.StatusInternalServerError, apiResponse{Error: &errorBody{
			Code:    "internal_error",
			Message: "failed to get employee",
		}})
	}

	return c.JSON(http.StatusOK, apiResponse{Data: out})
}
