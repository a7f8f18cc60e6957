package echo

import e "github.com/labstack/echo/v4"

func RegisterRoutes(server *e.Echo, importHandler *ImportHandler, employeeHandler *EmployeeHandler) {
	imports := server.Group("/api/v1/imports")
	imports.GET("/logs", importHandler.Logs)
	imports.POST("/sessions/:id/commit", importHandler.Commit)
	imports.DELETE("/sessions/:id", importHandler.Cancel)
	imports.POST("/:domain/preview", importHandler.Preview)
	imports.GET("/:domain/template", importHandler.Template)

	server.GET("/api/v1/employees/:cpf", employeeHandler.GetByCPF)
}
