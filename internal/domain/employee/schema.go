package employee

import (
	"strings"

	"github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const SchemaName = "employees"

var CostCenters = importing.Reference{Name: "cost_centers", Table: "cost_centers", Column: "code"}

// Schema is the employee roster import layout. The header names double as the template header row.
func Schema() importing.Schema {
	return importing.Schema{
		Name:       SchemaName,
		Title:      "Funcionarios",
		Table:      "employees",
		NaturalKey: "cpf",
		Fields: []importing.Field{
			{Name: "nome", Aliases: []string{"name", "nome completo"}, Kind: importing.KindText, Required: true, MaxLength: 255, Examples: []string{"Ana Souza", "Bruno Lima"}},
			{Name: "funcao", Aliases: []string{"cargo"}, Kind: importing.KindText, Required: true, MaxLength: 120, Examples: []string{"Tecnico de Manutencao", "Engenheiro"}},
			{Name: "matricula", Aliases: []string{"registro"}, Kind: importing.KindText, Required: true, MaxLength: 30, Examples: []string{"0001", "0002"}},
			{Name: "cpf", Kind: importing.KindText, Required: true, Format: "cpf", Transform: NormalizeCPF, Examples: []string{"123.456.789-09", "987.654.321-00"}},
			{Name: "data_admissao", Aliases: []string{"admissao", "data de admissao"}, Kind: importing.KindDate, Examples: []string{"2024-01-15", "2023-06-01"}},
			{Name: "email", Aliases: []string{"e-mail"}, Kind: importing.KindText, MaxLength: 320, Format: "email", Transform: strings.ToLower, Examples: []string{"ana.souza@example.com", ""}},
			{Name: "status", Kind: importing.KindText, Enum: []string{"ativo", "inativo", "afastado"}, Examples: []string{"ativo", "afastado"}},
			{Name: "centro_custo", Aliases: []string{"centro de custo"}, Kind: importing.KindText, Reference: &CostCenters, Examples: []string{"CC-100", "CC-200"}},
			{Name: "salario", Kind: importing.KindNumber, Examples: []string{"3500.00", "7200.50"}},
		},
	}
}
