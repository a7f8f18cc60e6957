package inspection

import (
	"strings"

	"github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const SchemaName = "inspections"

// EmployeeRegistrations resolves the inspector by employee registration number.
var EmployeeRegistrations = importing.Reference{Name: "employee_registrations", Table: "employees", Column: "matricula"}

func Schema() importing.Schema {
	return importing.Schema{
		Name:       SchemaName,
		Title:      "Inspecoes HSA",
		Table:      "hsa_inspections",
		NaturalKey: "numero_documento",
		Fields: []importing.Field{
			{Name: "numero_documento", Aliases: []string{"documento", "numero"}, Kind: importing.KindText, Required: true, MaxLength: 40, Transform: strings.ToUpper, Examples: []string{"INS-2024-001", "INS-2024-002", "INS-2024-003"}},
			{Name: "tipo", Kind: importing.KindText, Required: true, Enum: []string{"seguranca", "saude", "ambiental"}, Examples: []string{"seguranca", "saude", "ambiental"}},
			{Name: "local", Aliases: []string{"localizacao"}, Kind: importing.KindText, Required: true, MaxLength: 200, Examples: []string{"Hangar 2", "Oficina", "Patio de abastecimento"}},
			{Name: "data_inspecao", Aliases: []string{"data"}, Kind: importing.KindDate, Required: true, Examples: []string{"2024-03-10", "2024-03-11", "2024-03-12"}},
			{Name: "responsavel", Aliases: []string{"matricula responsavel"}, Kind: importing.KindText, Required: true, Reference: &EmployeeRegistrations, Examples: []string{"0001", "0002", "0001"}},
			{Name: "nota", Aliases: []string{"pontuacao"}, Kind: importing.KindNumber, Examples: []string{"8.5", "9", "7.25"}},
			{Name: "observacoes", Kind: importing.KindText, MaxLength: 2000, Examples: []string{"", "Extintor vencido", ""}},
		},
	}
}
