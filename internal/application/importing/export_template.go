package importing

import (
	"context"
	"fmt"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ExportTemplateInput struct {
	Domain string
}

type ExportTemplateOutput struct {
	FileName    string
	ContentType string
	Content     []byte
}

type ExportTemplate interface {
	Execute(ctx context.Context, in ExportTemplateInput) (ExportTemplateOutput, error)
}

type exportTemplate struct {
	registry *domain.Registry
}

func NewExportTemplate(registry *domain.Registry) ExportTemplate {
	return &exportTemplate{registry: registry}
}

func (uc *exportTemplate) Execute(ctx context.Context, in ExportTemplateInput) (ExportTemplateOutput, error) {
	_ = ctx

	schema, ok := uc.registry.Lookup(in.Domain)
	if !ok {
		return ExportTemplateOutput{}, ErrUnknownDomain
	}

	content, err := BuildTemplate(schema)
	if err != nil {
		return ExportTemplateOutput{}, fmt.Errorf("%w: %v", ErrExportTemplate, err)
	}

	return ExportTemplateOutput{
		FileName:    fmt.Sprintf("%s_template.xlsx", schema.Name),
		ContentType: XLSXContentType,
		Content:     content,
	}, nil
}
