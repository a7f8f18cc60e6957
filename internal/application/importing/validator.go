package importing

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

// FormatFunc checks a custom format tag, e.g. "cpf".
type FormatFunc func(string) bool

type Validator struct {
	validate *validator.Validate
}

func NewValidator(formats map[string]FormatFunc) (*Validator, error) {
	v := validator.New()
	for tag, fn := range formats {
		check := fn
		if err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return nil, fmt.Errorf("register format %q: %w", tag, err)
		}
	}
	return &Validator{validate: v}, nil
}

// Validate applies every field rule to every record and collects all violations. It holds no state
// between calls.
func (v *Validator) Validate(schema domain.Schema, records []domain.CandidateRecord, refs ReferenceSnapshot) []domain.ValidationOutcome {
	outcomes := make([]domain.ValidationOutcome, 0, len(records))
	for _, record := range records {
		outcomes = append(outcomes, domain.ValidationOutcome{
			Record: record,
			Errors: v.validateRecord(schema, record, refs),
		})
	}
	return outcomes
}

func (v *Validator) validateRecord(schema domain.Schema, record domain.CandidateRecord, refs ReferenceSnapshot) []string {
	var errs []string
	for _, f := range schema.Fields {
		value := record.Value(f.Name)
		raw := record.Raw[f.Name]

		if !value.Present() {
			switch {
			case raw != "" && f.Kind == domain.KindDate:
				errs = append(errs, fmt.Sprintf("%s: invalid date %q", f.Name, raw))
			case raw != "" && f.Kind == domain.KindNumber:
				errs = append(errs, fmt.Sprintf("%s: invalid number %q", f.Name, raw))
			case f.Required:
				errs = append(errs, fmt.Sprintf("%s is required", f.Name))
			}
			continue
		}

		if f.Kind != domain.KindText {
			continue
		}
		text := value.Text

		if f.MaxLength > 0 {
			if err := v.validate.Var(text, fmt.Sprintf("max=%d", f.MaxLength)); err != nil {
				errs = append(errs, fmt.Sprintf("%s must be at most %d characters (got %d)", f.Name, f.MaxLength, utf8.RuneCountInString(text)))
			}
		}
		if len(f.Enum) > 0 {
			if _, ok := f.EnumValue(text); !ok {
				errs = append(errs, fmt.Sprintf("%s must be one of: %s", f.Name, strings.Join(f.Enum, ", ")))
			}
		}
		if f.Format != "" {
			if err := v.validate.Var(text, f.Format); err != nil {
				errs = append(errs, fmt.Sprintf("%s: invalid %s %q", f.Name, f.Format, text))
			}
		}
		if f.Reference != nil && !refs.Has(f.Reference.Name, text) {
			errs = append(errs, fmt.Sprintf("%s: unknown %s %q", f.Name, f.Reference.Name, text))
		}
	}
	return errs
}
