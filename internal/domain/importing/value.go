package importing

import (
	"time"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

type FieldKind string

const (
	KindText   FieldKind = "text"
	KindDate   FieldKind = "date"
	KindNumber FieldKind = "number"
)

// Value is a normalized cell. The zero Value is an absent cell.
type Value struct {
	Kind   FieldKind        `json:"kind,omitempty"`
	Text   string           `json:"text,omitempty"`
	Date   *time.Time       `json:"date,omitempty"`
	Number *decimal.Decimal `json:"number,omitempty"`
}

func TextValue(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func DateValue(t time.Time) Value {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Value{Kind: KindDate, Date: &d}
}

func NumberValue(d decimal.Decimal) Value {
	return Value{Kind: KindNumber, Number: &d}
}

func (v Value) Present() bool {
	switch v.Kind {
	case KindText:
		return v.Text != ""
	case KindDate:
		return v.Date != nil
	case KindNumber:
		return v.Number != nil
	default:
		return false
	}
}

// String renders the value the way it is shown back in previews.
func (v Value) String() string {
	if !v.Present() {
		return ""
	}
	switch v.Kind {
	case KindDate:
		return v.Date.Format(DateLayout)
	case KindNumber:
		return v.Number.String()
	default:
		return v.Text
	}
}

// Arg converts the value into a database argument. Absent values map to NULL.
func (v Value) Arg() any {
	if !v.Present() {
		return nil
	}
	switch v.Kind {
	case KindDate:
		return *v.Date
	case KindNumber:
		return v.Number.String()
	default:
		return v.Text
	}
}
