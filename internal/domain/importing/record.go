package importing

// RawRow is one non-blank data row keyed by the header text found in the file.
type RawRow struct {
	Index int
	Cells map[string]string
}

type CandidateRecord struct {
	RowIndex int              `json:"row_index"`
	Values   map[string]Value `json:"values"`
	// Raw keeps the trimmed source text per field so parse failures can be reported.
	Raw map[string]string `json:"raw,omitempty"`
}

func (r CandidateRecord) Value(field string) Value {
	return r.Values[field]
}

func (r CandidateRecord) Key(schema Schema) string {
	return r.Values[schema.NaturalKey].Text
}

type ValidationOutcome struct {
	Record CandidateRecord
	Errors []string
}

func (o ValidationOutcome) Valid() bool {
	return len(o.Errors) == 0
}

type Classification string

const (
	ClassNew       Classification = "new"
	ClassUpdate    Classification = "update"
	ClassDuplicate Classification = "duplicate"
	ClassInvalid   Classification = "invalid"
)

type PendingUpdate struct {
	Record     CandidateRecord `json:"record"`
	ExistingID string          `json:"existing_id"`
}

type Duplicate struct {
	Record        CandidateRecord `json:"record"`
	FirstRowIndex int             `json:"first_row_index"`
}

type RowResult struct {
	RowIndex      int               `json:"row_index"`
	Class         Classification    `json:"class"`
	Key           string            `json:"key,omitempty"`
	Errors        []string          `json:"errors,omitempty"`
	ExistingID    string            `json:"existing_id,omitempty"`
	FirstRowIndex int               `json:"first_row_index,omitempty"`
	Values        map[string]string `json:"values,omitempty"`
}
