package importing

import (
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxStoredFailures = 100
	maxDetailLen      = 1000
)

type ImportStatus string

const (
	StatusCompleted           ImportStatus = "completed"
	StatusCompletedWithErrors ImportStatus = "completed_with_errors"
	StatusFailed              ImportStatus = "failed"
)

type ImportFailure struct {
	RowIndex int    `json:"row_index"`
	Reason   string `json:"reason"`
}

type ImportSummary struct {
	ID             string          `json:"id"`
	Domain         string          `json:"domain"`
	FileName       string          `json:"file_name"`
	ActedBy        string          `json:"acted_by"`
	TotalRows      int             `json:"total_rows"`
	CreatedCount   int             `json:"created_count"`
	UpdatedCount   int             `json:"updated_count"`
	ErrorCount     int             `json:"error_count"`
	DuplicateCount int             `json:"duplicate_count"`
	Status         ImportStatus    `json:"status"`
	ErrorDetail    string          `json:"error_detail,omitempty"`
	Failures       []ImportFailure `json:"failures,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

func (s *ImportSummary) AddFailure(f ImportFailure) {
	if len(s.Failures) < MaxStoredFailures {
		s.Failures = append(s.Failures, f)
	}
}

// ResolveStatus derives the final status once counts are settled. A failed status is never downgraded.
func (s *ImportSummary) ResolveStatus() {
	if s.Status == StatusFailed {
		return
	}
	if s.ErrorCount > 0 {
		s.Status = StatusCompletedWithErrors
		return
	}
	s.Status = StatusCompleted
}

// TruncateDetail caps the detail at maxDetailLen bytes of valid UTF-8, cutting on a rune boundary.
func TruncateDetail(detail string) string {
	detail = strings.ToValidUTF8(strings.TrimSpace(detail), "\uFFFD")
	if len(detail) <= maxDetailLen {
		return detail
	}
	n := maxDetailLen
	for n > 0 && !utf8.RuneStart(detail[n]) {
		n--
	}
	return detail[:n]
}
