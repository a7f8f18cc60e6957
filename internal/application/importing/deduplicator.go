package importing

import (
	"sort"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

// Deduplicate keeps the first record per natural key in ascending row order and reports the rest.
// The input order does not matter.
func Deduplicate(schema domain.Schema, records []domain.CandidateRecord) ([]domain.CandidateRecord, []domain.Duplicate) {
	ordered := make([]domain.CandidateRecord, len(records))
	copy(ordered, records)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].RowIndex < ordered[j].RowIndex
	})

	firstSeen := make(map[string]int, len(ordered))
	unique := make([]domain.CandidateRecord, 0, len(ordered))
	var duplicates []domain.Duplicate
	for _, record := range ordered {
		key := record.Key(schema)
		if first, ok := firstSeen[key]; ok {
			duplicates = append(duplicates, domain.Duplicate{Record: record, FirstRowIndex: first})
			continue
		}
		firstSeen[key] = record.RowIndex
		unique = append(unique, record)
	}
	return unique, duplicates
}
