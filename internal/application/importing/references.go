package importing

import (
	"context"
	"fmt"
	"sort"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

// ReferenceSnapshot is the read-only set of known codes per reference, fetched once per import session.
type ReferenceSnapshot map[string]map[string]struct{}

func (s ReferenceSnapshot) Has(ref string, code string) bool {
	codes, ok := s[ref]
	if !ok {
		return false
	}
	_, ok = codes[code]
	return ok
}

// LoadReferences issues one lookup per reference set, covering every distinct code used in the file.
func LoadReferences(ctx context.Context, schema domain.Schema, records []domain.CandidateRecord, lookup domain.ReferenceLookup) (ReferenceSnapshot, error) {
	snapshot := make(ReferenceSnapshot)

	wanted := make(map[string]map[string]struct{})
	refs := make(map[string]domain.Reference)
	for _, f := range schema.Fields {
		if f.Reference == nil {
			continue
		}
		refs[f.Reference.Name] = *f.Reference
		if _, ok := wanted[f.Reference.Name]; !ok {
			wanted[f.Reference.Name] = make(map[string]struct{})
		}
		for _, record := range records {
			if v := record.Value(f.Name); v.Present() {
				wanted[f.Reference.Name][v.Text] = struct{}{}
			}
		}
	}

	for _, ref := range schema.References() {
		snapshot[ref.Name] = make(map[string]struct{})

		codes := make([]string, 0, len(wanted[ref.Name]))
		for code := range wanted[ref.Name] {
			codes = append(codes, code)
		}
		if len(codes) == 0 {
			continue
		}
		sort.Strings(codes)

		found, err := lookup.ExistingCodes(ctx, refs[ref.Name], codes)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrReferenceLookup, ref.Name, err)
		}
		for _, code := range found {
			snapshot[ref.Name][code] = struct{}{}
		}
	}

	return snapshot, nil
}
