package importing

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

const (
	defaultLogLimit = 50
	maxLogLimit     = 500
)

type ListImportLogsInput struct {
	Domain string
	Limit  int
}

type DomainStats struct {
	Domain    string `json:"domain"`
	Runs      int    `json:"runs"`
	Failed    int    `json:"failed"`
	Rows      int    `json:"rows"`
	Created   int    `json:"created"`
	Updated   int    `json:"updated"`
	Errors    int    `json:"errors"`
	ErrorRate string `json:"error_rate"`
}

type ListImportLogsOutput struct {
	Logs  []domain.ImportSummary `json:"logs"`
	Stats []DomainStats          `json:"stats"`
}

type ListImportLogs interface {
	Execute(ctx context.Context, in ListImportLogsInput) (ListImportLogsOutput, error)
}

type listImportLogs struct {
	registry *domain.Registry
	audit    domain.AuditLog
}

func NewListImportLogs(registry *domain.Registry, audit domain.AuditLog) ListImportLogs {
	return &listImportLogs{registry: registry, audit: audit}
}

func (uc *listImportLogs) Execute(ctx context.Context, in ListImportLogsInput) (ListImportLogsOutput, error) {
	filter := domain.ImportLogFilter{Limit: clampLimit(in.Limit)}
	if name := strings.TrimSpace(in.Domain); name != "" {
		schema, ok := uc.registry.Lookup(name)
		if !ok {
			return ListImportLogsOutput{}, ErrUnknownDomain
		}
		filter.Domain = schema.Name
	}

	logs, err := uc.audit.List(ctx, filter)
	if err != nil {
		return ListImportLogsOutput{}, fmt.Errorf("%w: %v", ErrListImportLogs, err)
	}
	sort.SliceStable(logs, func(i, j int) bool { return logs[i].CreatedAt.After(logs[j].CreatedAt) })

	return ListImportLogsOutput{Logs: logs, Stats: Aggregate(logs)}, nil
}

// Aggregate folds audit rows into per-domain totals, ordered by domain name.
func Aggregate(logs []domain.ImportSummary) []DomainStats {
	byDomain := make(map[string]*DomainStats)
	for _, l := range logs {
		s, ok := byDomain[l.Domain]
		if !ok {
			s = &DomainStats{Domain: l.Domain}
			byDomain[l.Domain] = s
		}
		s.Runs++
		if l.Status == domain.StatusFailed {
			s.Failed++
		}
		s.Rows += l.TotalRows
		s.Created += l.CreatedCount
		s.Updated += l.UpdatedCount
		s.Errors += l.ErrorCount
	}

	stats := make([]DomainStats, 0, len(byDomain))
	for _, s := range byDomain {
		s.ErrorRate = errorRate(s.Errors, s.Rows)
		stats = append(stats, *s)
	}
	sort.Slice(stats, func(i, j int) bool { return stats[i].Domain < stats[j].Domain })
	return stats
}

func errorRate(errs, rows int) string {
	if rows == 0 {
		return decimal.Zero.StringFixed(2)
	}
	return decimal.NewFromInt(int64(errs)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(rows))).
		StringFixed(2)
}

func clampLimit(limit int) int {
	switch {
	case limit <= 0:
		return defaultLogLimit
	case limit > maxLogLimit:
		return maxLogLimit
	default:
		return limit
	}
}
