package importing

import (
	"errors"

	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
)

var (
	ErrUnknownDomain     = errors.New("unknown import domain")
	ErrMissingActor      = errors.New("acting user is required")
	ErrInvalidImportFile = errors.New("invalid import file")
	ErrPreviewImport     = errors.New("failed to preview import")
	ErrListImportLogs    = errors.New("failed to list import logs")
	ErrExportTemplate    = errors.New("failed to export template")
	ErrAuditLog          = errors.New("failed to append import log")

	ErrEmptyFile            = domain.ErrEmptyFile
	ErrUnsupportedFormat    = domain.ErrUnsupportedFormat
	ErrReferenceLookup      = domain.ErrReferenceLookup
	ErrReconciliationLookup = domain.ErrReconciliationLookup
	ErrCommit               = domain.ErrCommit
	ErrSessionNotFound      = domain.ErrSessionNotFound
)
