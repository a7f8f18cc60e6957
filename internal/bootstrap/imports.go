package bootstrap

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/backoffice-import/internal/application/importing"
	"github.com/mohammadpnp/backoffice-import/internal/config"
	"github.com/mohammadpnp/backoffice-import/internal/domain/employee"
	domain "github.com/mohammadpnp/backoffice-import/internal/domain/importing"
	"github.com/mohammadpnp/backoffice-import/internal/domain/inspection"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/backoffice-import/internal/infrastructure/session"
	httpecho "github.com/mohammadpnp/backoffice-import/internal/interfaces/http/echo"
)

// NewRegistry holds every importable domain.
func NewRegistry() (*domain.Registry, error) {
	return domain.NewRegistry(employee.Schema(), inspection.Schema())
}

func NewValidator() (*app.Validator, error) {
	return app.NewValidator(map[string]app.FormatFunc{
		"cpf": employee.ValidCPFFormat,
	})
}

// NewSessionStore returns the configured preview session store and a close func for its resources.
func NewSessionStore(ctx context.Context, opts config.SessionOptions) (domain.SessionStore, func() error, error) {
	if opts.Storage != "redis" {
		return session.NewMemoryStore(opts.Capacity, opts.TTL), func() error { return nil }, nil
	}

	redisOpts, err := redis.ParseURL(opts.RedisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(redisOpts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	return session.NewRedisStore(client, opts.TTL), client.Close, nil
}

type ImportDeps struct {
	DB       *gorm.DB
	Pool     *pgxpool.Pool
	Sessions domain.SessionStore
	Logger   *logrus.Logger
}

// NewImportUseCases wires the import pipeline against the database.
func NewImportUseCases(deps ImportDeps) (httpecho.ImportUseCases, error) {
	registry, err := NewRegistry()
	if err != nil {
		return httpecho.ImportUseCases{}, fmt.Errorf("build registry: %w", err)
	}
	validator, err := NewValidator()
	if err != nil {
		return httpecho.ImportUseCases{}, fmt.Errorf("build validator: %w", err)
	}

	entry := deps.Logger.WithField("component", "import")
	records := repository.NewRecordRepository(deps.Pool)
	auditLog := repository.NewImportLogRepository(deps.DB)
	committer := app.NewCommitter(records, auditLog, entry)

	return httpecho.ImportUseCases{
		Preview: app.NewPreviewImport(app.PreviewDeps{
			Registry:   registry,
			Validator:  validator,
			References: repository.NewReferenceRepository(deps.DB),
			Existing:   records,
			Sessions:   deps.Sessions,
			Committer:  committer,
			Logger:     entry,
		}),
		Commit:   app.NewCommitImport(registry, deps.Sessions, committer),
		Cancel:   app.NewCancelImport(deps.Sessions),
		Template: app.NewExportTemplate(registry),
		Logs:     app.NewListImportLogs(registry, auditLog),
	}, nil
}
