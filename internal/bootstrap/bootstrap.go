package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/jobtrackd/jobtrackd/internal/config"
	"github.com/jobtrackd/jobtrackd/internal/core/usecase"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/auth/static"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/export/xlsx"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/extractor/pdf"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/queue/nats"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/repository/postgres"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/resilience"
	"github.com/jobtrackd/jobtrackd/internal/infrastructure/templates"
	"github.com/jobtrackd/jobtrackd/internal/observability/metrics"
)

// App wires the persistence, queue, and use-case layers shared by the api
// and notifier binaries.
type App struct {
	Config config.Config

	Queue    *nats.Queue
	Verifier *static.Verifier
	Exporter *xlsx.Exporter

	Applications   *usecase.ApplicationUseCase
	Notes          *usecase.NoteUseCase
	Communications *usecase.CommunicationUseCase
	Reminders      *usecase.ReminderUseCase
	Documents      *usecase.DocumentUseCase
	Checklists     *usecase.ChecklistUseCase
	Patterns       *usecase.PatternUseCase
	Stats          *usecase.StatsUseCase
	Timeline       *usecase.TimelineUseCase
	Engine         *usecase.CheckEngine

	closeFn func()
}

func New(ctx context.Context, cfg config.Config, serverMetrics *metrics.HTTPServerMetrics) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := postgres.EnsureSchema(ctx, db); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	appsRepo := postgres.NewApplicationRepository(db)
	notesRepo := postgres.NewNoteRepository(db)
	commsRepo := postgres.NewCommunicationRepository(db)
	remindersRepo := postgres.NewReminderRepository(db)
	documentsRepo := postgres.NewDocumentRepository(db)
	changesRepo := postgres.NewStatusChangeRepository(db)
	checklistRepo := postgres.NewChecklistRepository(db)
	patternsRepo := postgres.NewPatternRepository(db)

	executor := resilience.NewExecutor(resilience.DefaultConfig())
	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: executor,
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	verifier, err := static.NewVerifier(cfg.AuthTokens)
	if err != nil {
		return nil, fmt.Errorf("init auth verifier: %w", err)
	}

	builtins, err := templates.Load(cfg.ChecklistTemplatesPath)
	if err != nil {
		return nil, fmt.Errorf("load checklist templates: %w", err)
	}

	var engineMetrics usecase.CheckMetrics
	if serverMetrics != nil {
		engineMetrics = serverMetrics.ForEngine("api")
	}
	engine := usecase.NewCheckEngine(remindersRepo, queue, engineMetrics, cfg.ReminderCheckInterval)

	extractor := pdf.New(0)

	return &App{
		Config: cfg,

		Queue:    queue,
		Verifier: verifier,
		Exporter: xlsx.New(),

		Applications:   usecase.NewApplicationUseCase(appsRepo, changesRepo),
		Notes:          usecase.NewNoteUseCase(appsRepo, notesRepo),
		Communications: usecase.NewCommunicationUseCase(appsRepo, commsRepo),
		Reminders:      usecase.NewReminderUseCase(appsRepo, remindersRepo),
		Documents:      usecase.NewDocumentUseCase(appsRepo, documentsRepo, extractor),
		Checklists:     usecase.NewChecklistUseCase(appsRepo, checklistRepo, builtins),
		Patterns:       usecase.NewPatternUseCase(patternsRepo),
		Stats:          usecase.NewStatsUseCase(appsRepo),
		Timeline:       usecase.NewTimelineUseCase(appsRepo, changesRepo, notesRepo, commsRepo, remindersRepo, documentsRepo),
		Engine:         engine,

		closeFn: func() {
			engine.Stop()
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}

// BackpressureWait is how long a request may queue for an in-flight slot
// before being shed.
const BackpressureWait = 100 * time.Millisecond
