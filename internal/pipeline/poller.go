package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/your-org/amber/internal/config"
	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/observability"
	"github.com/your-org/amber/internal/registry"
	"github.com/your-org/amber/pkg/dto"
)

// Fetcher yields today's raw records. attempted reports whether a real
// upstream call was made, as opposed to a cache hit or a rate-limit skip.
type Fetcher interface {
	Fetch(ctx context.Context) (records []registry.RawRecord, attempted bool, err error)
}

// RecordProcessor turns a raw record into a classified person.
type RecordProcessor interface {
	Process(ctx context.Context, rec registry.RawRecord) (*models.MissingPerson, error)
}

// Store is the slice of persistence the poller needs.
type Store interface {
	ActivePersonIDs(ctx context.Context) (map[string]struct{}, error)
	UpsertPerson(ctx context.Context, p *models.MissingPerson) error
	LogFetch(ctx context.Context, resultCount int, success bool) error
}

// Dispatcher fans an alert out to registered devices.
type Dispatcher interface {
	Dispatch(ctx context.Context, p *models.MissingPerson) (*models.NotificationOutcome, error)
}

// Broadcaster relays events to live subscribers.
type Broadcaster interface {
	PublishAlert(ctx context.Context, eventType string, data interface{}) error
}

// Poller drives the fetch-extract-classify-persist-notify cycle.
type Poller struct {
	cfg         config.PollingConfig
	fetcher     Fetcher
	processor   RecordProcessor
	store       Store
	dispatcher  Dispatcher
	broadcaster Broadcaster
	set         *workingSet
}

func NewPoller(cfg config.PollingConfig, fetcher Fetcher, processor RecordProcessor,
	store Store, dispatcher Dispatcher, broadcaster Broadcaster) *Poller {
	return &Poller{
		cfg:         cfg,
		fetcher:     fetcher,
		processor:   processor,
		store:       store,
		dispatcher:  dispatcher,
		broadcaster: broadcaster,
	}
}

// Run executes cycles until the context is cancelled. A failed cycle backs
// off longer than a successful one.
func (p *Poller) Run(ctx context.Context) error {
	if err := p.seed(ctx); err != nil {
		return err
	}

	for {
		start := time.Now()
		err := p.cycle(ctx)
		observability.CycleDuration.Observe(time.Since(start).Seconds())

		wait := p.cfg.CycleInterval
		if err != nil {
			slog.Error("polling cycle failed", "error", err)
			wait = p.cfg.FailureBackoff
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}
	}
}

func (p *Poller) seed(ctx context.Context) error {
	ids, err := p.store.ActivePersonIDs(ctx)
	if err != nil {
		return fmt.Errorf("seed working set: %w", err)
	}
	p.set = newWorkingSet(ids)
	slog.Info("seeded working set", "active", len(ids))
	return nil
}

// cycle runs one full pass. A record that fails any step is skipped and
// retried on the next cycle; it never takes the rest of the batch down.
func (p *Poller) cycle(ctx context.Context) error {
	records, attempted, err := p.fetcher.Fetch(ctx)
	if err != nil {
		observability.FetchCycles.WithLabelValues("failure").Inc()
		if logErr := p.store.LogFetch(ctx, 0, false); logErr != nil {
			slog.Warn("log fetch failed", "error", logErr)
		}
		return fmt.Errorf("fetch records: %w", err)
	}

	if attempted {
		observability.FetchCycles.WithLabelValues("success").Inc()
		if logErr := p.store.LogFetch(ctx, len(records), true); logErr != nil {
			slog.Warn("log fetch failed", "error", logErr)
		}
	} else {
		observability.FetchCycles.WithLabelValues("skipped").Inc()
	}

	for _, rec := range records {
		observability.RecordsIngested.Inc()
		if err := p.handle(ctx, rec); err != nil {
			slog.Warn("record skipped", "record_id", rec.ID.String(), "error", err)
		}
	}

	return nil
}

func (p *Poller) handle(ctx context.Context, rec registry.RawRecord) error {
	// Known ids are done: geocoding and photo upload happen once, right
	// before first persistence. The cache serves the same payload for the
	// full TTL, so anything heavier here would hammer the downstream APIs
	// every cycle.
	if id := rec.ID.String(); id != "" && p.set.Has(id) {
		return nil
	}

	person, err := p.processor.Process(ctx, rec)
	if err != nil {
		return fmt.Errorf("process record: %w", err)
	}

	if err := p.store.UpsertPerson(ctx, person); err != nil {
		return fmt.Errorf("persist person: %w", err)
	}
	p.set.Add(person.ID)
	observability.NewRecords.WithLabelValues(string(person.Priority)).Inc()

	outcome, err := p.dispatcher.Dispatch(ctx, person)
	if err != nil {
		slog.Warn("dispatch failed", "person_id", person.ID, "error", err)
	}

	event := dto.AlertEvent{
		Type:   dto.EventNewMissingPerson,
		Data:   dto.FromPerson(person, ""),
		Result: outcome,
	}
	if err := p.broadcaster.PublishAlert(ctx, dto.EventNewMissingPerson, event); err != nil {
		slog.Warn("broadcast failed", "person_id", person.ID, "error", err)
	}

	slog.Info("new missing person",
		"person_id", person.ID,
		"priority", person.Priority,
		"category", person.Category,
		"risk_factors", len(person.RiskFactors))
	return nil
}
