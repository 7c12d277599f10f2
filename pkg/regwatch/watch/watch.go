// Package watch polls a registry workbook and delivers changed records.
package watch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ukaji3/regwatch-go/pkg/regwatch"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/config"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/delivery"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/diff"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/events"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/models"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/output"
	"github.com/ukaji3/regwatch-go/pkg/regwatch/snapshot"
)

// ExtractFunc reads the active records of the workbook at path.
type ExtractFunc func(path string, sink events.Sink) ([]models.Purchase, error)

// Deps are the collaborators of a Watcher. Nil fields get production defaults.
type Deps struct {
	// Extract defaults to regwatch.Extract with the config's options.
	Extract ExtractFunc
	// Store defaults to a snapshot file at the configured path.
	Store snapshot.Store
	// Sender defaults to an HTTP sender posting to the delivery URL.
	Sender delivery.Sender
	// Sink receives all watcher events. Defaults to events.Discard.
	Sink events.Sink
	// ModTime returns the modification time of path. Defaults to os.Stat.
	ModTime func(path string) (time.Time, error)
	// NewID returns a cycle identifier. Defaults to a random UUID.
	NewID func() string
}

// Outcome is the result of a cycle that did not fail.
type Outcome int

const (
	// NoActiveRows means extraction returned nothing; the change is retried.
	NoActiveRows Outcome = iota
	// NoChanges means the snapshot was refreshed and nothing was sent.
	NoChanges
	// Delivered means the changeset was sent and the snapshot refreshed.
	Delivered
	// DeliveryFailed means sending failed; the change is retried.
	DeliveryFailed
)

func (o Outcome) String() string {
	switch o {
	case NoActiveRows:
		return "no_active_rows"
	case NoChanges:
		return "no_changes"
	case Delivered:
		return "delivered"
	case DeliveryFailed:
		return "delivery_failed"
	default:
		return "unknown"
	}
}

// Settled reports whether the workbook change behind the cycle is handled,
// so the watcher may wait for the next modification.
func (o Outcome) Settled() bool {
	return o == NoChanges || o == Delivered
}

// Watcher runs extraction cycles whenever the workbook changes.
type Watcher struct {
	cfg  config.Config
	deps Deps
	sink events.Sink
}

// New returns a watcher for cfg.
func New(cfg config.Config, deps Deps) *Watcher {
	if deps.Sink == nil {
		deps.Sink = events.Discard
	}
	if deps.Extract == nil {
		opts := cfg.Options()
		deps.Extract = func(path string, sink events.Sink) ([]models.Purchase, error) {
			o := opts
			o.Sink = sink
			return regwatch.Extract(path, o)
		}
	}
	if deps.Store == nil {
		deps.Store = snapshot.NewFile(cfg.SnapshotPath)
	}
	if deps.Sender == nil {
		deps.Sender = delivery.NewHTTPSender(cfg.DeliveryURL, cfg.HTTPTimeout)
	}
	if deps.ModTime == nil {
		deps.ModTime = modTime
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}

	return &Watcher{
		cfg:  cfg,
		deps: deps,
		sink: events.WithFields(deps.Sink, map[string]any{"workbook": cfg.WorkbookPath}),
	}
}

func modTime(path string) (time.Time, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return time.Time{}, fmt.Errorf("%w: %s", regwatch.ErrFileNotFound, path)
		}
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// Run records the current modification time and then polls every
// PollInterval, running a cycle after each change. It returns nil when ctx
// is canceled and an error when a stat, extraction or snapshot operation
// fails. The snapshot is removed on return when RemoveSnapshotOnExit is set.
func (w *Watcher) Run(ctx context.Context) error {
	last, err := w.deps.ModTime(w.cfg.WorkbookPath)
	if err != nil {
		return fmt.Errorf("stat workbook: %w", err)
	}
	defer w.cleanup()

	w.sink.Emit(events.Info("watching workbook").
		With("interval", w.cfg.PollInterval.String()).
		With("snapshot", w.cfg.SnapshotPath))

	ticker := time.NewTicker(w.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.sink.Emit(events.Info("shutting down"))
			return nil
		case <-ticker.C:
		}

		mod, err := w.deps.ModTime(w.cfg.WorkbookPath)
		if err != nil {
			return fmt.Errorf("stat workbook: %w", err)
		}
		if mod.Equal(last) {
			continue
		}

		outcome, err := w.Cycle(ctx)
		if err != nil {
			return err
		}
		if outcome.Settled() {
			last = mod
		}
	}
}

func (w *Watcher) cleanup() {
	if !w.cfg.RemoveSnapshotOnExit {
		return
	}
	if err := w.deps.Store.Remove(); err != nil {
		w.sink.Emit(events.Warn("snapshot not removed").WithErr(err))
		return
	}
	w.sink.Emit(events.Debug("snapshot removed"))
}

// Cycle extracts the workbook once, compares it with the snapshot and
// delivers the changeset. Delivery failures are reported through the sink
// and the DeliveryFailed outcome; every other failure is returned.
func (w *Watcher) Cycle(ctx context.Context) (Outcome, error) {
	sink := events.WithFields(w.sink, map[string]any{"cycle_id": w.deps.NewID()})
	start := time.Now()

	records, err := w.deps.Extract(w.cfg.WorkbookPath, sink)
	if err != nil {
		return NoActiveRows, fmt.Errorf("extract: %w", err)
	}
	if len(records) == 0 {
		sink.Emit(events.Info("no active rows"))
		return NoActiveRows, nil
	}

	previous, found, err := w.deps.Store.Load()
	if err != nil {
		return NoActiveRows, fmt.Errorf("load snapshot: %w", err)
	}

	var cs diff.Changeset
	if found {
		cs = diff.Compute(previous, records)
	} else {
		cs = diff.Initial(records)
	}

	if cs.Empty() {
		if err := w.deps.Store.Save(records); err != nil {
			return NoActiveRows, fmt.Errorf("save snapshot: %w", err)
		}
		sink.Emit(events.Info("no changes").With("records", len(records)))
		return NoChanges, nil
	}

	payload, err := output.ChangesetToJSON(cs, false)
	if err != nil {
		return NoActiveRows, err
	}

	// A started delivery is not interrupted by shutdown.
	if err := w.deps.Sender.Send(context.WithoutCancel(ctx), payload); err != nil {
		sink.Emit(events.Error("delivery failed").
			WithErr(err).
			With("changes", cs.Len()))
		return DeliveryFailed, nil
	}

	if err := w.deps.Store.Save(records); err != nil {
		return Delivered, fmt.Errorf("save snapshot: %w", err)
	}

	sink.Emit(events.Info("changes delivered").
		With("changes", cs.Len()).
		With("added", cs.Added).
		With("changed", cs.Changed).
		With("deactivated", cs.Deactivated).
		With("initial", !found).
		With("records", len(records)).
		With("duration_ms", time.Since(start).Milliseconds()))
	return Delivered, nil
}
