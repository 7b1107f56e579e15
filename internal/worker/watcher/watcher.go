package watcher

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.uber.org/zap"

	"github.com/Viktoooor3190/fitapp-sub001/internal/worker/tasks"
)

// reconnectDelay before reopening a broken change stream.
const reconnectDelay = 5 * time.Second

// Enqueuer is the slice of asynq.Client the watcher needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Watcher tails the transaction change stream and enqueues a revenue
// recompute for every affected coach. It is the only component reacting to
// store writes; create, update and delete all funnel into the same task.
type Watcher struct {
	transactions *mongo.Collection
	queue        Enqueuer
	logger       *zap.Logger
}

// New creates a new transaction watcher
func New(transactions *mongo.Collection, queue Enqueuer, logger *zap.Logger) *Watcher {
	return &Watcher{
		transactions: transactions,
		queue:        queue,
		logger:       logger,
	}
}

// txImage is the slice of a transaction document the dispatcher cares about.
type txImage struct {
	CoachID string `bson:"coach_id"`
}

// ChangeEvent is a decoded change-stream event for a transaction document.
type ChangeEvent struct {
	OperationType string   `bson:"operationType"`
	FullDocument  *txImage `bson:"fullDocument"`
	BeforeChange  *txImage `bson:"fullDocumentBeforeChange"`
}

// CoachIDs resolves which coaches need a recompute for an event. Empty means
// the event is a no-op (missing coach reference, or an operation we do not
// react to). An update that moves a transaction between coaches returns
// both, so neither side is left stale.
func CoachIDs(ev *ChangeEvent) []string {
	var before, after string
	if ev.BeforeChange != nil {
		before = ev.BeforeChange.CoachID
	}
	if ev.FullDocument != nil {
		after = ev.FullDocument.CoachID
	}

	switch ev.OperationType {
	case "insert":
		if after == "" {
			return nil
		}
		return []string{after}
	case "update", "replace":
		if before != "" && after != "" && before != after {
			return []string{before, after}
		}
		if after != "" {
			return []string{after}
		}
		if before != "" {
			return []string{before}
		}
		return nil
	case "delete":
		if before == "" {
			return nil
		}
		return []string{before}
	default:
		return nil
	}
}

// Run tails the change stream until the context is cancelled, reopening the
// stream after errors. Event-level failures are logged and swallowed; the
// stream keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		if err := w.watchOnce(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.logger.Error("change stream broken, reconnecting",
				zap.Error(err),
				zap.Duration("delay", reconnectDelay),
			)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(reconnectDelay):
		}
	}
}

func (w *Watcher) watchOnce(ctx context.Context) error {
	opts := options.ChangeStream().
		SetFullDocument(options.UpdateLookup).
		SetFullDocumentBeforeChange(options.WhenAvailable)

	stream, err := w.transactions.Watch(ctx, mongo.Pipeline{}, opts)
	if err != nil {
		return err
	}
	defer stream.Close(ctx)

	w.logger.Info("watching transaction change stream")

	for stream.Next(ctx) {
		var ev ChangeEvent
		if err := stream.Decode(&ev); err != nil {
			w.logger.Error("failed to decode change event", zap.Error(err))
			continue
		}
		w.dispatch(&ev)
	}
	return stream.Err()
}

func (w *Watcher) dispatch(ev *ChangeEvent) {
	coachIDs := CoachIDs(ev)
	if len(coachIDs) == 0 {
		w.logger.Debug("change event without coach reference, ignoring",
			zap.String("operation", ev.OperationType),
		)
		return
	}

	for _, coachID := range coachIDs {
		task, err := tasks.NewRecomputeRevenueTask(coachID)
		if err != nil {
			w.logger.Error("failed to build recompute task",
				zap.String("coach_id", coachID),
				zap.Error(err),
			)
			continue
		}
		if _, err := w.queue.Enqueue(task, asynq.Queue("critical")); err != nil {
			w.logger.Error("failed to enqueue recompute",
				zap.String("coach_id", coachID),
				zap.Error(err),
			)
			continue
		}
		w.logger.Debug("recompute enqueued",
			zap.String("coach_id", coachID),
			zap.String("operation", ev.OperationType),
		)
	}
}
