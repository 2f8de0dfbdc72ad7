package planning

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/sourcegraph/conc/pool"
	"github.com/trip-planner/internal/domain"
	"github.com/trip-planner/internal/domain/repository"
	"github.com/trip-planner/internal/pkg/errors"
	"github.com/trip-planner/internal/usecase"
	"github.com/trip-planner/internal/worker"
	"go.uber.org/zap"
)

const (
	defaultBatchSize = 10
	emptyQueueSleep  = 100 * time.Millisecond // пауза если очередь пуста
	errorSleep       = time.Second
	retryBackoff     = 200 * time.Millisecond
)

// TripPlanner - то, что воркеру нужно от планировщика
type TripPlanner interface {
	PlanTrip(ctx context.Context, trip *domain.Trip, opts usecase.PlanOptions) (*usecase.PlanResult, error)
}

// TripPlanningWorker читает stream:trip:plan и публикует результаты в stream:trip:planned
type TripPlanningWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	planner      TripPlanner
	consumerName string
	maxRetries   int
	batchSize    int
}

func NewTripPlanningWorker(
	streamRepo repository.StreamRepository,
	planner TripPlanner,
	consumerGroup string,
	maxRetries int,
	batchSize int,
	logger *zap.Logger,
) *TripPlanningWorker {
	hostname, _ := os.Hostname()
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &TripPlanningWorker{
		BaseWorker:   worker.NewBaseWorker("trip-planning", consumerGroup, logger),
		streamRepo:   streamRepo,
		planner:      planner,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		maxRetries:   maxRetries,
		batchSize:    batchSize,
	}
}

// Start запускает воркер
func (w *TripPlanningWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting TripPlanningWorker (batch mode)",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamTripPlan, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch читает и обрабатывает одну пачку сообщений.
// Возвращает количество прочитанных сообщений.
func (w *TripPlanningWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(ctx, domain.StreamTripPlan, w.ConsumerGroup(), w.consumerName, w.batchSize)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	logger.Info("Processing batch", zap.Int("message_count", len(messages)))

	ids := make([]string, 0, len(messages))
	events := make([]domain.TripPlanEvent, 0, len(messages))
	for _, msg := range messages {
		// битые сообщения тоже подтверждаем, чтобы не застревали
		ids = append(ids, msg.ID)

		var event domain.TripPlanEvent
		if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
			logger.Warn("Failed to parse message, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			continue
		}
		events = append(events, event)
	}

	results := pool.New().WithMaxGoroutines(w.batchSize)
	for _, event := range events {
		results.Go(func() {
			w.handle(ctx, event)
		})
	}
	results.Wait()

	if err := w.streamRepo.AckMessages(ctx, domain.StreamTripPlan, w.ConsumerGroup(), ids...); err != nil {
		// не критично - сообщения останутся в pending
		logger.Error("Failed to ack messages", zap.Error(err))
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("planned", len(events)))

	return len(messages), nil
}

// handle планирует одну поездку и публикует результат. Паника не выходит за пределы события.
func (w *TripPlanningWorker) handle(ctx context.Context, event domain.TripPlanEvent) {
	logger := w.Logger()
	trip := event.Trip()

	planned := domain.TripPlannedEvent{TripID: trip.ID}

	func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("Panic while planning trip",
					zap.String("trip_id", trip.ID.String()),
					zap.Any("panic", r))
				planned.Error = errors.ErrInternalServer.Message
			}
		}()

		result, err := w.planWithRetry(ctx, trip, event)
		if err != nil {
			planned.Error = err.Error()
			return
		}
		planned.ItineraryCount = len(result.Trip.Itineraries)
		planned.Errors = result.ErrorMessages()
	}()

	if err := w.streamRepo.PublishToStream(ctx, domain.StreamTripPlanned, planned); err != nil {
		logger.Error("Failed to publish planned event",
			zap.String("trip_id", trip.ID.String()),
			zap.Error(err))
	}
}

// planWithRetry повторяет планирование при инфраструктурных ошибках.
// AppError (невалидный запрос и т.п.) не повторяется.
func (w *TripPlanningWorker) planWithRetry(ctx context.Context, trip *domain.Trip, event domain.TripPlanEvent) (*usecase.PlanResult, error) {
	opts := usecase.PlanOptions{
		OnlyFilters:    event.OnlyFilters,
		ExceptFilters:  event.ExceptFilters,
		FundingSources: event.FundingSources,
	}

	var lastErr error
	for attempt := 0; attempt <= w.maxRetries; attempt++ {
		if attempt > 0 && !w.Pause(ctx, retryBackoff*time.Duration(attempt)) {
			break
		}

		result, err := w.planner.PlanTrip(ctx, trip, opts)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if appErr, ok := errors.As(err); ok && appErr.StatusCode < 500 {
			break
		}
		w.Logger().Warn("Trip planning failed",
			zap.String("trip_id", trip.ID.String()),
			zap.Int("attempt", attempt+1),
			zap.Error(err))
	}
	return nil, lastErr
}
