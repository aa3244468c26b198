package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/aescanero/dago-node-view/internal/config"
	"github.com/cenkalti/backoff/v4"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// settleTimeout bounds publishing and acknowledging a rendered request. The
// request in flight at Stop is still settled.
const settleTimeout = 5 * time.Second

// Worker represents the render worker
type Worker struct {
	id            string
	config        *config.Config
	redisClient   *redis.Client
	renderer      *RequestRenderer
	logger        *zap.Logger
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	streamKey     string
	consumerGroup string
	resultStream  string
}

// NewWorker creates a new worker
func NewWorker(
	cfg *config.Config,
	redisClient *redis.Client,
	renderer *RequestRenderer,
	logger *zap.Logger,
) *Worker {
	ctx, cancel := context.WithCancel(context.Background())

	return &Worker{
		id:            cfg.WorkerID,
		config:        cfg,
		redisClient:   redisClient,
		renderer:      renderer,
		logger:        logger,
		ctx:           ctx,
		cancel:        cancel,
		streamKey:     cfg.StreamKey,
		consumerGroup: cfg.ConsumerGroup,
		resultStream:  cfg.ResultStream,
	}
}

// Start starts the worker
func (w *Worker) Start() error {
	w.logger.Info("starting render worker",
		zap.String("worker_id", w.id),
		zap.String("stream_key", w.streamKey),
		zap.String("consumer_group", w.consumerGroup),
	)

	// Create consumer group if it doesn't exist
	if err := w.ensureConsumerGroup(); err != nil {
		return fmt.Errorf("failed to ensure consumer group: %w", err)
	}

	// Start processing work
	w.wg.Add(1)
	go w.processWork()

	w.logger.Info("render worker started", zap.String("worker_id", w.id))
	return nil
}

// Stop stops the worker and waits for the in-flight request to finish
func (w *Worker) Stop() error {
	w.logger.Info("stopping render worker", zap.String("worker_id", w.id))

	// Cancel context to stop work processing
	w.cancel()
	w.wg.Wait()

	w.logger.Info("render worker stopped", zap.String("worker_id", w.id))
	return nil
}

// ensureConsumerGroup creates the consumer group if it doesn't exist
func (w *Worker) ensureConsumerGroup() error {
	err := w.redisClient.XGroupCreateMkStream(w.ctx, w.streamKey, w.consumerGroup, "0").Err()
	if err != nil {
		// BUSYGROUP error means the group already exists, which is fine
		if strings.HasPrefix(err.Error(), "BUSYGROUP") {
			w.logger.Debug("consumer group already exists",
				zap.String("group", w.consumerGroup),
			)
			return nil
		}
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	w.logger.Info("created consumer group",
		zap.String("group", w.consumerGroup),
		zap.String("stream", w.streamKey),
	)
	return nil
}

// processWork processes work from the Redis stream
func (w *Worker) processWork() {
	defer w.wg.Done()
	w.logger.Info("starting work processing loop")

	for {
		select {
		case <-w.ctx.Done():
			w.logger.Info("work processing loop stopped")
			return
		default:
			streams, err := w.redisClient.XReadGroup(w.ctx, &redis.XReadGroupArgs{
				Group:    w.consumerGroup,
				Consumer: w.id,
				Streams:  []string{w.streamKey, ">"},
				Count:    1,
				Block:    w.config.BlockTime,
			}).Result()

			if err != nil {
				if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
					continue
				}
				w.logger.Error("failed to read from stream",
					zap.Error(err),
				)
				time.Sleep(time.Second)
				continue
			}

			for _, stream := range streams {
				for _, message := range stream.Messages {
					w.handleMessage(message)
				}
			}
		}
	}
}

// handleMessage handles a single render request message
func (w *Worker) handleMessage(message redis.XMessage) {
	messageID := message.ID
	w.logger.Info("processing render request",
		zap.String("message_id", messageID),
	)

	request, err := parseRenderRequest(message.Values)
	if err != nil {
		w.logger.Error("failed to parse render request",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
		w.acknowledgeMessage(messageID)
		return
	}

	result, err := w.renderer.Render(w.ctx, request)

	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()

	if err != nil {
		w.logger.Error("failed to render view",
			zap.String("message_id", messageID),
			zap.String("request_id", request.RequestID),
			zap.String("template", request.Template),
			zap.Error(err),
		)
		w.publishError(ctx, request, err)
	} else if err := w.publishResult(ctx, result); err != nil {
		w.logger.Error("failed to publish render result",
			zap.String("request_id", request.RequestID),
			zap.Error(err),
		)
	}

	w.acknowledge(ctx, messageID)
}

// publishResult publishes a rendered view
func (w *Worker) publishResult(ctx context.Context, result *RenderResult) error {
	if err := w.publish(ctx, w.resultStream, result); err != nil {
		return err
	}

	w.logger.Info("published render result",
		zap.String("request_id", result.RequestID),
		zap.String("template", result.Template),
		zap.String("engine", result.Engine),
	)
	return nil
}

// publishError publishes an error event
func (w *Worker) publishError(ctx context.Context, request *RenderRequest, err error) {
	errorEvent := map[string]interface{}{
		"request_id": request.RequestID,
		"template":   request.Template,
		"error":      err.Error(),
		"timestamp":  time.Now().UTC(),
	}

	if publishErr := w.publish(ctx, w.resultStream+".errors", errorEvent); publishErr != nil {
		w.logger.Error("failed to publish error event", zap.Error(publishErr))
	}
}

// publish adds a JSON event to stream, retrying up to MaxRetries times
func (w *Worker) publish(ctx context.Context, stream string, event interface{}) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(w.config.MaxRetries)),
		ctx,
	)

	err = backoff.RetryNotify(func() error {
		return w.redisClient.XAdd(ctx, &redis.XAddArgs{
			Stream: stream,
			Values: map[string]interface{}{
				"data": string(data),
			},
		}).Err()
	}, policy, func(err error, wait time.Duration) {
		w.logger.Warn("publish failed, retrying",
			zap.String("stream", stream),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	})
	if err != nil {
		return fmt.Errorf("failed to publish to stream: %w", err)
	}

	return nil
}

// acknowledgeMessage acknowledges a message from the stream
func (w *Worker) acknowledgeMessage(messageID string) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	w.acknowledge(ctx, messageID)
}

func (w *Worker) acknowledge(ctx context.Context, messageID string) {
	err := w.redisClient.XAck(ctx, w.streamKey, w.consumerGroup, messageID).Err()
	if err != nil {
		w.logger.Error("failed to acknowledge message",
			zap.String("message_id", messageID),
			zap.Error(err),
		)
	}
}
