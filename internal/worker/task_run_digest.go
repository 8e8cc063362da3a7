package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// PayloadRunDigest contain all data of the task that we want to store in Redis.
type PayloadRunDigest struct {
	TriggeredBy string
}

func (distributor *RedisTaskDistributor) DistributeTaskRunDigest(
	ctx context.Context,
	payload *PayloadRunDigest,
	opts ...asynq.Option,
) error {
	jsonPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal task payload: %w", err)
	}

	task := asynq.NewTask(TaskRunDigest, jsonPayload, opts...)
	info, err := distributor.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue task: %w", err)
	}

	log.Info().Str("type", task.Type()).Bytes("payload", task.Payload()).Str("queue", info.Queue).Int("max_retry", info.MaxRetry).Msg("task enqueued")

	return nil
}

func (processor *RedisTaskProcessor) ProcessTaskRunDigest(
	ctx context.Context,
	task *asynq.Task,
) error {
	var payload PayloadRunDigest
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", asynq.SkipRetry)
	}

	report, err := processor.digestService.Run(ctx)
	if err != nil {
		log.Error().Err(err).
			Str("triggered_by", payload.TriggeredBy).
			Msg("weekly digest run failed")
		// The next scheduled run is the retry mechanism.
		return fmt.Errorf("digest run failed: %w", asynq.SkipRetry)
	}

	if processor.reporter != nil {
		if err := processor.reporter.PostRunSummary(report); err != nil {
			log.Error().Err(err).
				Str("run_id", report.RunID).
				Msg("failed to post run summary to discord")
		}
	}

	log.Info().Str("type", task.Type()).Str("run_id", report.RunID).
		Str("triggered_by", payload.TriggeredBy).Msg("task processed")

	return nil
}
