package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/hibiken/asynq"
	"github.com/i-a-n/basic-birthdays-app/internal/worker"
	"github.com/rs/zerolog/log"
)

// DigestScheduler enqueues the weekly digest task on a cron schedule.
type DigestScheduler struct {
	taskDistributor worker.TaskDistributor
	scheduler       gocron.Scheduler
	cronSpec        string
}

func NewDigestScheduler(taskDistributor worker.TaskDistributor, cronSpec string) (*DigestScheduler, error) {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	return &DigestScheduler{
		taskDistributor: taskDistributor,
		scheduler:       scheduler,
		cronSpec:        cronSpec,
	}, nil
}

// Start registers the weekly job and starts the scheduler.
func (s *DigestScheduler) Start() error {
	_, err := s.scheduler.NewJob(
		gocron.CronJob(s.cronSpec, false),
		gocron.NewTask(
			func() {
				log.Info().
					Str("job", "weekly_digest").
					Time("start_time", time.Now()).
					Msg("Starting weekly digest job")

				s.enqueueWeeklyDigest()
			},
		),
	)

	if err != nil {
		return err
	}

	s.scheduler.Start()
	return nil
}

// Stop shuts the scheduler down. Already-enqueued tasks are unaffected.
func (s *DigestScheduler) Stop() error {
	return s.scheduler.Shutdown()
}

func (s *DigestScheduler) enqueueWeeklyDigest() {
	ctx := context.Background()

	opts := []asynq.Option{
		// The batch is not retried within a cycle; next week's tick is the retry.
		asynq.MaxRetry(0),
		asynq.Queue(worker.QueueDefault),
		// Overlapping ticks collapse into a single queued run.
		asynq.Unique(time.Hour),
	}

	err := s.taskDistributor.DistributeTaskRunDigest(ctx, &worker.PayloadRunDigest{
		TriggeredBy: "schedule",
	}, opts...)

	if err != nil {
		log.Error().Err(err).
			Str("job", "weekly_digest").
			Msg("failed to enqueue weekly digest task")
		return
	}

	log.Info().
		Str("job", "weekly_digest").
		Msg("weekly digest task enqueued")
}
