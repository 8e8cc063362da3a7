package worker

import (
	"context"

	"github.com/hibiken/asynq"
	"github.com/i-a-n/basic-birthdays-app/internal/digest"
	"github.com/i-a-n/basic-birthdays-app/internal/discord"
	"github.com/rs/zerolog/log"
)

/*
 This file contains code that will pick up the tasks from the Redis queue and process them.
*/

const (
	QueueCritical = "critical"
	QueueDefault  = "default"
)

type RedisTaskProcessor struct {
	server        *asynq.Server
	digestService *digest.Service
	reporter      *discord.Reporter // nil when ops reporting is not configured
}

func NewRedisTaskProcessor(redisOpt asynq.RedisClientOpt, digestService *digest.Service, reporter *discord.Reporter) *RedisTaskProcessor {
	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Queues: map[string]int{
				QueueCritical: 10,
				QueueDefault:  5,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Error().Err(err).Str("type", task.Type()).
					Bytes("payload", task.Payload()).Msg("process task failed")
			}),
			Logger: NewLogger(),
		},
	)

	return &RedisTaskProcessor{
		server:        server,
		digestService: digestService,
		reporter:      reporter,
	}
}

// Start registers the task handlers for the mux, attaches the mux to the asynq server, and starts the server.
func (processor *RedisTaskProcessor) Start() error {
	mux := asynq.NewServeMux()

	mux.HandleFunc(TaskRunDigest, processor.ProcessTaskRunDigest)

	return processor.server.Start(mux)
}

func (processor *RedisTaskProcessor) Shutdown() {
	processor.server.Shutdown()
}
