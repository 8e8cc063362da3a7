package main

import (
	"context"
	"os"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
	"github.com/i-a-n/basic-birthdays-app/api"
	"github.com/i-a-n/basic-birthdays-app/internal/digest"
	"github.com/i-a-n/basic-birthdays-app/internal/discord"
	"github.com/i-a-n/basic-birthdays-app/internal/friendstore"
	"github.com/i-a-n/basic-birthdays-app/internal/push"
	"github.com/i-a-n/basic-birthdays-app/internal/scheduler"
	"github.com/i-a-n/basic-birthdays-app/internal/util"
	"github.com/i-a-n/basic-birthdays-app/internal/worker"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	// Load configurations
	config, err := util.LoadConfig("./app.env")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config file 😣")
	}

	log.Info().Msg("configurations loaded successfully ✅")

	ctx := context.Background()

	firebaseApp, err := firebase.NewApp(ctx, &firebase.Config{
		DatabaseURL: config.FirebaseDatabaseURL,
	}, option.WithCredentialsFile(config.FirebaseCredentialsFile))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create firebase app 😣")
	}
	log.Info().Msg("firebase app created successfully ✅")

	// Friend store backed by the Realtime Database
	store, err := friendstore.NewFirebaseStore(ctx, firebaseApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create friend store 😣")
	}
	log.Info().Msg("friend store created successfully ✅")

	// Push gateway backed by FCM
	gateway, err := push.NewFCMGateway(ctx, firebaseApp)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create push gateway 😣")
	}
	log.Info().Msg("push gateway created successfully ✅")

	redisDb := redis.NewClient(&redis.Options{
		Addr:     config.RedisServerAddress,
		Password: "", // no password set
		DB:       0,  // use default DB
	})

	if pingErr := redisDb.Ping(ctx).Err(); pingErr != nil {
		log.Fatal().Err(pingErr).Msg("failed to connect to redis 😣")
	}
	log.Info().Msg("connected to redis ✅")

	digestService := digest.NewService(store, gateway, digest.RealClock{})

	// Ops reporting to Discord is optional
	var reporter *discord.Reporter
	if config.DiscordBotToken != "" {
		reporter, err = discord.NewReporter(&config)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create discord reporter 😣")
		}
		log.Info().Msg("discord reporter created successfully ✅")
	}

	redisOpt := asynq.RedisClientOpt{
		Addr: config.RedisServerAddress,
	}

	taskDistributor := worker.NewTaskDistributor(redisOpt)
	taskInspector := worker.NewTaskInspector(redisOpt)

	go runTaskProcessor(redisOpt, digestService, reporter)

	digestScheduler, err := scheduler.NewDigestScheduler(taskDistributor, config.DigestCronSpec)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create digest scheduler 😣")
	}

	if err = digestScheduler.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start digest scheduler 😣")
	}
	log.Info().Str("cron_spec", config.DigestCronSpec).Msg("digest scheduler started ✅")

	runHTTPServer(&config, taskDistributor, taskInspector, redisDb)
}

func runTaskProcessor(redisOpt asynq.RedisClientOpt, digestService *digest.Service, reporter *discord.Reporter) {
	taskProcessor := worker.NewRedisTaskProcessor(redisOpt, digestService, reporter)
	log.Info().Msg("task processor started ✅")

	if err := taskProcessor.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start task processor 😣")
	}
}

func runHTTPServer(config *util.Config, taskDistributor worker.TaskDistributor, taskInspector worker.TaskInspector, redisDb *redis.Client) {
	server := api.NewServer(taskDistributor, taskInspector, redisDb, config)

	if err := server.Start(config.HTTPServerAddress); err != nil {
		log.Fatal().Err(err).Msg("failed to start HTTP server 😣")
	}
}
