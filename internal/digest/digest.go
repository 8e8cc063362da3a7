package digest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/i-a-n/basic-birthdays-app/internal/friendstore"
	"github.com/i-a-n/basic-birthdays-app/internal/push"
	"github.com/rs/zerolog/log"
)

// Report summarizes one digest run for operators.
type Report struct {
	RunID      string
	StartedAt  time.Time
	FinishedAt time.Time
	Users      int
	Sent       int
	Skipped    int
	Failed     int
}

// Summary renders the report as a single operator-readable line.
func (r Report) Summary() string {
	return fmt.Sprintf("digest run %s: %d users, %d sent, %d skipped, %d failed in %s",
		r.RunID, r.Users, r.Sent, r.Skipped, r.Failed,
		r.FinishedAt.Sub(r.StartedAt).Round(time.Millisecond))
}

// Service runs the weekly digest: one store snapshot, then at most one push
// per registered device.
type Service struct {
	store   friendstore.Store
	gateway push.Gateway
	clock   Clock
}

func NewService(store friendstore.Store, gateway push.Gateway, clock Clock) *Service {
	if clock == nil {
		clock = RealClock{}
	}

	return &Service{
		store:   store,
		gateway: gateway,
		clock:   clock,
	}
}

// Run executes one digest pass. Only the snapshot fetch can fail the run with
// no sends attempted; every later failure is counted, logged and isolated to
// its own device.
func (s *Service) Run(ctx context.Context) (Report, error) {
	report := Report{
		RunID:     uuid.NewString(),
		StartedAt: s.clock.Now(),
	}

	users, err := s.store.FetchAllUsers(ctx)
	if err != nil {
		return report, fmt.Errorf("failed to fetch users snapshot: %w", err)
	}

	today := s.clock.Now()
	for _, user := range users {
		report.Users++
		lines := UpcomingBirthdays(user.Friends, today)

		for _, device := range user.Devices {
			if !device.NotificationEnabled || len(lines) == 0 {
				log.Info().
					Str("run_id", report.RunID).
					Str("user_id", user.ID).
					Str("device_id", device.ID).
					Bool("notification_enabled", device.NotificationEnabled).
					Int("upcoming_birthdays", len(lines)).
					Msg("not sending a notification")
				report.Skipped++
				continue
			}

			log.Info().
				Str("run_id", report.RunID).
				Str("user_id", user.ID).
				Str("device_id", device.ID).
				Msg("sending a notification")

			err = s.gateway.Send(ctx, device.Token, NotificationTitle, ComposeBody(lines), MessageData())
			if err != nil {
				log.Error().Err(err).
					Str("run_id", report.RunID).
					Str("user_id", user.ID).
					Str("device_id", device.ID).
					Msg("failed to send notification")
				report.Failed++
				continue
			}

			report.Sent++
		}
	}

	report.FinishedAt = s.clock.Now()
	log.Info().
		Str("run_id", report.RunID).
		Int("users", report.Users).
		Int("sent", report.Sent).
		Int("skipped", report.Skipped).
		Int("failed", report.Failed).
		Msg("weekly digest completed")

	return report, nil
}
