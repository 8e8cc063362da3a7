package digest

import (
	"fmt"
	"strings"
)

const (
	// NotificationTitle is the fixed title on every digest push.
	NotificationTitle = "basic birthday notification"

	// ActionViewBirthdays is attached to every push for client-side routing.
	// The apps do not act on it yet.
	ActionViewBirthdays = "VIEW_BIRTHDAYS"

	// maxListedFriends caps how many birthday lines one push spells out.
	maxListedFriends = 3
)

// MessageData returns the data payload attached to every digest push.
func MessageData() map[string]string {
	return map[string]string{"action": ActionViewBirthdays}
}

// ComposeBody builds the push body from the evaluator's lines. The wording is
// a product constant; do not reflow it. The zero-line sentence stays even
// though the dispatcher skips devices with no upcoming birthdays.
func ComposeBody(lines []string) string {
	n := len(lines)

	switch {
	case n == 0:
		return "you have no friends with birthdays next week."
	case n == 1:
		return "you have one friend with a birthday next week: \n" + lines[0]
	case n > maxListedFriends:
		body := fmt.Sprintf("you have %d friends with birthdays next week: \n", n)
		body += strings.Join(lines[:maxListedFriends], "\n")
		body += fmt.Sprintf("... and %d more friends.", n-maxListedFriends)
		return body
	default:
		return fmt.Sprintf("you have %d friends with birthdays next week: \n", n) + strings.Join(lines, "\n")
	}
}
