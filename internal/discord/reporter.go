package discord

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/i-a-n/basic-birthdays-app/internal/digest"
	"github.com/i-a-n/basic-birthdays-app/internal/util"
)

// Reporter posts digest run summaries to the ops Discord channel.
type Reporter struct {
	session   *discordgo.Session
	channelID string
}

func NewReporter(config *util.Config) (*Reporter, error) {
	session, err := discordgo.New("Bot " + config.DiscordBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}

	return &Reporter{
		session:   session,
		channelID: config.DiscordChannelID,
	}, nil
}

// PostRunSummary sends one message per completed run. Failures are for the
// caller to log; they never affect the run itself.
func (r *Reporter) PostRunSummary(report digest.Report) error {
	_, err := r.session.ChannelMessageSend(r.channelID, report.Summary())
	if err != nil {
		return fmt.Errorf("failed to post run summary: %w", err)
	}

	return nil
}
