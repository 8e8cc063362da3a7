package push

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/rs/zerolog/log"
)

// FCMGateway sends pushes through Firebase Cloud Messaging.
type FCMGateway struct {
	client *messaging.Client
}

func NewFCMGateway(ctx context.Context, firebaseApp *firebase.App) (*FCMGateway, error) {
	client, err := firebaseApp.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	return &FCMGateway{
		client: client,
	}, nil
}

func (g *FCMGateway) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	id, err := g.client.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send push message: %w", err)
	}

	log.Debug().Str("message_id", id).Msg("push message accepted by FCM")
	return nil
}
