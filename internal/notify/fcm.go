package notify

import (
	"context"
	"fmt"
	"log/slog"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// PushClient sends one push message to one device token.
type PushClient interface {
	Send(ctx context.Context, token, title, body string, data map[string]string) error
}

// NoopClient stands in when push credentials are not configured. Sends
// succeed without leaving the process.
type NoopClient struct{}

func (NoopClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	slog.Info("push send skipped (no credentials)", "title", title)
	return nil
}

// FCMClient delivers push notifications through Firebase Cloud Messaging.
type FCMClient struct {
	client *messaging.Client
}

func NewFCMClient(ctx context.Context, credentialsFile string) (*FCMClient, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init fcm client: %w", err)
	}

	return &FCMClient{client: client}, nil
}

func (c *FCMClient) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	if _, err := c.client.Send(ctx, msg); err != nil {
		return fmt.Errorf("send to token: %w", err)
	}
	return nil
}
