package notification

import (
	"context"
	"fmt"

	"chmfc/internal/core"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// TopicPolls is the FCM topic fans subscribe to for new match polls
const TopicPolls = "match_polls"

// sender is the part of *messaging.Client the service needs
type sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SubscribeToTopic(ctx context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error)
}

// FCMService handles Firebase Cloud Messaging operations
type FCMService struct {
	client    sender
	orderLink string
	logger    *zap.Logger
}

// NewFCMService creates a new FCM service instance from a service account file
func NewFCMService(ctx context.Context, credentialsPath, orderLink string, logger *zap.Logger) (*FCMService, error) {
	opt := option.WithCredentialsFile(credentialsPath)

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("error getting messaging client: %w", err)
	}

	return newFCMService(client, orderLink, logger), nil
}

func newFCMService(client sender, orderLink string, logger *zap.Logger) *FCMService {
	return &FCMService{client: client, orderLink: orderLink, logger: logger}
}

var _ core.Notifier = (*FCMService)(nil)

// NotificationPayload defines the structure for push notifications
type NotificationPayload struct {
	Title       string            `json:"title"`
	Body        string            `json:"body"`
	Data        map[string]string `json:"data,omitempty"`
	DeviceToken string            `json:"-"`
	Icon        string            `json:"icon,omitempty"`
	Link        string            `json:"link,omitempty"`
}

func (s *FCMService) buildMessage(payload *NotificationPayload) *messaging.Message {
	message := &messaging.Message{
		Token: payload.DeviceToken,
		Notification: &messaging.Notification{
			Title: payload.Title,
			Body:  payload.Body,
		},
		Data: payload.Data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				Title: payload.Title,
				Body:  payload.Body,
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Alert: &messaging.ApsAlert{
						Title: payload.Title,
						Body:  payload.Body,
					},
					Sound: "default",
				},
			},
		},
	}

	webpush := &messaging.WebpushConfig{
		Notification: &messaging.WebpushNotification{
			Title: payload.Title,
			Body:  payload.Body,
			Icon:  payload.Icon,
		},
	}
	// FCM rejects relative or empty webpush links
	if payload.Link != "" {
		webpush.FCMOptions = &messaging.WebpushFCMOptions{Link: payload.Link}
	}
	message.Webpush = webpush

	return message
}

// SendNotification sends a single notification to a device
func (s *FCMService) SendNotification(ctx context.Context, payload *NotificationPayload) (string, error) {
	response, err := s.client.Send(ctx, s.buildMessage(payload))
	if err != nil {
		return "", fmt.Errorf("error sending message: %w", err)
	}
	return response, nil
}

// SendMulticast sends the payload to each device one by one over the HTTP v1 API.
// It returns the tokens FCM reported as unregistered.
func (s *FCMService) SendMulticast(ctx context.Context, deviceTokens []string, payload *NotificationPayload) (sent int, stale []string) {
	for _, token := range deviceTokens {
		single := *payload
		single.DeviceToken = token

		if _, err := s.SendNotification(ctx, &single); err != nil {
			if messaging.IsUnregistered(err) {
				stale = append(stale, token)
			}
			s.logger.Warn("[FCM] send failed", zap.String("token", shortToken(token)), zap.Error(err))
			continue
		}
		sent++
	}
	return sent, stale
}

// NotifyNewOrder tells admin devices that a fan placed an order
func (s *FCMService) NotifyNewOrder(ctx context.Context, tokens []string, order *core.Order) ([]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	payload := &NotificationPayload{
		Title: "New store order",
		Body:  fmt.Sprintf("%s ordered %s ($%s)", order.UserName, order.ProductName, humanize.FormatFloat("#,###.##", order.Price)),
		Data: map[string]string{
			"order_id": order.ID,
			"type":     "new_order",
			"action":   "open_order",
		},
		Link: s.orderLink,
	}

	sent, stale := s.SendMulticast(ctx, tokens, payload)
	s.logger.Info("[FCM] new order notification",
		zap.String("order_id", order.ID),
		zap.Int("sent", sent),
		zap.Int("failed", len(tokens)-sent),
	)
	if sent == 0 {
		return stale, fmt.Errorf("no admin device accepted the notification")
	}
	return stale, nil
}

// NotifyTopic sends a notification to all subscribers of a topic
func (s *FCMService) NotifyTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	message := &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}

	if _, err := s.client.Send(ctx, message); err != nil {
		return fmt.Errorf("error sending topic message: %w", err)
	}
	return nil
}

// SubscribeToTopic subscribes devices to a topic
func (s *FCMService) SubscribeToTopic(ctx context.Context, tokens []string, topic string) error {
	response, err := s.client.SubscribeToTopic(ctx, tokens, topic)
	if err != nil {
		return fmt.Errorf("error subscribing to topic: %w", err)
	}

	s.logger.Info("[FCM] topic subscription",
		zap.String("topic", topic),
		zap.Int("succeeded", response.SuccessCount),
		zap.Int("failed", response.FailureCount),
	)
	if response.FailureCount > 0 && response.SuccessCount == 0 {
		reason := "unknown"
		if len(response.Errors) > 0 {
			reason = response.Errors[0].Reason
		}
		return fmt.Errorf("%w: device token rejected: %s", core.ErrInvalidInput, reason)
	}
	return nil
}

func shortToken(token string) string {
	if len(token) <= 8 {
		return token
	}
	return token[:8] + "..."
}
