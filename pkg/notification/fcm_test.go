package notification

import (
	"context"
	"errors"
	"sync"
	"testing"

	"chmfc/internal/core"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu       sync.Mutex
	messages []*messaging.Message
	failFor  map[string]bool

	subscribed []string
	subErr     error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[m.Token] {
		return "", errors.New("device offline")
	}
	f.messages = append(f.messages, m)
	return "projects/chmfc/messages/1", nil
}

func (f *fakeSender) SubscribeToTopic(_ context.Context, tokens []string, topic string) (*messaging.TopicManagementResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.subErr != nil {
		return nil, f.subErr
	}
	resp := &messaging.TopicManagementResponse{}
	for i, tok := range tokens {
		if f.failFor[tok] {
			resp.FailureCount++
			resp.Errors = append(resp.Errors, &messaging.ErrorInfo{Index: i, Reason: "invalid-argument"})
			continue
		}
		resp.SuccessCount++
		f.subscribed = append(f.subscribed, topic+"/"+tok)
	}
	return resp, nil
}

func TestNotifyNewOrder(t *testing.T) {
	fake := &fakeSender{failFor: map[string]bool{"bad": true}}
	svc := newFCMService(fake, "https://club.example/admin/orders", zap.NewNop())

	order := &core.Order{ID: "o1", UserName: "Jamie", ProductName: "Home Jersey", Price: 1249.5}
	_, err := svc.NotifyNewOrder(context.Background(), []string{"tok-1", "bad"}, order)
	require.NoError(t, err)

	require.Len(t, fake.messages, 1)
	msg := fake.messages[0]
	assert.Equal(t, "tok-1", msg.Token)
	assert.Equal(t, "Jamie ordered Home Jersey ($1,249.50)", msg.Notification.Body)
	assert.Equal(t, "o1", msg.Data["order_id"])
	assert.Equal(t, "https://club.example/admin/orders", msg.Webpush.FCMOptions.Link)
}

func TestNotifyNewOrder_AllFail(t *testing.T) {
	fake := &fakeSender{failFor: map[string]bool{"bad": true}}
	svc := newFCMService(fake, "", zap.NewNop())

	_, err := svc.NotifyNewOrder(context.Background(), []string{"bad"}, &core.Order{ID: "o1"})
	assert.Error(t, err)
}

func TestNotifyNewOrder_NoTokens(t *testing.T) {
	fake := &fakeSender{}
	svc := newFCMService(fake, "", zap.NewNop())

	stale, err := svc.NotifyNewOrder(context.Background(), nil, &core.Order{ID: "o1"})
	assert.NoError(t, err)
	assert.Empty(t, stale)
	assert.Empty(t, fake.messages)
}

func TestNotifyTopic(t *testing.T) {
	fake := &fakeSender{}
	svc := newFCMService(fake, "", zap.NewNop())

	err := svc.NotifyTopic(context.Background(), TopicPolls, "Vote now", "Who was man of the match?", map[string]string{"poll_id": "p1"})
	require.NoError(t, err)
	require.Len(t, fake.messages, 1)
	assert.Equal(t, TopicPolls, fake.messages[0].Topic)
	assert.Empty(t, fake.messages[0].Token)
}

func TestBuildMessage_NoLink(t *testing.T) {
	svc := newFCMService(&fakeSender{}, "", zap.NewNop())
	msg := svc.buildMessage(&NotificationPayload{Title: "t", Body: "b", DeviceToken: "x"})
	assert.Nil(t, msg.Webpush.FCMOptions)
}

func TestSubscribeToTopic(t *testing.T) {
	tests := []struct {
		name    string
		tokens  []string
		want    []string
		wantErr error
	}{
		{"accepted", []string{"tok-1"}, []string{TopicPolls + "/tok-1"}, nil},
		{"partial failure is fine", []string{"tok-1", "bad"}, []string{TopicPolls + "/tok-1"}, nil},
		{"rejected token", []string{"bad"}, nil, core.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeSender{failFor: map[string]bool{"bad": true}}
			svc := newFCMService(fake, "", zap.NewNop())

			err := svc.SubscribeToTopic(context.Background(), tt.tokens, TopicPolls)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, fake.subscribed)
		})
	}

	t.Run("transport error", func(t *testing.T) {
		fake := &fakeSender{subErr: errors.New("unavailable")}
		svc := newFCMService(fake, "", zap.NewNop())
		assert.Error(t, svc.SubscribeToTopic(context.Background(), []string{"tok-1"}, TopicPolls))
	})
}
