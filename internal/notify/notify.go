// Package notify delivers gamification events to the configured channels.
// Delivery is best effort; callers surface failures as warnings, never as
// operation errors.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gojek/heimdall/v7/httpclient"
	tele "gopkg.in/telebot.v3"
)

// NotifierLog writes notifications to the process log. The default channel
// when nothing else is configured.
type NotifierLog struct{}

func NewNotifierLog() *NotifierLog {
	return &NotifierLog{}
}

func (NotifierLog) SendNotification(ctx context.Context, channel string, payload map[string]any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	log.Printf("notify [%s] %s", channel, b)
	return nil
}

// NotifierWebhook posts notifications to an HTTP endpoint with retries.
type NotifierWebhook struct {
	client *httpclient.Client
	url    string
}

func NewNotifierWebhook(url string) *NotifierWebhook {
	client := httpclient.NewClient(
		httpclient.WithHTTPTimeout(10*time.Second),
		httpclient.WithRetryCount(2),
	)
	return &NotifierWebhook{client: client, url: url}
}

func (n *NotifierWebhook) SendNotification(ctx context.Context, channel string, payload map[string]any) error {
	body := map[string]any{
		"channel": channel,
		"payload": payload,
		"sent_at": time.Now().Format(time.RFC3339),
	}
	b, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.url, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return fmt.Errorf("webhook returned %d", res.StatusCode)
	}
	return nil
}

// NotifierTelegram pushes notifications to a telegram chat.
type NotifierTelegram struct {
	bot    *tele.Bot
	chatID int64
}

func NewNotifierTelegram(token string, chatID int64) (*NotifierTelegram, error) {
	bot, err := tele.NewBot(tele.Settings{
		Token:  token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &NotifierTelegram{bot: bot, chatID: chatID}, nil
}

func (n *NotifierTelegram) SendNotification(ctx context.Context, channel string, payload map[string]any) error {
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	_, err = n.bot.Send(&tele.Chat{ID: n.chatID}, fmt.Sprintf("[%s]\n%s", channel, b))
	return err
}
