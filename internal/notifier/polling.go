package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

type telegramUpdate struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// PollInterval is the pause after a failed poll.
var PollInterval = 5 * time.Second

// StartPolling long-polls getUpdates and answers commands from the configured
// chat through r. Messages from other chats are ignored. Blocks until ctx is
// cancelled.
func (t *TelegramNotifier) StartPolling(ctx context.Context, r *Router) {
	client := &http.Client{Timeout: 35 * time.Second, Transport: t.Client.Transport}
	offset := 0
	for ctx.Err() == nil {
		updates, err := t.getUpdates(ctx, client, offset)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			t.log.Warnf("telegram poll: %v", err)
			select {
			case <-ctx.Done():
			case <-time.After(PollInterval):
			}
			continue
		}
		for _, u := range updates {
			offset = u.UpdateID + 1
			t.answer(ctx, r, u)
		}
	}
	t.log.Info("telegram polling stopped")
}

func (t *TelegramNotifier) getUpdates(ctx context.Context, client *http.Client, offset int) ([]telegramUpdate, error) {
	apiURL := fmt.Sprintf("%s?offset=%d&timeout=30", t.method("getUpdates"), offset)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "request")
	}
	defer resp.Body.Close()

	var result struct {
		OK          bool             `json:"ok"`
		Description string           `json:"description"`
		Result      []telegramUpdate `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, errors.Wrapf(err, "decode response (status %d)", resp.StatusCode)
	}
	if !result.OK {
		return nil, errors.Errorf("telegram API error: %s", result.Description)
	}
	return result.Result, nil
}

func (t *TelegramNotifier) answer(ctx context.Context, r *Router, u telegramUpdate) {
	if u.Message == nil || u.Message.Text == "" {
		return
	}
	if chat := strconv.FormatInt(u.Message.Chat.ID, 10); t.ChatID != "" && chat != t.ChatID {
		t.log.Warnf("ignoring message from chat %s", chat)
		return
	}
	t.log.Infof("received command: %s", u.Message.Text)
	reply := r.Dispatch(ctx, u.Message.Text)
	if reply == "" {
		return
	}
	if err := t.Send(ctx, reply); err != nil {
		t.log.Errorf("send reply: %v", err)
	}
}
