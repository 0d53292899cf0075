// Package telegram delivers landlord-facing alerts through a Telegram bot.
// The channel is optional; the scheduler uses it to summarize reminder runs.
package telegram

import (
	"time"

	"gopkg.in/telebot.v3"
)

// Alerter sends short operational notes to the landlord's chat.
type Alerter interface {
	Alert(text string) error
}

// TelebotAlerter implements Alerter using the gopkg.in/telebot.v3 library.
type TelebotAlerter struct {
	bot    *telebot.Bot
	chatID int64
}

func NewTelebotAlerter(token string, chatID int64) (*TelebotAlerter, error) {
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  token,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		return nil, err
	}
	return &TelebotAlerter{bot: bot, chatID: chatID}, nil
}

// Alert sends a plain text message to the configured chat.
func (a *TelebotAlerter) Alert(text string) error {
	_, err := a.bot.Send(&telebot.User{ID: a.chatID}, text, &telebot.SendOptions{})
	return err
}
