package notifier

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"
)

type slackPoster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

type SlackNotifier struct {
	api       slackPoster
	channelID string
}

func NewSlackNotifier(token, channelID string) *SlackNotifier {
	return &SlackNotifier{api: slack.New(token), channelID: channelID}
}

func (n *SlackNotifier) Notify(ctx context.Context, subject, body string) error {
	text := fmt.Sprintf("*%s*\n%s", subject, body)
	if _, _, err := n.api.PostMessageContext(ctx, n.channelID, slack.MsgOptionText(text, false)); err != nil {
		return fmt.Errorf("post slack message: %w", err)
	}
	return nil
}
