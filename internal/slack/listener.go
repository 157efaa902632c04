// Package slack receives mention events over Socket Mode and turns them
// into automation runs, replying in-thread with whatever the run produced.
package slack

import (
	"context"
	"strings"
	"sync"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"
	"go.uber.org/zap"

	"github.com/clintrovert/actionagent/internal/classifier"
	"github.com/clintrovert/actionagent/pkg/types"
)

// Runner executes one automation run per message.
type Runner interface {
	Run(ctx context.Context, msg *types.IncomingMessage) *types.AutomationResult
}

// poster is the slice of the Slack client used to send replies.
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Listener connects to Slack over Socket Mode and handles mention events.
// Each event is processed synchronously; a failed run never takes the
// listener down.
type Listener struct {
	api       *slack.Client
	poster    poster
	socket    *socketmode.Client
	runner    Runner
	logger    *zap.Logger
	botUserID string

	mu        sync.Mutex
	processed map[string]bool
}

// NewListener creates a new Slack listener
func NewListener(botToken, appToken, botUserID string, runner Runner, logger *zap.Logger) *Listener {
	api := slack.New(botToken, slack.OptionAppLevelToken(appToken))

	return &Listener{
		api:       api,
		poster:    api,
		socket:    socketmode.New(api),
		runner:    runner,
		logger:    logger,
		botUserID: botUserID,
		processed: make(map[string]bool),
	}
}

// Run connects to Slack and blocks until the context is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	if l.botUserID == "" {
		resp, err := l.api.AuthTestContext(ctx)
		if err != nil {
			return err
		}
		l.botUserID = resp.UserID
		l.logger.Info("resolved bot user id", zap.String("bot_user_id", l.botUserID))
	}

	go l.handleEvents(ctx)
	return l.socket.RunContext(ctx)
}

func (l *Listener) handleEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("stopping slack listener")
			return
		case evt := <-l.socket.Events:
			switch evt.Type {
			case socketmode.EventTypeConnecting:
				l.logger.Info("connecting to slack socket mode")
			case socketmode.EventTypeConnectionError:
				l.logger.Warn("slack connection failed, retrying")
			case socketmode.EventTypeConnected:
				l.logger.Info("connected to slack socket mode")
			case socketmode.EventTypeEventsAPI:
				eventsAPIEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					l.socket.Ack(*evt.Request)
				}
				l.handleEventsAPI(ctx, eventsAPIEvent)
			}
		}
	}
}

func (l *Listener) handleEventsAPI(ctx context.Context, event slackevents.EventsAPIEvent) {
	if event.Type != slackevents.CallbackEvent {
		return
	}

	switch ev := event.InnerEvent.Data.(type) {
	case *slackevents.AppMentionEvent:
		l.process(ctx, &types.IncomingMessage{
			Text:      ev.Text,
			ChannelID: ev.Channel,
			UserID:    ev.User,
			Timestamp: ev.TimeStamp,
		}, ev.TimeStamp)
	case *slackevents.MessageEvent:
		if ev.BotID != "" || ev.SubType != "" || ev.User == l.botUserID {
			return
		}
		if !isMention(ev.Text, l.botUserID) {
			return
		}
		// The same message also arrives as app_mention; keying the dedupe
		// set on the message timestamp collapses the two deliveries.
		id := ev.TimeStamp
		if id == "" {
			id = ev.ClientMsgID
		}
		l.process(ctx, &types.IncomingMessage{
			Text:      ev.Text,
			ChannelID: ev.Channel,
			UserID:    ev.User,
			Timestamp: ev.TimeStamp,
		}, id)
	}
}

// process runs the automation for one message and posts the reply. The
// mention arrives both as app_mention and message.channels, so the shared
// dedupe key keeps one event from running twice.
func (l *Listener) process(ctx context.Context, msg *types.IncomingMessage, id string) {
	if l.alreadyProcessed(id) {
		l.logger.Debug("message already processed", zap.String("id", id))
		return
	}

	// Do not engage at all when the message carries no action item; an
	// acknowledgment followed by silence reads like a failure.
	if c := classifier.Classify(msg.Text); c.IssueType == types.IssueTypeNone {
		l.logger.Debug("ignoring message without trigger keywords",
			zap.String("channel", msg.ChannelID),
		)
		return
	}

	l.logger.Info("processing mention",
		zap.String("channel", msg.ChannelID),
		zap.String("user", msg.UserID),
	)

	l.post(ctx, msg.ChannelID, msg.Timestamp, ackMessage)

	result := l.runner.Run(ctx, msg)
	if result.Aborted {
		return
	}

	l.post(ctx, msg.ChannelID, msg.Timestamp, FormatResult(result))
}

func (l *Listener) post(ctx context.Context, channel, threadTS, text string) {
	_, _, err := l.poster.PostMessageContext(ctx, channel,
		slack.MsgOptionText(text, false),
		slack.MsgOptionTS(threadTS),
	)
	if err != nil {
		l.logger.Error("failed to post slack message",
			zap.String("channel", channel),
			zap.Error(err),
		)
	}
}

// alreadyProcessed reports whether the id was seen before and marks it.
// The set lives in process memory only: replaying an event after a restart
// creates a second ticket.
func (l *Listener) alreadyProcessed(id string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.processed[id] {
		return true
	}
	l.processed[id] = true
	return false
}

func isMention(text, botUserID string) bool {
	return strings.Contains(text, "<@"+botUserID+">")
}
