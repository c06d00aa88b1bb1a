package speech

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"echoverse/internal/logger"
)

// Envelope is the wire form delivered to speech sinks. Type is "speak" or
// "cancel"; the remaining fields are set only for speak commands.
type Envelope struct {
	Type      string `json:"type"`
	Text      string `json:"text,omitempty"`
	LangCode  string `json:"lang_code,omitempty"`
	VoiceHint string `json:"voice_hint,omitempty"`
}

const (
	EnvelopeSpeak  = "speak"
	EnvelopeCancel = "cancel"
)

// Port is an in-process pub/sub implementation of Output. Speech sinks (the
// websocket bridge) subscribe to the topic and forward envelopes to the
// browser synthesis engine.
type Port struct {
	pubSub *gochannel.GoChannel
	topic  string
	logger logger.Logger
}

// NewPort creates the speech command port. Publishing blocks until every
// attached sink acks, which keeps envelopes in submit order end-to-end: the
// broker otherwise hands each message to subscribers on its own goroutine
// and a cancel can overtake the speak it follows. With no sink attached,
// publishing returns immediately and the envelope is dropped.
func NewPort(topic string, bufferSize int, log logger.Logger) *Port {
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{
			OutputChannelBuffer:            int64(bufferSize),
			BlockPublishUntilSubscriberAck: true,
		},
		watermill.NopLogger{},
	)
	return &Port{
		pubSub: pubSub,
		topic:  topic,
		logger: log,
	}
}

// Submit publishes a speak command. Delivery to the sinks is the terminal
// success signal from the core's perspective; no completion or progress
// flows back.
func (p *Port) Submit(ctx context.Context, req Request) error {
	return p.publish(ctx, Envelope{
		Type:      EnvelopeSpeak,
		Text:      req.Text,
		LangCode:  req.LangCode,
		VoiceHint: req.VoiceHint,
	})
}

// Cancel publishes a cancel command for any in-flight narration.
func (p *Port) Cancel(ctx context.Context) error {
	return p.publish(ctx, Envelope{Type: EnvelopeCancel})
}

func (p *Port) publish(ctx context.Context, env Envelope) error {
	payload, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("marshal speech envelope: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.pubSub.Publish(p.topic, msg); err != nil {
		return fmt.Errorf("publish speech command: %w", err)
	}

	p.logger.Debug(ctx, "Speech command published: %s", env.Type)
	return nil
}

// Subscribe attaches a speech sink. Each subscriber receives every envelope
// published after it attaches and must ack each message promptly since
// publishing blocks until it does.
func (p *Port) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	return p.pubSub.Subscribe(ctx, p.topic)
}

// Close shuts the port down, closing all subscriber channels.
func (p *Port) Close() error {
	return p.pubSub.Close()
}
