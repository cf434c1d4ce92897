package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/symposiumhq/symposium-api/internal/dto"
	"github.com/symposiumhq/symposium-api/internal/observability"
)

const launchFeedBufferSize = 16

// LaunchFeed fans launch events out to connected display clients. Events are
// bridged over NATS so every node sees launches performed on its peers.
type LaunchFeed interface {
	Publish(event dto.LaunchEvent)
	Subscribe() (<-chan dto.LaunchEvent, func())
	Start(ctx context.Context)
}

type launchFeed struct {
	nats        *nats.Conn
	natsSubject string
	logger      zerolog.Logger
	broker      *launchBroker
	nodeID      string
}

type launchFeedEnvelope struct {
	Source string          `json:"source"`
	Event  dto.LaunchEvent `json:"event"`
	SentAt time.Time       `json:"sent_at"`
}

type launchBroker struct {
	mu          sync.RWMutex
	subscribers map[chan dto.LaunchEvent]struct{}
}

// NewLaunchFeed constructs the launch event fanout.
func NewLaunchFeed(natsConn *nats.Conn, channelBase string, logger zerolog.Logger) LaunchFeed {
	subject := ""
	if channelBase != "" {
		subject = channelBase + ".launches"
	}

	return &launchFeed{
		nats:        natsConn,
		natsSubject: subject,
		logger:      logger.With().Str("component", "launch_feed").Logger(),
		broker: &launchBroker{
			subscribers: make(map[chan dto.LaunchEvent]struct{}),
		},
		nodeID: uuid.NewString(),
	}
}

func (f *launchFeed) Start(ctx context.Context) {
	if f.nats == nil || f.natsSubject == "" {
		return
	}

	sub, err := f.nats.Subscribe(f.natsSubject, func(msg *nats.Msg) {
		f.handleEvent(msg.Data)
	})
	if err != nil {
		f.logger.Error().Err(err).Msg("failed to subscribe to launch subject")
		return
	}

	go func() {
		<-ctx.Done()
		if err := sub.Drain(); err != nil && !errors.Is(err, nats.ErrConnectionClosed) {
			f.logger.Warn().Err(err).Msg("failed to drain launch subscription")
		}
	}()
}

func (f *launchFeed) Publish(event dto.LaunchEvent) {
	if event.SentAt.IsZero() {
		event.SentAt = time.Now().UTC()
	}

	f.broker.broadcast(event)
	observability.LaunchEventsTotal().WithLabelValues(event.Type).Inc()

	if f.nats == nil || f.natsSubject == "" {
		return
	}

	envelope := launchFeedEnvelope{
		Source: f.nodeID,
		Event:  event,
		SentAt: time.Now().UTC(),
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		f.logger.Warn().Err(err).Msg("failed to encode launch event")
		return
	}
	if err := f.nats.Publish(f.natsSubject, payload); err != nil {
		f.logger.Warn().Err(err).Msg("failed to publish launch event")
	}
}

func (f *launchFeed) Subscribe() (<-chan dto.LaunchEvent, func()) {
	channel := make(chan dto.LaunchEvent, launchFeedBufferSize)

	f.broker.subscribe(channel)
	observability.LaunchClientsActive().Inc()

	cleanup := func() {
		f.broker.unsubscribe(channel)
		observability.LaunchClientsActive().Dec()
	}

	return channel, cleanup
}

func (f *launchFeed) handleEvent(payload []byte) {
	var envelope launchFeedEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		f.logger.Warn().Err(err).Msg("invalid launch event payload")
		return
	}

	if envelope.Source == f.nodeID {
		return
	}

	observability.LaunchEventsTotal().WithLabelValues(envelope.Event.Type).Inc()
	f.broker.broadcast(envelope.Event)
}

func (b *launchBroker) subscribe(ch chan dto.LaunchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[ch] = struct{}{}
}

func (b *launchBroker) unsubscribe(ch chan dto.LaunchEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
}

func (b *launchBroker) broadcast(event dto.LaunchEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}
