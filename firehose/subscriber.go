// Package firehose subscribes to a Jetstream endpoint and delivers post
// events to a handler.
package firehose

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/gorilla/websocket"

	"github.com/dmoggles/blueskysocial/bluesky"
	"github.com/dmoggles/blueskysocial/post"
)

// DefaultURL is the public Jetstream endpoint used when no URL is given.
const DefaultURL = "wss://jetstream1.us-east.bsky.network/subscribe"

const reconnectDelay = 5 * time.Second

// wantedCollections is the set of AT Proto collection NSIDs this subscriber
// requests from Jetstream. Only post events are needed.
var wantedCollections = []string{
	bluesky.PostCollection,
}

// Event is a post-related commit received from the firehose.
type Event struct {
	DID       string
	TimeUS    int64
	Operation string
	URI       string
	CID       string
	Record    *post.Record
}

// Handler processes a single firehose event. Returning an error logs the
// failure without stopping the subscription.
type Handler func(ctx context.Context, event *Event) error

// Subscriber connects to the Jetstream firehose and dispatches post events.
type Subscriber struct {
	url     string
	handler Handler
	logger  *slog.Logger
}

// NewSubscriber creates a subscriber for the given Jetstream URL. An empty
// URL selects DefaultURL.
func NewSubscriber(firehoseURL string, handler Handler, logger *slog.Logger) *Subscriber {
	if firehoseURL == "" {
		firehoseURL = DefaultURL
	}
	return &Subscriber{
		url:     firehoseURL,
		handler: handler,
		logger:  logger,
	}
}

// Start connects to the firehose and processes events until the context is
// cancelled. It automatically reconnects on transient errors.
func (s *Subscriber) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if err := s.subscribe(ctx); err != nil {
				s.logger.Error("firehose connection error, reconnecting", "error", err)
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(reconnectDelay):
					// backoff before reconnecting
				}
			}
		}
	}
}

func (s *Subscriber) buildURL() string {
	u, _ := url.Parse(s.url)
	q := u.Query()
	for _, c := range wantedCollections {
		q.Add("wantedCollections", c)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func (s *Subscriber) subscribe(ctx context.Context) error {
	wsURL := s.buildURL()
	s.logger.Info("connecting to firehose", "url", wsURL)

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial firehose: %w", err)
	}
	defer conn.Close()

	s.logger.Info("connected to firehose")

	var eventsReceived, postsDispatched int64
	lastStatsLog := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read message: %w", err)
		}

		event, err := parseEvent(message)
		if err != nil {
			s.logger.Error("failed to parse event", "error", err)
			continue
		}

		eventsReceived++

		if event != nil {
			if err := s.handler(ctx, event); err != nil {
				s.logger.Error("failed to handle event", "error", err, "uri", event.URI)
			} else {
				postsDispatched++
			}
		}

		if time.Since(lastStatsLog) >= 30*time.Second {
			s.logger.Info("firehose stats",
				"events_received", eventsReceived,
				"posts_dispatched", postsDispatched,
			)
			lastStatsLog = time.Now()
		}
	}
}

// parseEvent decodes a raw Jetstream message. It returns nil for events that
// are not post commits.
func parseEvent(data []byte) (*Event, error) {
	var raw struct {
		DID    string          `json:"did"`
		TimeUS int64           `json:"time_us"`
		Kind   string          `json:"kind"`
		Commit json.RawMessage `json:"commit,omitempty"`
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("unmarshal event: %w", err)
	}

	if raw.Kind != "commit" || len(raw.Commit) == 0 {
		return nil, nil
	}

	var commit struct {
		Operation  string          `json:"operation"`
		Collection string          `json:"collection"`
		RKey       string          `json:"rkey"`
		Record     json.RawMessage `json:"record,omitempty"`
		CID        string          `json:"cid"`
	}
	if err := json.Unmarshal(raw.Commit, &commit); err != nil {
		return nil, fmt.Errorf("unmarshal commit: %w", err)
	}

	if commit.Collection != bluesky.PostCollection {
		return nil, nil
	}

	event := &Event{
		DID:       raw.DID,
		TimeUS:    raw.TimeUS,
		Operation: commit.Operation,
		URI:       fmt.Sprintf("at://%s/%s/%s", raw.DID, commit.Collection, commit.RKey),
		CID:       commit.CID,
	}

	if len(commit.Record) > 0 {
		var record post.Record
		if err := json.Unmarshal(commit.Record, &record); err != nil {
			return nil, fmt.Errorf("unmarshal post record: %w", err)
		}
		event.Record = &record
	}

	return event, nil
}
