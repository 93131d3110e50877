package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/pkg/errors"

	"github.com/bft-labs/graphitepush/internal/domain"
	"github.com/bft-labs/graphitepush/internal/ports"
)

const eventsEndpoint = "events"

// EventsURL returns the events endpoint under baseURL.
func EventsURL(baseURL string) string {
	return strings.TrimRight(baseURL, "/") + "/" + eventsEndpoint
}

// EventSender implements ports.EventSender by posting JSON documents.
type EventSender struct {
	client ports.HTTPClient
	url    string
}

// NewEventSender creates a sender posting to EventsURL(baseURL).
func NewEventSender(client ports.HTTPClient, baseURL string) *EventSender {
	return &EventSender{
		client: client,
		url:    EventsURL(baseURL),
	}
}

// Send posts event and checks for a 2xx answer.
func (s *EventSender) Send(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return errors.Wrap(err, "send request")
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return errors.Wrapf(domain.ErrUnexpectedStatus, "server returned %d: %s", resp.StatusCode, string(respBody))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
