package outbox

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopicRouting(t *testing.T) {
	w := &Worker{}
	assert.Equal(t, "bookings.events.v1", w.topicFor("booking.created"))
	assert.Equal(t, "bookings.events.v1", w.topicFor("booking.confirmation_sent"))
	assert.Equal(t, "villas.events.v1", w.topicFor("villa.updated"))
	assert.Equal(t, "user.events.v1", w.topicFor("user.blocked"))

	prefixed := &Worker{TopicPrefix: "staging."}
	assert.Equal(t, "staging.bookings.events.v1", prefixed.topicFor("booking.deleted"))
}

func TestFormatPayloadWrapsCloudEvent(t *testing.T) {
	w := &Worker{Source: "app://villadesk-test"}
	occurred := time.Date(2024, 6, 3, 12, 0, 0, 0, time.UTC)
	doc := &EventDocument{
		ID:         "evt-1",
		Name:       "booking.created",
		Aggregate:  "b-1",
		OccurredAt: occurred,
		Payload:    []byte(`{"booking_id":"b-1","total":"3000.00"}`),
		Headers:    map[string]string{"traceparent": "00-abc-def-01"},
	}

	payload, headers, err := w.formatPayload(doc)
	require.NoError(t, err)
	assert.Equal(t, "application/cloudevents+json", headers["content-type"])
	assert.Equal(t, "00-abc-def-01", headers["traceparent"])

	var evt map[string]any
	require.NoError(t, json.Unmarshal(payload, &evt))
	assert.Equal(t, "1.0", evt["specversion"])
	assert.Equal(t, "booking.created.v1", evt["type"])
	assert.Equal(t, "app://villadesk-test", evt["source"])
	assert.Equal(t, "b-1", evt["subject"])
	assert.Equal(t, "00-abc-def-01", evt["traceparent"])
	data, ok := evt["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "b-1", data["booking_id"])
}

func TestFormatPayloadRejectsGarbage(t *testing.T) {
	w := &Worker{}
	_, _, err := w.formatPayload(&EventDocument{Payload: []byte("not json")})
	assert.Error(t, err)
}
