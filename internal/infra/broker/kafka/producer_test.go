package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProducerConfigIsValid(t *testing.T) {
	cfg := producerConfig(nil)
	require.NoError(t, cfg.Validate())

	assert.True(t, cfg.Producer.Idempotent)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.True(t, cfg.Version.IsAtLeast(sarama.V0_11_0_0))
}

func TestProducerConfigPinsCallerConfig(t *testing.T) {
	base := sarama.NewConfig()
	base.ClientID = "villadesk-outbox"
	// Settings incompatible with idempotent publishing get corrected.
	base.Net.MaxOpenRequests = 5
	base.Producer.RequiredAcks = sarama.WaitForLocal

	cfg := producerConfig(base)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "villadesk-outbox", cfg.ClientID)
	assert.Equal(t, 1, cfg.Net.MaxOpenRequests)
	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
}
