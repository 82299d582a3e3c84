package kafka

import (
	"testing"
	"time"

	"github.com/cleankitchen-nyc/grading-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeToMessage(t *testing.T) {
	now := time.Date(2026, 3, 12, 15, 10, 0, 0, time.UTC)
	pred := domain.Prediction{
		Grade:         "A",
		Probabilities: map[string]float64{"A": 0.8, "B": 0.15, "C": 0.05},
		FeaturesUsed: domain.FeatureVector{
			Score:   12,
			Boro:    "Brooklyn",
			Zipcode: "11234",
		},
		PredictedAt: now,
	}

	msg, err := serializeToMessage(pred)
	require.NoError(t, err)

	assert.Equal(t, []byte("11234"), msg.Key)
	assert.Contains(t, string(msg.Value), `"grade":"A"`)
	assert.Len(t, msg.Headers, 2)
	assert.Equal(t, "grade", msg.Headers[0].Key)
	assert.Equal(t, []byte("A"), msg.Headers[0].Value)
	assert.Equal(t, "predicted_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(now.Format(time.RFC3339)), msg.Headers[1].Value)
}

func TestSerializeToMessage_SentinelZipKey(t *testing.T) {
	pred := domain.Prediction{
		Grade: "B",
		FeaturesUsed: domain.FeatureVector{
			Zipcode: domain.UnknownZip,
		},
	}

	msg, err := serializeToMessage(pred)
	require.NoError(t, err)
	assert.Equal(t, []byte("00000"), msg.Key)
}
