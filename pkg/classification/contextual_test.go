package classification

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKoBertClassifier_Classify(t *testing.T) {
	tests := []struct {
		name           string
		logits         []float32
		wantLabel      int
		wantConfidence float64
	}{
		{
			name:           "neutral wins",
			logits:         []float32{2.0, -2.0},
			wantLabel:      LabelNeutral,
			wantConfidence: 0.982, // sigmoid(4) rounded to 4 digits
		},
		{
			name:           "abusive wins",
			logits:         []float32{-1.0, 3.0},
			wantLabel:      LabelAbusive,
			wantConfidence: 0.982,
		},
		{
			name:           "exact tie resolves to neutral",
			logits:         []float32{0.5, 0.5},
			wantLabel:      LabelNeutral,
			wantConfidence: 0.5,
		},
		{
			name:           "large logits stay in range",
			logits:         []float32{500, -500},
			wantLabel:      LabelNeutral,
			wantConfidence: 1.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &KoBertClassifier{infer: func(string) ([]float32, error) {
				return tt.logits, nil
			}}

			verdict, err := c.Classify("아무 문장")
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabel, verdict.Label)
			assert.InDelta(t, tt.wantConfidence, verdict.Confidence, 1e-9)
			assert.GreaterOrEqual(t, verdict.Confidence, 0.0)
			assert.LessOrEqual(t, verdict.Confidence, 1.0)
		})
	}
}

func TestKoBertClassifier_InferenceErrorPropagates(t *testing.T) {
	c := &KoBertClassifier{infer: func(string) ([]float32, error) {
		return nil, errors.New("device error")
	}}

	_, err := c.Classify("안녕하세요")
	require.Error(t, err, "an inference failure must never become a neutral verdict")
	assert.Contains(t, err.Error(), "contextual inference failed")
}

func TestKoBertClassifier_WrongLogitCount(t *testing.T) {
	c := &KoBertClassifier{infer: func(string) ([]float32, error) {
		return []float32{1.0}, nil
	}}

	_, err := c.Classify("안녕하세요")
	assert.Error(t, err)
}

func TestKoBertClassifier_Deterministic(t *testing.T) {
	c := &KoBertClassifier{infer: func(string) ([]float32, error) {
		return []float32{0.3, 1.7}, nil
	}}

	first, err := c.Classify("같은 입력")
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := c.Classify("같은 입력")
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestRoundConfidence(t *testing.T) {
	assert.Equal(t, 0.9123, RoundConfidence(0.91234))
	assert.Equal(t, 0.9124, RoundConfidence(0.91236))
	assert.Equal(t, 1.0, RoundConfidence(0.99999))
	assert.Equal(t, 0.0, RoundConfidence(0.00001))
}
