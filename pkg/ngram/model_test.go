package ngram

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func trainingSamples() []Sample {
	return []Sample{
		{Text: "바보 같은 녀석", Label: 1},
		{Text: "진짜 쓰레기 수준", Label: 1},
		{Text: "바보 멍청이", Label: 1},
		{Text: "오늘 날씨 좋다", Label: 0},
		{Text: "점심 뭐 먹을까", Label: 0},
		{Text: "내일 회의 있어요", Label: 0},
	}
}

func TestTrainAndPredict(t *testing.T) {
	model, err := Train(trainingSamples(), TrainOptions{})
	require.NoError(t, err)

	label, conf := model.Predict("바보 같은 소리")
	assert.Equal(t, 1, label)
	assert.Greater(t, conf, 0.5)
	assert.LessOrEqual(t, conf, 1.0)

	label, conf = model.Predict("오늘 점심 뭐 먹을까")
	assert.Equal(t, 0, label)
	assert.Greater(t, conf, 0.5)
}

func TestTrain_RequiresBothClasses(t *testing.T) {
	_, err := Train([]Sample{{Text: "바보", Label: 1}}, TrainOptions{})
	assert.Error(t, err)
}

func TestTrain_RejectsBadLabel(t *testing.T) {
	_, err := Train([]Sample{{Text: "a", Label: 2}, {Text: "b", Label: 0}}, TrainOptions{})
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	model, err := Train(trainingSamples(), TrainOptions{NgramSize: 2})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "model.json")
	require.NoError(t, model.Save(path))

	loaded, err := LoadModel(path)
	require.NoError(t, err)

	wantLabel, wantConf := model.Predict("바보 멍청이")
	gotLabel, gotConf := loaded.Predict("바보 멍청이")
	assert.Equal(t, wantLabel, gotLabel)
	assert.Equal(t, wantConf, gotConf)
}

func TestTopTerms(t *testing.T) {
	model, err := Train(trainingSamples(), TrainOptions{})
	require.NoError(t, err)

	terms := model.TopTerms(3)
	assert.Len(t, terms, 3)
	assert.Contains(t, terms, "바보", "a term seen only in abusive samples should rank high")
	for _, term := range terms {
		assert.NotContains(t, term, " ", "only unigrams are term-list candidates")
	}
}

func TestNgrams(t *testing.T) {
	assert.Equal(t,
		[]string{"a", "b", "c", "a b", "b c"},
		Ngrams("a b c", 2))
	assert.Empty(t, Ngrams("", 2))
	assert.Equal(t, []string{"a"}, Ngrams("a", 3))
}
