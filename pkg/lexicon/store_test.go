package lexicon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTermFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "terms.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeTermFile(t, "바보,noun,mild\n멍청이\n\n바보,duplicate line\n  ,blank term\n쓰레기,insult\n")

	store, err := Load(path)
	require.NoError(t, err)

	// Blank lines, blank terms, and duplicates collapse; metadata past the
	// first comma is ignored.
	assert.Equal(t, 3, store.Len())
	assert.Equal(t, []string{"멍청이", "바보"}, store.Match("멍청이 같은 바보"))
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	require.Error(t, err, "a missing term file must fail startup, never fall back to an empty set")
}

func TestLoad_EmptyFile(t *testing.T) {
	store, err := Load(writeTermFile(t, ""))
	require.NoError(t, err)
	assert.Equal(t, 0, store.Len())
}

func TestMatch(t *testing.T) {
	store := NewStore([]string{"바보", "멍청이", "쓰레기"})

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"single term", "너는 바보야", []string{"바보"}},
		{"multiple terms sorted", "쓰레기 바보", []string{"바보", "쓰레기"}},
		{"embedded in compound word", "왕바보들", []string{"바보"}},
		{"no match", "안녕하세요", nil},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.Match(tt.text))
		})
	}
}

func TestMatch_Deterministic(t *testing.T) {
	store := NewStore([]string{"쓰레기", "바보", "멍청이"})
	first := store.Match("바보 멍청이 쓰레기")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, store.Match("바보 멍청이 쓰레기"))
	}
}

func TestContainsAny(t *testing.T) {
	store := NewStore([]string{"바보"})
	assert.True(t, store.ContainsAny("완전 바보네"))
	assert.False(t, store.ContainsAny("안녕하세요"))
	assert.False(t, store.ContainsAny(""))
}
