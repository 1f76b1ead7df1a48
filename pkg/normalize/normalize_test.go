package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	n, err := New(nil)
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain hangul untouched", "안녕하세요", "안녕하세요"},
		{"punctuation removed", "안녕!!하세요?", "안녕하세요"},
		{"latin removed", "hello안녕world", "안녕"},
		{"emoji removed", "안녕😀하세요", "안녕하세요"},
		{"digits kept", "방123번", "방123번"},
		{"whitespace kept", "안녕 하세요\n반가워", "안녕 하세요\n반가워"},
		{"jamo kept", "ㅋㅋㅋ ㅎㅎ", "ㅋㅋㅋ ㅎㅎ"},
		{"cjk kept", "漢字그리고한글", "漢字그리고한글"},
		{"symbols interleaved in word", "바@보", "바보"},
		{"empty input", "", ""},
		{"only disallowed runes", "hello, world!", " "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Normalize(tt.input))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	n, err := New(nil)
	require.NoError(t, err)

	inputs := []string{"안녕하세요", "바@보!!", "abc가나다123", "😀ㅋㅋ", ""}
	for _, in := range inputs {
		once := n.Normalize(in)
		assert.Equal(t, once, n.Normalize(once), "normalize must be idempotent for %q", in)
	}
}

func TestNew_ScriptSelection(t *testing.T) {
	n, err := New([]string{ScriptHangul})
	require.NoError(t, err)

	// Jamo and digits are outside the restricted allow-list.
	assert.Equal(t, "안녕", n.Normalize("안녕ㅋㅋ123"))
}

func TestNew_UnknownScript(t *testing.T) {
	_, err := New([]string{"klingon"})
	assert.Error(t, err)
}
