package challenge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/central-university-dev/go-bed-caller/internal/challenge"
)

func TestGenerate_Length(t *testing.T) {
	digits, answer, script := challenge.Generate()

	assert.Len(t, digits, challenge.Length)
	assert.Len(t, []rune(answer), challenge.Length)
	assert.Len(t, []rune(script), 11)
}

func TestGenerate_DigitsCharset(t *testing.T) {
	digits, _, _ := challenge.Generate()

	for _, c := range digits {
		assert.True(t, c == 'X' || (c >= '0' && c <= '9'), "неожиданный знак %q", c)
	}
}

func TestGenerate_AnswerMatchesDigits(t *testing.T) {
	digits, answer, script := challenge.Generate()

	glyphs := []rune(script)
	require.Len(t, glyphs, 11)

	answerRunes := []rune(answer)
	require.Len(t, answerRunes, len(digits))

	for i, c := range []byte(digits) {
		n := 10
		if c != 'X' {
			n = int(c - '0')
		}

		assert.Equal(t, glyphs[n], answerRunes[i], "позиция %d", i)
	}
}

func TestGenerate_ScriptIsKnown(t *testing.T) {
	known := []string{
		"零一二三四五六七八九十",
		"〇一二三四五六七八九十",
		"零壹贰叁肆伍陆柒捌玖拾",
		"洞幺两三四五六拐怕勾叉",
	}

	for i := 0; i < 20; i++ {
		_, _, script := challenge.Generate()

		found := false

		for _, s := range known {
			if script == s {
				found = true
				break
			}
		}

		assert.True(t, found, "неизвестный набор %q", script)
	}
}

func TestGenerate_Varies(t *testing.T) {
	seen := map[string]struct{}{}

	for i := 0; i < 10; i++ {
		_, answer, _ := challenge.Generate()
		seen[answer] = struct{}{}
	}

	// 30 случайных знаков: совпадение двух ответов практически невозможно.
	assert.Greater(t, len(seen), 1)
}
