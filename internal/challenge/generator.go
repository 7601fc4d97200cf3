package challenge

import (
	"math/rand"
	"strings"
)

// Length — количество знаков в проверочной последовательности.
const Length = 30

// Наборы символов для ответа: по одному знаку на каждое значение 0–10.
var scripts = []string{
	"零一二三四五六七八九十",
	"〇一二三四五六七八九十",
	"零壹贰叁肆伍陆柒捌玖拾",
	"洞幺两三四五六拐怕勾叉",
}

// Generate выдаёт последовательность из Length значений 0–10 (10 отображается
// как "X"), ожидаемый ответ в случайно выбранном наборе символов и сам набор.
// Ответ сверяется побайтово, без нормализации.
func Generate() (digits, answer, script string) {
	glyphs := []rune(scripts[rand.Intn(len(scripts))])

	var d, a strings.Builder

	for i := 0; i < Length; i++ {
		n := rand.Intn(11)
		if n == 10 {
			d.WriteByte('X')
		} else {
			d.WriteByte(byte('0' + n))
		}

		a.WriteRune(glyphs[n])
	}

	return d.String(), a.String(), string(glyphs)
}
