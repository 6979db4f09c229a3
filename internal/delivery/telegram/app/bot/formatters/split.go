// internal/delivery/telegram/app/bot/formatters/split.go
package formatters

import (
	"strings"
	"unicode/utf16"
)

// DefaultChunkLimit безопасный предел длины сообщения Telegram (жесткий предел 4096)
const DefaultChunkLimit = 4000

// SmartSplit делит текст на части не длиннее limit, разрезая только по переводу строки.
// Каждая часть заканчивается "\n". Частей из одних пробельных символов не бывает.
// Строка длиннее limit уходит отдельной частью целиком.
// Длина считается в единицах UTF-16, как ее считает Telegram.
func SmartSplit(text string, limit int) []string {
	if limit <= 0 {
		limit = DefaultChunkLimit
	}
	text = strings.TrimRight(text, "\n")
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		chunks     []string
		current    strings.Builder
		currentLen int
	)

	flush := func() {
		if currentLen > 0 {
			if chunk := current.String(); strings.TrimSpace(chunk) != "" {
				chunks = append(chunks, chunk)
			}
			current.Reset()
			currentLen = 0
		}
	}

	for _, line := range strings.Split(text, "\n") {
		lineLen := utf16Len(line) + 1
		if currentLen+lineLen > limit {
			flush()
		}
		current.WriteString(line)
		current.WriteString("\n")
		currentLen += lineLen
	}
	flush()

	return chunks
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
