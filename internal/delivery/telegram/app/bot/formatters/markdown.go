// internal/delivery/telegram/app/bot/formatters/markdown.go
package formatters

import (
	"net/url"
	"strings"
)

// legacy Markdown Telegram: экранируются только эти символы
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown экранирует произвольный текст из CSV
func EscapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

// ChartURL возвращает ссылку, пригодную для [текст](url), или "" если ее нельзя вставить
func ChartURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.ContainsAny(raw, ") \t\n") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return ""
	}
	return raw
}
