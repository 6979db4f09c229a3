// internal/core/domain/setups/symbol.go
package setups

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Значения по умолчанию для котируемых валют
var (
	DefaultQuoteSuffixes = []string{"USDT", "USD", "BUSD"}
	DefaultQuoteSuffix   = "USDT"
)

// Normalizer приводит символы из таблиц к виду биржи (BTCUSDT)
type Normalizer struct {
	suffixes      []string
	defaultSuffix string
}

// NewNormalizer создает нормализатор. Пустые параметры заменяются значениями по умолчанию.
func NewNormalizer(suffixes []string, defaultSuffix string) *Normalizer {
	cleaned := make([]string, 0, len(suffixes))
	for _, s := range suffixes {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		cleaned = append(cleaned, DefaultQuoteSuffixes...)
	}

	defaultSuffix = strings.ToUpper(strings.TrimSpace(defaultSuffix))
	if defaultSuffix == "" {
		defaultSuffix = DefaultQuoteSuffix
	}

	return &Normalizer{suffixes: cleaned, defaultSuffix: defaultSuffix}
}

// NormalizeSymbol убирает диакритику и пробелы, переводит в верхний регистр
// и дописывает котируемую валюту, если ее нет. Пустой ввод дает пустую строку.
func (n *Normalizer) NormalizeSymbol(raw string) string {
	symbol := StripSymbol(raw)
	if symbol == "" {
		return ""
	}

	for _, suffix := range n.suffixes {
		if strings.HasSuffix(symbol, suffix) {
			return symbol
		}
	}
	return symbol + n.defaultSuffix
}

// StripSymbol - верхний регистр, без диакритики и без пробельных символов
func StripSymbol(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}

	stripped, _, err := transform.String(diacriticsRemover(), strings.ToUpper(text))
	if err != nil {
		stripped = strings.ToUpper(text)
	}

	return strings.Join(strings.Fields(stripped), "")
}

// diacriticsRemover - transform.Transformer не потокобезопасен, создаем на каждый вызов
func diacriticsRemover() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
