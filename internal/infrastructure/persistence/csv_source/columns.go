// internal/infrastructure/persistence/csv_source/columns.go
package csv_source

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Канонические колонки таблицы
const (
	ColumnSymbol    = "symbol"
	ColumnStatus    = "status"
	ColumnEntry     = "entry"
	ColumnDirection = "direction"
	ColumnChart     = "chart"
	ColumnSetup     = "setup"
	ColumnRisk      = "risk"
)

var canonicalColumns = []string{
	ColumnSymbol, ColumnStatus, ColumnEntry, ColumnDirection, ColumnChart, ColumnSetup, ColumnRisk,
}

// ColumnAliases: каноническая колонка -> варианты заголовков в таблицах
type ColumnAliases map[string][]string

// DefaultColumnAliases заголовки, которые встречаются в рабочих таблицах
func DefaultColumnAliases() ColumnAliases {
	return ColumnAliases{
		ColumnSymbol:    {"Activo", "CRYPTO", "Crypto"},
		ColumnStatus:    {"Estado"},
		ColumnEntry:     {"Entry", "Precio"},
		ColumnDirection: {"Trade", "OPERACION", "Operación"},
		ColumnChart:     {"Análisis técnico/CHART", "GRAFICA", "link"},
		ColumnSetup:     {"Setup"},
		ColumnRisk:      {"Risk"},
	}
}

// LoadColumnAliases читает YAML вида `symbol: [Activo, CRYPTO]`.
// Колонки, которых нет в файле, берутся из значений по умолчанию.
func LoadColumnAliases(path string) (ColumnAliases, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read columns file: %w", err)
	}

	var fromFile map[string][]string
	if err := yaml.Unmarshal(data, &fromFile); err != nil {
		return nil, fmt.Errorf("failed to parse columns file %s: %w", path, err)
	}

	aliases := DefaultColumnAliases()
	for column, names := range fromFile {
		column = strings.ToLower(strings.TrimSpace(column))
		if !isCanonical(column) {
			return nil, fmt.Errorf("unknown column %q in %s", column, path)
		}
		if len(names) > 0 {
			aliases[column] = names
		}
	}
	return aliases, nil
}

func isCanonical(column string) bool {
	for _, c := range canonicalColumns {
		if c == column {
			return true
		}
	}
	return false
}

// index строит индекс колонок по заголовку файла.
// Заголовки сравниваются после обрезки пробелов; при повторе побеждает первый.
func (a ColumnAliases) index(header []string) map[string]int {
	lookup := make(map[string]string)
	for column, names := range a {
		for _, name := range names {
			lookup[strings.TrimSpace(name)] = column
		}
	}

	result := make(map[string]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		column, ok := lookup[name]
		if !ok {
			continue
		}
		if _, seen := result[column]; !seen {
			result[column] = i
		}
	}
	return result
}
