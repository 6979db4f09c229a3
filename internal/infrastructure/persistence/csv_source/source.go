// internal/infrastructure/persistence/csv_source/source.go
package csv_source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"entry-zone-bot/internal/core/domain/setups"
	"entry-zone-bot/pkg/logger"
)

// Options параметры источника
type Options struct {
	Dir             string
	Pattern         string
	Exclude         string
	ColumnsFile     string
	PendingStatuses []string
}

// Source читает отложенные операции из CSV-файлов
type Source struct {
	opts       Options
	aliases    ColumnAliases
	normalizer *setups.Normalizer
	pending    map[string]struct{}
}

var errMissingColumns = errors.New("missing symbol or entry column")

// NewSource создает источник
func NewSource(opts Options, normalizer *setups.Normalizer) (*Source, error) {
	if opts.Dir == "" {
		opts.Dir = "."
	}
	if opts.Pattern == "" {
		opts.Pattern = "*datos.csv"
	}
	if _, err := filepath.Match(opts.Pattern, ""); err != nil {
		return nil, fmt.Errorf("invalid csv pattern %q: %w", opts.Pattern, err)
	}
	if normalizer == nil {
		normalizer = setups.NewNormalizer(nil, "")
	}

	aliases := DefaultColumnAliases()
	if opts.ColumnsFile != "" {
		loaded, err := LoadColumnAliases(opts.ColumnsFile)
		if err != nil {
			return nil, err
		}
		aliases = loaded
	}

	pending := make(map[string]struct{}, len(opts.PendingStatuses))
	for _, status := range opts.PendingStatuses {
		status = strings.ToLower(strings.TrimSpace(status))
		if status != "" {
			pending[status] = struct{}{}
		}
	}
	if len(pending) == 0 {
		pending["pendiente"] = struct{}{}
	}

	return &Source{opts: opts, aliases: aliases, normalizer: normalizer, pending: pending}, nil
}

// LoadPending реализует setups.Source
func (s *Source) LoadPending(ctx context.Context) ([]setups.TradeSetupRow, error) {
	files, err := filepath.Glob(filepath.Join(s.opts.Dir, s.opts.Pattern))
	if err != nil {
		return nil, fmt.Errorf("failed to list csv files: %w", err)
	}
	sort.Strings(files)

	logger.Debug("📂 Leyendo archivos CSV... (%d)", len(files))

	var rows []setups.TradeSetupRow
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := filepath.Base(file)
		if s.opts.Exclude != "" && strings.Contains(name, s.opts.Exclude) {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(name), ".csv") {
			continue
		}

		fileRows, err := s.readFile(file)
		if err != nil {
			if errors.Is(err, errMissingColumns) {
				logger.Debug("CSV %s пропущен: %v", name, err)
			} else {
				logger.Warn("⚠️ Error leyendo %s: %v", name, err)
			}
			continue
		}
		rows = append(rows, fileRows...)
	}

	if len(rows) == 0 {
		return nil, setups.ErrNoPendingRows
	}

	setups.SortByOrdinal(rows)
	return rows, nil
}

func (s *Source) readFile(path string) ([]setups.TradeSetupRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errMissingColumns
		}
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	columns := s.aliases.index(header)
	if _, ok := columns[ColumnSymbol]; !ok {
		return nil, errMissingColumns
	}
	if _, ok := columns[ColumnEntry]; !ok {
		return nil, errMissingColumns
	}
	_, hasStatus := columns[ColumnStatus]

	var rows []setups.TradeSetupRow
	for index := 0; ; index++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", index+2, err)
		}

		field := func(column string) string {
			i, ok := columns[column]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		status := field(ColumnStatus)
		if hasStatus {
			if _, ok := s.pending[strings.ToLower(status)]; !ok {
				continue
			}
		}

		symbol := s.normalizer.NormalizeSymbol(field(ColumnSymbol))
		if symbol == "" {
			continue
		}

		entryRaw := field(ColumnEntry)
		band, ok := setups.ParseEntryRange(entryRaw)
		if !ok {
			continue
		}

		rows = append(rows, setups.TradeSetupRow{
			Symbol:     symbol,
			EntryMin:   band.Min,
			EntryMax:   band.Max,
			EntryRaw:   entryRaw,
			Direction:  field(ColumnDirection),
			SetupLabel: field(ColumnSetup),
			RiskLabel:  field(ColumnRisk),
			ChartLink:  field(ColumnChart),
			RowOrdinal: index + 2,
			Status:     status,
			SourceFile: filepath.Base(path),
		})
	}

	return rows, nil
}
