package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"SeoContentEngine/internal/domain"
)

// Format selects the export serialization.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// ParseFormat maps a wire value onto a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(value) {
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, value)
	}
}

// csvHeader defines the column contract of CSV exports.
var csvHeader = []string{"keywords", "title", "seo_score", "status"}

// Export serializes completed records into the requested format. CSV carries
// the summary columns; JSON carries the full records with numeric numbers.
func Export(items []domain.ValidatedContent, format Format) ([]byte, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyExportSet
	}

	switch format {
	case FormatCSV:
		return exportCSV(items)
	case FormatJSON:
		return exportJSON(items)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func exportCSV(items []domain.ValidatedContent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, item := range items {
		row := []string{
			item.Keywords,
			item.Draft.Title,
			strconv.Itoa(item.Validation.SeoScore.TotalScore),
			string(domain.ItemSucceeded),
		}
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportJSON(items []domain.ValidatedContent) ([]byte, error) {
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal export: %w", err)
	}
	return payload, nil
}

// Filename returns the download name convention for an export generated at
// the given time.
func Filename(format Format, at time.Time) string {
	return fmt.Sprintf("seo_contents_%d.%s", at.UnixMilli(), format)
}

// ContentTypeFor maps formats onto their HTTP media types.
func ContentTypeFor(format Format) string {
	if format == FormatJSON {
		return "application/json"
	}
	return "text/csv"
}
