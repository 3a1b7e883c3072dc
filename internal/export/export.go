// Package export writes a flat link listing to disk in one of several
// formats, for the list command's quick-scan workflow.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/harrison/specmonkey/internal/models"
)

// Supported output formats.
const (
	FormatTxt  = "txt"
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// Formats lists the supported format names.
func Formats() []string {
	return []string{FormatTxt, FormatCSV, FormatJSON, FormatXLSX}
}

// record is the flat serialization shape of one link occurrence.
type record struct {
	Filename   string `json:"filename"`
	LineNumber int    `json:"line_number"`
	URL        string `json:"url"`
}

// WriteLinks writes links to path in the given format.
func WriteLinks(links []models.Link, path, format string) error {
	switch strings.ToLower(format) {
	case FormatTxt:
		return writeTxt(links, path)
	case FormatCSV:
		return writeCSV(links, path)
	case FormatJSON:
		return writeJSON(links, path)
	case FormatXLSX:
		return writeXLSX(links, path)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeTxt(links []models.Link, path string) error {
	var sb strings.Builder
	for _, link := range links {
		fmt.Fprintf(&sb, "%s:%d:%s\n", link.Filepath, link.LineNumber, link.URL)
	}
	if err := os.WriteFile(path, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeCSV(links []models.Link, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"filename", "line_number", "url"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, link := range links {
		row := []string{link.Filepath, strconv.Itoa(link.LineNumber), link.URL}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

func writeJSON(links []models.Link, path string) error {
	records := make([]record, 0, len(links))
	for _, link := range links {
		records = append(records, record{
			Filename:   link.Filepath,
			LineNumber: link.LineNumber,
			URL:        link.URL,
		})
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize links: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeXLSX(links []models.Link, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	headers := []string{"filename", "line_number", "url"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, link := range links {
		row := i + 2
		values := []interface{}{link.Filepath, link.LineNumber, link.URL}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return fmt.Errorf("failed to compute cell name: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
