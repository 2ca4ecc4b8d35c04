// Package export writes task collections as JSON, CSV or PDF documents.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nibzard/tpdp/internal/todo"
)

// Format is an export format name.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatPDF  Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatJSON, FormatCSV, FormatPDF}

// ErrUnknownFormat is returned for unsupported format names.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q, must be one of: json, csv, pdf", ErrUnknownFormat, s)
}

// Options tune the rendered document.
type Options struct {
	// Title heads the PDF document.
	Title string
	// Generated is the timestamp printed in the PDF; zero means now.
	Generated time.Time
}

// Write renders tasks in format to w.
func Write(w io.Writer, tasks todo.Collection, format Format, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, tasks)
	case FormatCSV:
		return writeCSV(w, tasks)
	case FormatPDF:
		return writePDF(w, tasks, opts)
	default:
		return fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
}

func writeJSON(w io.Writer, tasks todo.Collection) error {
	if tasks == nil {
		tasks = todo.Collection{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

var csvHeader = []string{"id", "text", "completed", "created_at"}

func writeCSV(w io.Writer, tasks todo.Collection) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range tasks {
		record := []string{
			t.ID,
			t.Text,
			strconv.FormatBool(t.Completed),
			t.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writePDF(w io.Writer, tasks todo.Collection, opts Options) error {
	title := opts.Title
	if title == "" {
		title = "Tasks"
	}
	generated := opts.Generated
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator("tpdp", true)
	pdf.SetCreationDate(generated)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(110, 110, 110)
	pdf.Cell(0, 6, "Generated "+generated.Format("2006-01-02 15:04"))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	pdf.SetFont("Arial", "", 11)
	if len(tasks) == 0 {
		pdf.SetFont("Arial", "I", 11)
		pdf.Cell(0, 7, "No tasks")
		pdf.Ln(9)
	}
	for _, t := range tasks {
		box := "[ ]"
		if t.Completed {
			box = "[x]"
			pdf.SetTextColor(130, 130, 130)
		}
		pdf.CellFormat(10, 7, box, "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, tr(t.Text), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
	}

	counts := todo.Count(tasks)
	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 6, fmt.Sprintf("%d tasks: %d active, %d completed", counts.Total, counts.Active, counts.Completed))

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}
