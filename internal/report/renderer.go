package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/municipal-services/complaint-service/internal/domain"
)

// Renderer turns aggregate report rows into artifacts: an in-memory PDF
// buffer or a CSV file on disk.
type Renderer interface {
	RenderPDF(rows []domain.ReportRow) ([]byte, error)
	RenderCSV(rows []domain.ReportRow) (string, error)
}

type renderer struct {
	outputDir string
}

// NewRenderer constructs a renderer writing CSV files to outputDir.
func NewRenderer(outputDir string) Renderer {
	if outputDir == "" {
		outputDir = os.TempDir()
	}
	return &renderer{outputDir: outputDir}
}

var csvHeader = []string{"complaint_id", "subject", "status", "office_type", "customer_name", "customer_email", "created_at"}

func (r *renderer) RenderPDF(rows []domain.ReportRow) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Complaints report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.Cell(0, 10, "Complaints report")
	pdf.Ln(12)

	widths := []float64{55, 60, 25, 40, 45, 52}
	pdf.SetFont("Helvetica", "B", 9)
	for i, head := range []string{"Complaint", "Subject", "Status", "Office type", "Customer", "Email"} {
		pdf.CellFormat(widths[i], 7, head, "1", 0, "L", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range rows {
		cells := []string{
			row.ComplaintID,
			row.Subject,
			row.Status.String(),
			row.OfficeType,
			row.CustomerName,
			row.CustomerEmail,
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderCSV writes the rows to a fresh file. A failed render removes the
// partial file so the output directory never accumulates broken artifacts.
func (r *renderer) RenderCSV(rows []domain.ReportRow) (string, error) {
	name := fmt.Sprintf("complaints-report-%s.csv", uuid.NewString())
	path := filepath.Join(r.outputDir, name)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create csv: %w", err)
	}
	if err := writeCSV(file, rows); err != nil {
		file.Close()
		os.Remove(path)
		return "", err
	}
	if err := file.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close csv: %w", err)
	}
	return path, nil
}

func writeCSV(w io.Writer, rows []domain.ReportRow) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.ComplaintID,
			row.Subject,
			row.Status.String(),
			row.OfficeType,
			row.CustomerName,
			row.CustomerEmail,
			row.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
