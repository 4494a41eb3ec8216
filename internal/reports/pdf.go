// Package reports renders student documents as PDF files.
package reports

import (
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/campus-hub/registrar-service/internal/services"
)

const institutionName = "Campus Hub"

// WriteTranscript renders a grade transcript to path. The grade table flows
// over page breaks; the weighted average closes the document, or a mention
// that no average is defined.
func WriteTranscript(data *services.TranscriptResponse, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(institutionName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Relevé de notes"), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Matricule : %s", data.Student.Matricule)), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, tr(fmt.Sprintf("Nom : %s %s", data.Student.LastName, data.Student.FirstName)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	widths := []float64{30, 70, 20, 20, 25, 25}
	headers := []string{"Code", "Module", "Coef", "Note", "Année", "Type"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range data.Rows {
		pdf.CellFormat(widths[0], 6, tr(row.ModuleCode), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, tr(row.ModuleName), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, fmt.Sprintf("%.1f", row.Coefficient), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[3], 6, fmt.Sprintf("%.2f", row.Value), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, tr(row.AcademicYear), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, tr(row.EvalType), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	if data.Average.Defined {
		pdf.CellFormat(0, 7, tr(fmt.Sprintf("Moyenne pondérée : %.2f / 20", data.Average.Average)), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 7, tr("Moyenne : non définie (aucune note pondérée)"), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write transcript pdf: %w", err)
	}
	return nil
}

// WriteAttestation renders an enrollment certificate to path.
func WriteAttestation(data *services.AttestationResponse, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, tr(institutionName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(0, 8, tr("Attestation de scolarité"), "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	body := fmt.Sprintf(
		"Nous attestons que l'étudiant(e) %s %s, matricule %s, est inscrit(e) en %s (%s), filière %s (%s), pour l'année universitaire %s.",
		data.LastName, data.FirstName, data.Matricule,
		data.LevelName, data.LevelCode,
		data.TrackName, data.TrackCode,
		data.AcademicYear)
	pdf.MultiCell(0, 7, tr(body), "", "L", false)
	pdf.Ln(6)
	pdf.CellFormat(0, 7, tr(fmt.Sprintf("Statut : %s", data.Status)), "", 1, "L", false, 0, "")
	pdf.Ln(20)
	pdf.CellFormat(0, 7, tr("Fait pour servir et valoir ce que de droit."), "", 1, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("failed to write attestation pdf: %w", err)
	}
	return nil
}
