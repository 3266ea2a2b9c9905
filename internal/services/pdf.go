package services

import (
	"bytes"
	"fmt"
	"regexp"
	"time"

	"github.com/jung-kurt/gofpdf"

	"estudamais-backend/internal/models"
)

// PDFService renders a folder's question set as a paginated document for
// offline study.
type PDFService struct{}

func NewPDFService() *PDFService {
	return &PDFService{}
}

var filenameSanitizer = regexp.MustCompile(`[^a-zA-Z0-9]`)

// ExportFilename builds "{sanitized-folder-name}_Questoes_{ISO-date}.pdf".
func ExportFilename(folderName string, now time.Time) string {
	sanitized := filenameSanitizer.ReplaceAllString(folderName, "_")
	return fmt.Sprintf("%s_Questoes_%s.pdf", sanitized, now.Format("2006-01-02"))
}

// QuestionsPDF renders the export: header with folder name, date and count,
// then each question with its options (correct one highlighted), an explicit
// correct-answer line and the explanation box, footed "Página X de Y".
func (s *PDFService) QuestionsPDF(folderName string, questions []*models.Question, now time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetAutoPageBreak(true, 20)
	pdf.AliasNbPages("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Página %d de {nb}", pdf.PageNo())), "", 0, "C", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
	})

	pdf.AddPage()
	pageWidth, _ := pdf.GetPageSize()
	leftMargin, _, rightMargin, _ := pdf.GetMargins()
	contentWidth := pageWidth - leftMargin - rightMargin

	// Header
	pdf.SetFont("Helvetica", "B", 20)
	pdf.MultiCell(contentWidth, 9, tr(folderName), "", "L", false)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentWidth, 6, tr(fmt.Sprintf("Data de exportação: %s", now.Format("02/01/2006"))), "", 1, "L", false, 0, "")
	plural := "questões"
	if len(questions) == 1 {
		plural = "questão"
	}
	pdf.CellFormat(contentWidth, 6, tr(fmt.Sprintf("Total de %s: %d", plural, len(questions))), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(200, 200, 200)
	pdf.Line(leftMargin, pdf.GetY()+2, pageWidth-rightMargin, pdf.GetY()+2)
	pdf.Ln(7)

	for i, q := range questions {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(contentWidth, 7, tr(fmt.Sprintf("Questão %d", i+1)), "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(contentWidth, 6, tr(q.Title), "", "L", false)
		pdf.Ln(2)

		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		typeText := "Múltipla escolha"
		if q.Type == models.QuestionTypeTrueFalse {
			typeText = "Verdadeiro/Falso"
		}
		pdf.CellFormat(contentWidth, 5, tr(fmt.Sprintf("[%s]", typeText)), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

		if q.Type == models.QuestionTypeMultipleChoice {
			s.writeOptions(pdf, tr, contentWidth, q)
		} else {
			s.writeTrueFalse(pdf, tr, contentWidth, q)
		}

		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetTextColor(0, 150, 0)
		pdf.MultiCell(contentWidth, 5, tr(fmt.Sprintf("Resposta correta: %s", correctAnswerText(q))), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(2)

		if q.Explanation != nil && *q.Explanation != "" {
			pdf.SetFillColor(245, 245, 245)
			pdf.SetFont("Helvetica", "B", 9)
			pdf.CellFormat(contentWidth, 6, tr("Explicação:"), "", 1, "L", true, 0, "")
			pdf.SetFont("Helvetica", "", 9)
			pdf.MultiCell(contentWidth, 5, tr(*q.Explanation), "", "L", true)
			pdf.Ln(2)
		}

		if i < len(questions)-1 {
			pdf.SetDrawColor(220, 220, 220)
			pdf.Line(leftMargin, pdf.GetY()+2, pageWidth-rightMargin, pdf.GetY()+2)
			pdf.Ln(8)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *PDFService) writeOptions(pdf *gofpdf.Fpdf, tr func(string) string, contentWidth float64, q *models.Question) {
	pdf.SetFont("Helvetica", "", 10)
	for i, option := range q.Options {
		letter := string(rune('A' + i))
		correct := q.CorrectAnswer != nil && option == *q.CorrectAnswer
		if correct {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(0, 150, 0)
		}
		pdf.SetX(pdf.GetX() + 5)
		pdf.MultiCell(contentWidth-5, 5, tr(fmt.Sprintf("%s) %s", letter, option)), "", "L", false)
		if correct {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
		}
		pdf.Ln(1)
	}
}

func (s *PDFService) writeTrueFalse(pdf *gofpdf.Fpdf, tr func(string) string, contentWidth float64, q *models.Question) {
	pdf.SetFont("Helvetica", "", 10)
	for _, option := range []string{"Verdadeiro", "Falso"} {
		correct := q.CorrectBoolean != nil && option == boolDisplay(*q.CorrectBoolean)
		if correct {
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(0, 150, 0)
		}
		pdf.SetX(pdf.GetX() + 5)
		pdf.CellFormat(contentWidth-5, 6, tr("- "+option), "", 1, "L", false, 0, "")
		if correct {
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetTextColor(0, 0, 0)
		}
	}
}

func correctAnswerText(q *models.Question) string {
	if q.Type == models.QuestionTypeTrueFalse {
		if q.CorrectBoolean != nil {
			return boolDisplay(*q.CorrectBoolean)
		}
		return ""
	}
	if q.CorrectAnswer != nil {
		return *q.CorrectAnswer
	}
	return ""
}

func boolDisplay(b bool) string {
	if b {
		return "Verdadeiro"
	}
	return "Falso"
}
