package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/planner"
)

// Generator — interface so callers can mock sheet generation in tests.
type Generator interface {
	GenerateAgendaSheet(data AgendaData) (string, error)
}

type AgendaData struct {
	Day        models.Date
	Percentage int
	Tasks      []models.Task
	Histogram  []planner.Bucket
	Filename   string // file name without path; generated when empty
}

// AgendaGenerator renders a printable A4 daily agenda.
type AgendaGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewAgendaGenerator(rootDir string) *AgendaGenerator {
	return &AgendaGenerator{RootDir: filepath.Clean(rootDir)}
}

func (g *AgendaGenerator) GenerateAgendaSheet(data AgendaData) (string, error) {
	filename := data.Filename
	if filename == "" {
		filename = fmt.Sprintf("agenda_%s.pdf", data.Day)
	}
	absPath, err := g.ensureTarget(filename)
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Agenda %s", data.Day), false)
	pdf.SetAuthor("Planify", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== Header
	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 10, "DAILY AGENDA", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 12)
	sub := fmt.Sprintf("%s  —  %d%% Goal Completed", data.Day.Format("January 2, 2006"), data.Percentage)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)

	// ===== Task list
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Tasks", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	if len(data.Tasks) == 0 {
		pdf.CellFormat(0, 7, "Nothing planned.", "", 1, "L", false, 0, "")
	}
	for _, t := range data.Tasks {
		mark := "[ ]"
		if t.Completed() {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s  (%s)  %s", mark, t.Level, t.Title)
		pdf.CellFormat(0, 7, line, "", 1, "L", false, 0, "")
		if t.Desc != "" {
			pdf.SetFont("Arial", "I", 9)
			pdf.CellFormat(0, 5, "        "+t.Desc, "", 1, "L", false, 0, "")
			pdf.SetFont("Arial", "", 11)
		}
	}
	g.hr(pdf)

	// ===== Completion history
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Task Completion Status", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, b := range data.Histogram {
		pdf.CellFormat(0, 7, fmt.Sprintf("%-8s %d completed", b.Label, b.Count), "", 1, "L", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", fmt.Errorf("failed to write agenda pdf: %w", err)
	}
	return absPath, nil
}

func (g *AgendaGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", g.RootDir, err)
	}
	return filepath.Join(g.RootDir, filepath.Base(filename)), nil
}

func (g *AgendaGenerator) hr(pdf *gofpdf.Fpdf) {
	pdf.Ln(2)
	x, y := pdf.GetXY()
	pageW, _ := pdf.GetPageSize()
	pdf.Line(x, y, pageW-20, y)
	pdf.Ln(4)
}
