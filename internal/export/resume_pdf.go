package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	gofpdf "github.com/lvillar/gofpdf"

	"jobdeck/internal/domain"
)

// WriteResumePDF renders the plain data-entry resume to an A4 PDF with
// the same section layout as BuildResumeHTML. avatarDataURI, when
// non-empty, must be a data URI.
func WriteResumePDF(w io.Writer, r domain.Resume, avatarDataURI string) error {
	p := r.Personal

	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(PageMargin, PageMargin, PageMargin)
	pdf.SetAutoPageBreak(true, PageMargin)
	pdf.SetTitle("JobDeck", true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	usable := pageW - 2*PageMargin

	// Header band with avatar, name, role and contact line.
	const bandH = 140.0
	pdf.SetFillColor(0xD3, 0xD3, 0xD3)
	pdf.Rect(PageMargin, PageMargin, usable, bandH, "F")

	textX := float64(PageMargin) + 20
	if avatarDataURI != "" {
		imgType, data, err := decodeDataURI(avatarDataURI)
		if err == nil {
			opts := gofpdf.ImageOptions{ImageType: imgType}
			pdf.RegisterImageOptionsReader("resume-avatar", opts, bytes.NewReader(data))
			pdf.ImageOptions("resume-avatar", PageMargin+20, PageMargin+20, 100, 100, false, opts, 0, "")
			textX += 120
		}
	}

	name := p.FullName
	if name == "" {
		name = "Seu Nome"
	}
	pdf.SetTextColor(0x11, 0x18, 0x27)
	pdf.SetFont("Helvetica", "B", 28)
	pdf.SetXY(textX, PageMargin+24)
	pdf.CellFormat(usable-(textX-PageMargin), 32, tr(name), "", 1, "L", false, 0, "")

	if p.Role != "" {
		pdf.SetTextColor(0x37, 0x41, 0x51)
		pdf.SetFont("Helvetica", "", 15)
		pdf.SetX(textX)
		pdf.CellFormat(usable-(textX-PageMargin), 20, tr(p.Role), "", 1, "L", false, 0, "")
	}

	var contacts []string
	for _, c := range []string{p.Location, p.Phone, p.Email, p.Website} {
		if c != "" {
			contacts = append(contacts, c)
		}
	}
	if len(contacts) > 0 {
		pdf.SetTextColor(0x11, 0x18, 0x27)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetX(textX)
		pdf.CellFormat(usable-(textX-PageMargin), 16, tr(strings.Join(contacts, "  •  ")), "", 1, "L", false, 0, "")
	}

	y := PageMargin + bandH + 20

	// ── OBJETIVO ───────────────────────────────────────
	y = resumeSectionTitle(pdf, tr, "OBJETIVO", y)
	objective := p.Summary
	if objective == "" {
		objective = "Sem objetivo informado."
	}
	y = resumeBody(pdf, tr, objective, y, usable)

	// ── FORMAÇÃO ───────────────────────────────────────
	y = resumeSectionTitle(pdf, tr, "FORMAÇÃO", y+14)
	if len(r.Education) == 0 {
		y = resumeBody(pdf, tr, "Sem formação informada.", y, usable)
	}
	for _, e := range r.Education {
		title := e.Degree
		if e.Institution != "" {
			title += " - " + e.Institution
		}
		y = resumeEntry(pdf, tr, title, dateRange(e.StartDate, e.EndDate), "", y, usable)
	}

	// ── EXPERIÊNCIAS ───────────────────────────────────
	y = resumeSectionTitle(pdf, tr, "EXPERIÊNCIAS", y+14)
	if len(r.Experiences) == 0 {
		y = resumeBody(pdf, tr, "Sem experiências informadas.", y, usable)
	}
	for _, e := range r.Experiences {
		head := dateRange(e.StartDate, e.EndDate)
		if e.Role != "" {
			head += " • " + e.Role
		}
		y = resumeEntry(pdf, tr, head, e.Company, e.Description, y, usable)
	}

	// ── HABILIDADES ────────────────────────────────────
	y = resumeSectionTitle(pdf, tr, "HABILIDADES", y+14)
	if len(r.Skills) == 0 {
		y = resumeBody(pdf, tr, "Sem habilidades informadas.", y, usable)
	}
	for _, s := range r.Skills {
		item := "• " + s.Name
		if s.Level != "" {
			item += " (" + s.Level + ")"
		}
		y = resumeBody(pdf, tr, item, y, usable)
	}
	if len(r.Languages) > 0 {
		y = resumeBody(pdf, tr, "Idiomas: "+strings.Join(r.Languages, ", "), y+6, usable)
	}
	if len(r.Certifications) > 0 {
		resumeBody(pdf, tr, "Certificações: "+strings.Join(r.Certifications, ", "), y+6, usable)
	}

	if pdf.Err() {
		return fmt.Errorf("compose resume pdf: %w", pdf.Error())
	}
	return pdf.Output(w)
}

func resumeSectionTitle(pdf *gofpdf.Fpdf, tr func(string) string, title string, y float64) float64 {
	pdf.SetTextColor(0x11, 0x18, 0x27)
	pdf.SetFont("Helvetica", "B", 15)
	pdf.SetXY(PageMargin, y)
	pdf.CellFormat(0, 20, tr(title), "", 1, "L", false, 0, "")
	pdf.SetDrawColor(0xE5, 0xE7, 0xEB)
	pdf.Line(PageMargin, pdf.GetY()+2, PageMargin+200, pdf.GetY()+2)
	return pdf.GetY() + 8
}

func resumeBody(pdf *gofpdf.Fpdf, tr func(string) string, text string, y, w float64) float64 {
	pdf.SetTextColor(0x11, 0x18, 0x27)
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetXY(PageMargin, y)
	pdf.MultiCell(w, 16, tr(text), "", "L", false)
	return pdf.GetY()
}

func resumeEntry(pdf *gofpdf.Fpdf, tr func(string) string, head, sub, body string, y, w float64) float64 {
	pdf.SetTextColor(0x11, 0x18, 0x27)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(PageMargin, y+4)
	pdf.MultiCell(w, 16, tr(head), "", "L", false)
	y = pdf.GetY()
	if sub != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.SetXY(PageMargin, y)
		pdf.MultiCell(w, 15, tr(sub), "", "L", false)
		y = pdf.GetY()
	}
	if body != "" {
		pdf.SetTextColor(0x37, 0x41, 0x51)
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(PageMargin, y)
		pdf.MultiCell(w, 14, tr(body), "", "L", false)
		y = pdf.GetY()
	}
	return y + 4
}
