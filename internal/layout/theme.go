package layout

import "jobdeck/internal/domain"

// ─────────────────────────────────────────────────────────────
// Theme — per-template chrome and typography
// ─────────────────────────────────────────────────────────────
//
// The same Theme records drive all three render targets (editor tree,
// print snapshot, exported HTML/PDF), so template styling is defined
// exactly once.

// ChromeKind describes the structural band of a template.
type ChromeKind string

const (
	ChromeNone    ChromeKind = "none"
	ChromeTopBand ChromeKind = "top-band"
	ChromeSidebar ChromeKind = "sidebar"
)

// TextStyle is one typographic record (sizes in editor pixels).
type TextStyle struct {
	FontSize     float64
	Bold         bool
	Color        string
	MarginTop    float64
	MarginBottom float64
	LineHeight   float64 // 0 = font size * 1.4
}

// Theme bundles everything that distinguishes the classic, modern and
// minimal layouts.
type Theme struct {
	ID             domain.TemplateID
	PageBackground string
	CardBorder     string
	Chrome         ChromeKind
	ChromeSize     float64 // band height (top-band) or width (sidebar)
	ChromeColor    string
	ContentPadding float64
	Primary        TextStyle // first title (h1)
	Secondary      TextStyle // remaining titles (h2)
	Paragraph      TextStyle
}

// ChromeHeight returns the vertical space the chrome takes above the
// content area. Sidebars sit beside the content and contribute none.
func (t Theme) ChromeHeight() float64 {
	if t.Chrome == ChromeTopBand {
		return t.ChromeSize
	}
	return 0
}

const textColor = "#111827"

// ThemeFor resolves a template id to its theme. Total: unrecognized ids
// fall back to the minimal theme.
func ThemeFor(id domain.TemplateID) Theme {
	switch id {
	case domain.TemplateClassic:
		return Theme{
			ID:             domain.TemplateClassic,
			PageBackground: "#FFFFFF",
			CardBorder:     "#E5E7EB",
			Chrome:         ChromeTopBand,
			ChromeSize:     96,
			ChromeColor:    "#D1D5DB",
			ContentPadding: 16,
			Primary:        TextStyle{FontSize: 30, Bold: true, Color: textColor, MarginBottom: 8},
			Secondary:      TextStyle{FontSize: 18, Bold: true, Color: textColor, MarginTop: 10, MarginBottom: 6},
			Paragraph:      TextStyle{FontSize: 14, Color: textColor, MarginBottom: 8, LineHeight: 20},
		}
	case domain.TemplateModern:
		return Theme{
			ID:             domain.TemplateModern,
			PageBackground: "#FFFFFF",
			CardBorder:     "#E5E7EB",
			Chrome:         ChromeSidebar,
			ChromeSize:     160,
			ChromeColor:    "#DBEAFE",
			ContentPadding: 16,
			Primary:        TextStyle{FontSize: 26, Bold: true, Color: textColor, MarginBottom: 8},
			Secondary:      TextStyle{FontSize: 17, Bold: true, Color: textColor, MarginTop: 10, MarginBottom: 6},
			Paragraph:      TextStyle{FontSize: 13.5, Color: textColor, MarginBottom: 8, LineHeight: 20},
		}
	default:
		return Theme{
			ID:             domain.TemplateMinimal,
			PageBackground: "#FFFFFF",
			CardBorder:     "#E5E7EB",
			Chrome:         ChromeNone,
			ContentPadding: 16,
			Primary:        TextStyle{FontSize: 32, Bold: true, Color: textColor, MarginBottom: 10},
			Secondary:      TextStyle{FontSize: 20, Bold: true, Color: textColor, MarginTop: 12, MarginBottom: 8},
			Paragraph:      TextStyle{FontSize: 16, Color: textColor, MarginBottom: 10, LineHeight: 22},
		}
	}
}
