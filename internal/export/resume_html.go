package export

import (
	"fmt"
	"html"
	"strings"

	"jobdeck/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Plain resume export — classic one-page document
// ─────────────────────────────────────────────────────────────

// BuildResumeHTML renders the plain data-entry resume as a standalone
// A4 document. The avatar, when present, should already be a data URI
// (ToDataURI) so the file stays self-contained.
func BuildResumeHTML(r domain.Resume, avatarDataURI string) string {
	p := r.Personal

	avatar := ""
	if avatarDataURI != "" {
		avatar = fmt.Sprintf(`<img src="%s" style="width:180px;height:180px;border-radius:9999px;object-fit:cover;" />`, avatarDataURI)
	}

	objective := `<p style="margin:8px 0 0 0;color:#6B7280;">Sem objetivo informado.</p>`
	if p.Summary != "" {
		objective = fmt.Sprintf(`<p style="margin:8px 0 0 0;color:#111827;">%s</p>`, html.EscapeString(p.Summary))
	}

	var edu strings.Builder
	for _, e := range r.Education {
		title := html.EscapeString(e.Degree)
		if e.Institution != "" {
			title += " - " + html.EscapeString(e.Institution)
		}
		fmt.Fprintf(&edu, `<div style="margin:10px 0;"><div style="font-weight:700;color:#111827;">%s</div><div style="color:#6B7280;font-size:12px;">%s</div></div>`,
			title, html.EscapeString(dateRange(e.StartDate, e.EndDate)))
	}
	eduHTML := edu.String()
	if eduHTML == "" {
		eduHTML = `<div class="muted">Sem formação informada.</div>`
	}

	var exp strings.Builder
	for _, e := range r.Experiences {
		head := dateRange(e.StartDate, e.EndDate)
		if e.Role != "" {
			head += " • " + e.Role
		}
		fmt.Fprintf(&exp, `<div style="margin:12px 0;"><div style="font-weight:700;color:#111827;">%s</div>`, html.EscapeString(head))
		if e.Company != "" {
			fmt.Fprintf(&exp, `<div style="color:#111827;">%s</div>`, html.EscapeString(e.Company))
		}
		if e.Description != "" {
			fmt.Fprintf(&exp, `<div style="color:#374151;font-size:14px;line-height:20px;">%s</div>`, html.EscapeString(e.Description))
		}
		exp.WriteString(`</div>`)
	}
	expHTML := exp.String()
	if expHTML == "" {
		expHTML = `<div class="muted">Sem experiências informadas.</div>`
	}

	skillsHTML := `<div class="muted">Sem habilidades informadas.</div>`
	if len(r.Skills) > 0 {
		var items strings.Builder
		for _, s := range r.Skills {
			fmt.Fprintf(&items, `<li style="margin:6px 0;">%s</li>`, html.EscapeString(s.Name))
		}
		skillsHTML = fmt.Sprintf(`<ul style="columns:2;list-style:disc;padding-left:18px;color:#111827;margin:0;">%s</ul>`, items.String())
	}
	if len(r.Languages) > 0 {
		escaped := make([]string, len(r.Languages))
		for i, l := range r.Languages {
			escaped[i] = html.EscapeString(l)
		}
		skillsHTML += fmt.Sprintf(`<div style="margin-top:12px;"><strong>Idiomas:</strong> %s</div>`, strings.Join(escaped, ", "))
	}

	var contacts []string
	if p.Location != "" {
		contacts = append(contacts, html.EscapeString(p.Location))
	}
	if p.Phone != "" {
		contacts = append(contacts, html.EscapeString(p.Phone))
	}
	if p.Email != "" {
		contacts = append(contacts, html.EscapeString(p.Email))
	}
	if p.Website != "" {
		contacts = append(contacts, html.EscapeString(p.Website))
	}
	contactHTML := `<div class="muted">Sem contatos informados.</div>`
	if len(contacts) > 0 {
		var b strings.Builder
		for _, c := range contacts {
			fmt.Fprintf(&b, `<div style="margin:4px 0;color:#111827;">%s</div>`, c)
		}
		contactHTML = b.String()
	}

	name := p.FullName
	if name == "" {
		name = "Seu Nome"
	}
	roleHTML := ""
	if p.Role != "" {
		roleHTML = fmt.Sprintf(`<div class="role">%s</div>`, html.EscapeString(p.Role))
	}

	divider := `<hr style="border:none;border-top:1px solid #E5E7EB;margin:24px 0;"/>`

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8" />
<style>
  @page { size: A4; margin: 24px; }
  * { box-sizing: border-box; }
  body { font-family: Arial, Helvetica, sans-serif; color: #111827; }
  .card { border:1px solid #E5E7EB; border-radius:12px; overflow:hidden; }
  .top { background:#D3D3D3; padding:24px; display:flex; gap:24px; align-items:center; }
  .name { font-size:36px; font-weight:800; margin:0; }
  .role { font-size:20px; color:#374151; margin:4px 0 12px 0; }
  .divider { border-top:2px solid #111827; width:100%%; max-width:520px; margin:8px 0 10px 0; }
  .content { padding: 20px 24px 24px 24px; }
  .section-title { font-weight:800; font-size:20px; margin:0 0 6px 0; }
  .muted { color:#6B7280; }
</style>
</head>
<body>
<div class="card">
  <div class="top">
    <div>%s</div>
    <div style="flex:1;">
      <div class="name">%s</div>
      %s
      <div class="divider"></div>
      <div>%s</div>
    </div>
  </div>
  <div class="content">
    <div class="section"><div class="section-title">OBJETIVO</div>%s</div>
    %s
    <div class="section"><div class="section-title">FORMAÇÃO</div>%s</div>
    %s
    <div class="section"><div class="section-title">EXPERIÊNCIAS</div>%s</div>
    %s
    <div class="section"><div class="section-title">HABILIDADES</div>%s</div>
  </div>
</div>
</body>
</html>
`, avatar, html.EscapeString(name), roleHTML, contactHTML,
		objective, divider, eduHTML, divider, expHTML, divider, skillsHTML)
}

func dateRange(start, end string) string {
	switch {
	case start != "" && end != "":
		return start + " - " + end
	case start != "":
		return start
	default:
		return end
	}
}
