package export_test

import (
	"strings"
	"testing"

	"jobdeck/internal/domain"
	"jobdeck/internal/export"
	"jobdeck/internal/layout"
)

func TestRenderTemplateNodes_Partition(t *testing.T) {
	theme := layout.ThemeFor(domain.TemplateClassic)
	nodes := []domain.TemplateNode{
		{ID: "t", Type: domain.NodeTitle, Text: "Ana"},
		{ID: "p", Type: domain.NodeParagraph, Text: "Engenheira"},
		{ID: "flow", Type: domain.NodeImage, URI: "a.png", Width: 100, Height: 100},
		{ID: "abs", Type: domain.NodeImage, URI: "b.png", Width: 100, Height: 100,
			X: domain.Float(10), Y: domain.Float(20)},
	}
	frags := export.RenderTemplateNodes(nodes, theme, 1)

	for _, want := range []string{"Ana", "Engenheira", "a.png"} {
		if !strings.Contains(frags.FlowHTML, want) {
			t.Errorf("flow fragment missing %q", want)
		}
	}
	if strings.Contains(frags.FlowHTML, "b.png") {
		t.Error("positioned image leaked into the flow fragment")
	}
	if !strings.Contains(frags.AbsoluteHTML, "position:absolute;left:10px;top:20px;") {
		t.Errorf("absolute fragment missing scaled position: %s", frags.AbsoluteHTML)
	}
}

func TestRenderTemplateNodes_Escaping(t *testing.T) {
	theme := layout.ThemeFor(domain.TemplateMinimal)
	nodes := []domain.TemplateNode{
		{ID: "t", Type: domain.NodeTitle, Text: `<script>alert("x")</script>`},
		{ID: "p", Type: domain.NodeParagraph, Text: `Tom & Jerry's <b>"show"</b>`},
	}
	frags := export.RenderTemplateNodes(nodes, theme, 1)

	if strings.Contains(frags.FlowHTML, "<script>") {
		t.Error("unescaped script tag in output")
	}
	if strings.Contains(frags.FlowHTML, "<b>") {
		t.Error("unescaped markup in output")
	}
	for _, want := range []string{"&lt;script&gt;", "&amp;", "&#34;"} {
		if !strings.Contains(frags.FlowHTML, want) {
			t.Errorf("expected escaped sequence %q in %s", want, frags.FlowHTML)
		}
	}
}

func TestRenderTemplateNodes_Scaling(t *testing.T) {
	theme := layout.ThemeFor(domain.TemplateClassic)
	nodes := []domain.TemplateNode{
		{ID: "i", Type: domain.NodeImage, URI: "a.jpg", Width: 140, Height: 140,
			X: domain.Float(16), Y: domain.Float(16)},
	}
	scale := layout.ScaleFor(370, 700)
	frags := export.RenderTemplateNodes(nodes, theme, scale)

	if !strings.Contains(frags.AbsoluteHTML, "left:30px;top:30px;width:265px;height:265px;") {
		t.Errorf("scaled geometry wrong: %s", frags.AbsoluteHTML)
	}
}

func TestRenderTemplateNodes_FirstTitleIsPrimary(t *testing.T) {
	theme := layout.ThemeFor(domain.TemplateClassic)
	nodes := []domain.TemplateNode{
		{ID: "a", Type: domain.NodeTitle, Text: "First"},
		{ID: "b", Type: domain.NodeTitle, Text: "Second"},
	}
	frags := export.RenderTemplateNodes(nodes, theme, 1)
	if !strings.Contains(frags.FlowHTML, "font-size:30px") {
		t.Errorf("first title should use the primary size: %s", frags.FlowHTML)
	}
	if !strings.Contains(frags.FlowHTML, "font-size:18px") {
		t.Errorf("second title should use the secondary size: %s", frags.FlowHTML)
	}
}

func TestBuildTemplateHTML_ChromePerTemplate(t *testing.T) {
	nodes := []domain.TemplateNode{{ID: "t", Type: domain.NodeTitle, Text: "Ana"}}

	classic := export.BuildTemplateHTML(domain.TemplateDoc{TemplateID: domain.TemplateClassic, Nodes: nodes}, export.HTMLOptions{})
	if !strings.Contains(classic, "height:96px;background:#D1D5DB;") {
		t.Error("classic output missing the top band")
	}

	modern := export.BuildTemplateHTML(domain.TemplateDoc{TemplateID: domain.TemplateModern, Nodes: nodes}, export.HTMLOptions{})
	if !strings.Contains(modern, "width:160px;background:#DBEAFE;") {
		t.Error("modern output missing the sidebar")
	}

	minimal := export.BuildTemplateHTML(domain.TemplateDoc{TemplateID: domain.TemplateMinimal, Nodes: nodes}, export.HTMLOptions{})
	if strings.Contains(minimal, "background:#D1D5DB") || strings.Contains(minimal, "background:#DBEAFE") {
		t.Error("minimal output should have no chrome band")
	}

	for _, doc := range []string{classic, modern, minimal} {
		if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
			t.Error("output is not a standalone document")
		}
		if !strings.Contains(doc, "@page { size: A4; margin: 24px; }") {
			t.Error("output missing the print page directive")
		}
		if !strings.Contains(doc, "width: 700px") {
			t.Error("output not sized to the default target width")
		}
	}
}

func TestBuildResumeHTML(t *testing.T) {
	r := domain.Resume{
		Personal: domain.PersonalInfo{FullName: "Ana <Silva>", Email: "ana@example.com", Summary: "Objetivo"},
		Skills:   []domain.Skill{{Name: "Go"}},
	}
	out := export.BuildResumeHTML(r, "")
	if strings.Contains(out, "<Silva>") {
		t.Error("unescaped name in resume output")
	}
	for _, want := range []string{"Ana &lt;Silva&gt;", "ana@example.com", "Objetivo", "Go", "OBJETIVO"} {
		if !strings.Contains(out, want) {
			t.Errorf("resume output missing %q", want)
		}
	}
}
