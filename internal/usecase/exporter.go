package usecase

import (
	"context"
	"fmt"

	"careerprep/internal/domain"
	"careerprep/internal/render"
)

// Renderer turns a standalone HTML document into a PDF.
type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error)
}

// Exporter renders stored resumes through the chosen template strategy,
// either as the isolated print view or as an A4 PDF.
type Exporter struct {
	engine   *render.Engine
	renderer Renderer
}

func NewExporter(engine *render.Engine, renderer Renderer) *Exporter {
	return &Exporter{engine: engine, renderer: renderer}
}

// Preview renders the print-ready HTML document for one template choice.
// Switching templates re-renders from the same stored resume; the resume
// itself is never modified.
func (e *Exporter) Preview(r *domain.StoredResume, id render.TemplateID) (string, error) {
	return e.engine.Render(id, r)
}

// ExportPDF produces the A4 PDF for one template choice.
func (e *Exporter) ExportPDF(ctx context.Context, r *domain.StoredResume, id render.TemplateID) ([]byte, error) {
	html, err := e.engine.Render(id, r)
	if err != nil {
		return nil, err
	}
	pdf, err := e.renderer.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}
