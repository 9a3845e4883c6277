package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"careerprep/internal/domain"
	"careerprep/internal/render"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRenderer struct {
	gotHTML string
	pdf     []byte
	err     error
}

func (r *fakeRenderer) RenderHTMLToPDF(ctx context.Context, html string) ([]byte, error) {
	r.gotHTML = html
	return r.pdf, r.err
}

func exportResume() *domain.StoredResume {
	return &domain.StoredResume{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Skills:   []string{"Math"},
	}
}

func TestPreviewSwitchingTemplates(t *testing.T) {
	engine := render.NewEngine()
	e := NewExporter(engine, &fakeRenderer{})
	r := exportResume()

	seen := map[string]bool{}
	for _, id := range render.TemplateIDs() {
		html, err := e.Preview(r, id)
		require.NoError(t, err)
		assert.Contains(t, html, "Ada Lovelace")
		assert.False(t, seen[html], "each template must produce distinct markup")
		seen[html] = true
	}
	// previewing never touches the stored resume
	assert.Equal(t, "Ada Lovelace", r.FullName)
}

func TestExportPDFPassesRenderedHTML(t *testing.T) {
	engine := render.NewEngine()
	fr := &fakeRenderer{pdf: []byte("%PDF-1.4 fake")}
	e := NewExporter(engine, fr)

	pdf, err := e.ExportPDF(context.Background(), exportResume(), render.ClassicProfessional)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.4 fake"), pdf)
	assert.True(t, strings.Contains(fr.gotHTML, "Ada Lovelace"))
	assert.True(t, strings.Contains(fr.gotHTML, "size: A4"))
}

func TestExportPDFRendererError(t *testing.T) {
	engine := render.NewEngine()
	e := NewExporter(engine, &fakeRenderer{err: errors.New("chrome unavailable")})

	_, err := e.ExportPDF(context.Background(), exportResume(), render.ModernMinimal)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chrome unavailable")
}
