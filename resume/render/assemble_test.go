package render

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/nguyenthenguyen/docx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-studio/resume/model"
)

func readDocumentText(t *testing.T, data []byte) string {
	t.Helper()
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	defer doc.Close()
	return doc.Editable().GetContent()
}

func TestAssembleReadBack(t *testing.T) {
	gen := model.GeneratedResume{
		Summary:    "Builds reliable <systems> & teams.",
		Experience: []model.EnhancedExperience{{Company: "Acme Corp", Descriptions: []string{"Cut latency by 40%."}}},
		Skills:     []string{"Kubernetes", "Communication"},
	}
	data, err := Assemble(sampleProfile(), gen)
	require.NoError(t, err)

	content := readDocumentText(t, data)
	for _, want := range []string{
		"Jane Doe", HeadingSummary, HeadingExperience, HeadingEducation, HeadingSkills,
		"Cut latency by 40%.", "Wrote tests.", "01/2020 - Present",
		"Builds reliable &lt;systems&gt; &amp; teams.",
	} {
		assert.Contains(t, content, want)
	}
	assert.NoError(t, checkDocumentXML(content))
}

func TestAssembleOmitsExperienceSection(t *testing.T) {
	p := sampleProfile()
	p.Experience = nil
	data, err := Assemble(p, model.GeneratedResume{Summary: "Hi."})
	require.NoError(t, err)

	content := readDocumentText(t, data)
	assert.NotContains(t, content, HeadingExperience)
	assert.Contains(t, content, HeadingEducation)
}

func TestAssemblePackageParts(t *testing.T) {
	restore := now
	now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	t.Cleanup(func() { now = restore })

	data, err := Assemble(sampleProfile(), model.GeneratedResume{})
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	names := map[string]*zip.File{}
	for _, f := range zr.File {
		names[f.Name] = f
	}
	for _, want := range []string{
		"[Content_Types].xml", "_rels/.rels", "word/document.xml", "word/styles.xml",
		"word/numbering.xml", "word/_rels/document.xml.rels", "docProps/core.xml",
	} {
		assert.Contains(t, names, want)
	}

	rc, err := names["docProps/core.xml"].Open()
	require.NoError(t, err)
	core, err := io.ReadAll(rc)
	require.NoError(t, err)
	_ = rc.Close()
	assert.True(t, strings.Contains(string(core), "2024-03-01T12:00:00Z"))
	assert.Contains(t, string(core), "Jane Doe - Resume")
}

func TestAssembleRequiresName(t *testing.T) {
	_, err := Assemble(model.Profile{}, model.GeneratedResume{})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestAssembleDropsControlCharacters(t *testing.T) {
	p := sampleProfile()
	p.Summary = "bell\x07 and\ttab"
	data, err := Assemble(p, model.GeneratedResume{})
	require.NoError(t, err)
	content := readDocumentText(t, data)
	assert.Contains(t, content, "bell and tab")
}

func TestCheckDocumentXML(t *testing.T) {
	const ns = `xmlns:w="` + wmlNamespace + `"`
	assert.NoError(t, checkDocumentXML(`<w:document `+ns+`><w:body><w:p><w:r><w:rPr><w:b/></w:rPr><w:t>x</w:t></w:r></w:p></w:body></w:document>`))
	assert.Error(t, checkDocumentXML(`<w:document `+ns+`><w:body><w:p><w:p></w:p></w:p></w:body></w:document>`))
	assert.Error(t, checkDocumentXML(`<w:document `+ns+`><w:body><w:p><w:r><w:t>x</w:t><w:rPr/></w:r></w:p></w:body></w:document>`))
	assert.Error(t, checkDocumentXML(`<w:document `+ns+`><w:body><w:p>`))
}

func TestEscapeTextFlattensControlCharacters(t *testing.T) {
	assert.Equal(t, "a b c d&amp;e", escapeText("a\tb\nc\r\x01d&e"))
}
