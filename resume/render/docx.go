package render

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"resume-studio/resume/model"
)

// ContentTypeDOCX is the MIME type of the assembled document.
const ContentTypeDOCX = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	wmlNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	relNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	// rightTabPos is the right margin of a Letter page with 0.75in margins, in twips.
	rightTabPos = 10800
)

// ErrMissingName is returned when the profile has no first or last name.
var ErrMissingName = errors.New("profile name is required")

var now = time.Now

// Assemble lays out the profile and generated content and writes a DOCX package.
func Assemble(profile model.Profile, generated model.GeneratedResume) ([]byte, error) {
	if profile.FullName() == "" {
		return nil, ErrMissingName
	}
	doc := documentXML(layout(profile, generated))
	if err := checkDocumentXML(doc); err != nil {
		return nil, err
	}

	parts := []struct {
		name string
		body string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"docProps/core.xml", coreXML(profile.FullName(), now().UTC())},
		{"docProps/app.xml", appXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/numbering.xml", numberingXML},
		{"word/document.xml", doc},
	}

	var out bytes.Buffer
	zw := zip.NewWriter(&out)
	for _, p := range parts {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: now().UTC()})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", p.name, err)
		}
		if _, err := w.Write([]byte(p.body)); err != nil {
			return nil, fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close docx: %w", err)
	}
	return out.Bytes(), nil
}

func documentXML(paras []paragraph) string {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<w:document xmlns:w="` + wmlNamespace + `" xmlns:r="` + relNamespace + `"><w:body>`)
	for _, p := range paras {
		writeParagraph(&b, p)
	}
	b.WriteString(`<w:sectPr><w:pgSz w:w="12240" w:h="15840"/>`)
	b.WriteString(`<w:pgMar w:top="1080" w:right="1080" w:bottom="1080" w:left="1080" w:header="720" w:footer="720" w:gutter="0"/>`)
	b.WriteString(`</w:sectPr></w:body></w:document>`)
	return b.String()
}

func writeParagraph(b *strings.Builder, p paragraph) {
	b.WriteString("<w:p><w:pPr>")
	switch p.Kind {
	case paraName:
		b.WriteString(`<w:pStyle w:val="Title"/><w:jc w:val="center"/>`)
	case paraTitle:
		b.WriteString(`<w:jc w:val="center"/><w:spacing w:after="120"/>`)
	case paraHeading:
		b.WriteString(`<w:pStyle w:val="Heading1"/>`)
		b.WriteString(`<w:pBdr><w:bottom w:val="single" w:sz="6" w:space="1" w:color="` + HeadingColor + `"/></w:pBdr>`)
		b.WriteString(`<w:spacing w:before="240" w:after="80"/>`)
	case paraBullet:
		b.WriteString(`<w:pStyle w:val="ListBullet"/><w:numPr><w:ilvl w:val="0"/><w:numId w:val="1"/></w:numPr>`)
	case paraRole:
		b.WriteString(`<w:tabs><w:tab w:val="right" w:pos="` + strconv.Itoa(rightTabPos) + `"/></w:tabs><w:spacing w:before="120" w:after="0"/>`)
	case paraMeta:
		b.WriteString(`<w:spacing w:after="40"/>`)
	default:
		b.WriteString(`<w:spacing w:after="80"/>`)
	}
	b.WriteString("</w:pPr>")

	for _, r := range p.Runs {
		writeRun(b, r.Text, r.Style)
	}
	if p.Trailing != "" {
		b.WriteString(`<w:r><w:tab/></w:r>`)
		writeRun(b, p.Trailing, StyleMap["meta"])
	}
	b.WriteString("</w:p>")
}

// writeRun emits rPr before the text, as Word requires.
func writeRun(b *strings.Builder, text string, style RunStyle) {
	if text == "" {
		return
	}
	b.WriteString("<w:r>")
	if style != (RunStyle{}) {
		b.WriteString("<w:rPr>")
		if style.Bold {
			b.WriteString("<w:b/>")
		}
		if style.Italic {
			b.WriteString("<w:i/>")
		}
		if style.Color != "" {
			b.WriteString(`<w:color w:val="` + style.Color + `"/>`)
		}
		if style.Size > 0 {
			size := strconv.Itoa(style.Size)
			b.WriteString(`<w:sz w:val="` + size + `"/><w:szCs w:val="` + size + `"/>`)
		}
		b.WriteString("</w:rPr>")
	}
	b.WriteString(`<w:t xml:space="preserve">`)
	b.WriteString(escapeText(text))
	b.WriteString("</w:t></w:r>")
}

func escapeText(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(stripControl(s)))
	return buf.String()
}

// stripControl drops characters that are illegal in XML 1.0 and flattens tab,
// newline and carriage return to spaces so a run stays on one line.
func stripControl(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\t' || r == '\n' || r == '\r' {
			return ' '
		}
		if r < 0x20 || r == 0xFFFE || r == 0xFFFF {
			return -1
		}
		return r
	}, s)
}

func coreXML(title string, ts time.Time) string {
	stamp := ts.Format(time.RFC3339)
	return xml.Header +
		`<cp:coreProperties xmlns:cp="http://schemas.openxmlformats.org/package/2006/metadata/core-properties" ` +
		`xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:dcterms="http://purl.org/dc/terms/" ` +
		`xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance">` +
		`<dc:title>` + escapeText(title+" - Resume") + `</dc:title>` +
		`<dc:creator>` + escapeText(title) + `</dc:creator>` +
		`<dcterms:created xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:created>` +
		`<dcterms:modified xsi:type="dcterms:W3CDTF">` + stamp + `</dcterms:modified>` +
		`</cp:coreProperties>`
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>` +
	`<Override PartName="/word/numbering.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering" Target="numbering.xml"/>` +
	`</Relationships>`

const appXML = xml.Header +
	`<Properties xmlns="http://schemas.openxmlformats.org/officeDocument/2006/extended-properties">` +
	`<Application>resume-studio</Application></Properties>`

var stylesXML = xml.Header +
	`<w:styles xmlns:w="` + wmlNamespace + `">` +
	`<w:docDefaults><w:rPrDefault><w:rPr>` +
	`<w:rFonts w:ascii="` + FontFamily + `" w:hAnsi="` + FontFamily + `" w:cs="` + FontFamily + `"/>` +
	`<w:sz w:val="` + strconv.Itoa(BodySize) + `"/><w:szCs w:val="` + strconv.Itoa(BodySize) + `"/>` +
	`</w:rPr></w:rPrDefault><w:pPrDefault><w:pPr><w:spacing w:after="60" w:line="259" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="` + strconv.Itoa(NameSize) + `"/></w:rPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:pPr><w:keepNext/><w:outlineLvl w:val="0"/></w:pPr></w:style>` +
	`<w:style w:type="paragraph" w:styleId="ListBullet"><w:name w:val="List Bullet"/><w:basedOn w:val="Normal"/><w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:style>` +
	`</w:styles>`

const numberingXML = xml.Header +
	`<w:numbering xmlns:w="` + wmlNamespace + `">` +
	`<w:abstractNum w:abstractNumId="0"><w:multiLevelType w:val="singleLevel"/>` +
	`<w:lvl w:ilvl="0"><w:start w:val="1"/><w:numFmt w:val="bullet"/><w:lvlText w:val="•"/><w:lvlJc w:val="left"/>` +
	`<w:pPr><w:ind w:left="360" w:hanging="360"/></w:pPr></w:lvl></w:abstractNum>` +
	`<w:num w:numId="1"><w:abstractNumId w:val="0"/></w:num>` +
	`</w:numbering>`
