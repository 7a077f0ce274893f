package render

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// checkDocumentXML rejects document bodies Word refuses to open: malformed
// XML, paragraphs nested in paragraphs, and run properties placed after text.
func checkDocumentXML(doc string) error {
	dec := xml.NewDecoder(strings.NewReader(doc))
	var (
		paraDepth int
		runText   []bool
	)
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("document.xml parse: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wmlNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				if paraDepth > 0 {
					return errors.New("document.xml has nested <w:p>")
				}
				paraDepth++
			case "r":
				runText = append(runText, false)
			case "t":
				if n := len(runText); n > 0 {
					runText[n-1] = true
				}
			case "rPr":
				if n := len(runText); n > 0 && runText[n-1] {
					return errors.New("document.xml has <w:rPr> after <w:t>")
				}
			}
		case xml.EndElement:
			if t.Name.Space != wmlNamespace {
				continue
			}
			switch t.Name.Local {
			case "p":
				paraDepth--
			case "r":
				if n := len(runText); n > 0 {
					runText = runText[:n-1]
				}
			}
		}
	}
}
