package render

// RunStyle is the inline formatting applied to a run of text.
type RunStyle struct {
	Bold   bool
	Italic bool
	Size   int // half-points
	Color  string
}

const (
	HeadingColor = "1F2937"
	NameColor    = "111111"
	MutedColor   = "4B5563"
	BodySize     = 21
	HeadingSize  = 24
	NameSize     = 36
	FontFamily   = "Calibri"
)

// StyleMap centralizes formatting for the resume's recurring elements.
var StyleMap = map[string]RunStyle{
	"name":           {Bold: true, Size: NameSize, Color: NameColor},
	"title":          {Italic: true, Size: HeadingSize, Color: MutedColor},
	"sectionHeading": {Bold: true, Size: HeadingSize, Color: HeadingColor},
	"roleLine":       {Bold: true},
	"meta":           {Italic: true, Color: MutedColor},
	"label":          {Bold: true},
	"body":           {},
}
