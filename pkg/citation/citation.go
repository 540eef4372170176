// Package citation parses, formats, and normalizes references to
// statutory provisions (e.g. "§ 3(1)(a), DSG", "Section 3, Data
// Protection Act 2018", "para4a B-VG").
package citation

// Kind classifies the kind of legal instrument a citation points at.
type Kind string

const (
	KindStatute             Kind = "statute"
	KindStatutoryInstrument Kind = "statutory_instrument"
	KindUnknown             Kind = "unknown"
)

// Parsed is the structured result of parsing a citation string.
// Valid citations always carry a Section; invalid ones always carry Err
// and nothing else.
type Parsed struct {
	Valid bool `json:"valid"`
	Kind  Kind `json:"kind"`

	Title string `json:"title,omitempty"`
	Year  int    `json:"year,omitempty"`

	// Section is the bare section token ("3", "4a"). Subsection and
	// Paragraph hold the parenthesized sub-tokens of references like
	// "3(1)(a)".
	Section    string `json:"section,omitempty"`
	Subsection string `json:"subsection,omitempty"`
	Paragraph  string `json:"paragraph,omitempty"`

	Err string `json:"error,omitempty"`
}

// Style selects the output form of Format.
type Style string

const (
	StyleFull     Style = "full"
	StyleShort    Style = "short"
	StylePinpoint Style = "pinpoint"
)
