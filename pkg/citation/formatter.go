package citation

import (
	"fmt"
	"strconv"
	"strings"
)

// Format renders a parsed citation in the given style. Formatting an
// invalid citation (or one without a section) is a no-op and returns "".
// Unrecognized styles render as StyleFull.
func Format(c Parsed, style Style) string {
	if !c.Valid || c.Section == "" {
		return ""
	}

	pinpoint := Pinpoint(c)

	switch style {
	case StylePinpoint:
		return pinpoint

	case StyleShort:
		if c.Title != "" {
			return pinpoint + " " + c.Title
		}
		return pinpoint

	default: // StyleFull and anything unrecognized
		var titleParts []string
		if c.Title != "" {
			titleParts = append(titleParts, c.Title)
		}
		if c.Year != 0 {
			titleParts = append(titleParts, strconv.Itoa(c.Year))
		}
		if len(titleParts) == 0 {
			return pinpoint
		}
		return pinpoint + ", " + strings.Join(titleParts, " ")
	}
}

// Pinpoint renders the section-only portion of a citation:
// "§ <section>(<subsection>)(<paragraph>)".
func Pinpoint(c Parsed) string {
	var b strings.Builder
	fmt.Fprintf(&b, "§ %s", c.Section)
	if c.Subsection != "" {
		fmt.Fprintf(&b, "(%s)", c.Subsection)
	}
	if c.Paragraph != "" {
		fmt.Fprintf(&b, "(%s)", c.Paragraph)
	}
	return b.String()
}
