package turndown

import "regexp"

// HeadingStyle selects how headings are rendered.
type HeadingStyle int

const (
	HeadingATX HeadingStyle = iota
	HeadingSetext
)

// CodeBlockStyle selects how pre blocks are rendered.
type CodeBlockStyle int

const (
	CodeBlockFenced CodeBlockStyle = iota
	CodeBlockIndented
)

// LinkStyle selects between inline and reference links.
type LinkStyle int

const (
	LinkInlined LinkStyle = iota
	LinkReferenced
)

// LinkReferenceStyle selects the textual form of reference links.
type LinkReferenceStyle int

const (
	LinkReferenceFull LinkReferenceStyle = iota
	LinkReferenceCollapsed
	LinkReferenceShortcut
)

// defaultTrackingPattern matches URL fragments that are almost certainly
// tracking pixels. Compiled once and shared read-only across conversions.
var defaultTrackingPattern = regexp.MustCompile(
	`(?i)(pixel|beacon|\.com/ts|splash.tools/o/|tr/op|track|klclick.com/o/|ho\.gif|transp|msg_del_|analytics|spacer|tagpixel|emimp/ip_|utm_|/open\?|\.gif\?|1x1|/tr/|/track\.)`,
)

// Options holds the stylistic knobs for one conversion run. Rules and the
// engine read it but never modify it, so a single Options value may be
// shared by concurrent conversions.
type Options struct {
	HeadingStyle       HeadingStyle
	HorizontalRule     string // marker for hr elements
	BulletListMarker   string // marker for unordered list items
	CodeBlockStyle     CodeBlockStyle
	Fence              string // fence delimiter for fenced code blocks
	EmDelimiter        string
	StrongDelimiter    string
	LinkStyle          LinkStyle
	LinkReferenceStyle LinkReferenceStyle
	Br                 string // rendered before the newline of a hard break

	// StripTrackingImages drops images whose source matches
	// TrackingImagePattern. A nil pattern disables the source check but
	// StripImagesWithoutAlt still applies.
	StripTrackingImages   bool
	TrackingImagePattern  *regexp.Regexp
	StripImagesWithoutAlt bool
}

// DefaultOptions returns the documented defaults: atx headings, fenced code
// blocks with backtick fences, inlined links and "* * *" horizontal rules.
func DefaultOptions() *Options {
	return &Options{
		HeadingStyle:         HeadingATX,
		HorizontalRule:       "* * *",
		BulletListMarker:     "*",
		CodeBlockStyle:       CodeBlockFenced,
		Fence:                "```",
		EmDelimiter:          "_",
		StrongDelimiter:      "**",
		LinkStyle:            LinkInlined,
		LinkReferenceStyle:   LinkReferenceFull,
		Br:                   "  ",
		TrackingImagePattern: defaultTrackingPattern,
	}
}
