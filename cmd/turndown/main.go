package main

import (
	"fmt"
	"io"
	"os"
	"regexp"

	flag "github.com/spf13/pflag"

	"github.com/ravnmail/turndown"
)

func main() {
	headingStyle := flag.String("heading-style", "atx", "heading style: atx or setext")
	hr := flag.String("hr", "* * *", "horizontal rule marker")
	bullet := flag.String("bullet", "*", "bullet list marker")
	codeStyle := flag.String("code-style", "fenced", "code block style: fenced or indented")
	fence := flag.String("fence", "```", "fence delimiter for fenced code blocks")
	em := flag.String("em", "_", "emphasis delimiter")
	strong := flag.String("strong", "**", "strong emphasis delimiter")
	linkStyle := flag.String("link-style", "inlined", "link style: inlined or referenced")
	linkRef := flag.String("link-ref-style", "full", "reference link style: full, collapsed or shortcut")
	br := flag.String("br", "  ", "string rendered before the newline of a hard break")
	stripTracking := flag.Bool("strip-tracking-images", false, "drop images that look like tracking pixels")
	trackingPattern := flag.String("tracking-pattern", "", "custom tracking image pattern (overrides the built-in one)")
	stripNoAlt := flag.Bool("strip-images-without-alt", false, "also drop images without alt text when stripping")
	flag.Parse()

	opt := turndown.DefaultOptions()
	opt.HeadingStyle = parseHeadingStyle(*headingStyle)
	opt.HorizontalRule = *hr
	opt.BulletListMarker = *bullet
	opt.CodeBlockStyle = parseCodeBlockStyle(*codeStyle)
	opt.Fence = *fence
	opt.EmDelimiter = *em
	opt.StrongDelimiter = *strong
	opt.LinkStyle = parseLinkStyle(*linkStyle)
	opt.LinkReferenceStyle = parseLinkReferenceStyle(*linkRef)
	opt.Br = *br
	opt.StripTrackingImages = *stripTracking
	opt.StripImagesWithoutAlt = *stripNoAlt
	if *trackingPattern != "" {
		// An invalid pattern disables source matching instead of failing.
		opt.TrackingImagePattern, _ = regexp.Compile(*trackingPattern)
	}

	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, "turndown:", err)
		os.Exit(1)
	}
	md, err := turndown.New(opt).ConvertString(string(input))
	if err != nil {
		fmt.Fprintln(os.Stderr, "turndown:", err)
		os.Exit(1)
	}
	fmt.Print(md)
}

func parseHeadingStyle(s string) turndown.HeadingStyle {
	switch s {
	case "atx":
		return turndown.HeadingATX
	case "setext":
		return turndown.HeadingSetext
	}
	badFlagValue("heading style", s)
	return 0
}

func parseCodeBlockStyle(s string) turndown.CodeBlockStyle {
	switch s {
	case "fenced":
		return turndown.CodeBlockFenced
	case "indented":
		return turndown.CodeBlockIndented
	}
	badFlagValue("code block style", s)
	return 0
}

func parseLinkStyle(s string) turndown.LinkStyle {
	switch s {
	case "inlined":
		return turndown.LinkInlined
	case "referenced":
		return turndown.LinkReferenced
	}
	badFlagValue("link style", s)
	return 0
}

func parseLinkReferenceStyle(s string) turndown.LinkReferenceStyle {
	switch s {
	case "full":
		return turndown.LinkReferenceFull
	case "collapsed":
		return turndown.LinkReferenceCollapsed
	case "shortcut":
		return turndown.LinkReferenceShortcut
	}
	badFlagValue("reference link style", s)
	return 0
}

func badFlagValue(what, got string) {
	fmt.Fprintf(os.Stderr, "turndown: unknown %s %q\n", what, got)
	os.Exit(2)
}
