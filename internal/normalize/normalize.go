// Package normalize rewrites raw generated text into a canonical Markdown heading structure.
package normalize

import (
	"strings"
	"unicode"
)

// DefaultTitle is used when a heading must be synthesized and the topic is blank.
const DefaultTitle = "Untitled"

// scaffoldTokens are labels the service sometimes echoes from the prompt.
var scaffoldTokens = []string{"## Outline:", "## Article:"}

// levelTags map explicit level labels to plain heading markers, deepest first.
var levelTags = []struct {
	tag    string
	marker string
}{
	{"#### H4:", "####"},
	{"### H3:", "###"},
	{"## H2:", "##"},
	{"# H1:", "#"},
}

// Article normalizes raw into a NormalizedArticle. The result always starts with a
// single "# " heading, contains no scaffold labels or level tags, and no heading line
// ends with a colon. Article is deterministic and idempotent.
func Article(raw, topic string) string {
	text := strings.TrimSpace(cleanup(lineEndings.Replace(raw)))

	if !startsWithTitle(text) {
		text = "# " + headingTitle(topic) + "\n\n" + text
	}

	text = StripHeadingColons(text)
	return strings.TrimSpace(text)
}

// StripHeadingColons removes trailing colons (and the whitespace around them) from every
// line that begins with a heading marker. Other lines are untouched.
func StripHeadingColons(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "#") {
			lines[i] = trimHeadingEnd(line)
		}
	}
	return strings.Join(lines, "\n")
}

// HeadingLevel reports the depth of a Markdown ATX heading line and its text.
// ok is false for lines that are not headings (including "#hashtag").
func HeadingLevel(line string) (level int, text string, ok bool) {
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || level > 6 {
		return 0, "", false
	}
	rest := line[level:]
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' {
		return 0, "", false
	}
	return level, strings.TrimSpace(rest), true
}

// cleanup strips scaffold labels and rewrites level tags until the text stops changing,
// so a replacement can never leave behind a newly formed label.
func cleanup(text string) string {
	for {
		next := text
		for _, token := range scaffoldTokens {
			next = strings.ReplaceAll(next, token, "")
		}
		for _, lt := range levelTags {
			next = strings.ReplaceAll(next, lt.tag, lt.marker)
		}
		if next == text {
			return text
		}
		text = next
	}
}

// startsWithTitle reports whether the first line is a level-1 heading with text
// that survives colon stripping.
func startsWithTitle(text string) bool {
	firstLine, _, _ := strings.Cut(text, "\n")
	if !strings.HasPrefix(firstLine, "# ") {
		return false
	}
	return trimHeadingEnd(firstLine[2:]) != ""
}

// headingTitle derives a single-line heading text from the topic.
func headingTitle(topic string) string {
	title := strings.Join(strings.Fields(topic), " ")
	for {
		next := cleanup(title)
		// "# " followed by "H1:" would form a level tag
		next = strings.TrimPrefix(next, "H1:")
		next = strings.TrimSpace(trimHeadingEnd(next))
		if next == title {
			break
		}
		title = next
	}
	if title == "" {
		return DefaultTitle
	}
	return title
}

// lineEndings rewrites CRLF and bare CR line breaks to LF.
var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

func trimHeadingEnd(line string) string {
	return strings.TrimRightFunc(line, func(r rune) bool {
		return r == ':' || unicode.IsSpace(r)
	})
}
