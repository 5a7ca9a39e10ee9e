// extract.go implements the three token scans over raw text.
package smarttext

import (
	"regexp"
	"strconv"
	"strings"
)

const maxTagNameLength = 50

var (
	mentionPattern = regexp.MustCompile(`@\[([^\]]+)\]\(user:(\d+)\)`)
	commandPattern = regexp.MustCompile(`^/([a-z]+)[ \t]+(.+)$`)
	tagNamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{0,49}$`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// ExtractMentions returns the unique user ids mentioned in text, in order of
// first occurrence.
func ExtractMentions(text string) []int64 {
	tokens := ExtractMentionTokens(text)
	ids := make([]int64, 0, len(tokens))
	for _, tok := range tokens {
		ids = append(ids, tok.UserID)
	}
	return ids
}

// ExtractMentionTokens returns one token per mentioned user, keeping the
// display name of the first mention.
func ExtractMentionTokens(text string) []MentionToken {
	var tokens []MentionToken
	seen := make(map[int64]bool)

	for _, m := range mentionPattern.FindAllStringSubmatch(text, -1) {
		id, err := strconv.ParseInt(m[2], 10, 64)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		tokens = append(tokens, MentionToken{DisplayName: m[1], UserID: id})
	}
	return tokens
}

// ExtractTagRefs returns the unique lower-cased tag names referenced in
// text, in order of first occurrence.
func ExtractTagRefs(text string) []string {
	var names []string
	seen := make(map[string]bool)
	for _, tok := range ScanTags(text) {
		if seen[tok.Name] {
			continue
		}
		seen[tok.Name] = true
		names = append(names, tok.Name)
	}
	return names
}

// ScanTags returns every tag reference in text, duplicates included.
//
// A reference is '#' at the start of a line or after whitespace, followed by
// a name and then whitespace, end of input, or one of ".,;:!?)". Trailing
// dots belong to the sentence, not the name.
func ScanTags(text string) []TagToken {
	var tokens []TagToken

	for i := 0; i < len(text); i++ {
		if text[i] != '#' {
			continue
		}
		if i > 0 && !isSpaceByte(text[i-1]) {
			continue
		}

		end := i + 1
		for end < len(text) && isTagByte(text[end]) {
			end++
		}
		name, ok := longestTag(text, i+1, end)
		if !ok {
			continue
		}
		tokens = append(tokens, TagToken{Name: name, Position: i})
		i = end - 1
	}
	return tokens
}

// ValidTagName reports whether name is a well-formed, lower-case tag name.
func ValidTagName(name string) bool {
	return tagNamePattern.MatchString(name)
}

// ExtractCommands returns the command lines of text whose verb is allowed in
// ctx, in document order. Lines with other verbs are not commands at all.
func ExtractCommands(text string, ctx Context) []CommandToken {
	return defaultRegistry.Extract(text, ctx)
}

// ExtractAllCommands returns every syntactically valid command line
// regardless of context.
func ExtractAllCommands(text string) []CommandToken {
	return scanCommands(text, func(string) bool { return true })
}

func scanCommands(text string, allowed func(verb string) bool) []CommandToken {
	var tokens []CommandToken

	for n, line := range strings.Split(normalizeNewlines(text), "\n") {
		m := commandPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		verb, args := m[1], strings.TrimSpace(m[2])
		if args == "" || !allowed(verb) {
			continue
		}
		tokens = append(tokens, CommandToken{
			Verb:       verb,
			Args:       args,
			SourceLine: strings.TrimSpace(line),
			Line:       n + 1,
		})
	}
	return tokens
}

// stripCommandLines blanks every line equal to a command's source line,
// collapses the resulting blank runs and trims the text.
func stripCommandLines(text string, commands []CommandToken) string {
	remove := make(map[string]bool, len(commands))
	for _, cmd := range commands {
		remove[cmd.SourceLine] = true
	}

	lines := strings.Split(normalizeNewlines(text), "\n")
	for i, line := range lines {
		if remove[strings.TrimSpace(line)] {
			lines[i] = ""
		}
	}

	cleaned := blankRuns.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(cleaned)
}

func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}

// longestTag picks the longest prefix of text[start:end], at most
// maxTagNameLength bytes, that is a valid name and is followed by the end of
// text, whitespace or a terminator.
func longestTag(text string, start, end int) (string, bool) {
	n := end - start
	if n > maxTagNameLength {
		n = maxTagNameLength
	}
	for ; n > 0; n-- {
		next := start + n
		if next < len(text) && !isSpaceByte(text[next]) && !isTagTerminator(text[next]) {
			continue
		}
		name := strings.ToLower(text[start:next])
		if strings.HasSuffix(name, ".") || !tagNamePattern.MatchString(name) {
			continue
		}
		return name, true
	}
	return "", false
}

func isTagByte(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') ||
		b == '.' || b == '_' || b == '-'
}

func isTagTerminator(b byte) bool {
	return strings.IndexByte(".,;:!?)", b) >= 0
}
