package recipefile

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"time"
)

const (
	commentPrefix      = "//"
	lastModifiedPrefix = "last modified:"
	maxLineLength      = 16 * 1024 * 1024
)

// lastModifiedLayouts are tried in order. Layouts without a zone are read as UTC.
var lastModifiedLayouts = []string{
	"2006-01-02 15:04:05 -0700",
	"2006-01-02 15:04:05 MST",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// StripComments blanks every comment line and returns the cleaned document
// together with the first "Last modified" date found in a comment. Leading
// tabs on the remaining lines are expanded to spaces; JSON allows tab
// indentation but YAML does not. A line longer than 16 MiB is a format error.
func StripComments(data []byte) ([]byte, time.Time, bool, error) {
	var (
		out      bytes.Buffer
		modified time.Time
		found    bool
	)
	out.Grow(len(data))

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	first, line := true, 0
	for scanner.Scan() {
		line++
		if !first {
			out.WriteByte('\n')
		}
		first = false

		text := scanner.Text()
		trimmed := strings.TrimSpace(text)
		if strings.HasPrefix(trimmed, commentPrefix) {
			if !found {
				if t, ok := parseLastModifiedComment(trimmed); ok {
					modified, found = t, true
				}
			}
			continue
		}
		out.WriteString(expandLeadingTabs(text))
	}
	if err := scanner.Err(); err != nil {
		return nil, time.Time{}, false, &FormatError{Line: line + 1, Message: fmt.Sprintf("read line: %v", err)}
	}
	return out.Bytes(), modified, found, nil
}

func parseLastModifiedComment(line string) (time.Time, bool) {
	body := strings.TrimSpace(strings.TrimPrefix(line, commentPrefix))
	if len(body) < len(lastModifiedPrefix) || !strings.EqualFold(body[:len(lastModifiedPrefix)], lastModifiedPrefix) {
		return time.Time{}, false
	}
	return ParseLastModified(body[len(lastModifiedPrefix):])
}

// ParseLastModified parses the date part of a "Last modified:" comment.
func ParseLastModified(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range lastModifiedLayouts {
		if t, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func expandLeadingTabs(line string) string {
	i := 0
	for i < len(line) && (line[i] == '\t' || line[i] == ' ') {
		i++
	}
	if strings.IndexByte(line[:i], '\t') < 0 {
		return line
	}
	return strings.ReplaceAll(line[:i], "\t", "    ") + line[i:]
}
