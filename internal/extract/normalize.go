package extract

import (
    "strings"

    "golang.org/x/text/unicode/norm"
)

// normalizePage cleans one page's extracted text so every backend yields
// uniform segments: line endings become LF, the text is NFC normalized, and
// trailing newlines are dropped. The caller appends the single terminating
// newline per page.
func normalizePage(s string) string {
    s = strings.ReplaceAll(s, "\r\n", "\n")
    s = strings.ReplaceAll(s, "\r", "\n")
    s = norm.NFC.String(s)
    return strings.TrimRight(s, "\n")
}

func normalizeWhitespace(s string) string {
    // Collapse multiple spaces and blank lines
    lines := strings.Split(s, "\n")
    out := make([]string, 0, len(lines))
    for _, line := range lines {
        trimmed := strings.TrimSpace(line)
        if trimmed == "" {
            // Keep at most one consecutive blank
            if len(out) > 0 && out[len(out)-1] == "" {
                continue
            }
            out = append(out, "")
            continue
        }
        // collapse internal whitespace runs to single spaces
        collapsed := collapseSpaces(trimmed)
        out = append(out, collapsed)
    }
    // trim trailing blank line
    for len(out) > 0 && out[len(out)-1] == "" {
        out = out[:len(out)-1]
    }
    return strings.Join(out, "\n")
}

func collapseSpaces(s string) string {
    var b strings.Builder
    lastSpace := false
    for _, r := range s {
        if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
            if !lastSpace {
                b.WriteByte(' ')
                lastSpace = true
            }
            continue
        }
        b.WriteRune(r)
        lastSpace = false
    }
    return b.String()
}
