package content

import (
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterFence = "---"

// SplitFrontmatter separates a leading YAML frontmatter block from the body.
// ok is false when content does not open with a closed "---" block.
func SplitFrontmatter(content string) (front, body string, ok bool) {
	lines := strings.SplitAfter(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if strings.TrimRight(lines[0], "\n") != frontmatterFence {
		return "", content, false
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\n") == frontmatterFence {
			front = strings.TrimSuffix(strings.Join(lines[1:i], ""), "\n")
			return front, strings.Join(lines[i+1:], ""), true
		}
	}
	return "", content, false
}

// HasFrontmatter reports whether content opens with a YAML frontmatter block
func HasFrontmatter(content string) bool {
	_, _, ok := SplitFrontmatter(content)
	return ok
}

// ParseFrontmatter decodes the frontmatter block into out. Content without
// frontmatter leaves out untouched.
func ParseFrontmatter(content string, out any) error {
	front, _, ok := SplitFrontmatter(content)
	if !ok || strings.TrimSpace(front) == "" {
		return nil
	}
	return yaml.Unmarshal([]byte(front), out)
}

// ConvertFrontmatterKey renames a top-level frontmatter key, keeping its
// value and the rest of the document byte-for-byte. Both "key:" and
// "key :" spellings are recognised.
func ConvertFrontmatterKey(content, from, to string) string {
	front, body, ok := SplitFrontmatter(content)
	if !ok {
		return content
	}

	lines := strings.Split(front, "\n")
	changed := false
	for i, line := range lines {
		for _, prefix := range []string{from + ":", from + " :"} {
			if rest, found := strings.CutPrefix(line, prefix); found {
				lines[i] = to + ":" + rest
				changed = true
				break
			}
		}
	}
	if !changed {
		return content
	}
	return joinFrontmatter(strings.Join(lines, "\n"), body)
}

// EnsureFrontmatter prepends meta, rendered as YAML, when content has no
// frontmatter of its own. Existing frontmatter is left alone.
func EnsureFrontmatter(content string, meta any) (string, error) {
	if HasFrontmatter(content) {
		return content, nil
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", err
	}
	return joinFrontmatter(strings.TrimRight(string(data), "\n"), content), nil
}

func joinFrontmatter(front, body string) string {
	var b strings.Builder
	b.WriteString(frontmatterFence + "\n")
	if front != "" {
		b.WriteString(front + "\n")
	}
	b.WriteString(frontmatterFence + "\n")
	b.WriteString(body)
	return b.String()
}
