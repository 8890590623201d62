package mailer

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// Template is a parsed template file.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits content into YAML frontmatter and a markdown body.
// Content that does not open with a "---" line has no frontmatter.
func ParseTemplate(content []byte) (*Template, error) {
	sc := bufio.NewScanner(bytes.NewReader(content))
	if !sc.Scan() || strings.TrimRight(sc.Text(), "\r") != frontmatterDelimiter {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	offset := len(sc.Bytes()) + 1
	var front bytes.Buffer
	closed := false
	for sc.Scan() {
		line := sc.Bytes()
		offset += len(line) + 1
		if strings.TrimRight(string(line), "\r") == frontmatterDelimiter {
			closed = true
			break
		}
		front.Write(line)
		front.WriteByte('\n')
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
	}
	if !closed {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}

	metadata := map[string]any{}
	if len(bytes.TrimSpace(front.Bytes())) > 0 {
		if err := yaml.Unmarshal(front.Bytes(), &metadata); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	body := ""
	if offset < len(content) {
		body = string(content[offset:])
	}
	return &Template{Metadata: metadata, Body: body}, nil
}
