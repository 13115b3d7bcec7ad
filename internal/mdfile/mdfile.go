// ABOUTME: Frontmatter markdown codec: ordered YAML header block plus free-text body
// ABOUTME: Provides Decode/Encode plus the directory and atomic-write helpers the stores use

package mdfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrMalformed indicates a file that starts a frontmatter block but never
// terminates it.
var ErrMalformed = errors.New("malformed record file")

const delimiterLine = "---\n"

// File is a decoded frontmatter markdown file.
type File struct {
	Frontmatter map[string]any
	Body        string
}

// HeaderField is one ordered key/value pair of an encoded header. Values may
// be nil, strings, []string, map[string]int, nested []HeaderField mappings,
// or sequences ([]any) of nested mappings.
type HeaderField struct {
	Name  string
	Value any
}

// Decode splits a file into frontmatter and body. Text that does not start
// with the delimiter line is all body with an empty header. String header
// values are trimmed of surrounding whitespace. A header block that never
// terminates fails with ErrMalformed.
func Decode(text string) (*File, error) {
	if !strings.HasPrefix(text, delimiterLine) {
		return &File{Frontmatter: map[string]any{}, Body: strings.TrimSpace(text)}, nil
	}

	rest := text[len(delimiterLine):]
	var header, body string
	switch {
	case strings.HasPrefix(rest, "---\n"):
		header, body = "", rest[len("---\n"):]
	case rest == "---":
		header, body = "", ""
	default:
		if i := strings.Index(rest, "\n---\n"); i >= 0 {
			header, body = rest[:i+1], rest[i+len("\n---\n"):]
		} else if strings.HasSuffix(rest, "\n---") {
			header, body = rest[:len(rest)-len("---")], ""
		} else {
			return nil, fmt.Errorf("%w: frontmatter block not terminated", ErrMalformed)
		}
	}

	fm := map[string]any{}
	if strings.TrimSpace(header) != "" {
		if err := yaml.Unmarshal([]byte(header), &fm); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	for k, v := range fm {
		if s, ok := v.(string); ok {
			fm[k] = strings.TrimSpace(s)
		}
	}

	return &File{Frontmatter: fm, Body: strings.TrimSpace(body)}, nil
}

// Encode renders a frontmatter file from an ordered header and a body.
// Fields named in pinned are emitted first, in pinned order; the remainder
// keep their given order.
func Encode(header []HeaderField, body string, pinned ...string) (string, error) {
	ordered := orderHeader(header, pinned)

	node := &yaml.Node{Kind: yaml.MappingNode}
	for _, f := range ordered {
		valueNode, err := encodeValue(f.Value)
		if err != nil {
			return "", fmt.Errorf("encode header field %s: %w", f.Name, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
			valueNode,
		)
	}

	var sb strings.Builder
	sb.WriteString(delimiterLine)
	if len(node.Content) > 0 {
		enc := yaml.NewEncoder(&sb)
		enc.SetIndent(2)
		if err := enc.Encode(node); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
		if err := enc.Close(); err != nil {
			return "", fmt.Errorf("encode frontmatter: %w", err)
		}
	}
	sb.WriteString(delimiterLine)
	if body != "" {
		sb.WriteString("\n")
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func orderHeader(header []HeaderField, pinned []string) []HeaderField {
	if len(pinned) == 0 {
		return header
	}
	byName := make(map[string]int, len(header))
	for i, f := range header {
		byName[f.Name] = i
	}
	taken := make(map[string]bool, len(pinned))
	out := make([]HeaderField, 0, len(header))
	for _, name := range pinned {
		if i, ok := byName[name]; ok && !taken[name] {
			out = append(out, header[i])
			taken[name] = true
		}
	}
	for _, f := range header {
		if !taken[f.Name] {
			out = append(out, f)
		}
	}
	return out
}

func encodeValue(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case string:
		if val == "" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		n := &yaml.Node{}
		if err := n.Encode(val); err != nil {
			return nil, err
		}
		return n, nil
	case []string:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, s := range val {
			item := &yaml.Node{}
			if err := item.Encode(s); err != nil {
				return nil, err
			}
			n.Content = append(n.Content, item)
		}
		return n, nil
	case map[string]int:
		// Deterministic key order for stable files.
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, k := range keys {
			countNode := &yaml.Node{}
			if err := countNode.Encode(val[k]); err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: k},
				countNode,
			)
		}
		return n, nil
	case []HeaderField:
		n := &yaml.Node{Kind: yaml.MappingNode}
		for _, f := range val {
			valueNode, err := encodeValue(f.Value)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: f.Name},
				valueNode,
			)
		}
		return n, nil
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range val {
			itemNode, err := encodeValue(item)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, itemNode)
		}
		return n, nil
	}
	return nil, fmt.Errorf("unsupported header value type %T", v)
}

// EnsureDir creates dir (and parents) if it does not exist.
func EnsureDir(dir string) error {
	return os.MkdirAll(dir, 0o755)
}

// AtomicWrite writes data to path in a single rename so readers never see a
// truncated file. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := EnsureDir(dir); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
