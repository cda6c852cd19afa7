package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const keyDelimiter = "."

// Document is a nested, insertion-ordered translation tree for one language.
type Document struct {
	root *node
}

type node struct {
	keys     []string
	children map[string]*node
	value    string
	leaf     bool
}

func newObject() *node {
	return &node{children: make(map[string]*node)}
}

func NewDocument() *Document {
	return &Document{root: newObject()}
}

// Conflict describes an entry whose path collided with an earlier entry and
// was therefore not written.
type Conflict struct {
	Key    string
	Path   []string
	Reason string
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s (%s): %s", c.Key, strings.Join(c.Path, keyDelimiter), c.Reason)
}

// ResolvePath returns where an entry lives in the nested document: dotted keys
// are split on the delimiter, flat keys with a group go under the group, other
// keys stay at the top level.
func ResolvePath(e Entry) []string {
	if strings.Contains(e.Key, keyDelimiter) {
		return strings.Split(e.Key, keyDelimiter)
	}
	if e.Group != "" {
		return []string{e.Group, e.Key}
	}
	return []string{e.Key}
}

// Set writes value at path. The first write to a path wins over a later
// write that would need to turn a scalar into an object or the other way
// around; in that case Set returns a non-empty reason and leaves the
// document unchanged.
func (d *Document) Set(path []string, value string) string {
	if len(path) == 0 {
		return "empty path"
	}

	cur := d.root
	for i, seg := range path[:len(path)-1] {
		child, ok := cur.children[seg]
		if !ok {
			child = newObject()
			cur.keys = append(cur.keys, seg)
			cur.children[seg] = child
		} else if child.leaf {
			return fmt.Sprintf("%q is already a value", strings.Join(path[:i+1], keyDelimiter))
		}
		cur = child
	}

	last := path[len(path)-1]
	if existing, ok := cur.children[last]; ok {
		if !existing.leaf {
			return fmt.Sprintf("%q is already a nested group", strings.Join(path, keyDelimiter))
		}
		existing.value = value
		return ""
	}

	cur.keys = append(cur.keys, last)
	cur.children[last] = &node{value: value, leaf: true}
	return ""
}

// Get returns the scalar stored at path.
func (d *Document) Get(path ...string) (string, bool) {
	cur := d.root
	for _, seg := range path {
		child, ok := cur.children[seg]
		if !ok {
			return "", false
		}
		cur = child
	}
	return cur.value, cur.leaf
}

// Flatten returns every scalar keyed by its dot-joined path.
func (d *Document) Flatten() map[string]string {
	out := make(map[string]string)
	var walk func(prefix string, n *node)
	walk = func(prefix string, n *node) {
		for _, k := range n.keys {
			child := n.children[k]
			path := k
			if prefix != "" {
				path = prefix + keyDelimiter + k
			}
			if child.leaf {
				out[path] = child.value
				continue
			}
			walk(path, child)
		}
	}
	walk("", d.root)
	return out
}

// MarshalJSON encodes the tree compactly, keeping insertion order and leaving
// HTML characters unescaped.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.root.writeJSON(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode writes the document pretty printed with four space indentation.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	return enc.Encode(d)
}

func (n *node) writeJSON(buf *bytes.Buffer) error {
	if n.leaf {
		return writeString(buf, n.value)
	}
	buf.WriteByte('{')
	for i, k := range n.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := n.children[k].writeJSON(buf); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
