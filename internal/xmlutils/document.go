// Package xmlutils provides the XML helpers the extractor is built on: parsing
// raw payloads into an element tree, DOM-style tag searches and text content.
package xmlutils

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"golang.org/x/net/html/charset"
)

var (
	// ErrNoRootElement is returned when a payload parses but holds no element.
	ErrNoRootElement = errors.New("document has no root element")
	// ErrMultipleRoots is returned when elements follow the root element.
	ErrMultipleRoots = errors.New("document has more than one root element")
	// ErrContentOutsideRoot is returned for text before or after the root.
	ErrContentOutsideRoot = errors.New("document has text outside the root element")
)

// Parse reads an XML payload into an element tree. Declared encodings other
// than UTF-8 are transcoded. Unclosed or mismatched tags are errors, and so
// is anything but one root element surrounded by markup or whitespace.
func Parse(content string) (*etree.Document, error) {
	return ParseReader(strings.NewReader(content))
}

// ParseReader is Parse over a stream.
func ParseReader(r io.Reader) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charset.NewReaderLabel
	n, err := doc.ReadFrom(r)
	if err != nil {
		if errors.Is(err, etree.ErrXML) {
			return nil, fmt.Errorf("unclosed or mismatched tag near byte %d: %w", n, err)
		}
		return nil, err
	}
	if err := checkSingleRoot(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// checkSingleRoot enforces the document production: exactly one element at
// the top level, with only whitespace, comments, processing instructions and
// directives around it.
func checkSingleRoot(doc *etree.Document) error {
	var root *etree.Element
	for _, tok := range doc.Child {
		switch t := tok.(type) {
		case *etree.Element:
			if root != nil {
				return fmt.Errorf("<%s> after root <%s>: %w", TagName(t), TagName(root), ErrMultipleRoots)
			}
			root = t
		case *etree.CharData:
			if !t.IsWhitespace() {
				return fmt.Errorf("text %q: %w", snippet(t.Data), ErrContentOutsideRoot)
			}
		}
	}
	if root == nil {
		return ErrNoRootElement
	}
	return nil
}

func snippet(s string) string {
	s = strings.TrimSpace(s)
	if r := []rune(s); len(r) > 32 {
		return string(r[:32]) + "..."
	}
	return s
}

// TagName is the element's qualified name as written in the document,
// including any namespace prefix.
func TagName(e *etree.Element) string {
	return e.FullTag()
}

// ChildElements returns the direct element children of e in document order.
func ChildElements(e *etree.Element) []*etree.Element {
	if e == nil {
		return nil
	}
	return e.ChildElements()
}

// FindByTag returns every descendant of scope whose qualified name equals tag
// exactly, in document order. scope itself is not considered, so passing
// &doc.Element searches the whole document including the root.
func FindByTag(scope *etree.Element, tag string) []*etree.Element {
	var out []*etree.Element
	walk(scope, func(e *etree.Element) bool {
		if TagName(e) == tag {
			out = append(out, e)
		}
		return true
	})
	return out
}

// FirstByTag returns the first descendant of scope named tag, or nil.
func FirstByTag(scope *etree.Element, tag string) *etree.Element {
	var found *etree.Element
	walk(scope, func(e *etree.Element) bool {
		if TagName(e) == tag {
			found = e
			return false
		}
		return true
	})
	return found
}

// walk visits descendants of scope depth-first in document order until visit
// returns false.
func walk(scope *etree.Element, visit func(*etree.Element) bool) bool {
	if scope == nil {
		return true
	}
	for _, child := range scope.ChildElements() {
		if !visit(child) {
			return false
		}
		if !walk(child, visit) {
			return false
		}
	}
	return true
}

// TextContent concatenates every text and CDATA node below e in document
// order. Comments and processing instructions are skipped. Entities are
// already decoded by the parser.
func TextContent(e *etree.Element) string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	appendText(&b, e)
	return b.String()
}

func appendText(b *strings.Builder, e *etree.Element) {
	for _, tok := range e.Child {
		switch t := tok.(type) {
		case *etree.CharData:
			b.WriteString(t.Data)
		case *etree.Element:
			appendText(b, t)
		}
	}
}
