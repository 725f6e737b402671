package xmlutils

import (
	"encoding/xml"
	"fmt"
	"io"

	"golang.org/x/net/html/charset"
	"gopkg.in/xmlpath.v2"
)

// ContainsAnyElement reports whether the XML read from r holds at least one
// element named by any of tags. A payload that is not well-formed XML yields
// false with a nil error; only a tag that cannot be compiled into a path
// query is an error.
func ContainsAnyElement(r io.Reader, tags ...string) (bool, error) {
	paths := make([]*xmlpath.Path, 0, len(tags))
	for _, tag := range tags {
		path, err := xmlpath.Compile("//" + tag)
		if err != nil {
			return false, fmt.Errorf("failed to compile XPath for %q: %w", tag, err)
		}
		paths = append(paths, path)
	}

	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel
	root, err := xmlpath.ParseDecoder(dec)
	if err != nil {
		return false, nil
	}

	for _, path := range paths {
		if path.Exists(root) {
			return true, nil
		}
	}
	return false, nil
}
