package resolver

import (
	"bytes"
	"fmt"
	"io"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/djgrant/piq/facet"
	"github.com/djgrant/piq/store"
)

// Frontmatter is a metadata block fenced at the top of an item:
//
//	---
//	title: Hello
//	status: published
//	---
//	body text ...
//
// The default dialect is YAML; an opening fence of "---json" selects JSON.
// No opening fence means the item has no meta facet (an empty document, not
// an error); an opening fence that is never closed is malformed.

var (
	fenceYAML = []byte("---")
	fenceJSON = []byte("---json")
)

// frontmatter holds the outcome of scanning an item's head.
type frontmatter struct {
	block     []byte // raw bytes between the fences
	json      bool   // dialect selected by the opening fence
	bodyStart int    // offset of the first byte after the closing fence line
	present   bool
}

// readFrontmatter scans an object with a bounded partial read: it reads
// budget bytes, and only grows the window (geometrically) while the block is
// opened but not yet closed. Items without a block never cost more than one
// bounded read; items with a corrupt block cost a full read before failing.
func readFrontmatter(obj store.Object, budget int, id string) (frontmatter, error) {
	if budget <= 0 {
		budget = defaultReadBudget
	}
	size := obj.Size()

	n := int64(budget)
	for {
		if n > size {
			n = size
		}
		head := make([]byte, n)
		if _, err := io.ReadFull(io.NewSectionReader(obj, 0, n), head); err != nil {
			return frontmatter{}, fmt.Errorf("read %q: %w", id, err)
		}

		fm, state := scanFrontmatter(head, n == size)
		switch state {
		case fmAbsent, fmComplete:
			return fm, nil
		case fmOpen:
			if n == size {
				return frontmatter{}, facet.NewMalformedError(id, "meta", "frontmatter fence opened but never closed", nil)
			}
			n *= 2
		}
	}
}

type fmState uint8

const (
	fmAbsent fmState = iota
	fmOpen
	fmComplete
)

// scanFrontmatter inspects the head bytes for a fenced block. final reports
// whether head is the whole object; an unterminated line in a partial window
// could still grow, so it reports fmOpen to make the caller widen.
func scanFrontmatter(head []byte, final bool) (frontmatter, fmState) {
	line, rest, terminated := cutLine(head)
	isJSON := false
	switch {
	case bytes.Equal(line, fenceJSON):
		isJSON = true
	case bytes.Equal(line, fenceYAML):
	default:
		if !terminated && !final {
			// Could still become a fence once more bytes arrive, but only
			// if it is a prefix of one; anything else is decidably absent.
			if bytes.HasPrefix(fenceJSON, line) {
				return frontmatter{}, fmOpen
			}
		}
		return frontmatter{}, fmAbsent
	}
	if !terminated {
		// A lone fence at EOF is an opened, never-closed block; in a
		// partial window it may be an incomplete "---json".
		return frontmatter{}, fmOpen
	}

	offset := len(head) - len(rest)
	for {
		line, next, terminated := cutLine(rest)
		if !terminated && !final {
			return frontmatter{}, fmOpen // line may continue past the window
		}
		if bytes.Equal(bytes.TrimRight(line, " \t"), fenceYAML) {
			lineStart := len(head) - len(rest)
			bodyStart := len(head)
			if terminated {
				bodyStart = len(head) - len(next)
			}
			return frontmatter{
				block:     head[offset:lineStart],
				json:      isJSON,
				bodyStart: bodyStart,
				present:   true,
			}, fmComplete
		}
		if !terminated {
			return frontmatter{}, fmOpen
		}
		rest = next
	}
}

// cutLine splits off the first line. ok reports whether a newline terminated
// it; the returned line excludes the newline.
func cutLine(b []byte) (line, rest []byte, ok bool) {
	idx := bytes.IndexByte(b, '\n')
	if idx < 0 {
		return b, nil, false
	}
	line = b[:idx]
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return line, b[idx+1:], true
}

// decodeFrontmatter parses the fenced block into a facet document.
func decodeFrontmatter(fm frontmatter, id string) (facet.Document, error) {
	if !fm.present {
		return facet.Document{}, nil
	}

	var doc facet.Document
	if fm.json {
		if err := gojson.Unmarshal(fm.block, &doc); err != nil {
			return nil, facet.NewMalformedError(id, "meta", "invalid JSON frontmatter", err)
		}
	} else {
		if err := yaml.Unmarshal(fm.block, &doc); err != nil {
			return nil, facet.NewMalformedError(id, "meta", "invalid YAML frontmatter", err)
		}
	}
	if doc == nil {
		doc = facet.Document{}
	}
	return doc, nil
}
