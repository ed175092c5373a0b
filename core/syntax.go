package core

import (
	"fmt"
	"log"
	"sort"
)

// SyntaxTree is an incrementally maintained parse of a document. Edit patches
// the tree in place so the next Parse can reuse it.
type SyntaxTree interface {
	Edit(edit EditDescriptor)
}

// Parser builds syntax trees and extracts highlight spans from them.
type Parser interface {
	// Parse returns a tree for text. old is the previous tree, already
	// patched with every edit since it was built, or nil.
	Parse(text string, old SyntaxTree) (SyntaxTree, error)
	Highlights(tree SyntaxTree, text string) []HighlightSpan
}

// HighlightSpan tags the half-open byte range [StartByte, EndByte) with a
// scope label such as "keyword" or "string.escape".
type HighlightSpan struct {
	StartByte int
	EndByte   int
	Scope     string
}

func (s HighlightSpan) contains(offset int) bool {
	return offset >= s.StartByte && offset < s.EndByte
}

// ValidateSpans checks that spans are non-empty, non-overlapping and sorted
// ascending by end byte.
func ValidateSpans(spans []HighlightSpan) error {
	for i, s := range spans {
		if s.StartByte < 0 || s.EndByte <= s.StartByte {
			return fmt.Errorf("%w: span %d [%d, %d)", ErrInvalidSpan, i, s.StartByte, s.EndByte)
		}
		if i == 0 {
			continue
		}
		prev := spans[i-1]
		if s.EndByte < prev.EndByte {
			return fmt.Errorf("%w: span %d ends at %d before %d", ErrUnsortedSpans, i, s.EndByte, prev.EndByte)
		}
		if s.StartByte < prev.EndByte {
			return fmt.Errorf("%w: spans %d and %d", ErrOverlappingSpans, i-1, i)
		}
	}
	return nil
}

// NormalizeSpans returns spans sorted by position with empty spans and spans
// overlapping an earlier one removed. The input is not modified.
func NormalizeSpans(spans []HighlightSpan) []HighlightSpan {
	if ValidateSpans(spans) == nil {
		return spans
	}

	sorted := make([]HighlightSpan, len(spans))
	copy(sorted, spans)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StartByte != sorted[j].StartByte {
			return sorted[i].StartByte < sorted[j].StartByte
		}
		return sorted[i].EndByte > sorted[j].EndByte
	})

	out := sorted[:0]
	end := 0
	for _, s := range sorted {
		if s.StartByte < 0 || s.EndByte <= s.StartByte || s.StartByte < end {
			continue
		}
		out = append(out, s)
		end = s.EndByte
	}

	if dropped := len(spans) - len(out); dropped > 0 {
		log.Printf("Dropped %d malformed highlight spans", dropped)
	}
	return out
}

// Parse brings the document's syntax tree up to date, creating it on first
// use. On failure the previous tree is kept.
func (d *Document) Parse(parser Parser) error {
	if parser == nil {
		return nil
	}
	return d.parse(parser, d.content.String())
}

func (d *Document) parse(parser Parser, text string) error {
	tree, err := parser.Parse(text, d.tree)
	if err != nil {
		return NewError(ErrFailedToParseId, err)
	}
	d.tree = tree
	d.stale = false
	d.highlighted = false
	return nil
}

// ClearTree drops the syntax tree so the next parse starts from scratch.
// Call it when switching parsers.
func (d *Document) ClearTree() {
	d.tree = nil
	d.spans = nil
	d.highlighted = false
}

// Tree returns the current syntax tree, nil before the first parse.
func (d *Document) Tree() SyntaxTree {
	return d.tree
}
