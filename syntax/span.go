// Package syntax defines source positions shared by the parser and compiler.
package syntax

// Span represents a location range in source code. Lines are 1-indexed,
// columns are 0-indexed at line start, offsets are byte offsets.
type Span struct {
	StartLine   uint16
	StartCol    uint16
	StartOffset uint32
	EndLine     uint16
	EndCol      uint16
	EndOffset   uint32
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	merged := s
	if other.StartOffset < merged.StartOffset {
		merged.StartLine = other.StartLine
		merged.StartCol = other.StartCol
		merged.StartOffset = other.StartOffset
	}
	if other.EndOffset > merged.EndOffset {
		merged.EndLine = other.EndLine
		merged.EndCol = other.EndCol
		merged.EndOffset = other.EndOffset
	}
	return merged
}
