package text

import (
	"golang.org/x/text/unicode/bidi"
)

// Direction is the horizontal order glyphs are laid out in.
type Direction uint8

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

func (d Direction) String() string {
	if d == DirectionRTL {
		return "rtl"
	}
	return "ltr"
}

// ParagraphDirection resolves the base direction of a paragraph using
// the Unicode bidirectional algorithm. Text with no strong directional
// characters resolves to left-to-right.
func ParagraphDirection(text string) Direction {
	if text == "" {
		return DirectionLTR
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text); err != nil {
		return DirectionLTR
	}
	if p.IsLeftToRight() {
		return DirectionLTR
	}
	return DirectionRTL
}

// Run is a maximal substring whose characters share one resolved
// direction. Start and End are byte offsets into the original string.
type Run struct {
	Text      string
	Start     int
	End       int
	Direction Direction
}

// SplitRuns splits a paragraph into directional runs in visual order,
// left to right. A caller drawing mixed-direction text shapes each run
// separately and advances the pen across the runs as returned.
func SplitRuns(text string) []Run {
	if text == "" {
		return nil
	}
	p := bidi.Paragraph{}
	if _, err := p.SetString(text); err != nil {
		return []Run{{Text: text, Start: 0, End: len(text), Direction: DirectionLTR}}
	}
	ordering, err := p.Order()
	if err != nil {
		return []Run{{Text: text, Start: 0, End: len(text), Direction: DirectionLTR}}
	}

	// run.Pos() returns RUNE indices (start, end inclusive); convert
	// them to byte offsets against the original string.
	runes := []rune(text)
	byteAt := make([]int, len(runes)+1)
	off := 0
	for i, r := range runes {
		byteAt[i] = off
		off += len(string(r))
	}
	byteAt[len(runes)] = len(text)

	runs := make([]Run, 0, ordering.NumRuns())
	for i := 0; i < ordering.NumRuns(); i++ {
		run := ordering.Run(i)
		startRune, endRune := run.Pos()
		dir := DirectionLTR
		if run.Direction() == bidi.RightToLeft {
			dir = DirectionRTL
		}
		start, end := byteAt[startRune], byteAt[endRune+1]
		runs = append(runs, Run{
			Text:      text[start:end],
			Start:     start,
			End:       end,
			Direction: dir,
		})
	}
	return runs
}
