package domain

import (
	"slices"
	"strings"
	"unicode/utf8"
)

type Position string

const (
	PositionCenter    Position = "C"
	PositionLeftWing  Position = "L"
	PositionRightWing Position = "R"
	PositionDefense   Position = "D"
)

var Positions = []Position{PositionCenter, PositionLeftWing, PositionRightWing, PositionDefense}

// positionSpellings lists the accepted encodings of each position, uppercased
var positionSpellings = map[Position][]string{
	PositionCenter:    {"C", "CENTER"},
	PositionLeftWing:  {"L", "LW", "LEFT_WING", "LEFT WING"},
	PositionRightWing: {"R", "RW", "RIGHT_WING", "RIGHT WING"},
	PositionDefense:   {"D", "DEFENSE"},
}

// Spellings returns every uppercased encoding NormalizePosition maps to p.
// Unknown positions only match themselves.
func (p Position) Spellings() []string {
	if spellings, ok := positionSpellings[p]; ok {
		return spellings
	}
	return []string{string(p)}
}

// IsKnown reports whether p is one of the canonical positions
func (p Position) IsKnown() bool {
	_, ok := positionSpellings[p]
	return ok
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// NormalizePosition maps an ASCII spelling, in any case, to its canonical position.
// Unrecognized tokens are returned literally.
func NormalizePosition(raw string) Position {
	token := strings.TrimSpace(raw)
	if !isASCII(token) {
		return Position(token)
	}
	upper := strings.ToUpper(token)
	for _, position := range Positions {
		if slices.Contains(positionSpellings[position], upper) {
			return position
		}
	}
	return Position(token)
}

type PlayerIdentity struct {
	PlayerID   string
	FirstName  string
	LastName   string
	TeamAbbrev string
	Position   Position
}

// PlayerFilter narrows the candidate players. Zero values mean no restriction.
type PlayerFilter struct {
	Position  string
	NameQuery string
}

func (f PlayerFilter) IsEmpty() bool {
	return strings.TrimSpace(f.Position) == "" && strings.TrimSpace(f.NameQuery) == ""
}
