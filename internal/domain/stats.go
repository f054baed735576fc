package domain

import (
	"fmt"
	"strings"
)

// StatKey names a field of an AggregateRow that rows can be ranked by
type StatKey string

const (
	StatGoals        StatKey = "goals"
	StatAssists      StatKey = "assists"
	StatPoints       StatKey = "points"
	StatShots        StatKey = "shots"
	StatStreakLength StatKey = "streak_length"
)

// ParseSortKey parses a caller-selected sort key.
// Only the per-game stats are selectable, anything else reports false.
func ParseSortKey(raw string) (StatKey, bool) {
	switch key := StatKey(strings.ToLower(strings.TrimSpace(raw))); key {
	case StatGoals, StatAssists, StatPoints, StatShots:
		return key, true
	}
	return "", false
}

// PredicateKind is the boolean test applied per game to form streak runs
type PredicateKind string

const (
	PredicateGoal   PredicateKind = "goal"
	PredicateAssist PredicateKind = "assist"
	PredicatePoint  PredicateKind = "point"
)

func ParsePredicateKind(raw string) (PredicateKind, error) {
	switch kind := PredicateKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case PredicateGoal, PredicateAssist, PredicatePoint:
		return kind, nil
	}
	return "", fmt.Errorf("%w: streak: unrecognized predicate kind %q", ErrInvalidParameter, raw)
}

func (k PredicateKind) IsValid() bool {
	switch k {
	case PredicateGoal, PredicateAssist, PredicatePoint:
		return true
	}
	return false
}

// Holds reports whether the game satisfies the predicate
func (k PredicateKind) Holds(game GameRecord) bool {
	switch k {
	case PredicateGoal:
		return game.Goals > 0
	case PredicateAssist:
		return game.Assists > 0
	case PredicatePoint:
		return game.Points() > 0
	default:
		return false
	}
}

// Stat is the stat the predicate is about, used as the default tie-break
func (k PredicateKind) Stat() StatKey {
	switch k {
	case PredicateGoal:
		return StatGoals
	case PredicateAssist:
		return StatAssists
	default:
		return StatPoints
	}
}
