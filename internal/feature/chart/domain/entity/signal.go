package entity

import (
	"fmt"
	"strings"
)

// Direction is the side of a trade signal.
type Direction string

const (
	Long  Direction = "LONG"
	Short Direction = "SHORT"
)

// ParseDirection maps a caller-supplied direction string to its canonical
// form. BUY/SELL are accepted as aliases because existing callers of the
// original chart API send them.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LONG", "BUY":
		return Long, nil
	case "SHORT", "SELL":
		return Short, nil
	default:
		return "", fmt.Errorf("unknown direction %q", s)
	}
}

// Target is one take-profit level. Seq keeps the caller's numbering
// (1-3) so that a signal may carry tp1 and tp3 without tp2.
type Target struct {
	Seq   int
	Price float64
}

// Signal holds the caller-supplied trade parameters drawn over the
// chart. No relation between entry, stop-loss, targets and the fetched
// price range is enforced: the overlay draws whatever was supplied.
type Signal struct {
	Direction Direction
	Entry     float64
	StopLoss  float64
	Targets   []Target
}
