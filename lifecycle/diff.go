package lifecycle

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/aymanbagabas/go-udiff"
)

// Change captures the current-vs-proposed comparison for a single bucket.
// Current and Proposed hold the two rulesets rendered as the storage
// backend's lifecycle-configuration JSON document. Changed is structural
// inequality over the full rule sequence - it has no bearing on the
// reconciliation decision itself, which is made by Evaluate/Propose.
type Change struct {
	Changed  bool
	Current  []byte
	Proposed []byte
}

// Describe compares two rulesets and renders both for reporting/export.
func Describe(current, proposed RuleSet) (Change, error) {
	cur, err := Encode(current)
	if err != nil {
		return Change{}, fmt.Errorf("encoding current ruleset: %w", err)
	}

	pro, err := Encode(proposed)
	if err != nil {
		return Change{}, fmt.Errorf("encoding proposed ruleset: %w", err)
	}

	return Change{
		Changed:  !bytes.Equal(cur, pro),
		Current:  cur,
		Proposed: pro,
	}, nil
}

// UnifiedDiff renders the change as a unified diff of the two JSON views.
// Returns the empty string when nothing changed.
func (c Change) UnifiedDiff() string {
	if !c.Changed {
		return ""
	}

	current := string(c.Current) + "\n"
	proposed := string(c.Proposed) + "\n"

	return udiff.Unified("current", "proposed", current, proposed)
}

// Encode renders a ruleset as the 2-space-indented {"Rules": [...]} document
// exported to files and printed to the console. A nil rule slice encodes as
// an empty sequence.
func Encode(rs RuleSet) ([]byte, error) {
	if rs.Rules == nil {
		rs.Rules = []Rule{}
	}

	return json.MarshalIndent(rs, "", "  ")
}
