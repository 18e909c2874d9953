package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/arthur-debert/aidot/pkg/conflict"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Decision is the operator's run-wide answer to a set of conflicts
type Decision int

const (
	DecisionAbort Decision = iota
	DecisionForceAll
	DecisionSkipAll
	DecisionPerFile
)

func (d Decision) String() string {
	switch d {
	case DecisionForceAll:
		return "force-all"
	case DecisionSkipAll:
		return "skip-all"
	case DecisionPerFile:
		return "per-file"
	default:
		return "abort"
	}
}

// Decider solicits one decision for the whole run
type Decider interface {
	Decide(conflicts []types.PendingChange) (Decision, error)
}

const decisionRetry = "Please enter 'f', 's', 'i', or 'a'"

// ConsoleDecider asks through a line console. Unreadable input aborts.
type ConsoleDecider struct {
	Console conflict.Console
}

func (d ConsoleDecider) Decide(conflicts []types.PendingChange) (Decision, error) {
	if d.Console == nil {
		return DecisionAbort, nil
	}

	d.Console.WriteLine(conflictSummary(conflicts))
	for _, c := range conflicts {
		d.Console.WriteLine("  " + c.Path)
	}

	for {
		line, err := d.Console.Prompt("[f]orce all / [s]kip all / decide [i]ndividually / [a]bort? ")
		if err != nil {
			return DecisionAbort, nil
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "f", "force":
			return DecisionForceAll, nil
		case "s", "skip":
			return DecisionSkipAll, nil
		case "i", "individually":
			return DecisionPerFile, nil
		case "a", "abort", "q":
			return DecisionAbort, nil
		}
		d.Console.WriteLine(decisionRetry)
	}
}

// FormDecider asks with an interactive select; use it only on a terminal
type FormDecider struct {
	Accessible bool
}

func (d FormDecider) Decide(conflicts []types.PendingChange) (Decision, error) {
	var choice string
	paths := make([]string, len(conflicts))
	for i, c := range conflicts {
		paths[i] = c.Path
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(conflictSummary(conflicts)).
				Description(strings.Join(paths, "\n")).
				Options(
					huh.NewOption("Overwrite all", "force"),
					huh.NewOption("Skip all", "skip"),
					huh.NewOption("Decide for each file", "each"),
					huh.NewOption("Abort", "abort"),
				).
				Value(&choice),
		),
	).WithAccessible(d.Accessible)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return DecisionAbort, nil
		}
		return DecisionAbort, fmt.Errorf("failed to read conflict decision: %w", err)
	}

	switch choice {
	case "force":
		return DecisionForceAll, nil
	case "skip":
		return DecisionSkipAll, nil
	case "each":
		return DecisionPerFile, nil
	default:
		return DecisionAbort, nil
	}
}

func conflictSummary(conflicts []types.PendingChange) string {
	if len(conflicts) == 1 {
		return "1 existing file differs from the preset:"
	}
	return fmt.Sprintf("%d existing files differ from the preset:", len(conflicts))
}
