package conflict

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/aidot/pkg/content"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/style"
)

type answer int

const (
	answerInvalid answer = iota
	answerOverwrite
	answerSkip
	answerDiff
	answerOverwriteAll
	answerSkipAll
)

const retryMessage = "Please enter 'o', 's', 'd', 'O', or 'S'"

// parseAnswer is case sensitive: the upper-case letters pick the run-wide
// choices.
func parseAnswer(input string, diffAvailable bool) answer {
	switch strings.TrimSpace(input) {
	case "o", "y", "yes":
		return answerOverwrite
	case "", "s", "n", "no":
		return answerSkip
	case "d":
		if diffAvailable {
			return answerDiff
		}
	case "O", "a", "all":
		return answerOverwriteAll
	case "S", "N":
		return answerSkipAll
	}
	return answerInvalid
}

func question(path string, diffAvailable bool) string {
	diffChoice := ""
	if diffAvailable {
		diffChoice = "[d]iff / "
	}
	return fmt.Sprintf("Conflict: '%s' already exists. [o]verwrite / [s]kip / %s[O]verwrite all / [S]kip all? ", path, diffChoice)
}

// askFile runs the per-file question loop. forAll is set when the answer
// should apply to every remaining file. Unreadable input means skip.
func askFile(console Console, path string, existing, proposed *string) (write, forAll bool) {
	logger := logging.GetLogger("conflict")
	if console == nil {
		logger.Warn().Str("path", path).Msg("No console available, skipping conflicting file")
		return false, false
	}

	diffAvailable := existing != nil && proposed != nil
	if diffAvailable {
		showDiff(console, path, *existing, *proposed)
	}

	q := question(path, diffAvailable)
	for {
		line, err := console.Prompt(q)
		if err != nil {
			logger.Debug().Err(err).Str("path", path).Msg("Could not read answer, skipping")
			console.WriteLine("")
			return false, false
		}

		switch parseAnswer(line, diffAvailable) {
		case answerOverwrite:
			return true, false
		case answerSkip:
			return false, false
		case answerOverwriteAll:
			return true, true
		case answerSkipAll:
			return false, true
		case answerDiff:
			showDiff(console, path, *existing, *proposed)
		default:
			console.WriteLine(retryMessage)
		}
	}
}

func showDiff(console Console, path, existing, proposed string) {
	diff := content.UnifiedDiff(path, existing, proposed)
	if diff == "" {
		return
	}
	console.WriteLine(style.RenderDiff(strings.TrimRight(diff, "\n")))
}
