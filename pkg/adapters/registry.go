package adapters

import (
	"strings"

	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/logging"
)

// All returns every adapter in execution order: Project first, then the
// tools in a fixed order.
func All() []Adapter {
	return []Adapter{NewProject(), NewClaudeCode(), NewCursor(), NewCopilot()}
}

// Tools returns the tool adapters, without Project
func Tools() []Adapter {
	return All()[1:]
}

var aliases = map[string]string{
	"claude-code":    "claude",
	"claudecode":     "claude",
	"github-copilot": "copilot",
	"gh-copilot":     "copilot",
}

// ByID looks an adapter up by its identifier or a known alias
func ByID(id string) (Adapter, error) {
	key := strings.ToLower(strings.TrimSpace(id))
	if alias, ok := aliases[key]; ok {
		key = alias
	}
	for _, a := range All() {
		if a.ID() == key {
			return a, nil
		}
	}
	return nil, aierrors.Newf(aierrors.ErrToolUnknown, "unknown tool %q", id).
		WithDetail("tool", id).
		WithDetail("known", IDs())
}

// IDs lists the identifiers accepted by ByID, tools only
func IDs() []string {
	var ids []string
	for _, a := range Tools() {
		ids = append(ids, a.ID())
	}
	return ids
}

// DetectAll checks every tool adapter in order and returns the detected ones
func DetectAll(env *Env, targetDir string) []Adapter {
	logger := logging.GetLogger("adapters")
	var found []Adapter
	for _, a := range Tools() {
		detected := a.Detect(env, targetDir)
		logger.Debug().Str("adapter", a.Name()).Bool("detected", detected).Msg("Detection")
		if detected {
			found = append(found, a)
		}
	}
	return found
}

// Select returns the adapters to run against targetDir. Explicit ids win;
// otherwise the detected tools are used. Project is always included first.
func Select(env *Env, targetDir string, ids []string) ([]Adapter, error) {
	selected := []Adapter{NewProject()}

	if len(ids) == 0 {
		detected := DetectAll(env, targetDir)
		if len(detected) == 0 {
			return nil, aierrors.New(aierrors.ErrToolNotDetected,
				"no AI tools detected; pass --tools to choose them explicitly").
				WithDetail("target", targetDir)
		}
		return append(selected, detected...), nil
	}

	seen := map[string]bool{}
	var chosen []Adapter
	for _, id := range ids {
		a, err := ByID(id)
		if err != nil {
			return nil, err
		}
		if !seen[a.ID()] {
			seen[a.ID()] = true
			chosen = append(chosen, a)
		}
	}
	// keep execution order stable regardless of flag order
	for _, a := range Tools() {
		for _, c := range chosen {
			if c.ID() == a.ID() {
				selected = append(selected, c)
			}
		}
	}
	return selected, nil
}
