package reconcile

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/aidot/pkg/adapters"
	"github.com/arthur-debert/aidot/pkg/conflict"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/types"
)

// Policy is the caller's standing instruction for conflicting files
type Policy int

const (
	// PolicyInteractive asks the Decider when conflicts exist
	PolicyInteractive Policy = iota
	PolicyForce
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyForce:
		return "force"
	case PolicySkip:
		return "skip"
	default:
		return "interactive"
	}
}

// Report is the outcome of the scan phase, one result per adapter
type Report struct {
	Results []*types.ScanResult
}

// Changes returns every pending change in adapter order
func (r *Report) Changes() []types.PendingChange {
	var all []types.PendingChange
	for _, res := range r.Results {
		all = append(all, res.Changes...)
	}
	return all
}

// Conflicts returns the changes that would overwrite different content
func (r *Report) Conflicts() []types.PendingChange {
	var out []types.PendingChange
	for _, res := range r.Results {
		out = append(out, res.Conflicts()...)
	}
	return out
}

func (r *Report) HasConflicts() bool {
	return len(r.Conflicts()) > 0
}

// HasChanges reports whether applying would write anything
func (r *Report) HasChanges() bool {
	for _, res := range r.Results {
		if res.HasChanges() {
			return true
		}
	}
	return false
}

// Scan asks every adapter for its pending changes. Nothing is written.
func Scan(ctx context.Context, env *adapters.Env, preset *types.Preset, targetDir string, list []adapters.Adapter) (*Report, error) {
	logger := logging.GetLogger("reconcile")
	report := &Report{}

	for _, a := range list {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := a.Scan(env, preset, targetDir)
		if err != nil {
			return report, err
		}
		report.Results = append(report.Results, res)
	}

	logger.Debug().
		Int("adapters", len(list)).
		Int("changes", len(report.Changes())).
		Int("conflicts", len(report.Conflicts())).
		Msg("Scan finished")
	return report, nil
}

// Decide produces the single conflict mode used for the apply phase.
// Without conflicts there is nothing to protect and Force is returned.
// A nil decider under PolicyInteractive falls back to per-file prompts
// during apply.
func Decide(report *Report, policy Policy, decider Decider, console conflict.Console, load conflict.ExistingLoader) (*conflict.Mode, error) {
	logger := logging.GetLogger("reconcile")

	if !report.HasConflicts() {
		return conflict.Force(), nil
	}

	switch policy {
	case PolicyForce:
		return conflict.Force(), nil
	case PolicySkip:
		return conflict.Skip(), nil
	}

	if decider == nil {
		return conflict.Ask(), nil
	}

	conflicts := report.Conflicts()
	decision, err := decider.Decide(conflicts)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("decision", decision.String()).Int("conflicts", len(conflicts)).Msg("Operator decision")

	switch decision {
	case DecisionForceAll:
		return conflict.Force(), nil
	case DecisionSkipAll:
		return conflict.Skip(), nil
	case DecisionPerFile:
		return conflict.PreResolve(console, conflicts, load), nil
	default:
		return nil, aierrors.New(aierrors.ErrAborted, "operation aborted")
	}
}

// Options configures a Run
type Options struct {
	Env       *adapters.Env
	Preset    *types.Preset
	TargetDir string
	Adapters  []adapters.Adapter
	Policy    Policy
	Decider   Decider
	DryRun    bool
}

// AdapterResult is the apply outcome of one adapter
type AdapterResult struct {
	Adapter string
	Result  *types.ApplyResult
}

// Outcome summarises a Run
type Outcome struct {
	Report  *Report
	Mode    *conflict.Mode
	Results []AdapterResult
	Total   *types.ApplyResult
	// Applied is false for dry runs
	Applied bool
}

// Run scans, decides and applies. A dry run stops after the scan. On an
// adapter error the writes already made stay on disk and the partial
// outcome is returned with the error.
func Run(ctx context.Context, opts Options) (*Outcome, error) {
	logger := logging.GetLogger("reconcile")
	outcome := &Outcome{Total: &types.ApplyResult{}}

	report, err := Scan(ctx, opts.Env, opts.Preset, opts.TargetDir, opts.Adapters)
	outcome.Report = report
	if err != nil {
		return outcome, err
	}
	if opts.DryRun {
		logger.Info().Int("changes", len(report.Changes())).Msg("Dry run, nothing written")
		return outcome, nil
	}

	mode, err := Decide(report, opts.Policy, opts.Decider, opts.Env.Console, existingLoader(opts.Env, opts.TargetDir))
	if err != nil {
		return outcome, err
	}
	outcome.Mode = mode
	outcome.Applied = true
	logger.Info().Str("mode", mode.String()).Msg("Applying preset")

	for _, a := range opts.Adapters {
		if err := ctx.Err(); err != nil {
			return outcome, err
		}
		res, err := a.Apply(opts.Env, opts.Preset, opts.TargetDir, mode)
		if res != nil {
			outcome.Results = append(outcome.Results, AdapterResult{Adapter: a.Name(), Result: res})
			outcome.Total.Merge(res)
		}
		if err != nil {
			logger.Error().Err(err).Str("adapter", a.Name()).Msg("Apply failed")
			return outcome, err
		}
	}

	return outcome, nil
}

func existingLoader(env *adapters.Env, targetDir string) conflict.ExistingLoader {
	return func(change types.PendingChange) *string {
		data, err := env.FS.ReadFile(filepath.Join(targetDir, filepath.FromSlash(change.Path)))
		if err != nil {
			return nil
		}
		text := string(data)
		return &text
	}
}
