package aidot

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/arthur-debert/aidot/pkg/adapters"
	"github.com/arthur-debert/aidot/pkg/config"
	"github.com/arthur-debert/aidot/pkg/content"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/preset"
	"github.com/arthur-debert/aidot/pkg/reconcile"
	"github.com/arthur-debert/aidot/pkg/style"
	"github.com/arthur-debert/aidot/pkg/types"
	"github.com/spf13/cobra"
)

func newPullCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "pull [preset...]",
		Short:             MsgPullShort,
		Long:              MsgPullLong,
		Example:           MsgPullExample,
		GroupID:           "core",
		ValidArgsFunction: repoNamesCompletion,
		RunE:              runPull,
	}

	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)
	cmd.Flags().StringSlice("tools", nil, MsgFlagTools)
	cmd.Flags().BoolP("skip", "s", false, MsgFlagSkip)
	cmd.Flags().String("format", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("tools", toolIDsCompletion)

	return cmd
}

func newDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               "diff <preset>",
		Short:             MsgDiffShort,
		Long:              MsgDiffLong,
		Args:              cobra.ExactArgs(1),
		GroupID:           "core",
		ValidArgsFunction: repoNamesCompletion,
		RunE:              runDiff,
	}

	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)
	cmd.Flags().StringSlice("tools", nil, MsgFlagTools)
	_ = cmd.RegisterFlagCompletionFunc("tools", toolIDsCompletion)

	return cmd
}

// pullPolicy turns flags and settings into the run-wide conflict policy
func pullPolicy(cfg *config.Config, force, skip bool) reconcile.Policy {
	switch {
	case force:
		return reconcile.PolicyForce
	case skip:
		return reconcile.PolicySkip
	case !cfg.Settings.Interactive:
		return reconcile.PolicySkip
	default:
		return reconcile.PolicyInteractive
	}
}

// interactive reports whether the form based decider can be used
var interactive = style.IsInteractive

// newDecider picks the interactive form on a terminal and the line prompt otherwise
func newDecider(env *adapters.Env) reconcile.Decider {
	if interactive() {
		return reconcile.FormDecider{Accessible: os.Getenv("ACCESSIBLE") != ""}
	}
	return reconcile.ConsoleDecider{Console: env.Console}
}

// describer summarises how a conflicting file would change
func describer(env *adapters.Env, target string) style.ChangeDescriber {
	return func(c types.PendingChange) string {
		if c.PreviewContent == nil {
			return ""
		}
		data, err := env.FS.ReadFile(filepath.Join(target, filepath.FromSlash(c.Path)))
		if err != nil {
			return ""
		}
		return content.DescribeChange(string(data), *c.PreviewContent)
	}
}

func scanResults(report *reconcile.Report) []types.ScanResult {
	if report == nil {
		return nil
	}
	out := make([]types.ScanResult, 0, len(report.Results))
	for _, r := range report.Results {
		out = append(out, *r)
	}
	return out
}

// pullSummary is the machine readable record of one preset pull
type pullSummary struct {
	Source    string         `json:"source"`
	Preset    string         `json:"preset"`
	Target    string         `json:"target"`
	Tools     []string       `json:"tools"`
	DryRun    bool           `json:"dry_run"`
	Mode      string         `json:"mode,omitempty"`
	Changes   []changeRecord `json:"changes"`
	Created   []string       `json:"created,omitempty"`
	Updated   []string       `json:"updated,omitempty"`
	Skipped   []string       `json:"skipped,omitempty"`
	Unchanged []string       `json:"unchanged,omitempty"`
}

type changeRecord struct {
	Path    string `json:"path"`
	Adapter string `json:"adapter"`
	Section string `json:"section"`
	Status  string `json:"status"`
}

func changeStatus(c types.PendingChange) string {
	switch {
	case c.IsIdentical:
		return "unchanged"
	case c.IsConflict:
		return "modified"
	default:
		return "new"
	}
}

func summarize(src string, p *types.Preset, target string, list []adapters.Adapter, outcome *reconcile.Outcome) pullSummary {
	s := pullSummary{Source: src, Preset: p.Name, Target: target, DryRun: !outcome.Applied, Changes: []changeRecord{}}
	for _, a := range list {
		s.Tools = append(s.Tools, a.Name())
	}
	if outcome.Mode != nil {
		s.Mode = outcome.Mode.String()
	}
	if outcome.Report != nil {
		for _, c := range outcome.Report.Changes() {
			s.Changes = append(s.Changes, changeRecord{Path: c.Path, Adapter: c.Adapter, Section: c.Section, Status: changeStatus(c)})
		}
	}
	if outcome.Total != nil {
		s.Created = outcome.Total.Created
		s.Updated = outcome.Total.Updated
		s.Skipped = outcome.Total.Skipped
		s.Unchanged = outcome.Total.Unchanged
	}
	return s
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runPull(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("cmd.pull")
	dryRun := globalBool(cmd, "dry-run")
	force := globalBool(cmd, "force")
	skip, _ := cmd.Flags().GetBool("skip")
	if force && skip {
		return aierrors.New(aierrors.ErrInvalidInput, MsgErrForceAndSkip)
	}

	formatFlag, _ := cmd.Flags().GetString("format")
	format, err := style.ParseFormat(formatFlag)
	if err != nil {
		return fmt.Errorf(MsgErrUnknownFormat, err)
	}
	format = style.Resolve(format, os.Stdout)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env := newEnv(cmd)
	target, err := targetDir(cmd, env)
	if err != nil {
		return err
	}

	sources := args
	if len(sources) == 0 {
		for _, repo := range cfg.Defaults() {
			sources = append(sources, repo.Name)
		}
	}
	if len(sources) == 0 {
		return aierrors.New(aierrors.ErrInvalidInput, MsgErrNoSources)
	}

	list, err := selectAdapters(cmd, env, cfg, target)
	if err != nil {
		return err
	}

	logger.Info().
		Str("target", target).
		Strs("sources", sources).
		Bool("dry_run", dryRun).
		Msg("Pulling presets")

	out := cmd.OutOrStdout()
	resolver := newResolver(env, cfg)
	policy := pullPolicy(cfg, force, skip)
	var (
		summaries []pullSummary
		pulled    []string
		runErr    error
	)

	for _, src := range sources {
		resolved, err := resolver.Resolve(cmd.Context(), src)
		if err != nil {
			runErr = err
			break
		}
		p, err := preset.Load(env.FS, resolved.Dir)
		if err != nil {
			runErr = err
			break
		}

		if format != style.FormatJSON {
			fmt.Fprintf(out, MsgLoadingPreset, resolved.Dir)
			fmt.Fprintf(out, MsgApplyingTo, adapterNames(list))
		}

		outcome, err := reconcile.Run(cmd.Context(), reconcile.Options{
			Env:       env,
			Preset:    p,
			TargetDir: target,
			Adapters:  list,
			Policy:    policy,
			Decider:   newDecider(env),
			DryRun:    dryRun,
		})
		if outcome != nil {
			if format == style.FormatJSON {
				summaries = append(summaries, summarize(src, p, target, list, outcome))
			} else if outcome.Applied {
				fmt.Fprintln(out, style.RenderApply(outcome.Total))
			} else if outcome.Report != nil {
				fmt.Fprintln(out, style.RenderScan(scanResults(outcome.Report), describer(env, target)))
			}
		}
		if err != nil {
			runErr = err
			break
		}
		if outcome.Applied {
			pulled = append(pulled, src)
		}
	}

	if format == style.FormatJSON {
		if err := writeJSON(out, summaries); err != nil && runErr == nil {
			runErr = err
		}
	} else if dryRun && runErr == nil {
		fmt.Fprintln(out, MsgDryRunNotice)
	}

	if dryRun {
		return runErr
	}
	if len(pulled) > 0 {
		cfg.RecordPull(target, pulled, time.Now())
	}
	if err := cfg.Save(); err != nil {
		if runErr != nil {
			logger.Warn().Err(err).Msg("Failed to save configuration")
			return runErr
		}
		return err
	}
	return runErr
}

func runDiff(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	env := newEnv(cmd)
	target, err := targetDir(cmd, env)
	if err != nil {
		return err
	}

	resolved, err := newResolver(env, cfg).Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	p, err := preset.Load(env.FS, resolved.Dir)
	if err != nil {
		return err
	}
	list, err := selectAdapters(cmd, env, cfg, target)
	if err != nil {
		return err
	}

	report, err := reconcile.Scan(cmd.Context(), env, p, target, list)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	shown := 0
	for _, c := range report.Changes() {
		if c.IsIdentical || c.PreviewContent == nil {
			continue
		}
		existing := ""
		if c.IsConflict {
			data, err := env.FS.ReadFile(filepath.Join(target, filepath.FromSlash(c.Path)))
			if err != nil {
				return aierrors.Wrapf(err, aierrors.ErrFileRead, "cannot read %s", c.Path)
			}
			existing = string(data)
		}
		diff := content.UnifiedDiff(c.Path, existing, *c.PreviewContent)
		if diff == "" {
			continue
		}
		if shown > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintln(out, style.TitleStyle.Render(c.Adapter))
		fmt.Fprintln(out, style.RenderDiff(strings.TrimRight(diff, "\n")))
		shown++
	}

	if shown == 0 {
		fmt.Fprintln(out, MsgNoDifferences)
	}
	return nil
}
