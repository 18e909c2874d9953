package aidot

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/aidot/pkg/adapters"
	"github.com/arthur-debert/aidot/pkg/config"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/style"
	"github.com/spf13/cobra"
)

// markerLister is implemented by adapters that detect through marker paths
type markerLister interface {
	Markers(env *adapters.Env, targetDir string) []string
}

func newDetectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env := newEnv(cmd)
			target, err := targetDir(cmd, env)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), style.RenderTools(toolStatuses(env, target)))
			return nil
		},
	}
	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)
	return cmd
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			env := newEnv(cmd)
			target, err := targetDir(cmd, env)
			if err != nil {
				return err
			}
			writeStatus(cmd.OutOrStdout(), env, cfg, target)
			return nil
		},
	}
	cmd.Flags().StringP("target", "t", "", MsgFlagTarget)
	return cmd
}

func toolStatuses(env *adapters.Env, target string) []style.ToolStatus {
	var statuses []style.ToolStatus
	for _, a := range adapters.Tools() {
		st := style.ToolStatus{Name: a.Name(), Detected: a.Detect(env, target)}
		if m, ok := a.(markerLister); ok {
			for _, marker := range m.Markers(env, target) {
				st.Notes = append(st.Notes, "found "+marker)
			}
		}
		if st.Detected && len(st.Notes) == 0 {
			st.Notes = append(st.Notes, "executable on PATH")
		}
		statuses = append(statuses, st)
	}
	return statuses
}

// managedFiles lists the destinations of an adapter that exist below target.
// Directories are reported with their file count.
func managedFiles(env *adapters.Env, a adapters.Adapter, target string) []string {
	seen := map[string]bool{}
	var found []string
	for _, m := range a.Mappings() {
		if m.Path == "" || seen[m.Path] {
			continue
		}
		seen[m.Path] = true
		abs := filepath.Join(target, filepath.FromSlash(m.Path))
		switch {
		case filesystem.IsDir(env.FS, abs):
			files, err := filesystem.WalkFiles(env.FS, abs, nil)
			if err == nil && len(files) > 0 {
				found = append(found, fmt.Sprintf("%s/ (%d files)", m.Path, len(files)))
			}
		case filesystem.Exists(env.FS, abs):
			found = append(found, m.Path)
		}
	}
	sort.Strings(found)
	return found
}

func writeStatus(w io.Writer, env *adapters.Env, cfg *config.Config, target string) {
	fmt.Fprintf(w, "%s %s\n\n", style.TitleStyle.Render(MsgStatusProject), style.PathStyle.Render(target))

	fmt.Fprintln(w, style.TitleStyle.Render(MsgStatusTools))
	fmt.Fprintln(w, style.Indent(style.RenderTools(toolStatuses(env, target)), 1))
	fmt.Fprintln(w)

	fmt.Fprintln(w, style.TitleStyle.Render(MsgStatusFiles))
	listed := false
	for _, a := range adapters.Tools() {
		files := managedFiles(env, a, target)
		if len(files) == 0 {
			continue
		}
		listed = true
		fmt.Fprintln(w, style.Indent(a.Name()+":", 1))
		for _, f := range files {
			fmt.Fprintln(w, style.Indent("• "+f, 2))
		}
	}
	if !listed {
		fmt.Fprintln(w, style.Indent(style.MutedStyle.Render("none"), 1))
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, style.TitleStyle.Render(MsgStatusRepositories))
	fmt.Fprintln(w, style.Indent(renderRepositories(cfg.List()), 1))
	fmt.Fprintln(w)

	if entry, ok := cfg.LastPull(target); ok {
		fmt.Fprintf(w, MsgLastPull, entry.Timestamp, strings.Join(entry.Repositories, ", "))
	} else {
		fmt.Fprintln(w, style.MutedStyle.Render(MsgNeverPulled))
	}
}

// renderRepositories renders the registry, one repository per line
func renderRepositories(repos []config.Repository) string {
	if len(repos) == 0 {
		return style.MutedStyle.Render(MsgNoRepositories)
	}
	var b strings.Builder
	for i, repo := range repos {
		if i > 0 {
			b.WriteString("\n")
		}
		flags := []string{string(repo.SourceType)}
		if repo.Default {
			flags = append(flags, "default")
		}
		b.WriteString(style.SuccessStyle.Render(repo.Name) + " " + repo.URL +
			style.MutedStyle.Render(" ["+strings.Join(flags, ", ")+"]"))
		if repo.Description != "" {
			b.WriteString("\n" + style.Indent(style.MutedStyle.Render(repo.Description), 1))
		}
		if repo.CachedAt != "" {
			b.WriteString("\n" + style.Indent(style.MutedStyle.Render("cached "+repo.CachedAt), 1))
		}
	}
	return b.String()
}
