package aidot

import (
	"embed"
	"fmt"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/aidot/internal/version"
	"github.com/arthur-debert/aidot/pkg/adapters"
	"github.com/arthur-debert/aidot/pkg/cobrax/topics"
	"github.com/arthur-debert/aidot/pkg/config"
	"github.com/arthur-debert/aidot/pkg/conflict"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/paths"
	"github.com/arthur-debert/aidot/pkg/source"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics
var topicsFS embed.FS

// lookPath finds tool executables during detection
var lookPath = exec.LookPath

// newGitClient builds the client used to fetch git repositories
var newGitClient = func() source.GitClient { return source.ShellGit{} }

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	var (
		verbosity      int
		dryRun         bool
		force          bool
		nonInteractive bool
	)

	rootCmd := &cobra.Command{
		Use:     "aidot",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.String(),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, MsgFlagNonInteractive)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "manage",
		Title: "MANAGE:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newDiffCmd())
	rootCmd.AddCommand(newDetectCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newRepoCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newCompletionCmd())

	// Topic-based help from the embedded topics directory
	if sub, err := fs.Sub(topicsFS, "topics"); err == nil {
		opts := topics.Options{
			Extensions: []string{".md", ".txt"},
			Renderer:   topics.NewGlamourRendererFor(stdoutIsTerminal()),
		}
		if _, err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		} else {
			rootCmd.SetHelpCommandGroupID("misc")
		}
	}

	return rootCmd
}

func globalBool(cmd *cobra.Command, name string) bool {
	v, _ := cmd.Root().PersistentFlags().GetBool(name)
	return v
}

// loadConfig reads the global configuration, applying flag overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var overrides []map[string]interface{}
	if globalBool(cmd, "non-interactive") {
		overrides = append(overrides, map[string]interface{}{"settings.interactive": false})
	}
	cfg, err := config.Load(overrides...)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newEnv builds the adapter environment on the real filesystem, prompting
// through the command's input and output streams
func newEnv(cmd *cobra.Command) *adapters.Env {
	env := adapters.NewEnv(conflict.NewStreamConsole(cmd.InOrStdin(), cmd.OutOrStdout()))
	env.LookPath = lookPath
	return env
}

func newResolver(env *adapters.Env, cfg *config.Config) *source.Resolver {
	return &source.Resolver{
		FS:     env.FS,
		Config: cfg,
		Paths:  paths.New(),
		Git:    newGitClient(),
	}
}

// absDir expands and absolutizes dir, defaulting to the working directory
func absDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	return filepath.Abs(paths.ExpandHome(dir))
}

// targetDir returns the --target directory, which must exist
func targetDir(cmd *cobra.Command, env *adapters.Env) (string, error) {
	flag, _ := cmd.Flags().GetString("target")
	dir, err := absDir(flag)
	if err != nil {
		return "", fmt.Errorf(MsgErrTarget, err)
	}
	if !filesystem.IsDir(env.FS, dir) {
		return "", aierrors.Newf(aierrors.ErrNotFound, "target directory %s does not exist", dir).
			WithDetail("target", dir)
	}
	return dir, nil
}

// selectAdapters picks the adapters from --tools, then detection, then the
// default_tools setting
func selectAdapters(cmd *cobra.Command, env *adapters.Env, cfg *config.Config, target string) ([]adapters.Adapter, error) {
	tools, _ := cmd.Flags().GetStringSlice("tools")
	list, err := adapters.Select(env, target, tools)
	if err != nil && len(tools) == 0 && len(cfg.Settings.DefaultTools) > 0 &&
		aierrors.IsErrorCode(err, aierrors.ErrToolNotDetected) {
		return adapters.Select(env, target, cfg.Settings.DefaultTools)
	}
	return list, err
}

func adapterNames(list []adapters.Adapter) string {
	names := make([]string, 0, len(list))
	for _, a := range list {
		names = append(names, a.Name())
	}
	return strings.Join(names, ", ")
}

// repoNamesCompletion completes registered repository names
func repoNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}

	used := make(map[string]bool, len(args))
	for _, arg := range args {
		used[arg] = true
	}

	var names []string
	for _, repo := range cfg.List() {
		if !used[repo.Name] {
			names = append(names, repo.Name)
		}
	}
	return names, cobra.ShellCompDirectiveDefault
}

func toolIDsCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return adapters.IDs(), cobra.ShellCompDirectiveNoFileComp
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.RunE != nil {
					return helpCmd.RunE(helpCmd, []string{"topics"})
				} else if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

