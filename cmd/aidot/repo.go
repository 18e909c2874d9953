package aidot

import (
	"fmt"
	"strconv"

	"github.com/arthur-debert/aidot/pkg/config"
	aierrors "github.com/arthur-debert/aidot/pkg/errors"
	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/paths"
	"github.com/arthur-debert/aidot/pkg/source"
	"github.com/arthur-debert/aidot/pkg/style"
	"github.com/spf13/cobra"
)

func newRepoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "repo",
		Short:   MsgRepoShort,
		Long:    MsgRepoLong,
		GroupID: "manage",
	}

	cmd.AddCommand(newRepoAddCmd())
	cmd.AddCommand(newRepoRemoveCmd())
	cmd.AddCommand(newRepoListCmd())
	cmd.AddCommand(newRepoDefaultCmd())
	return cmd
}

func newRepoAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name> <url-or-path>",
		Short: MsgRepoAddShort,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			local, _ := cmd.Flags().GetBool("local")
			isDefault, _ := cmd.Flags().GetBool("default")
			desc, _ := cmd.Flags().GetString("description")

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			repo := config.Repository{
				Name:        args[0],
				URL:         args[1],
				Default:     isDefault,
				Description: desc,
			}
			if local {
				dir, err := absDir(args[1])
				if err != nil {
					return err
				}
				if !filesystem.IsDir(filesystem.NewOS(), dir) {
					return aierrors.Newf(aierrors.ErrNotFound, "%s is not a directory", dir)
				}
				repo.URL = dir
				repo.SourceType = config.SourceLocal
			}

			if err := cfg.Add(repo); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			added, _ := cfg.Get(repo.Name)
			fmt.Fprintf(cmd.OutOrStdout(), MsgRepoAdded, added.Name, added.SourceType)
			return nil
		},
	}

	cmd.Flags().Bool("local", false, MsgFlagRepoLocal)
	cmd.Flags().Bool("default", false, MsgFlagRepoDefault)
	cmd.Flags().StringP("description", "d", "", MsgFlagRepoDesc)
	return cmd
}

func newRepoRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "remove <name>",
		Aliases:           []string{"rm"},
		Short:             MsgRepoRemoveShort,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: repoNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Remove(args[0]); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgRepoRemoved, args[0])
			return nil
		},
	}
}

func newRepoListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgRepoListShort,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderRepositories(cfg.List()))
			return nil
		},
	}
}

func newRepoDefaultCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "default <name> [true|false]",
		Aliases:           []string{"set-default"},
		Short:             MsgRepoDefaultShort,
		Args:              cobra.RangeArgs(1, 2),
		ValidArgsFunction: repoNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			value := true
			if len(args) == 2 {
				v, err := strconv.ParseBool(args[1])
				if err != nil {
					return aierrors.Newf(aierrors.ErrInvalidInput, "invalid default value %q, expected true or false", args[1])
				}
				value = v
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := cfg.SetDefault(args[0], value); err != nil {
				return err
			}
			if err := cfg.Save(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgRepoDefaultSet, args[0], value)
			return nil
		},
	}
}

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "cache",
		Short:   MsgCacheShort,
		Long:    MsgCacheLong,
		GroupID: "manage",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: MsgCacheListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := source.ListCache(filesystem.NewOS(), paths.New())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, MsgCacheEmpty)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s\n", e.Name, style.MutedStyle.Render(e.Dir))
			}
			return nil
		},
	})

	update := &cobra.Command{
		Use:               "update [name...]",
		Short:             MsgCacheUpdateShort,
		ValidArgsFunction: repoNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, _ := cmd.Flags().GetBool("all")
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			names := args
			if all || len(names) == 0 {
				names = nil
				for _, repo := range cfg.List() {
					if repo.SourceType == config.SourceGit {
						names = append(names, repo.Name)
					}
				}
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				fmt.Fprintln(out, MsgNothingToUpdate)
				return nil
			}

			resolver := newResolver(newEnv(cmd), cfg)
			for _, name := range names {
				if err := resolver.Update(cmd.Context(), name); err != nil {
					return err
				}
				fmt.Fprintf(out, MsgCacheUpdated, name)
			}
			return cfg.Save()
		},
	}
	update.Flags().Bool("all", false, MsgFlagCacheAll)
	cmd.AddCommand(update)

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: MsgCacheClearShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := source.ClearCache(filesystem.NewOS(), paths.New())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgCacheCleared, n)
			return nil
		},
	})

	return cmd
}
