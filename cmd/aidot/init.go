package aidot

import (
	"fmt"

	"github.com/arthur-debert/aidot/pkg/filesystem"
	"github.com/arthur-debert/aidot/pkg/logging"
	"github.com/arthur-debert/aidot/pkg/preset"
	"github.com/arthur-debert/aidot/pkg/style"
	"github.com/spf13/cobra"
)

func newInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init [DIR]",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Example: MsgInitExample,
		Args:    cobra.MaximumNArgs(1),
		GroupID: "manage",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logging.GetLogger("cmd.init")
			force := globalBool(cmd, "force")
			from, _ := cmd.Flags().GetString("from-existing")

			var arg string
			if len(args) > 0 {
				arg = args[0]
			}
			dir, err := absDir(arg)
			if err != nil {
				return err
			}

			fsys := filesystem.NewOS()
			out := cmd.OutOrStdout()
			var written []string

			if from != "" {
				project, err := absDir(from)
				if err != nil {
					return err
				}
				logger.Info().Str("from", project).Str("dir", dir).Msg("Extracting preset")

				p, sources, err := preset.Extract(fsys, project)
				if err != nil {
					return err
				}
				for _, src := range sources {
					fmt.Fprintf(out, "Found %d file(s) from %s\n", src.Files, src.Tool)
				}
				if written, err = preset.Write(fsys, dir, p, force); err != nil {
					return err
				}
			} else {
				logger.Info().Str("dir", dir).Msg("Scaffolding preset")
				if written, err = preset.Scaffold(fsys, dir, force); err != nil {
					return err
				}
			}

			fmt.Fprintf(out, MsgPresetCreated, style.PathStyle.Render(dir))
			for _, f := range written {
				fmt.Fprintf(out, MsgFileItem, f)
			}
			return nil
		},
	}

	cmd.Flags().String("from-existing", "", MsgFlagFromExisting)
	return cmd
}
