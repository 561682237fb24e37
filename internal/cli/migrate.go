package cli

import (
	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/migrate"
)

func (c *CLI) migrateCommand() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate <path>...",
		Short: "Rewrite legacy token documents into canonical form",
		Long: `Rewrite token files in place: hex and rgb() colors, dimension strings and CSS
shadow strings become structured values, and legacy $type aliases become
canonical types. Directories are searched for token files.

Each file is migrated on its own; a file that fails is reported and the
rest of the batch continues. The exit code is 1 when any file failed.`,
		Args: minArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rep := migrate.Run(cmd.Context(), args, migrate.Options{
				DryRun: dryRun,
				Jobs:   c.settings().Validate.Jobs,
				Logger: loggerFromContext(cmd.Context()),
			})

			for _, f := range rep.Files {
				switch {
				case !f.OK():
					printError(out, "%s: %v", f.Path, f.Err)
				case f.Stats.Changed():
					printFile(out, f.Path)
					printDetail(out, "%d value(s), %d type(s)", f.Stats.Values, f.Stats.Types)
				}
			}

			verb := "Migrated"
			if dryRun {
				verb = "Would migrate"
			}
			if rep.OK() {
				printSuccess(out, "%s %d of %d file(s)", verb, rep.Changed, len(rep.Files))
				return nil
			}
			printError(out, "%d succeeded, %d failed", rep.Succeeded, rep.Failed)
			if err := cmd.Context().Err(); err != nil {
				return err
			}
			return issuesFound()
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report changes without writing files")
	cmd.Flags().Int("jobs", 0, "files migrated in parallel (default GOMAXPROCS)")
	return cmd
}
