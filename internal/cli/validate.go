package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/validate"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type validateOptions struct {
	format         string
	watch          bool
	maxIssues      int
	failOnWarnings bool
}

func (c *CLI) validateCommand() *cobra.Command {
	var opts validateOptions

	cmd := &cobra.Command{
		Use:   "validate <path>",
		Short: "Validate token documents",
		Long: `Validate a token file, or every token file under a directory merged into one
document so that cross-file references resolve.

Issues are printed one per line as "- [code] path: message". The exit code
is 0 when no errors were found, 1 when errors were found and 2 when the
input could not be read. Warnings are printed but leave the exit code at 0;
pass --fail-on-warnings to exit 1 on them as well.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format != formatText && opts.format != formatJSON {
				return usageError(fmt.Errorf("unknown format %q (want text or json)", opts.format))
			}
			run := func(ctx context.Context) error {
				return c.runValidate(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), args[0], opts)
			}
			if opts.watch {
				return c.watch(cmd.Context(), args[0], cmd.ErrOrStderr(), run)
			}
			return run(cmd.Context())
		},
	}

	cmd.Flags().Bool("strict-units", false, "only allow px and rem dimension units")
	cmd.Flags().Int("jobs", 0, "parallel file reads (default GOMAXPROCS)")
	cmd.Flags().StringVar(&opts.format, "format", formatText, "output format: text or json")
	cmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "re-validate whenever a token file changes")
	cmd.Flags().IntVar(&opts.maxIssues, "max-issues", 0, "stop after this many issues (0 = no limit)")
	cmd.Flags().BoolVar(&opts.failOnWarnings, "fail-on-warnings", false, "exit 1 when only warnings were found")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, out, status io.Writer, path string, opts validateOptions) error {
	prog := newProgress(loggerFromContext(ctx))
	doc, err := c.loadDocument(ctx, path)
	if err != nil {
		printError(status, "%v", err)
		return err
	}

	var vopts []validate.Option
	if c.settings().Validate.StrictUnits {
		vopts = append(vopts, validate.WithStrictUnits())
	}
	if opts.maxIssues > 0 {
		vopts = append(vopts, validate.WithMaxIssues(opts.maxIssues))
	}
	report := validate.Validate(doc, vopts...)
	prog.done(fmt.Sprintf("Validated %s", path))

	if opts.format == formatJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		writeIssues(out, report)
		summarize(status, report)
	}

	if !report.OK() || (opts.failOnWarnings && len(report.Warnings) > 0) {
		return issuesFound()
	}
	return nil
}

// writeIssues prints one line per issue, followed by an indented details
// line when the issue has details.
func writeIssues(w io.Writer, report *validate.Report) {
	for _, issue := range report.Issues() {
		fmt.Fprintln(w, issue.Line())
		if issue.Details != "" {
			fmt.Fprintln(w, "  details: "+issue.Details)
		}
	}
}

func summarize(w io.Writer, report *validate.Report) {
	switch {
	case report.Clean():
		printSuccess(w, "No issues found")
	case report.OK():
		printWarning(w, "%d warning(s)", len(report.Warnings))
	default:
		printError(w, "%d error(s), %d warning(s)", len(report.Errors), len(report.Warnings))
	}
	if report.Truncated {
		printDetail(w, "output truncated, raise --max-issues to see more")
	}
}
