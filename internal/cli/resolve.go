package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/errors"
	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
	"github.com/darianrosebrook/portfolio-sub007/pkg/resolve"
	"github.com/darianrosebrook/portfolio-sub007/pkg/token"
)

type resolvedToken struct {
	Type  token.Type `json:"type,omitempty"`
	Value any        `json:"value,omitempty"`
	Trail []string   `json:"trail,omitempty"`
	Error string     `json:"error,omitempty"`
	Code  string     `json:"code,omitempty"`
}

func (c *CLI) resolveCommand() *cobra.Command {
	var (
		tokens   []string
		trace    bool
		format   string
		maxDepth int
	)

	cmd := &cobra.Command{
		Use:   "resolve <path>",
		Short: "Print resolved token values",
		Long: `Resolve every token under path, or only the tokens named with --token, and
print their final values. --trace also prints the chain of references
followed to reach each value. The exit code is 1 when a token failed to
resolve.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatText && format != formatJSON {
				return usageError(fmt.Errorf("unknown format %q (want text or json)", format))
			}
			for _, t := range tokens {
				if err := errors.ValidateTokenPath(t); err != nil {
					return usageError(err)
				}
			}
			ix, err := c.loadIndex(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			var opts []resolve.Option
			if maxDepth > 0 {
				opts = append(opts, resolve.WithMaxDepth(maxDepth))
			}
			r := resolve.New(ix, opts...)
			var results []*resolve.Result
			if len(tokens) == 0 {
				results = r.ResolveAll()
			} else {
				for _, t := range tokens {
					results = append(results, r.Result(t))
				}
			}

			out := cmd.OutOrStdout()
			if format == formatJSON {
				err = writeResolvedJSON(out, results, trace)
			} else {
				writeResolvedText(out, cmd.ErrOrStderr(), results, trace)
			}
			if err != nil {
				return err
			}
			for _, res := range results {
				if !res.OK() {
					return issuesFound()
				}
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&tokens, "token", "t", nil, "resolve only this token path (repeatable)")
	cmd.Flags().BoolVar(&trace, "trace", false, "print the reference chain of each token")
	cmd.Flags().StringVar(&format, "format", formatText, "output format: text or json")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "longest reference chain to follow (default 1024)")
	cmd.Flags().Int("jobs", 0, "parallel file reads (default GOMAXPROCS)")
	return cmd
}

func writeResolvedText(out, status io.Writer, results []*resolve.Result, trace bool) {
	for _, res := range results {
		if !res.OK() {
			printError(status, "%s: [%s] %s", res.Path, res.Err.Code, res.Err.Message)
			if trace && len(res.Trail) > 1 {
				printDetail(status, "%s", strings.Join(res.Trail, " "+iconArrow+" "))
			}
			continue
		}
		fmt.Fprintf(out, "%s = %s\n", res.Path, displayValue(res.Value, res.Type))
		if trace && len(res.Trail) > 1 {
			fmt.Fprintf(out, "  %s\n", strings.Join(res.Trail, " "+iconArrow+" "))
		}
	}
}

func writeResolvedJSON(out io.Writer, results []*resolve.Result, trace bool) error {
	doc := make(map[string]resolvedToken, len(results))
	for _, res := range results {
		rt := resolvedToken{Type: res.Type}
		if trace {
			rt.Trail = res.Trail
		}
		if res.OK() {
			rt.Value = token.Plain(res.Value)
		} else {
			rt.Error = res.Err.Message
			rt.Code = string(res.Err.Code)
		}
		doc[res.Path] = rt
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(doc)
}

// displayValue renders v the way it would be projected, falling back to
// compact JSON for values without a CSS form.
func displayValue(v any, t token.Type) string {
	if s, ok := project.Format(v, t); ok {
		return s
	}
	data, err := json.Marshal(token.Plain(v))
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(data)
}
