package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/darianrosebrook/portfolio-sub007/pkg/dag"
)

const (
	formatDOT = "dot"
	formatSVG = "svg"
)

func (c *CLI) graphCommand() *cobra.Command {
	var (
		format   string
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Render the token reference graph",
		Long: `Render the reference graph of the tokens under path as Graphviz DOT or SVG.
Edges point from a token to the path it references. Tokens that take part
in a reference cycle are highlighted.`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != formatDOT && format != formatSVG {
				return usageError(fmt.Errorf("unknown format %q (want dot or svg)", format))
			}
			ix, err := c.loadIndex(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			g := dag.FromIndex(ix)
			var hot []string
			for _, cycle := range g.Cycles() {
				hot = append(hot, cycle...)
			}
			dot := dag.ToDOT(g, dag.DOTOptions{Detailed: detailed, Highlight: hot})

			data := []byte(dot)
			if format == formatSVG {
				if data, err = dag.RenderSVG(cmd.Context(), dot); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if output == "" {
				_, err := out.Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess(out, "Rendered %d nodes, %d references", g.NodeCount(), g.EdgeCount())
			printFile(out, output)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", formatDOT, "output format: dot or svg")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include token types in node labels")
	cmd.Flags().Int("jobs", 0, "parallel file reads (default GOMAXPROCS)")
	return cmd
}
