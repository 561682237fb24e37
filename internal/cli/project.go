package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	tokio "github.com/darianrosebrook/portfolio-sub007/pkg/io"
	"github.com/darianrosebrook/portfolio-sub007/pkg/pipeline"
	"github.com/darianrosebrook/portfolio-sub007/pkg/project"
)

const formatCSS = "css"

type projectFlags struct {
	fallback string
	set      []string
	enums    []string
	selects  []string
	format   string
	selector string
	output   string
	noCache  bool
	refresh  bool
}

func (c *CLI) projectCommand() *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "project <path>",
		Short: "Flatten tokens into namespaced custom properties",
		Long: `Resolve the tokens under path and flatten them into keys named
<namespace>-<dashed-path>. --root limits the projection to a subtree and
strips it from the keys.

Values are layered, lowest precedence first: --fallback entries, token
values, the selected variant of each --enum, and --set overrides.

  tokens project tokens/ --namespace button --root components.button \
      --enum 'size=small|medium|large:default=medium' --select size=large \
      --set button-radius=0`,
		Args: exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := c.projectRequest(flags)
			if err != nil {
				return usageError(err)
			}
			if flags.format != formatCSS && flags.format != formatJSON {
				return usageError(fmt.Errorf("unknown format %q (want css or json)", flags.format))
			}
			req.Sources, err = c.loadSources(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			res, err := runner.Run(cmd.Context(), req)
			if err != nil {
				return usageError(err)
			}

			status := cmd.ErrOrStderr()
			printStats(status, res.Stats.Tokens, res.Stats.Failed, res.CacheHit)
			for _, path := range res.Projection.Skipped {
				printWarning(status, "%s: %s", path, res.Failures[path])
			}
			return writeProjection(cmd.OutOrStdout(), res.Projection, flags)
		},
	}

	f := cmd.Flags()
	f.String("namespace", "", "key prefix, typically the component name")
	f.String("root", "", "project only the subtree at this token path")
	f.StringVar(&flags.fallback, "fallback", "", "JSON, YAML or TOML file of fallback key/value pairs")
	f.StringArrayVar(&flags.set, "set", nil, "override a projected key: key=value (repeatable)")
	f.StringArrayVar(&flags.enums, "enum", nil, "declare an enum: name=a|b|c[:default=b] (repeatable)")
	f.StringArrayVar(&flags.selects, "select", nil, "select an enum value: name=value (repeatable)")
	f.StringVar(&flags.format, "format", formatCSS, "output format: css or json")
	f.StringVar(&flags.selector, "selector", ":root", "CSS selector wrapping the custom properties")
	f.StringVarP(&flags.output, "output", "o", "", "write to file instead of stdout")
	f.BoolVar(&flags.noCache, "no-cache", false, "disable the resolution cache")
	f.BoolVar(&flags.refresh, "refresh", false, "recompute even when a cached result exists")
	f.Int("jobs", 0, "parallel file reads (default GOMAXPROCS)")
	return cmd
}

// projectRequest builds the pipeline request from flags and configuration.
// Sources are filled in by the caller.
func (c *CLI) projectRequest(flags projectFlags) (pipeline.Request, error) {
	cfg := c.settings()
	opts := project.Options{
		Namespace: cfg.Project.Namespace,
		Root:      cfg.Project.Root,
	}
	if opts.Namespace == "" {
		return pipeline.Request{}, fmt.Errorf("--namespace is required")
	}

	if flags.fallback != "" {
		fb, err := tokio.ReadFile(flags.fallback)
		if err != nil {
			return pipeline.Request{}, fmt.Errorf("read fallbacks: %w", err)
		}
		opts.Fallbacks = fb
	}

	set, err := parseAssignments("--set", flags.set)
	if err != nil {
		return pipeline.Request{}, err
	}
	if len(set) > 0 {
		opts.Overrides = make(map[string]any, len(set))
		for k, v := range set {
			opts.Overrides[k] = v
		}
	}

	for _, spec := range flags.enums {
		e, err := parseEnum(spec)
		if err != nil {
			return pipeline.Request{}, err
		}
		opts.Enums = append(opts.Enums, e)
	}
	if opts.Select, err = parseAssignments("--select", flags.selects); err != nil {
		return pipeline.Request{}, err
	}

	return pipeline.Request{
		Project:     opts,
		StrictUnits: cfg.Validate.StrictUnits,
		Refresh:     flags.refresh,
	}, nil
}

// parseEnum parses "name=a|b|c" with an optional ":default=b" suffix. The
// default is the first allowed value unless given.
func parseEnum(spec string) (project.Enum, error) {
	name, rest, ok := strings.Cut(spec, "=")
	if !ok || strings.TrimSpace(name) == "" {
		return project.Enum{}, fmt.Errorf("--enum %q: want name=a|b|c[:default=a]", spec)
	}
	allowed, def, hasDefault := strings.Cut(rest, ":default=")

	var values []string
	for _, v := range strings.Split(allowed, "|") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return project.Enum{}, fmt.Errorf("--enum %q: no allowed values", spec)
	}
	if !hasDefault {
		def = values[0]
	}
	return project.Enum{Name: strings.TrimSpace(name), Allowed: values, Default: strings.TrimSpace(def)}, nil
}

func parseAssignments(flag string, list []string) (map[string]string, error) {
	if len(list) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(list))
	for _, s := range list {
		k, v, ok := strings.Cut(s, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("%s %q: want key=value", flag, s)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}

func writeProjection(stdout io.Writer, p *project.Projection, flags projectFlags) error {
	var data []byte
	if flags.format == formatJSON {
		var err error
		if data, err = json.MarshalIndent(p, "", "  "); err != nil {
			return err
		}
		data = append(data, '\n')
	} else {
		data = []byte(p.CSS(flags.selector))
	}

	if flags.output == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(flags.output, data, 0o644); err != nil {
		return err
	}
	printFile(stdout, flags.output)
	return nil
}
