package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacoelho/yamlgrep/internal/config"
	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/exit"
	"github.com/jacoelho/yamlgrep/internal/show"
)

// Show runs yaml-show with args, which exclude the program name.
func Show(ctx context.Context, args []string, streams Streams) *exit.Result {
	var (
		cfg    config.Show
		format string
		ran    bool
	)

	cmd := &cobra.Command{
		Use:   "yaml-show [flags] PATH FILE",
		Short: "Print the subtree of a YAML or JSON document at PATH",
		Long: `Print the subtree of a YAML or JSON document at PATH.

PATH is a JSON pointer (/a/0/b), a dot path (a[0].b) or, when it starts
with '$', a JSONPath query. FILE may be '-' to read standard input.`,
		Example: `  yaml-show /spec/containers/0 pod.yaml
  yaml-show --format json metadata.labels pod.yaml
  yaml-show '$..image' pod.yaml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			cfg.Path, cfg.File = args[0], args[1]

			var err error
			if cfg.Format, err = config.ParseShowFormat(format); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return runShow(&cfg, streams, newLogger(streams.Err, cfg.Debug))
		},
	}

	f := cmd.Flags()
	f.StringVar(&format, "format", "auto", "output format: auto (YAML), yaml or json")
	f.BoolVar(&cfg.Debug, "debug", false, "log diagnostics to stderr")

	if result := execute(ctx, cmd, args, streams, &ran); result != nil {
		return result
	}
	return exit.Success(nil, "")
}

func runShow(cfg *config.Show, streams Streams, logger *slog.Logger) error {
	root, format, err := document.Load(cfg.File, streams.In)
	if err != nil {
		return err
	}
	logger.Debug("loaded document", "file", cfg.File, "format", format)

	kind := "path"
	if strings.HasPrefix(cfg.Path, "$") {
		kind = "jsonpath"
	}
	results, err := show.Select(root, cfg.Path)
	if err != nil {
		return err
	}
	logger.Debug("selected nodes", "kind", kind, "count", len(results))

	return show.Write(streams.Out, results, cfg.Format)
}
