package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/jacoelho/yamlgrep/internal/config"
	"github.com/jacoelho/yamlgrep/internal/document"
	"github.com/jacoelho/yamlgrep/internal/exit"
	"github.com/jacoelho/yamlgrep/internal/pattern"
	"github.com/jacoelho/yamlgrep/internal/pointer"
	"github.com/jacoelho/yamlgrep/internal/report"
	"github.com/jacoelho/yamlgrep/internal/search"
)

const grepExample = `  yaml-grep password config.yaml
  yaml-grep -i -k '^db' -- settings.yml
  yaml-grep -e token -e secret --path-format dot deploy.yaml
  cat doc.json | yaml-grep --output json user -`

type grepFlags struct {
	regexps    []string
	pathFormat string
	color      string
	output     string
}

// Grep runs yaml-grep with args, which exclude the program name.
func Grep(ctx context.Context, args []string, streams Streams) *exit.Result {
	var (
		cfg     config.Grep
		flags   grepFlags
		ran     bool
		matched int
	)

	cmd := &cobra.Command{
		Use:   "yaml-grep [flags] PATTERN... [--] FILE",
		Short: "Search keys and values of a YAML or JSON document",
		Long: `Search every mapping key and scalar value of a YAML or JSON document
with one or more regular expressions and print the path of each match.

FILE may be '-' to read standard input. Exit status is 0 when something
matched, 1 when nothing matched and 2 on error.`,
		Example: grepExample,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ran = true
			if err := flags.apply(&cfg, args, cmd.ArgsLenAtDash()); err != nil {
				return err
			}
			logger := newLogger(streams.Err, cfg.Debug)

			n, err := runGrep(cmd.Context(), &cfg, streams, logger)
			matched = n
			return err
		},
	}

	f := cmd.Flags()
	f.StringArrayVarP(&flags.regexps, "regexp", "e", nil, "use `PATTERN` for matching (repeatable)")
	f.BoolVarP(&cfg.CaseInsensitive, "ignore-case", "i", false, "ignore case distinctions in patterns")
	f.BoolVarP(&cfg.KeysOnly, "keys-only", "k", false, "match mapping keys only")
	f.BoolVarP(&cfg.ValuesOnly, "values-only", "v", false, "match scalar values only")
	f.StringVar(&flags.pathFormat, "path-format", "pointer", "path rendering: pointer or dot")
	f.StringVar(&flags.color, "color", "auto", "highlight matches: auto, always or never")
	f.IntVarP(&cfg.MaxMatches, "max-matches", "m", 0, "stop after `N` matches (0 = unlimited)")
	f.StringVarP(&flags.output, "output", "o", "text", "output format: text or json")
	f.BoolVar(&cfg.Debug, "debug", false, "log diagnostics to stderr")
	cmd.MarkFlagsMutuallyExclusive("keys-only", "values-only")

	if result := execute(ctx, cmd, args, streams, &ran); result != nil {
		return result
	}
	if matched == 0 {
		return exit.NoMatch()
	}
	return exit.Success(nil, "")
}

// apply copies the raw flag values and positionals into cfg and validates it.
func (f *grepFlags) apply(cfg *config.Grep, args []string, dashAt int) error {
	patterns, file, err := config.SplitPatternsAndFile(args, dashAt, f.regexps)
	if err != nil {
		return err
	}
	cfg.Patterns = patterns
	cfg.File = file

	if cfg.PathFormat, err = pointer.ParseFormat(f.pathFormat); err != nil {
		return fmt.Errorf("%w: %w", config.ErrUsage, err)
	}
	if cfg.Color, err = config.ParseColorMode(f.color); err != nil {
		return err
	}
	if cfg.Output, err = report.ParseOutputFormat(f.output); err != nil {
		return fmt.Errorf("%w: %w", config.ErrUsage, err)
	}
	return cfg.Validate()
}

func runGrep(ctx context.Context, cfg *config.Grep, streams Streams, logger *slog.Logger) (int, error) {
	set, err := pattern.Compile(cfg.Patterns, cfg.PatternOptions())
	if err != nil {
		return 0, err
	}
	logger.Debug("compiled patterns", "count", set.Len(), "target", set.Target())

	root, format, err := document.Load(cfg.File, streams.In)
	if err != nil {
		return 0, err
	}
	logger.Debug("loaded document", "file", cfg.File, "format", format)

	reporter := &report.Reporter{
		Writer:     streams.Out,
		PathFormat: cfg.PathFormat,
		Output:     cfg.Output,
		Color:      cfg.Output == report.FormatText && config.ResolveColor(cfg.Color, streams.Out),
		MaxMatches: cfg.MaxMatches,
		Logger:     logger,
	}

	n, err := reporter.Report(untilDone(ctx, search.Search(root, set, search.Options{})))
	if err != nil {
		return n, err
	}
	if err := ctx.Err(); err != nil {
		return n, err
	}
	return n, nil
}
