package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/TFMV/jswt/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

var walkCmd = &cobra.Command{
	Use:   "walk [path]",
	Short: "Print the entries of a directory tree in walk order",
	Long: `Walk a directory tree depth first, parents before children, and print
every entry as it is visited. Symlinks are reported but never followed.

Entries that cannot be read are reported and skipped. A directory that
cannot be listed is reported twice: once as a directory and once as an
error.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root := "."
		if len(args) > 0 {
			root = args[0]
		}

		logger := newLogger()
		defer logger.Sync()

		return runWalk(cmd.OutOrStdout(), root, walkConfig{
			Format:     viper.GetString("walk.format"),
			ExcludeDir: viper.GetStringSlice("walk.exclude-dir"),
			Silent:     viper.GetBool("silent"),
		}, logger)
	},
}

func init() {
	rootCmd.AddCommand(walkCmd)

	walkCmd.Flags().String("format", "text", "Output format (text|json|yaml)")
	walkCmd.Flags().StringSlice("exclude-dir", nil, "Directory name patterns to skip (comma-separated)")

	viper.BindPFlag("walk.format", walkCmd.Flags().Lookup("format"))
	viper.BindPFlag("walk.exclude-dir", walkCmd.Flags().Lookup("exclude-dir"))
}

type walkConfig struct {
	Format     string
	ExcludeDir []string
	Silent     bool
}

// walkEntry is one visit as printed by the walk command.
type walkEntry struct {
	Path  string `json:"path" yaml:"path"`
	Kind  string `json:"kind,omitempty" yaml:"kind,omitempty"`
	State string `json:"state" yaml:"state"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

func newWalkEntry(v walk.Visit) walkEntry {
	e := walkEntry{Path: v.Path(), State: v.State().String()}
	if node, ok := v.Node(); ok {
		e.Kind = node.Kind.String()
	}
	if err := v.Err(); err != nil {
		e.Error = err.Error()
	}
	return e
}

func runWalk(out io.Writer, root string, cfg walkConfig, logger *zap.Logger) error {
	switch cfg.Format {
	case "", "text", "json", "yaml":
	default:
		return fmt.Errorf("invalid format: %s", cfg.Format)
	}

	exclude, err := walk.ExcludeMiddleware(root, cfg.ExcludeDir)
	if err != nil {
		return err
	}

	var (
		stats   walk.Stats
		entries []walkEntry
		enc     = json.NewEncoder(out)
	)
	visit := func(v walk.Visit) walk.Result {
		e := newWalkEntry(v)
		switch cfg.Format {
		case "json":
			if err := enc.Encode(e); err != nil {
				return walk.Abort(err)
			}
		case "yaml":
			entries = append(entries, e)
		default:
			if e.Error != "" {
				fmt.Fprintf(out, "%-8s %s\n", "error", e.Error)
			} else {
				fmt.Fprintf(out, "%-8s %s\n", e.Kind, e.Path)
			}
		}
		if v.Err() != nil {
			return walk.Skip()
		}
		return walk.Continue()
	}

	fn := walk.Chain(visit,
		walk.LoggingMiddleware(logger),
		walk.StatsMiddleware(&stats),
		exclude,
	)
	if err := walk.WalkWithOptions(root, fn, walk.Options{Logger: logger}); err != nil {
		return err
	}

	if cfg.Format == "yaml" {
		data, err := yaml.Marshal(entries)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	}
	if (cfg.Format == "" || cfg.Format == "text") && !cfg.Silent {
		fmt.Fprintf(out, "\n%s\n", stats)
	}
	return nil
}
