package cmd

import (
	"github.com/TFMV/jswt/internal/reexport"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reexportCmd = &cobra.Command{
	Use:   "reexport [dir]",
	Short: "Regenerate index.js with the typedefs of the package",
	Long: `Walk the package for JSDoc @typedef declarations and re-export them from
index.js, so that dependents can import every type from the package root.

With --global the typedefs are written to types.js instead. types.js is
meant for the type checker only and should not be published.

Entries named index.js, types.js, build, dist, node_modules or tmp are
never scanned, nor are minified files, backups, or nested packages.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) > 0 {
			dir = args[0]
		}

		logger := newLogger()
		defer logger.Sync()

		out := cmd.OutOrStdout()
		if viper.GetBool("silent") {
			out = nil
		}
		g := reexport.New(dir, out, cmd.ErrOrStderr(), logger)
		return g.Run(reexport.Options{
			Global: viper.GetBool("reexport.global"),
			Ignore: viper.GetStringSlice("reexport.ignore"),
		})
	},
}

func init() {
	rootCmd.AddCommand(reexportCmd)

	reexportCmd.Flags().BoolP("global", "g", false, "Write typedefs to types.js instead of index.js")
	reexportCmd.Flags().StringSlice("ignore", nil, "Extra glob patterns to ignore (comma-separated)")

	viper.BindPFlag("reexport.global", reexportCmd.Flags().Lookup("global"))
	viper.BindPFlag("reexport.ignore", reexportCmd.Flags().Lookup("ignore"))
}
