package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TFMV/jswt/internal/reexport"
	"github.com/TFMV/jswt/internal/walk"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jswt",
	Short: "Tooling for JavaScript packages with JSDoc types",
	Long: `jswt keeps the boilerplate of a JSDoc-typed JavaScript package in order.

It walks the project the way a careful person would, never following
symlinks and never descending into dependencies or build output.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// Problems the user can fix are explained on stderr.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.jswt.yaml or $HOME/.jswt.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().Bool("silent", false, "Disable all output except errors")

	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("silent", rootCmd.PersistentFlags().Lookup("silent"))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".jswt")
	}

	viper.SetEnvPrefix("jswt")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Failed to read config file %s: %v\n", cfgFile, err)
	}
}

// logLevel maps the verbosity flags to a walker log level.
func logLevel() walk.LogLevel {
	switch {
	case viper.GetBool("verbose"):
		return walk.LogLevelDebug
	case viper.GetBool("silent"):
		return walk.LogLevelError
	default:
		return walk.LogLevelWarn
	}
}

func newLogger() *zap.Logger {
	return walk.NewLogger(logLevel())
}

// printError explains err. A ProblemError gets the problem and the likely fix.
func printError(w io.Writer, err error) {
	var problem *reexport.ProblemError
	if !errors.As(err, &problem) {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Error:")
	fmt.Fprintf(w, "    %s\n", problem.Problem)
	if problem.Err != nil {
		fmt.Fprintf(w, "    %v\n", problem.Err)
	}
	if len(problem.Solution) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "Possible fix:")
		fmt.Fprintln(w, problem.Fix("    "))
	}
	fmt.Fprintln(w, "")
}
