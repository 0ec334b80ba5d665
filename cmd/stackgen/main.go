// main.go bootstraps stackgen: it builds the root Cobra command and executes it with a signal-aware context.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/rickchristie/piece/internal/logging"
	"github.com/rickchristie/piece/model"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const envPrefix = "STACKGEN"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	err := newRootCommand().ExecuteContext(ctx)
	handleError(os.Stderr, err)
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var configPath string
	logLevel := "info"

	cmd := &cobra.Command{
		Use:           "stackgen",
		Short:         "Render documents composed of stacked pieces",
		Long:          "stackgen builds piece trees from YAML or JSON documents and renders them to text.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := applyConfig(cmd, cmp.Or(configPath, os.Getenv(envPrefix+"_CONFIG"))); err != nil {
				return err
			}
			logger, err := logging.New(logLevel, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			cmd.SetContext(logr.NewContext(cmd.Context(), logger.WithName("stackgen")))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a config file (default: search $XDG_CONFIG_HOME/stackgen, ~/.config/stackgen)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", logLevel, "Log level for diagnostics on stderr (debug, info, warn, error)")

	cmd.AddCommand(
		newRenderCommand(),
		newKindsCommand(),
		newComposeCommand(),
		newVersionCommand(),
	)
	cmd.Example = `  # Render a YAML document to stdout
  stackgen render prompt.yaml

  # Render JSON from stdin into a file, rejecting self-containing trees
  cat doc.json | stackgen render --format json --check-cycles -o out.md

  # Describe the fields of the section kind
  stackgen kinds section`
	return cmd
}

// applyConfig fills flags the user did not set from STACKGEN_* environment variables
// and the config file. Explicit flags always win.
func applyConfig(cmd *cobra.Command, explicitPath string) error {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if err := loadConfigFile(v, explicitPath); err != nil {
		return err
	}

	var setErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed || !v.IsSet(f.Name) {
			return
		}
		val := fmt.Sprintf("%v", v.Get(f.Name))
		if val == f.Value.String() {
			return
		}
		if err := f.Value.Set(val); err != nil && setErr == nil {
			setErr = fmt.Errorf("invalid value %q for %s from config: %w", val, f.Name, err)
		}
	})
	return setErr
}

// loadConfigFile reads the --config file, or the first config.* found in the
// stackgen config directories. Only a discovered file may be absent.
func loadConfigFile(v *viper.Viper, explicitPath string) error {
	if explicitPath != "" {
		v.SetConfigFile(explicitPath)
	} else {
		v.SetConfigName("config")
		for _, dir := range configSearchDirs() {
			v.AddConfigPath(dir)
		}
	}

	err := v.ReadInConfig()
	if err == nil {
		return nil
	}
	var notFound viper.ConfigFileNotFoundError
	if explicitPath == "" && errors.As(err, &notFound) {
		return nil
	}
	return fmt.Errorf("cannot load stackgen config %s: %w", cmp.Or(explicitPath, v.ConfigFileUsed()), err)
}

func configSearchDirs() []string {
	var dirs []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		dirs = append(dirs, filepath.Join(xdg, "stackgen"))
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		dirs = append(dirs, filepath.Join(home, ".config", "stackgen"))
	}
	return dirs
}

func handleError(w io.Writer, err error) {
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return
	}
	var fe *model.FieldErrors
	if errors.As(err, &fe) {
		fmt.Fprintf(w, "Error: invalid document\n")
		for _, f := range fe.Errors {
			fmt.Fprintf(w, "  %s\n", f.String())
		}
		if errors.Is(err, model.ErrUnknownKind) {
			fmt.Fprintln(w, "Hint: run 'stackgen kinds' to list the available kinds.")
		}
		return
	}
	fmt.Fprintf(w, "Error: %s\n", err)
}
