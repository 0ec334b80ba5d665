package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-logr/logr"
	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/pieces"
	"github.com/spf13/cobra"
)

type renderOptions struct {
	format          string
	output          string
	separator       string
	checkCycles     bool
	trailingNewline bool
}

func newRenderCommand() *cobra.Command {
	opts := renderOptions{
		format:          "auto",
		separator:       `\n`,
		trailingNewline: true,
	}
	cmd := &cobra.Command{
		Use:   "render [FILE]",
		Short: "Render a YAML or JSON document",
		Long: `Render builds the piece tree described by FILE (or stdin) and writes its text.

Every node names its kind; a top-level sequence is rendered as a stack.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runRender(cmd, path, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.format, "format", "f", opts.format, "Document format (auto, yaml, json); auto picks by file extension")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the rendered text to this file instead of stdout")
	cmd.Flags().StringVar(&opts.separator, "separator", opts.separator, `Separator for a top-level sequence; escapes like \n are interpreted`)
	cmd.Flags().BoolVar(&opts.checkCycles, "check-cycles", false, "Reject trees in which a piece contains itself instead of recursing")
	cmd.Flags().BoolVar(&opts.trailingNewline, "trailing-newline", opts.trailingNewline, "End non-empty output with a newline")
	return cmd
}

func runRender(cmd *cobra.Command, path string, opts renderOptions) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	data, err := readDocument(cmd.InOrStdin(), path)
	if err != nil {
		return err
	}
	format, err := resolveFormat(opts.format, path)
	if err != nil {
		return err
	}
	separator, err := unescape(opts.separator)
	if err != nil {
		return fmt.Errorf("invalid --separator: %w", err)
	}
	log.V(1).Info("decoding document", "path", path, "format", format, "bytes", len(data))

	reg := pieces.NewRegistry().WithSequenceSeparator(separator)
	root, err := decode(reg, format, data)
	if err != nil {
		return err
	}

	var text string
	if opts.checkCycles {
		text, err = piece.GenerateChecked(root)
		if err != nil {
			return err
		}
	} else {
		text = piece.Generate(root)
	}
	if opts.trailingNewline && text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	if opts.output == "" {
		_, err = io.WriteString(cmd.OutOrStdout(), text)
		return err
	}
	if err := os.WriteFile(opts.output, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	log.Info("wrote document", "path", opts.output, "bytes", len(text))
	return nil
}

func readDocument(stdin io.Reader, path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return data, nil
}

func resolveFormat(format, path string) (string, error) {
	switch strings.ToLower(format) {
	case "yaml", "yml":
		return "yaml", nil
	case "json":
		return "json", nil
	case "auto", "":
		if strings.EqualFold(filepath.Ext(path), ".json") {
			return "json", nil
		}
		return "yaml", nil
	default:
		return "", fmt.Errorf("unknown format %q (expected auto, yaml, or json)", format)
	}
}

func decode(reg *model.Registry, format string, data []byte) (piece.Piece, error) {
	if format == "json" {
		return reg.DecodeJSON(data)
	}
	return reg.DecodeYAML(data)
}

// quoteControls prepares raw flag text for strconv.Unquote. Existing \\ and \"
// escapes are matched first and kept as they are.
var quoteControls = strings.NewReplacer(
	`\\`, `\\`,
	`\"`, `\"`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// unescape interprets Go string escapes such as \n, \t and \". Literal control
// characters and bare quotes pass through unchanged.
func unescape(s string) (string, error) {
	return strconv.Unquote(`"` + quoteControls.Replace(s) + `"`)
}
