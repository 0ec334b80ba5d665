package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
	"github.com/go-logr/logr"
	"github.com/rickchristie/piece"
	"github.com/rickchristie/piece/model"
	"github.com/rickchristie/piece/pieces"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const composeHelp = `Add pieces one per line, then render the stack:

  <kind> [{field: value, ...}]   add a piece, fields as a YAML flow mapping
  :sep [VALUE]                   show or set the separator (YAML scalar, e.g. "\n\n")
  :undo                          remove the last piece
  :clear                         remove every piece
  :render                        print the document
  :write PATH                    write the document to PATH
  :kinds                         list available kinds
  :quit                          leave`

type composeOptions struct {
	separator string
	history   string
}

func newComposeCommand() *cobra.Command {
	opts := composeOptions{separator: `\n`}
	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build a document interactively",
		Long:  "Compose starts a prompt that adds pieces to a stack one line at a time.\n\n" + composeHelp,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompose(cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.separator, "separator", opts.separator, `Initial separator; escapes like \n are interpreted`)
	cmd.Flags().StringVar(&opts.history, "history", "", "File to keep prompt history in")
	return cmd
}

func runCompose(cmd *cobra.Command, opts composeOptions) error {
	log := logr.FromContextOrDiscard(cmd.Context())

	separator, err := unescape(opts.separator)
	if err != nil {
		return fmt.Errorf("invalid --separator: %w", err)
	}
	c := newComposer(pieces.NewRegistry(), separator)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "stackgen> ",
		HistoryFile:     opts.history,
		AutoComplete:    c.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdin:           io.NopCloser(cmd.InOrStdin()),
		Stdout:          cmd.OutOrStdout(),
		Stderr:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return fmt.Errorf("failed to create readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(rl.Stdout(), "Type :help for commands.")
	for {
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		line, err := rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if line == "" {
					return nil
				}
				continue
			}
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		out, quit, err := c.exec(line)
		if err != nil {
			log.V(1).Info("compose command failed", "line", line, "error", err.Error())
			fmt.Fprintln(rl.Stderr(), formatComposeError(err))
			continue
		}
		if out != "" {
			fmt.Fprintln(rl.Stdout(), out)
		}
		if quit {
			return nil
		}
	}
}

// composer holds the stack being built by the compose prompt.
type composer struct {
	reg       *model.Registry
	pieces    []piece.Piece
	separator string
}

func newComposer(reg *model.Registry, separator string) *composer {
	return &composer{reg: reg, separator: separator}
}

// exec runs one prompt line and returns text to print and whether to stop.
func (c *composer) exec(line string) (string, bool, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false, nil
	}

	name, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch name {
	case ":quit", ":q", ":exit":
		return "", true, nil
	case ":help", ":h":
		return composeHelp, false, nil
	case ":render", ":r":
		return piece.Generate(c.document()), false, nil
	case ":sep":
		return c.setSeparator(rest)
	case ":undo":
		if len(c.pieces) == 0 {
			return "", false, errors.New("nothing to undo")
		}
		c.pieces = c.pieces[:len(c.pieces)-1]
		return fmt.Sprintf("%d piece(s)", len(c.pieces)), false, nil
	case ":clear":
		c.pieces = nil
		return "0 piece(s)", false, nil
	case ":kinds":
		names := make([]string, 0)
		for _, k := range c.reg.Kinds() {
			names = append(names, k.Name())
		}
		return strings.Join(names, " "), false, nil
	case ":write", ":w":
		if rest == "" {
			return "", false, errors.New(":write needs a path")
		}
		text := piece.Generate(c.document())
		if err := os.WriteFile(rest, []byte(text), 0o644); err != nil {
			return "", false, fmt.Errorf("failed to write document: %w", err)
		}
		return fmt.Sprintf("wrote %d bytes to %s", len(text), rest), false, nil
	}

	if strings.HasPrefix(name, ":") {
		return "", false, fmt.Errorf("unknown command %s (try :help)", name)
	}
	return c.add(name, rest)
}

func (c *composer) add(kind, fields string) (string, bool, error) {
	doc := map[string]any{}
	if fields != "" {
		var parsed any
		if err := yaml.Unmarshal([]byte(fields), &parsed); err != nil {
			return "", false, fmt.Errorf("failed to parse fields: %w", err)
		}
		m, ok := parsed.(map[string]any)
		if !ok {
			return "", false, fmt.Errorf("fields must be a YAML mapping, got %T", parsed)
		}
		doc = m
	}
	doc[model.KindKey] = kind

	p, err := c.reg.Build(doc)
	if err != nil {
		return "", false, err
	}
	c.pieces = append(c.pieces, p)
	return fmt.Sprintf("added %s (%d piece(s))", kind, len(c.pieces)), false, nil
}

func (c *composer) setSeparator(value string) (string, bool, error) {
	if value == "" {
		return "separator: " + strconv.Quote(c.separator), false, nil
	}
	var sep string
	if err := yaml.Unmarshal([]byte(value), &sep); err != nil {
		return "", false, fmt.Errorf("separator must be a YAML string: %w", err)
	}
	c.separator = sep
	return "separator: " + strconv.Quote(sep), false, nil
}

// document returns the current stack. Pieces were validated when added, so the
// stack cannot be rejected.
func (c *composer) document() *piece.Stack {
	return piece.MustStack(c.pieces...).WithSeparator(c.separator)
}

func (c *composer) completer() *readline.PrefixCompleter {
	items := []readline.PrefixCompleterInterface{
		readline.PcItem(":sep"),
		readline.PcItem(":undo"),
		readline.PcItem(":clear"),
		readline.PcItem(":render"),
		readline.PcItem(":write"),
		readline.PcItem(":kinds"),
		readline.PcItem(":help"),
		readline.PcItem(":quit"),
	}
	for _, k := range c.reg.Kinds() {
		items = append(items, readline.PcItem(k.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func formatComposeError(err error) string {
	var fe *model.FieldErrors
	if !errors.As(err, &fe) {
		return "error: " + err.Error()
	}
	lines := make([]string, 0, len(fe.Errors)+1)
	lines = append(lines, "invalid "+fe.Kind+":")
	for _, f := range fe.Errors {
		lines = append(lines, "  "+f.String())
	}
	return strings.Join(lines, "\n")
}
