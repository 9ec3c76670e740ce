package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyz/navgen/internal/cli"
	"github.com/toyz/navgen/internal/errors"
)

func (a *app) newExpandCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "expand [invocation]",
		Short: "Print the code generated for one invocation",
		Long: `Expand reads one invocation from its argument, or from stdin when the
argument is missing or "-", and prints the generated declarations.
Leading // comment markers are ignored, so a directive can be piped
straight from a source file.`,
		Example: `  navgen expand '#NavigationPath([HomeFeature.self])'
  navgen expand - < directive.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, source, err := a.readInvocation(args)
			if err != nil {
				return err
			}

			expander := cli.NewFileExpander(a.cfg.GenerationOptions(), a.cfg.Indent)
			out, err := expander.ExpandInvocation(text, errors.SourceLocation{File: source, Line: 1, Column: 1})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(a.stdout, out)
			return err
		},
	}
}

func (a *app) readInvocation(args []string) (string, string, error) {
	if len(args) == 1 && args[0] != "-" {
		return stripCommentMarkers(args[0]), "<argument>", nil
	}
	content, err := io.ReadAll(a.stdin)
	if err != nil {
		return "", "", errors.WrapFileSystemError("read", "<stdin>", err)
	}
	text := stripCommentMarkers(string(content))
	if strings.TrimSpace(text) == "" {
		return "", "", errors.New(errors.InvalidMacroArgumentCode, "no invocation given").
			WithSuggestion("pass an invocation such as '#NavigationPath([HomeFeature.self])'")
	}
	return text, "<stdin>", nil
}

// stripCommentMarkers removes a leading // from every line
func stripCommentMarkers(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		lines[i] = strings.TrimSpace(strings.TrimPrefix(line, "//"))
	}
	return strings.Join(lines, "\n")
}
