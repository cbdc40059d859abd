package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/lyricsbox/lyricsbox/internal/data"
	"github.com/lyricsbox/lyricsbox/internal/formatter"
	"github.com/lyricsbox/lyricsbox/internal/query"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var (
		inputFile string
		launchURL string
		format    string
		choices   []string
		strict    bool
	)

	cmd := &cobra.Command{
		Use:   "search [titles...]",
		Short: "Look up lyrics for one or more titles",
		Long: `Look up lyrics for one or more titles.

Each argument is one title. Titles can also come from a file (-f), standard input ("-")
or a launch URL carrying q, query or search (--url). An exact title wins; otherwise a
title contained in exactly one song resolves to that song, and several matches are listed
for disambiguation. Resolve them with --choose original=chosen.`,
		Example: `  lyricsbox search 海闊天空
  lyricsbox search -f setlist.txt --format json
  lyricsbox search 月光 --choose 月光=月光下的約定
  lyricsbox search --url 'https://example.com/?q=Dark%20Star'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readSearchInput(cmd.InOrStdin(), args, inputFile, launchURL)
			if err != nil {
				return err
			}
			pairs, err := parseChoices(choices)
			if err != nil {
				return err
			}
			outFmt, err := resolveFormat(cmd, format)
			if err != nil {
				return err
			}

			sess, err := ctx.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			var results []data.Result
			if len(pairs) == 0 {
				results = sess.search.Search(cmd.Context(), text)
			}
			for _, p := range pairs {
				text, results = sess.search.Choose(cmd.Context(), text, p[0], p[1])
			}

			out, err := formatter.New().Format(results, outFmt)
			if err != nil {
				return fmt.Errorf("format results: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)

			if strict {
				return unresolvedError(results)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read titles from a file, one per line")
	cmd.Flags().StringVar(&launchURL, "url", "", "Take the titles from a launch URL's q, query or search parameter")
	cmd.Flags().StringVar(&format, "format", "", "Output format: text, table, json or csv (default: table on a terminal, text otherwise)")
	cmd.Flags().StringArrayVar(&choices, "choose", nil, "Resolve an ambiguous title: original=chosen (repeatable)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Exit non-zero unless every title resolved to a song")
	return cmd
}

// readSearchInput assembles the raw field text from exactly one input mode.
func readSearchInput(stdin io.Reader, args []string, inputFile, launchURL string) (string, error) {
	modes := 0
	for _, set := range []bool{len(args) > 0, inputFile != "", launchURL != ""} {
		if set {
			modes++
		}
	}
	if modes > 1 {
		return "", fmt.Errorf("use only one of: title arguments, --file, --url")
	}

	switch {
	case launchURL != "":
		text, ok := query.FromURL(launchURL)
		if !ok {
			return "", fmt.Errorf("launch URL has no q, query or search parameter")
		}
		return text, nil
	case inputFile != "":
		b, err := os.ReadFile(inputFile)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", inputFile, err)
		}
		return string(b), nil
	case len(args) == 1 && args[0] == "-":
		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	default:
		return strings.Join(args, "\n"), nil
	}
}

func parseChoices(raw []string) ([][2]string, error) {
	out := make([][2]string, 0, len(raw))
	for _, c := range raw {
		original, chosen, ok := strings.Cut(c, "=")
		original, chosen = strings.TrimSpace(original), strings.TrimSpace(chosen)
		if !ok || original == "" || chosen == "" {
			return nil, fmt.Errorf("--choose %q: want original=chosen", c)
		}
		out = append(out, [2]string{original, chosen})
	}
	return out, nil
}

func resolveFormat(cmd *cobra.Command, format string) (formatter.OutputFormat, error) {
	if strings.TrimSpace(format) != "" {
		return formatter.ParseFormat(format)
	}
	if isTerminal(cmd.OutOrStdout()) {
		return formatter.FormatTable, nil
	}
	return formatter.FormatText, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
