package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/lyricsbox/lyricsbox/internal/query"
	"github.com/lyricsbox/lyricsbox/internal/tui"
)

func newTUICommand(ctx *commandContext) *cobra.Command {
	var initial string
	var launchURL string

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive lyrics widget",
		RunE: func(cmd *cobra.Command, args []string) error {
			// The alternate screen owns the terminal, so logs are discarded.
			sess, err := ctx.openSession(io.Discard)
			if err != nil {
				return err
			}
			defer sess.close()

			if launchURL != "" {
				if q, ok := query.FromURL(launchURL); ok {
					initial = q
				}
			}
			return tui.Run(cmd.Context(), sess.search, tui.Options{Query: initial, Pulse: sess.cfg.Pulse()})
		},
	}

	cmd.Flags().StringVarP(&initial, "query", "q", "", "Search this text on start")
	cmd.Flags().StringVar(&launchURL, "url", "", "Take the start query from a launch URL's q, query or search parameter")
	return cmd
}
