package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCheatCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cheat <text>",
		Short: "Expand a cheat code into its playlist",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := ctx.openSession(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer sess.close()

			text := strings.Join(args, " ")
			replacement, ok := sess.search.CheatCode(cmd.Context(), text)
			if !ok {
				return fmt.Errorf("no cheat code matches %q", strings.TrimSpace(text))
			}
			fmt.Fprintln(cmd.OutOrStdout(), replacement)
			return nil
		},
	}
}
