package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lyricsbox/lyricsbox/internal/data/sqlite"
)

func newDBCommand() *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Manage SQLite lyrics databases",
	}
	dbCmd.AddCommand(newDBInitCommand())
	dbCmd.AddCommand(newDBImportCommand())
	return dbCmd
}

func newDBInitCommand() *cobra.Command {
	var empty bool
	cmd := &cobra.Command{
		Use:         "init <path>",
		Short:       "Create a database seeded with the built-in sample",
		Args:        cobra.ExactArgs(1),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			create := sqlite.Init
			if empty {
				create = sqlite.InitSchema
			}
			if err := create(path); err != nil {
				return fmt.Errorf("initializing database: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Database created: %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&empty, "empty", false, "Create the schema without sample songs")
	return cmd
}

func newDBImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "import <path> <file.json>",
		Short:       "Replace a database's contents with a JSON data file",
		Args:        cobra.ExactArgs(2),
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			songs, codes, err := sqlite.ImportFile(cmd.Context(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "Import complete: %d songs, %d cheat codes\n", songs, codes)
			return nil
		},
	}
}
