package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"goremu/storage"

	"github.com/spf13/cobra"
)

var (
	deleteDBPath string
	deleteID     int64
	deleteAll    bool
)

var (
	deletePromptInput  io.Reader = os.Stdin
	deletePromptOutput io.Writer = os.Stdout
)

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete stored payroll records or the complete database file",
	Long: `Destructive database cleanup command.

With --id, one record is removed. With --all, every record is removed but the
database file stays. Without either flag, the complete SQLite file is deleted.
Before any deletion, an interactive security prompt requires typing exactly "Y".`,
	Example: `
  # Delete one record by local id
  goremu delete --id 12

  # Delete all records but keep the database file
  goremu delete --all

  # Delete the complete SQLite file
  goremu delete --db ./goremu.db
`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if deleteID > 0 && deleteAll {
			return fmt.Errorf("--id and --all are mutually exclusive")
		}

		target := describeDeleteTarget(deleteDBPath, deleteID, deleteAll)
		confirmed, err := confirmDeletePrompt(deletePromptInput, deletePromptOutput, target)
		if err != nil {
			return err
		}
		if !confirmed {
			return fmt.Errorf("delete aborted: confirmation was not 'Y'")
		}

		if deleteID > 0 {
			store, err := storage.OpenSQLite(deleteDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			deleted, err := store.DeleteRecord(deleteID)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("no record with local id %d", deleteID)
			}
			fmt.Printf("Deleted record %d from %s\n", deleteID, deleteDBPath)
			return nil
		}

		if deleteAll {
			store, err := storage.OpenSQLite(deleteDBPath)
			if err != nil {
				return err
			}
			defer store.Close()

			count, err := store.DeleteAllRecords()
			if err != nil {
				return err
			}
			fmt.Printf("Deleted %d record(s) from %s\n", count, deleteDBPath)
			return nil
		}

		if err := removeDatabaseFile(deleteDBPath); err != nil {
			return err
		}
		fmt.Printf("Deleted database file: %s\n", deleteDBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().StringVar(&deleteDBPath, "db", "./goremu.db", "Path to local SQLite database")
	deleteCmd.Flags().Int64Var(&deleteID, "id", 0, "Delete a single record by local id")
	deleteCmd.Flags().BoolVar(&deleteAll, "all", false, "Delete all records but keep the database file")
}

func describeDeleteTarget(path string, id int64, all bool) string {
	switch {
	case id > 0:
		return fmt.Sprintf("record %d in %s", id, path)
	case all:
		return fmt.Sprintf("all records in %s", path)
	default:
		return fmt.Sprintf("database file %s", path)
	}
}

func confirmDeletePrompt(input io.Reader, output io.Writer, target string) (bool, error) {
	if input == nil {
		return false, fmt.Errorf("delete confirmation input is not available")
	}

	if output == nil {
		output = io.Discard
	}

	if _, err := fmt.Fprintf(output, "Delete %s? Type Y to confirm: ", target); err != nil {
		return false, fmt.Errorf("write delete confirmation prompt: %w", err)
	}

	line, err := bufio.NewReader(input).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			line = strings.TrimSpace(line)
			return line == "Y", nil
		}
		return false, fmt.Errorf("read delete confirmation: %w", err)
	}
	return strings.TrimSpace(line) == "Y", nil
}

func removeDatabaseFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("database file not found: %s", path)
		}
		return fmt.Errorf("stat database file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("database path is a directory: %s", path)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete database file: %w", err)
	}
	return nil
}
