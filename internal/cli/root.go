// Package cli implements the contextmem CLI commands.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/contextmem/contextmem/internal/config"
	"github.com/contextmem/contextmem/internal/project"
	"github.com/contextmem/contextmem/internal/store"
)

var (
	dbPath      string
	projectFlag string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "contextmem",
	Short: "Project-scoped memory for AI assistants",
	Long:  "A project-scoped memory store with an MCP stdio server. SQLite-backed, single binary.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $CONTEXTMEM_DB_PATH or ~/.contextmem/memory.db)")
	RootCmd.PersistentFlags().StringVarP(&projectFlag, "project", "p", "", "Project id (default: $CONTEXTMEM_PROJECT or detected from the workspace)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("CONTEXTMEM_DB_PATH"); env != "" {
		return env
	}
	return config.DefaultDBPath()
}

func getProjectID() string {
	if projectFlag != "" {
		return project.Sanitize(projectFlag)
	}
	return project.Detect("")
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath())
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
