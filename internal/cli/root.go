// Package cli implements the shrambactl admin commands, which operate
// directly on a local database file.
package cli

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/db"
	"github.com/erazemk/shramba/internal/location"
	"github.com/erazemk/shramba/internal/query"
	"github.com/erazemk/shramba/internal/store"
)

var dbPath string

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "shrambactl",
	Short: "Inspect and move items in a shramba inventory database",
	Long: "Admin CLI for shramba, the home inventory tracker. " +
		"Operates directly on the SQLite database file; stop the server first if it holds the file open for writing.",
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: $SHRAMBA_DB or shramba.sqlite3)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if env := os.Getenv("SHRAMBA_DB"); env != "" {
		return env
	}
	return "shramba.sqlite3"
}

// openDB opens the database and builds the engine and façade over it.
func openDB() (*sql.DB, *location.Engine, *query.Facade, error) {
	database, err := db.Open(getDBPath())
	if err != nil {
		return nil, nil, nil, err
	}
	if err := db.Migrate(database); err != nil {
		database.Close()
		return nil, nil, nil, err
	}

	engine := location.NewEngine(store.NewLocationStore(database))
	return database, engine, query.NewFacade(database, engine), nil
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
