package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/store"
)

func init() {
	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "List item types",
		Run:   runTypes,
	}

	addTypeCmd := &cobra.Command{
		Use:   "add-type <name> [description]",
		Short: "Create an item type",
		Args:  cobra.RangeArgs(1, 2),
		Run:   runAddType,
	}

	RootCmd.AddCommand(typesCmd, addTypeCmd)
}

func runTypes(cmd *cobra.Command, args []string) {
	database, _, _, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	types, err := store.ListItemTypes(cmd.Context(), database)
	if err != nil {
		exitErr("list item types", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION")
	for _, t := range types {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Description)
	}
	w.Flush()
}

func runAddType(cmd *cobra.Command, args []string) {
	database, _, _, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	description := ""
	if len(args) > 1 {
		description = args[1]
	}

	t, err := store.CreateItemType(cmd.Context(), database, args[0], description)
	if err != nil {
		exitErr("create item type", err)
	}

	fmt.Printf("created item type %s (%s)\n", t.Name, t.ID)
}
