package cli

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "items",
		Short: "List items",
		Run:   runItems,
	}

	cmd.Flags().StringP("search", "s", "", "Filter by name, description, tag or type")

	RootCmd.AddCommand(cmd)
}

func runItems(cmd *cobra.Command, args []string) {
	search, _ := cmd.Flags().GetString("search")

	database, _, _, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	items, err := store.ListItems(cmd.Context(), database, search)
	if err != nil {
		exitErr("list items", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CODE\tNAME\tTYPE\tTAGS\tPLACED")
	for _, item := range items {
		placed := "-"
		if item.CurrentLocationID != nil {
			placed = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			item.UniqueCode, item.Name, item.ItemTypeName, strings.Join(item.Tags, ","), placed)
	}
	w.Flush()
}
