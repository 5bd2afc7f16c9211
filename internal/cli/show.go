package cli

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/query"
	"github.com/erazemk/shramba/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "show <id-or-code>",
		Short: "Show an item with its location chain, contents count and history",
		Args:  cobra.ExactArgs(1),
		Run:   runShow,
	}

	cmd.Flags().Bool("json", false, "Output raw JSON")

	RootCmd.AddCommand(cmd)
}

// resolveItem looks an item up by id first, then by unique code.
func resolveItem(ctx context.Context, database *sql.DB, ref string) (*model.Item, error) {
	item, err := store.GetItem(ctx, database, ref)
	if err != nil {
		return nil, err
	}
	if item != nil {
		return item, nil
	}
	return store.GetItemByCode(ctx, database, ref)
}

func runShow(cmd *cobra.Command, args []string) {
	asJSON, _ := cmd.Flags().GetBool("json")

	database, _, facade, err := openDB()
	if err != nil {
		exitErr("open database", err)
	}
	defer database.Close()

	item, err := resolveItem(cmd.Context(), database, args[0])
	if err != nil {
		exitErr("resolve item", err)
	}
	if item == nil {
		exitErr("resolve item", fmt.Errorf("no item with id or code %q", args[0]))
	}

	overview, err := facade.ItemOverview(cmd.Context(), item.ID)
	if err != nil {
		exitErr("build overview", err)
	}

	if asJSON {
		b, _ := json.MarshalIndent(overview, "", "  ")
		fmt.Println(string(b))
		return
	}

	printOverview(overview)
}

func printOverview(o *query.Overview) {
	fmt.Printf("%s (%s)\n", o.Item.Name, o.Item.UniqueCode)
	if o.Item.Description != "" {
		fmt.Printf("  %s\n", o.Item.Description)
	}
	if o.ItemType != nil {
		fmt.Printf("  type: %s\n", o.ItemType.Name)
	}
	if len(o.Item.Tags) > 0 {
		fmt.Printf("  tags: %s\n", strings.Join(o.Item.Tags, ", "))
	}

	if len(o.Chain) == 0 {
		fmt.Println("  location: unknown")
	} else {
		names := make([]string, len(o.Chain))
		for i, c := range o.Chain {
			names[i] = c.Name
		}
		fmt.Printf("  location: %s\n", strings.Join(names, " > "))
	}

	fmt.Printf("  contains: %d item(s)\n", o.ContentsCount)

	if len(o.History) > 0 {
		fmt.Println("  previously in:")
		for _, e := range o.History {
			name := e.PreviousLocationName
			if name == "" {
				name = e.PreviousLocationID
			}
			fmt.Printf("    %s  %s\n", e.RecordedAt.Format("2006-01-02 15:04"), name)
		}
	}
}
