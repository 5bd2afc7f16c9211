package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	moveCmd := &cobra.Command{
		Use:   "move <item> <container>",
		Short: "Place an item inside another item (by id or code)",
		Args:  cobra.ExactArgs(2),
		Run:   runMove,
	}

	unplaceCmd := &cobra.Command{
		Use:   "unplace <item>",
		Short: "Mark an item's location as unknown",
		Args:  cobra.ExactArgs(1),
		Run:   runUnplace,
	}

	RootCmd.AddCommand(moveCmd, unplaceCmd)
}

func runMove(cmd *cobra.Command, args []string) {
	database, engine, _, err := openDB()
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

	container, err := resolveItem(cmd.Context(), database, args[1])
	if err != nil {
		exitErr("resolve container", err)
	}
	if container == nil {
		exitErr("resolve container", fmt.Errorf("no item with id or code %q", args[1]))
	}

	if err := engine.SetCurrentLocation(cmd.Context(), item.ID, container.ID); err != nil {
		exitErr("move item", err)
	}

	fmt.Printf("%s is now in %s\n", item.Name, container.Name)
}

func runUnplace(cmd *cobra.Command, args []string) {
	database, engine, _, err := openDB()
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

	if err := engine.SetCurrentLocation(cmd.Context(), item.ID, ""); err != nil {
		exitErr("unplace item", err)
	}

	fmt.Printf("%s location cleared\n", item.Name)
}
