package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	chainCmd := &cobra.Command{
		Use:   "chain <item>",
		Short: "Print an item's container chain, innermost first",
		Args:  cobra.ExactArgs(1),
		Run:   runChain,
	}

	historyCmd := &cobra.Command{
		Use:   "history <item>",
		Short: "Print an item's move history, newest first",
		Args:  cobra.ExactArgs(1),
		Run:   runHistory,
	}

	RootCmd.AddCommand(chainCmd, historyCmd)
}

func runChain(cmd *cobra.Command, args []string) {
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

	chain, err := engine.Chain(cmd.Context(), item.ID)
	if err != nil {
		exitErr("walk chain", err)
	}

	if len(chain) == 0 {
		fmt.Printf("%s has no known location\n", item.Name)
		return
	}

	names := make([]string, len(chain))
	for i, c := range chain {
		names[i] = c.Name
	}
	fmt.Printf("%s > %s\n", item.Name, strings.Join(names, " > "))
}

func runHistory(cmd *cobra.Command, args []string) {
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

	history, err := engine.History(cmd.Context(), item.ID)
	if err != nil {
		exitErr("load history", err)
	}

	if len(history) == 0 {
		fmt.Printf("%s has never been moved out of a location\n", item.Name)
		return
	}

	for _, e := range history {
		name := e.PreviousLocationName
		if name == "" {
			name = e.PreviousLocationID
		}
		fmt.Printf("%s  %s\n", e.RecordedAt.Format("2006-01-02 15:04"), name)
	}
}
