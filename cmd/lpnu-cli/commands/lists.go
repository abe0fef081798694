package commands

import (
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(institutesCmd)
	rootCmd.AddCommand(groupsCmd)
}

func printList(header string, values []string) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{header})
	for _, v := range values {
		t.AppendRow(table.Row{v})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

var institutesCmd = &cobra.Command{
	Use:   "institutes",
	Short: "Prints the institutes listed on the schedule site.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		institutes, err := client.ParseInstitutes(cmd.Context(), client.InstitutesUrl())
		if err != nil {
			return err
		}
		printList("Institute", institutes)
		return nil
	},
}

var groupsCmd = &cobra.Command{
	Use:   "groups <institute>",
	Short: "Prints the groups of an institute.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		groups, err := client.ParseGroups(cmd.Context(), client.GroupsUrl(args[0]))
		if err != nil {
			return err
		}
		printList("Group", groups)
		return nil
	},
}
