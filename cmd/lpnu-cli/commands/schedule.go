package commands

import (
	"fmt"
	"lpnu-schedule/internal/scrapers/lpnu"
	"os"
	"slices"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
}

// suggestGroups returns up to `n` known groups closest to `group`.
func suggestGroups(group string, known []string, n int) []string {
	type candidate struct {
		name       string
		similarity float64
	}
	normalized := strings.ToUpper(strings.TrimSpace(group))
	candidates := make([]candidate, len(known))
	for i, k := range known {
		candidates[i] = candidate{
			name:       k,
			similarity: matchr.JaroWinkler(normalized, strings.ToUpper(k), false),
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].similarity > candidates[j].similarity
	})

	var out []string
	for i := 0; i < len(candidates) && i < n; i++ {
		out = append(out, candidates[i].name)
	}
	return out
}

func renderSchedule(entries []lpnu.ParsedScheduleEntry) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Day", "#", "Group", "Week", "Type", "Description", "Teacher", "Location"})
	for _, e := range entries {
		t.AppendRow(table.Row{
			e.Day,
			e.ClassNumber,
			e.GroupPart,
			e.Occurrence,
			e.ClassType,
			e.Description,
			e.Teacher,
			e.Location,
		})
	}
	t.SetStyle(table.StyleRounded)
	t.Render()
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule <institute> <group>",
	Short: "Prints the weekly schedule of a group.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		institute, group := args[0], args[1]

		groups, err := client.ParseGroups(cmd.Context(), client.GroupsUrl(institute))
		if err != nil {
			return err
		}
		if !slices.Contains(groups, group) {
			return fmt.Errorf(
				"group %q is not listed under %s, did you mean one of: %s",
				group, institute, strings.Join(suggestGroups(group, groups, 3), ", "),
			)
		}

		entries, err := client.ParseGroupSchedule(cmd.Context(), client.ScheduleUrl(institute, group))
		if err != nil {
			return err
		}
		renderSchedule(entries)
		return nil
	},
}
