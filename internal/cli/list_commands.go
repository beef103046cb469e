// internal/cli/list_commands.go
package gapview

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// listCmd groups the 'list' subcommands.
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Group commands for listing resources",
}

// commandsCmd implements 'list commands', which prints the available
// commands and subcommands in a hierarchical, indented, two-column format.
var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "List all commands and subcommands in two columns",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		listCommands(cmd.OutOrStdout(), collectCommandData(rootCmd, "", ""))
	},
}

func init() {
	listCmd.AddCommand(commandsCmd)
	rootCmd.AddCommand(listCmd)
}

// commandInfo holds the path and description of a command for display.
type commandInfo struct {
	path        string
	description string
}

// listCommands prints the command tree in a two-column layout.
func listCommands(out io.Writer, commands []commandInfo) {
	width := 0
	for _, c := range commands {
		if len(c.path) > width {
			width = len(c.path)
		}
	}

	fmt.Fprintln(out, "Commands and Subcommands:")
	for _, c := range commands {
		fmt.Fprintf(out, "  %-*s  %s\n", width, c.path, c.description)
	}
}

// collectCommandData walks the command tree and flattens it into indented
// path/description pairs. Help and completion commands are skipped.
func collectCommandData(cmd *cobra.Command, parentPath, indent string) []commandInfo {
	path := cmd.Name()
	if parentPath != "" {
		path = parentPath + " " + cmd.Name()
	}

	data := []commandInfo{{path: indent + path, description: cmd.Short}}
	for _, sub := range cmd.Commands() {
		if sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		data = append(data, collectCommandData(sub, path, indent+"  ")...)
	}
	return data
}
