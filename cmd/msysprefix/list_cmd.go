package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dorcha-inc/msysprefix/internal/msys"
	"github.com/dorcha-inc/msysprefix/internal/tui"
)

// newListCmd creates the list command
func newListCmd() *cobra.Command {
	var jsonOutput bool
	var yamlOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List known MSYS2 environments and their prefixes",
		Long: `List every MSYSTEM value msysprefix recognizes together with the prefix it
prints. Output is a styled table on a terminal and plain aligned text otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			mappings := msys.Mappings()

			if jsonOutput {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				return encoder.Encode(mappings)
			}

			if yamlOutput {
				encoder := yaml.NewEncoder(out)
				encoder.SetIndent(2)
				if err := encoder.Encode(mappings); err != nil {
					return fmt.Errorf("failed to encode yaml: %w", err)
				}
				return encoder.Close()
			}

			rows := make([][]string, 0, len(mappings))
			for _, m := range mappings {
				rows = append(rows, []string{string(m.Environment), string(m.Prefix)})
			}

			return tui.RenderTable(out, []string{"MSYSTEM", "PREFIX"}, rows, tui.ShouldStyle(out))
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML format")
	cmd.MarkFlagsMutuallyExclusive("json", "yaml")

	return cmd
}
