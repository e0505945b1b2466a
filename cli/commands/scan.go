package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

// scan returns a command that runs a single scan cycle and prints the
// session summary
func scan(props *CommandProps) *cobra.Command {
	var subnet string
	var deep bool

	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Run a single scan cycle and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := props.Engine.PerformScan(cmd.Context(), subnet, deep)

			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")

			if err != nil {
				return err
			}

			fmt.Println(string(out))

			return nil
		},
	}

	cmd.Flags().StringVar(&subnet, "subnet", "", "CIDR to scan, defaults to the detected network")
	cmd.Flags().BoolVar(&deep, "deep", true, "enrich discovered hosts with mdns, ssdp, and port probes")

	return cmd
}
