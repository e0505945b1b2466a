package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

// devices returns a command that lists every device the registry has
// ever seen
func devices(props *CommandProps) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List all devices in the registry",
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := props.Devices.ListAllDevices()

			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(all, "", "  ")

				if err != nil {
					return err
				}

				fmt.Println(string(out))

				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

			fmt.Fprintln(w, "MAC\tIP\tNAME\tVENDOR\tCLASS\tONLINE\tLAST SEEN")

			for _, dev := range all {
				online := "no"

				if dev.IsOnline {
					online = "yes"
				}

				fmt.Fprintf(
					w,
					"%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					dev.MAC,
					dev.IP,
					dev.DisplayName(),
					dev.Vendor,
					dev.DeviceClass,
					online,
					dev.LastSeen.Format(time.RFC822),
				)
			}

			return w.Flush()
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print devices as json")

	return cmd
}
