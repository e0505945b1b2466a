package commands

import (
	"encoding/json"
	"fmt"
	"os"

	app_info "github.com/lanwarden/lanwarden/internal/app-info"
	"github.com/lanwarden/lanwarden/internal/device"
	"github.com/lanwarden/lanwarden/internal/engine"
	"github.com/lanwarden/lanwarden/internal/event"
	"github.com/lanwarden/lanwarden/internal/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CommandProps injected props that can be made available to all commands
type CommandProps struct {
	Engine  engine.Service
	Devices device.Repo
	Events  event.Manager
}

// Root builds and returns our root command
func Root(props *CommandProps) *cobra.Command {
	var verbose bool
	var silent bool

	cmd := &cobra.Command{
		Use:   app_info.NAME,
		Short: "LAN device discovery and monitoring daemon",
		// This runs before all commands and all sub-commands
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// set logging verbosity for all loggers
			zerolog.SetGlobalLevel(zerolog.InfoLevel)

			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}

			if silent {
				zerolog.SetGlobalLevel(zerolog.Disabled)
			}

			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return monitor(cmd, props)
		},
	}

	// Persistent flags available to all commands
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug logs")
	cmd.PersistentFlags().BoolVar(&silent, "silent", false, "disables all logging")

	cmd.AddCommand(scan(props))
	cmd.AddCommand(devices(props))
	cmd.AddCommand(clean())
	cmd.AddCommand(version())

	return cmd
}

// monitor runs the scan loop until the command context is canceled,
// streaming bus events to stdout as json lines while logs go to the
// log file
func monitor(cmd *cobra.Command, props *CommandProps) error {
	logFile, ok := viper.Get("log-file").(string)

	if ok && logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)

		if err != nil {
			return err
		}

		defer f.Close()

		logger.GlobalSetLogFile(f)

		fmt.Printf("%s monitoring started, logging to %s\n", app_info.NAME, logFile)
	}

	feed := make(chan event.Event, 64)

	id := props.Events.RegisterListener(event.AnyEventType, feed)

	defer props.Events.RemoveListener(id)

	go func() {
		for evt := range feed {
			out, err := json.Marshal(evt)

			if err != nil {
				continue
			}

			fmt.Println(string(out))
		}
	}()

	go props.Engine.Start()

	<-cmd.Context().Done()

	props.Engine.Stop()

	return nil
}
