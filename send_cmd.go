package main

import (
	"fmt"
	"strings"

	"github.com/pstuifzand/tui-vlist/internal/socket"
	"github.com/spf13/cobra"
)

var sendSocketDir string

// sendCmd drives a running viewer through its socket
var sendCmd = &cobra.Command{
	Use:   "send [command...]",
	Short: "Run a command in a running vlist",
	Long: `Send a ":" command line to the most recently started vlist, for example

  vlist send goto 500
  vlist send filter error

Without a command the visible range of the viewer is printed.`,
	RunE: runSend,
}

func init() {
	sendCmd.Flags().StringVar(&sendSocketDir, "socket-dir", "", "Directory of viewer sockets")
}

func runSend(cmd *cobra.Command, args []string) error {
	dir := sendSocketDir
	if dir == "" {
		dir = socket.DefaultDir()
	}

	socketPath, _, err := socket.FindRunningInstance(dir)
	if err != nil {
		return err
	}
	client, err := socket.NewClient(socketPath)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	var response *socket.Response
	if len(args) == 0 {
		response, err = client.Status()
	} else {
		response, err = client.Run(strings.Join(args, " "))
	}
	if err != nil {
		return err
	}
	if !response.Success {
		return fmt.Errorf("%s", response.Message)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, response.Message)
	if r := response.Range; r != nil {
		fmt.Fprintf(out, "range: %d-%d of %d\n", r.Start, r.End, r.Count)
	}
	return nil
}
