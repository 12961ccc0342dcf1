package socket

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Client sends commands to a running viewer
type Client struct {
	socketPath string
	timeout    time.Duration
}

// FindRunningInstance returns the socket path and PID of the most recently
// started viewer with a socket in dir
func FindRunningInstance(dir string) (string, int, error) {
	sockets, err := filepath.Glob(filepath.Join(dir, "vlist-*.sock"))
	if err != nil {
		return "", 0, fmt.Errorf("error scanning socket directory: %w", err)
	}

	var (
		newest     string
		newestTime time.Time
	)
	for _, sock := range sockets {
		info, err := os.Stat(sock)
		if err != nil {
			continue
		}
		if newest == "" || info.ModTime().After(newestTime) {
			newest, newestTime = sock, info.ModTime()
		}
	}
	if newest == "" {
		return "", 0, fmt.Errorf("no running vlist instance found in %s", dir)
	}

	pidStr := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(newest), "vlist-"), ".sock")
	pid, err := strconv.Atoi(pidStr)
	if err != nil {
		pid = 0
	}
	return newest, pid, nil
}

// NewClient creates a client for the socket at socketPath
func NewClient(socketPath string) (*Client, error) {
	if _, err := os.Stat(socketPath); err != nil {
		return nil, fmt.Errorf("socket not found: %w", err)
	}
	return &Client{
		socketPath: socketPath,
		timeout:    replyTimeout + 2*time.Second,
	}, nil
}

// Send sends msg and waits for the response
func (c *Client) Send(msg Message) (*Response, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to socket: %w", err)
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(c.timeout)); err != nil {
		return nil, fmt.Errorf("failed to set deadline: %w", err)
	}

	if err := json.NewEncoder(conn).Encode(msg); err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	var response Response
	if err := json.NewDecoder(conn).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to receive response: %w", err)
	}
	return &response, nil
}

// Run executes a `:` command line in the viewer
func (c *Client) Run(command string) (*Response, error) {
	command = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(command), ":"))
	if command == "" {
		return nil, fmt.Errorf("command cannot be empty")
	}
	return c.Send(Message{Command: CommandRun, Args: command})
}

// Status asks the viewer for its visible range
func (c *Client) Status() (*Response, error) {
	return c.Send(Message{Command: CommandStatus})
}
