package socket

import (
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// shortTempDir keeps socket paths below the Unix socket path limit
func shortTempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "vl")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func startServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(shortTempDir(t), os.Getpid(), nil)
	require.NoError(t, err)
	server.Start()
	t.Cleanup(server.Stop)
	return server
}

// answer replies to the next message with a fixed range
func answer(t *testing.T, server *Server) <-chan Message {
	t.Helper()
	got := make(chan Message, 1)
	go func() {
		select {
		case msg := <-server.Messages():
			msg.Reply(Response{Success: true, Message: "ok", Range: &RangeInfo{Start: 5, End: 20, Count: 100}})
			got <- msg
		case <-time.After(2 * time.Second):
			close(got)
		}
	}()
	return got
}

func TestServerClientRun(t *testing.T) {
	server := startServer(t)
	got := answer(t, server)

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Run(":goto 10 ")
	require.NoError(t, err)
	assert.True(t, response.Success, response.Message)
	assert.Equal(t, &RangeInfo{Start: 5, End: 20, Count: 100}, response.Range)

	msg, ok := <-got
	require.True(t, ok, "server received no message")
	assert.Equal(t, CommandRun, msg.Command)
	assert.Equal(t, "goto 10", msg.Args)
}

func TestClientStatus(t *testing.T) {
	server := startServer(t)
	got := answer(t, server)

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Status()
	require.NoError(t, err)
	assert.Equal(t, 20, response.Range.End)

	msg := <-got
	assert.Equal(t, CommandStatus, msg.Command)
}

func TestClientRunEmptyCommand(t *testing.T) {
	server := startServer(t)
	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	_, err = client.Run(" : ")
	assert.Error(t, err)
}

func TestServerMissingCommand(t *testing.T) {
	server := startServer(t)
	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	response, err := client.Send(Message{})
	require.NoError(t, err)
	assert.False(t, response.Success)
	assert.Equal(t, "Missing command field", response.Message)
}

func TestServerStopUnblocksWaitingClient(t *testing.T) {
	server, err := NewServer(shortTempDir(t), os.Getpid(), nil)
	require.NoError(t, err)
	server.Start()

	client, err := NewClient(server.SocketPath())
	require.NoError(t, err)

	done := make(chan *Response, 1)
	go func() {
		response, _ := client.Status()
		done <- response
	}()

	// Nobody reads Messages, so the connection waits until Stop
	time.Sleep(50 * time.Millisecond)
	server.Stop()

	select {
	case response := <-done:
		require.NotNil(t, response)
		assert.False(t, response.Success)
		assert.Equal(t, "Viewer is shutting down", response.Message)
	case <-time.After(2 * time.Second):
		t.Fatal("client still waiting after Stop")
	}

	_, err = os.Stat(server.SocketPath())
	assert.True(t, os.IsNotExist(err), "socket file removed")
}

func TestServerStopWithSilentClient(t *testing.T) {
	server, err := NewServer(shortTempDir(t), os.Getpid(), nil)
	require.NoError(t, err)
	server.Start()

	conn, err := net.Dial("unix", server.SocketPath())
	require.NoError(t, err)
	defer conn.Close()
	// Let the server accept the connection and start reading
	time.Sleep(50 * time.Millisecond)

	stopped := make(chan struct{})
	go func() {
		server.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop blocked on a client that sent nothing")
	}

	var response Response
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(time.Second)))
	require.NoError(t, json.NewDecoder(conn).Decode(&response))
	assert.Equal(t, "Viewer is shutting down", response.Message)
}

func TestServerDropsIdleClient(t *testing.T) {
	saved := readTimeout
	readTimeout = 50 * time.Millisecond
	t.Cleanup(func() { readTimeout = saved })

	server := startServer(t)
	conn, err := net.Dial("unix", server.SocketPath())
	require.NoError(t, err)
	defer conn.Close()

	var response Response
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, json.NewDecoder(conn).Decode(&response))
	assert.False(t, response.Success)
	assert.Contains(t, response.Message, "Invalid message format")
}

func TestFindRunningInstance(t *testing.T) {
	server := startServer(t)
	dir := filepath.Dir(server.SocketPath())

	socketPath, pid, err := FindRunningInstance(dir)
	require.NoError(t, err)
	assert.Equal(t, server.SocketPath(), socketPath)
	assert.Equal(t, os.Getpid(), pid)

	_, _, err = FindRunningInstance(shortTempDir(t))
	assert.Error(t, err)
}

func TestReplyOnlyOnce(t *testing.T) {
	msg := Message{reply: make(chan Response, 1)}
	msg.Reply(Response{Message: "first"})
	msg.Reply(Response{Message: "second"})
	assert.Equal(t, "first", (<-msg.reply).Message)

	// A message without a reply channel is ignored
	Message{}.Reply(Response{})
}
