package socket

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// replyTimeout bounds how long a connection waits for the viewer to answer
const replyTimeout = 10 * time.Second

// readTimeout bounds how long a client may take to send its message
var readTimeout = 5 * time.Second

// DefaultDir returns the directory holding the sockets of running viewers
func DefaultDir() string {
	if xdgRuntime := os.Getenv("XDG_RUNTIME_DIR"); xdgRuntime != "" {
		return filepath.Join(xdgRuntime, "tui-vlist")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "tui-vlist")
	}
	return filepath.Join(home, ".local", "share", "tui-vlist")
}

// socketName is the file name of the socket of process pid
func socketName(pid int) string {
	return fmt.Sprintf("vlist-%d.sock", pid)
}

// Server accepts commands on a Unix socket and hands them to the viewer
type Server struct {
	socketPath string
	listener   net.Listener
	log        *zap.Logger
	msgChan    chan Message
	stopChan   chan struct{}
	stopOnce   sync.Once
	wg         sync.WaitGroup

	mu       sync.Mutex
	conns    map[net.Conn]struct{}
	stopping bool
}

// NewServer listens on the socket for process pid in dir
func NewServer(dir string, pid int, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create socket directory: %w", err)
	}

	socketPath := filepath.Join(dir, socketName(pid))
	if err := os.RemoveAll(socketPath); err != nil {
		return nil, fmt.Errorf("failed to remove existing socket: %w", err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on socket: %w", err)
	}
	log.Info("socket server listening", zap.String("path", socketPath))

	return &Server{
		socketPath: socketPath,
		listener:   listener,
		log:        log,
		msgChan:    make(chan Message),
		stopChan:   make(chan struct{}),
		conns:      make(map[net.Conn]struct{}),
	}, nil
}

// Start begins accepting connections
func (s *Server) Start() {
	s.wg.Add(1)
	go s.acceptLoop()
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			select {
			case <-s.stopChan:
				return
			default:
			}
			s.log.Warn("error accepting connection", zap.Error(err))
			continue
		}

		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.handleConnection(conn)
		}()
	}
}

// handleConnection reads one message, waits for the viewer's reply and
// writes it back
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	decoder := json.NewDecoder(conn)
	encoder := json.NewEncoder(conn)

	if !s.track(conn) {
		encoder.Encode(Response{Message: "Viewer is shutting down"})
		return
	}
	var msg Message
	err := decoder.Decode(&msg)
	s.untrack(conn)
	if err != nil {
		select {
		case <-s.stopChan:
			encoder.Encode(Response{Message: "Viewer is shutting down"})
			return
		default:
		}
		if err != io.EOF {
			s.log.Warn("error decoding message", zap.Error(err))
		}
		encoder.Encode(Response{Message: fmt.Sprintf("Invalid message format: %v", err)})
		return
	}
	if msg.Command == "" {
		encoder.Encode(Response{Message: "Missing command field"})
		return
	}

	msg.reply = make(chan Response, 1)
	s.log.Debug("socket message", zap.String("command", msg.Command), zap.String("args", msg.Args))

	timeout := time.NewTimer(replyTimeout)
	defer timeout.Stop()

	select {
	case s.msgChan <- msg:
	case <-s.stopChan:
		encoder.Encode(Response{Message: "Viewer is shutting down"})
		return
	case <-timeout.C:
		encoder.Encode(Response{Message: "Viewer is busy"})
		return
	}

	select {
	case response := <-msg.reply:
		encoder.Encode(response)
	case <-s.stopChan:
		encoder.Encode(Response{Message: "Viewer is shutting down"})
	case <-timeout.C:
		encoder.Encode(Response{Message: "Command timed out"})
	}
}

// track registers a connection that is reading its message. The read
// deadline is set here so Stop can cut it short.
func (s *Server) track(conn net.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		return false
	}
	if err := conn.SetReadDeadline(time.Now().Add(readTimeout)); err != nil {
		s.log.Warn("failed to set read deadline", zap.Error(err))
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *Server) untrack(conn net.Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.conns, conn)
}

// Messages returns the channel of received messages. Every message must be
// answered with Reply.
func (s *Server) Messages() <-chan Message {
	return s.msgChan
}

// SocketPath returns the path of the Unix socket
func (s *Server) SocketPath() string {
	return s.socketPath
}

// Stop closes the listener, ends pending reads, waits for open connections
// and removes the socket file
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
		s.listener.Close()

		s.mu.Lock()
		s.stopping = true
		for conn := range s.conns {
			conn.SetReadDeadline(time.Now())
		}
		s.mu.Unlock()

		s.wg.Wait()
		os.Remove(s.socketPath)
		s.log.Info("socket server stopped")
	})
}
