// Package socket lets other processes drive a running viewer over a Unix socket
package socket

// Message is a request sent to the running viewer
type Message struct {
	Command string `json:"command"`
	Args    string `json:"args,omitempty"`

	// reply carries the answer back to the waiting connection
	reply chan Response
}

// Reply answers the message. Only the first reply is delivered.
func (m Message) Reply(r Response) {
	if m.reply == nil {
		return
	}
	select {
	case m.reply <- r:
	default:
	}
}

// Response is the viewer's answer
type Response struct {
	Success bool       `json:"success"`
	Message string     `json:"message"`
	Range   *RangeInfo `json:"range,omitempty"`
}

// RangeInfo describes the visible range of the viewer
type RangeInfo struct {
	Start int `json:"start"`
	End   int `json:"end"`
	Count int `json:"count"`
}

// Command types
const (
	// CommandRun executes Args as a `:` command line
	CommandRun = "run"
	// CommandStatus reports the visible range
	CommandStatus = "status"
)
