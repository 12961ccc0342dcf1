package app

import (
	"github.com/pstuifzand/tui-vlist/internal/socket"
	"go.uber.org/zap"
)

// handleSocketMessage runs a message received on the remote control socket.
// The batched recomputation is flushed first so the reply carries the range
// the command produced.
func (a *App) handleSocketMessage(msg socket.Message) {
	a.log.Info("socket message", zap.String("command", msg.Command), zap.String("args", msg.Args))

	switch msg.Command {
	case socket.CommandRun:
		before := a.messages.Seq()
		a.handleCommand(msg.Args)
		a.frame()

		response := socket.Response{Success: true, Message: "ok", Range: a.rangeInfo()}
		if a.messages.Seq() > before {
			last, _ := a.messages.Last()
			response.Success = !last.Error
			response.Message = last.Text
		}
		msg.Reply(response)
	case socket.CommandStatus:
		a.frame()
		msg.Reply(socket.Response{Success: true, Message: a.StatusRange(), Range: a.rangeInfo()})
	default:
		a.log.Warn("unknown socket command", zap.String("command", msg.Command))
		msg.Reply(socket.Response{Message: "Unknown command: " + msg.Command})
	}
}

func (a *App) rangeInfo() *socket.RangeInfo {
	r := a.list.Engine().Range()
	return &socket.RangeInfo{Start: r.StartIndex, End: r.EndIndex, Count: a.view.Len()}
}
