// pkg/server/socket.go

package server

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/invoice-studio/pkg/composer"
	"github.com/invoice-studio/pkg/invoice"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// ComposeOp is one edit sent by a live composer client.
//
//	{"op":"add"}
//	{"op":"remove","index":1}
//	{"op":"clear"}
//	{"op":"item","index":0,"field":"qty","value":"2"}
//	{"op":"field","field":"taxRate","value":"10"}
//	{"op":"state"}
type ComposeOp struct {
	Op    string `json:"op"`
	Index int    `json:"index,omitempty"`
	Field string `json:"field,omitempty"`
	Value string `json:"value,omitempty"`
}

// ComposeMessage is sent after every applied op.
type ComposeMessage struct {
	Type    string           `json:"type"`
	Invoice *invoice.Invoice `json:"invoice,omitempty"`
	Totals  *TotalsResponse  `json:"totals,omitempty"`
	Error   string           `json:"error,omitempty"`
}

func stateMessage(st composer.State) ComposeMessage {
	inv := st.Invoice
	t := newTotalsResponse(inv, st.Totals)
	return ComposeMessage{Type: "state", Invoice: &inv, Totals: &t}
}

// composeSocket gives each connection its own composer. Every edit is answered
// with the recomputed state.
func (s *Server) composeSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	out := make(chan ComposeMessage, 1)
	c := composer.New(composer.WithListener(func(st composer.State) {
		out <- stateMessage(st)
	}))
	if err := conn.WriteJSON(stateMessage(c.State())); err != nil {
		return
	}

	for {
		var op ComposeOp
		if err := conn.ReadJSON(&op); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.WithError(err).Warn("compose socket closed")
			}
			return
		}
		msg, ok := s.apply(c, op, out)
		if !ok {
			msg = ComposeMessage{Type: "error", Error: "unknown op " + op.Op}
		}
		if err := conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// apply runs op against c. Edits that the composer ignores still get the
// current state back.
func (s *Server) apply(c *composer.Composer, op ComposeOp, out chan ComposeMessage) (ComposeMessage, bool) {
	switch op.Op {
	case "add":
		c.AddItem()
	case "remove":
		c.RemoveItem(op.Index)
	case "clear":
		c.ClearItems()
	case "item":
		c.SetItem(op.Index, op.Field, op.Value)
	case "field":
		c.SetField(op.Field, op.Value)
	case "state":
	default:
		return ComposeMessage{}, false
	}
	select {
	case msg := <-out:
		return msg, true
	default:
		return stateMessage(c.State()), true
	}
}
