package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/Chatch9856/caringhandsnky-sub000/internal/common"
	"github.com/Chatch9856/caringhandsnky-sub000/internal/messaging"
)

const opTimeout = 10 * time.Second

// disconnectNotifier is implemented by feeds that can report transport loss
// (the Redis carrier). The in-process hub never disconnects.
type disconnectNotifier interface {
	OnDisconnect(fn func(error)) func()
}

// clientFrame is a command from the browser.
type clientFrame struct {
	Type    string                 `json:"type"` // open, send, read, start, visible, resync, close
	Partner *common.ParticipantRef `json:"partner,omitempty"`
	Content string                 `json:"content,omitempty"`
	Visible bool                   `json:"visible,omitempty"`
}

// serverFrame is a state push to the browser.
type serverFrame struct {
	Type          string                   `json:"type"` // state, error
	Conversations []messaging.Conversation `json:"conversations,omitempty"`
	Thread        *messaging.Thread        `json:"thread,omitempty"`
	Degraded      bool                     `json:"degraded,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

// wsClient hosts one Session for the lifetime of a WebSocket connection.
// The connection is the messaging view: mounting it builds the session and
// subscribes to the feed; closing it tears both down.
type wsClient struct {
	h      *Handler
	conn   *websocket.Conn
	sess   *messaging.Session
	viewer common.ParticipantRef

	writeMu sync.Mutex
}

// Live upgrades to WebSocket, cold-starts a session for the viewer and
// reconciles push events into it until the connection closes.
func (h *Handler) Live(w http.ResponseWriter, r *http.Request) {
	viewer, ok := h.viewer(w, r)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	c := &wsClient{
		h:      h,
		conn:   conn,
		sess:   messaging.NewSession(viewer),
		viewer: viewer,
	}

	unsubscribe := h.svc.Attach(c.sess)
	defer unsubscribe()
	c.sess.SetOnChange(c.pushState)

	if notifier, ok := h.feed.(disconnectNotifier); ok {
		remove := notifier.OnDisconnect(func(error) {
			c.sess.SetDegraded(true)
			c.pushState()
		})
		defer remove()
	}

	if err := c.resync(r.Context()); err != nil {
		h.log.Warn().Err(err).Str("viewer", viewer.String()).Msg("cold start failed")
		c.pushError(err)
	}
	c.pushState()

	c.readLoop()
}

func (c *wsClient) readLoop() {
	for {
		var frame clientFrame
		if err := c.conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.h.log.Warn().Err(err).Str("viewer", c.viewer.String()).Msg("websocket read failed")
			}
			return
		}
		c.handle(frame)
	}
}

func (c *wsClient) handle(frame clientFrame) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	var err error
	switch frame.Type {
	case "open":
		if frame.Partner != nil {
			_, err = c.h.svc.OpenThread(ctx, c.viewer, *frame.Partner, c.sess)
		}
	case "send":
		if frame.Partner != nil {
			_, err = c.h.svc.Send(ctx, c.viewer, *frame.Partner, frame.Content, c.sess)
		}
	case "read":
		if frame.Partner != nil {
			err = c.h.svc.MarkRead(ctx, c.viewer, *frame.Partner, c.sess)
		}
	case "start":
		if frame.Partner != nil {
			err = c.startChat(ctx, *frame.Partner)
		}
	case "visible":
		c.sess.SetThreadVisible(frame.Visible)
	case "close":
		c.sess.CloseThread()
	case "resync":
		err = c.resync(ctx)
	default:
		c.h.log.Debug().Str("type", frame.Type).Msg("ignoring unknown frame")
		return
	}

	if err != nil {
		c.pushError(err)
	}
	c.pushState()
}

// startChat materializes a provisional conversation from the roster entry
// for the chosen counterpart.
func (c *wsClient) startChat(ctx context.Context, partner common.ParticipantRef) error {
	roster, err := c.h.svc.Counterparts(ctx, c.viewer)
	if err != nil {
		return err
	}
	for _, entry := range roster {
		if entry.Ref().Equal(partner) {
			c.sess.StartChat(entry)
			return nil
		}
	}
	c.sess.StartChat(common.FallbackEntry(partner))
	return nil
}

func (c *wsClient) resync(ctx context.Context) error {
	return c.h.svc.Resync(ctx, c.sess)
}

func (c *wsClient) pushState() {
	c.write(serverFrame{
		Type:          "state",
		Conversations: c.sess.Conversations(),
		Thread:        c.sess.Thread(),
		Degraded:      c.sess.Degraded(),
	})
}

func (c *wsClient) pushError(err error) {
	c.write(serverFrame{Type: "error", Error: err.Error()})
}

func (c *wsClient) write(frame serverFrame) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.conn.WriteJSON(frame); err != nil {
		c.h.log.Debug().Err(err).Msg("websocket write failed")
	}
}
