package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"

	"drinkingman/internal/catalog"
	"drinkingman/internal/logging"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 30 * time.Second
)

// Stream message types
const (
	MessageCocktail   = "cocktail"
	MessageEnrichment = "enrichment"
	MessageNotFound   = "not_found"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Origins are enforced by the CORS layer
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamMessage is one frame of the cocktail stream
type StreamMessage struct {
	Type    string           `json:"type"`
	ID      string           `json:"id"`
	Result  *catalog.Result  `json:"result,omitempty"`
	Details *catalog.Details `json:"details,omitempty"`
	// Replaced reports whether Details supersedes the static object
	Replaced bool `json:"replaced,omitempty"`
}

// streamConn owns one websocket session
type streamConn struct {
	conn *websocket.Conn
	send chan []byte
}

// handleCocktailStream sends the lookup result, then the enrichment result
// when one is pending, then closes
func (s *Server) handleCocktailStream(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Ctx(c.Request.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.monitor.SessionOpened()
	defer s.monitor.SessionClosed()

	ctx, cancel := context.WithCancel(context.WithoutCancel(c.Request.Context()))
	defer cancel()

	sc := &streamConn{conn: conn, send: make(chan []byte, 4)}
	done := make(chan struct{})
	go func() {
		sc.writePump()
		close(done)
	}()
	go sc.readPump(cancel)

	s.stream(ctx, sc, c.Param("id"), c)
	close(sc.send)
	<-done
}

func (s *Server) stream(ctx context.Context, sc *streamConn, id string, c *gin.Context) {
	log := logging.Ctx(ctx)
	locale, units := localeAndUnits(c)

	res, err := s.catalog.Lookup(ctx, id, locale, units)
	if err != nil {
		sc.push(ctx, StreamMessage{Type: MessageNotFound, ID: id})
		return
	}
	if !sc.push(ctx, StreamMessage{Type: MessageCocktail, ID: res.View.ID, Result: res}) {
		return
	}
	if !res.EnrichmentPending {
		return
	}

	select {
	case details := <-s.catalog.EnrichAsync(ctx, res, locale):
		sc.push(ctx, StreamMessage{
			Type:     MessageEnrichment,
			ID:       res.View.ID,
			Details:  details,
			Replaced: details != nil,
		})
	case <-ctx.Done():
		log.Debug().Str("cocktail_id", id).Msg("stream closed before enrichment")
	}
}

// push queues a message, giving up when the client has gone
func (sc *streamConn) push(ctx context.Context, msg StreamMessage) bool {
	data, err := json.Marshal(msg)
	if err != nil {
		logging.Ctx(ctx).Error().Err(err).Msg("marshal stream message")
		return false
	}
	select {
	case sc.send <- data:
		return true
	case <-ctx.Done():
		return false
	}
}

// readPump drains client frames so control messages are processed and
// cancels the session when the peer disconnects
func (sc *streamConn) readPump(cancel context.CancelFunc) {
	defer cancel()

	sc.conn.SetReadLimit(4 * 1024)
	sc.conn.SetReadDeadline(time.Now().Add(pongWait))
	sc.conn.SetPongHandler(func(string) error {
		sc.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		if _, _, err := sc.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Debug().Err(err).Msg("websocket read")
			}
			return
		}
	}
}

// writePump writes queued messages and pings until send is closed
func (sc *streamConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		sc.conn.Close()
	}()

	for {
		select {
		case message, ok := <-sc.send:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				sc.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := sc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			sc.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := sc.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
