package transport

import (
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// WebSocket adapts a websocket connection to the Transport interface. Frames
// map one-to-one onto binary messages.
type WebSocket struct {
	conn *websocket.Conn
}

// NewWebSocket wraps an established websocket connection.
func NewWebSocket(conn *websocket.Conn) *WebSocket {
	return &WebSocket{conn: conn}
}

// Dial connects to a websocket endpoint and returns it as a transport.
func Dial(url string) (*WebSocket, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

// Upgrade upgrades an incoming HTTP request to a websocket transport.
func Upgrade(w http.ResponseWriter, r *http.Request) (*WebSocket, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return NewWebSocket(conn), nil
}

func (ws *WebSocket) WriteFrame(dat []byte) error {
	return ws.conn.WriteMessage(websocket.BinaryMessage, dat)
}

func (ws *WebSocket) ReadFrame() ([]byte, error) {
	for {
		msgType, dat, err := ws.conn.ReadMessage()
		if err != nil {
			return nil, err
		}
		if msgType == websocket.BinaryMessage {
			return dat, nil
		}
	}
}

func (ws *WebSocket) Close() error {
	return ws.conn.Close()
}
