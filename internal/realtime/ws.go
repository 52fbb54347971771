package realtime

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

const writeWait = 10 * time.Second

// Message is the frame pushed to websocket clients.
type Message struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data"`
	Error string      `json:"error,omitempty"`
}

// Authorizer resolves the subscription key for a request, usually the caller's uid.
type Authorizer func(r *http.Request) (string, error)

// SubscribeFunc opens a subscription for key.
type SubscribeFunc[T any] func(key string, onData func([]T), onErr func(error)) Unsubscribe

// ErrForbidden makes the handler answer 403 instead of 401.
var ErrForbidden = errors.New("forbidden")

// Handler upgrades the request and streams snapshots until the client leaves.
func Handler[T any](log logrus.FieldLogger, authorize Authorizer, subscribe SubscribeFunc[T]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := authorize(r)
		if err != nil {
			status := http.StatusUnauthorized
			if errors.Is(err, ErrForbidden) {
				status = http.StatusForbidden
			}
			http.Error(w, http.StatusText(status), status)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.WithError(err).Debug("websocket upgrade failed")
			return
		}
		defer conn.Close()

		box := newMailbox()
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				msg, ok := box.take()
				if !ok {
					return
				}
				conn.SetWriteDeadline(time.Now().Add(writeWait))
				if err := conn.WriteJSON(msg); err != nil {
					log.WithError(err).Debug("websocket write failed")
					return
				}
			}
		}()

		unsubscribe := subscribe(key,
			func(items []T) { box.put(Message{Type: "snapshot", Data: items}) },
			func(err error) { box.put(Message{Type: "error", Data: []T{}, Error: err.Error()}) },
		)

		readUntilClosed(conn, done)
		unsubscribe()
		box.close()
		<-done
	}
}

func readUntilClosed(conn *websocket.Conn, done <-chan struct{}) {
	errc := make(chan error, 1)
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				errc <- err
				return
			}
		}
	}()
	select {
	case <-errc:
	case <-done:
	}
}

// mailbox queues frames for the writer; a snapshot drops any frames the
// writer has not sent yet.
type mailbox struct {
	mu      sync.Mutex
	pending []Message
	closed  bool
	signal  chan struct{}
}

func newMailbox() *mailbox {
	return &mailbox{signal: make(chan struct{}, 1)}
}

func (m *mailbox) put(msg Message) {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	if msg.Type == "snapshot" {
		m.pending = m.pending[:0]
	}
	m.pending = append(m.pending, msg)
	m.mu.Unlock()

	select {
	case m.signal <- struct{}{}:
	default:
	}
}

func (m *mailbox) take() (Message, bool) {
	for {
		m.mu.Lock()
		if len(m.pending) > 0 {
			msg := m.pending[0]
			m.pending = m.pending[1:]
			m.mu.Unlock()
			return msg, true
		}
		if m.closed {
			m.mu.Unlock()
			return Message{}, false
		}
		m.mu.Unlock()
		<-m.signal
	}
}

func (m *mailbox) close() {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()
	select {
	case m.signal <- struct{}{}:
	default:
	}
}
