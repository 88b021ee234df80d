package websockets

import (
	"registry/config"
	"registry/internal/database"
	"registry/internal/events"
	"registry/internal/logger"
	"sync"

	"github.com/gofiber/websocket/v2"
)

// Manager pushes bus events (auth changes, profile changes) to connected
// admin clients. Connections are write-only from the server's perspective;
// inbound frames are drained and discarded.
type Manager struct {
	db       database.DB
	eventBus *events.EventBus
	log      logger.Logger

	mu          sync.Mutex
	connections map[*websocket.Conn]struct{}
	done        func()
}

func New(db database.DB, eventBus *events.EventBus, config config.Config) (*Manager, error) {
	manager := &Manager{
		db:          db,
		eventBus:    eventBus,
		log:         logger.New("websockets"),
		connections: make(map[*websocket.Conn]struct{}),
	}

	eventCh, unsubscribe := eventBus.Subscribe("*")
	manager.done = unsubscribe

	go manager.broadcastLoop(eventCh)

	return manager, nil
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	m.mu.Lock()
	m.connections[c] = struct{}{}
	count := len(m.connections)
	m.mu.Unlock()

	log.Info("websocket client connected", "connections", count)

	defer func() {
		m.mu.Lock()
		delete(m.connections, c)
		m.mu.Unlock()
		_ = c.Close()
		log.Info("websocket client disconnected")
	}()

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			return
		}
	}
}

func (m *Manager) broadcastLoop(eventCh <-chan events.Event) {
	log := m.log.Function("broadcastLoop")

	for event := range eventCh {
		m.mu.Lock()
		for conn := range m.connections {
			if err := conn.WriteJSON(event); err != nil {
				log.Warn("failed to write event to websocket", "error", err)
				delete(m.connections, conn)
				_ = conn.Close()
			}
		}
		m.mu.Unlock()
	}
}

func (m *Manager) Close() {
	if m.done != nil {
		m.done()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for conn := range m.connections {
		_ = conn.Close()
	}
	m.connections = make(map[*websocket.Conn]struct{})
}
