package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-datavault-be/internal/pkg/logger"
	"ai-datavault-be/pkg/events"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const clusterChannel = "import_events"

// Hub fans import lifecycle events out to every connected websocket client.
// There is no per-client targeting: every watcher sees every batch.
type Hub struct {
	// Registered clients
	clients map[*Client]bool

	// Register requests from the clients.
	register chan *Client

	// Unregister requests from clients.
	unregister chan *Client

	// Lock for safe map access
	mu sync.RWMutex

	// Redis connection for cross-instance fan-out
	rdb *redis.Client

	// instanceId marks our own cluster publishes so the subscriber can
	// drop the echo instead of delivering every event twice.
	instanceId string

	// Dedicated Logger
	logger logger.ILogger
}

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		rdb:        rdb,
		instanceId: uuid.NewString(),
		logger:     log,
	}
}

func (h *Hub) Run() {
	// Start Redis Subscriber if Redis is available
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"client_id": client.Id})

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				h.logger.Info("Hub", "Client unregistered", map[string]interface{}{"client_id": client.Id})
			}
			h.mu.Unlock()
		}
	}
}

// Broadcast sends an import event to all connected clients, and to the
// cluster channel so other instances can do the same.
func (h *Hub) Broadcast(event events.Event) {
	data, _ := json.Marshal(map[string]interface{}{
		"type":      event.EventType(),
		"data":      event.Payload(),
		"timestamp": event.Timestamp(),
		"origin":    h.instanceId,
	})

	h.broadcastLocal(data)

	if h.rdb != nil {
		h.rdb.Publish(context.Background(), clusterChannel, data)
	}
}

func (h *Hub) broadcastLocal(data []byte) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.clients {
		select {
		case client.Send <- data:
		default:
			// Slow consumer, drop it.
			go func(c *Client) { h.unregister <- c }(client)
		}
	}
}

func (h *Hub) subscribeToRedis() {
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	for msg := range pubsub.Channel() {
		h.handleClusterPayload([]byte(msg.Payload))
	}
}

func (h *Hub) handleClusterPayload(data []byte) {
	var env struct {
		Origin string `json:"origin"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("Redis msg parse error: invalid payload on %s", clusterChannel)
		return
	}
	// Our own publishes come back on the channel too.
	if env.Origin == h.instanceId {
		return
	}
	h.broadcastLocal(data)
}
