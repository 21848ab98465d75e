// Package gateway bridges Event Bus topics to remote subscribers over a
// WebSocket connection speaking a graphql-transport-ws subset. Each
// subscribe frame maps 1:1 to a bus topic and every event on that topic is
// relayed to every connected subscriber of it; relevance filtering is the
// client's job. There is no replay: a dropped connection tears down its
// subscriptions and the client recovers missed events by refetching.
package gateway

import (
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taskboard-api/events"
)

// Gateway upgrades connections and relays bus events to them
type Gateway struct {
	bus      events.Bus
	upgrader websocket.Upgrader
}

// New creates a gateway over the given bus
func New(bus events.Bus) *Gateway {
	return &Gateway{
		bus: bus,
		upgrader: websocket.Upgrader{
			Subprotocols: []string{"graphql-transport-ws"},
			CheckOrigin:  func(r *http.Request) bool { return true },
		},
	}
}

// Handle upgrades the request and serves the connection until it drops
func (g *Gateway) Handle(c *gin.Context) {
	conn, err := g.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("Failed to upgrade subscription connection: %v", err)
		return
	}

	client := &client{
		conn: conn,
		bus:  g.bus,
		subs: make(map[string]*events.Subscription),
	}
	client.run()
}

// client is one connected subscriber with its active subscriptions
type client struct {
	conn    *websocket.Conn
	bus     events.Bus
	writeMu sync.Mutex // gorilla allows one concurrent writer

	mu   sync.Mutex
	subs map[string]*events.Subscription
}

func (c *client) run() {
	defer c.teardown()

	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case msgConnectionInit:
			// connectionParams are accepted but not validated; the
			// connection is authenticated the same as an anonymous one.
			c.write(Message{Type: msgConnectionAck})
		case msgPing:
			c.write(Message{Type: msgPong})
		case msgSubscribe:
			c.handleSubscribe(msg)
		case msgComplete:
			c.complete(msg.ID)
		}
	}
}

func (c *client) handleSubscribe(msg Message) {
	var payload subscribePayload
	if err := jsonUnmarshal(msg.Payload, &payload); err != nil {
		c.write(Message{ID: msg.ID, Type: msgError, Payload: errorPayload("Invalid subscribe payload")})
		return
	}

	topic, err := subscriptionField(payload.Query)
	if err != nil {
		c.write(Message{ID: msg.ID, Type: msgError, Payload: errorPayload(err.Error())})
		return
	}
	if !events.IsKnownTopic(topic) {
		c.write(Message{ID: msg.ID, Type: msgError, Payload: errorPayload("Unknown subscription: " + topic)})
		return
	}

	c.mu.Lock()
	if _, exists := c.subs[msg.ID]; exists {
		c.mu.Unlock()
		c.write(Message{ID: msg.ID, Type: msgError, Payload: errorPayload("Subscriber already exists: " + msg.ID)})
		return
	}
	sub := c.bus.Subscribe(topic)
	c.subs[msg.ID] = sub
	c.mu.Unlock()

	go c.relay(msg.ID, topic, sub)
}

// relay pushes bus events for one subscription until it is closed
func (c *client) relay(id, topic string, sub *events.Subscription) {
	for evt := range sub.C {
		payload, err := nextPayload(topic, evt.Payload, evt.CorrelationID)
		if err != nil {
			log.Printf("Failed to encode %s event: %v", topic, err)
			continue
		}
		if err := c.write(Message{ID: id, Type: msgNext, Payload: payload}); err != nil {
			return
		}
	}
}

// complete tears down one subscription in response to a client complete
func (c *client) complete(id string) {
	c.mu.Lock()
	sub, ok := c.subs[id]
	delete(c.subs, id)
	c.mu.Unlock()
	if ok {
		sub.Close()
	}
}

// teardown closes every subscription and the connection itself
func (c *client) teardown() {
	c.mu.Lock()
	subs := c.subs
	c.subs = make(map[string]*events.Subscription)
	c.mu.Unlock()

	for _, sub := range subs {
		sub.Close()
	}
	c.conn.Close()
}

func (c *client) write(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.conn.WriteJSON(msg)
}
