package alpinelib

import (
	"context"
	"time"

	"github.com/KarpelesLab/emitter"
)

// Event topics published on emitter.Global as client state changes. They
// carry no payload, subscribers query the client for details.
const (
	EventDiscovered = "alpine:discovered" // a discovery reply was received
	EventSession    = "alpine:session"    // a session id was adopted
	EventStream     = "alpine:stream"     // a stream configuration was compiled
)

func (c *Client) emit(topic string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	emitter.Global.Emit(ctx, topic)
}
