package alpinelib

import (
	"time"

	"github.com/AlpineLab/alpinelib/alnp"
)

// adoptSession records a session id granted by a discovery reply. The first
// adoption starts the keepalive loop when a keepalive interval is configured.
func (c *Client) adoptSession(id string) {
	c.sessLk.Lock()
	if c.sessionID == id {
		c.sessLk.Unlock()
		return
	}
	c.sessionID = id

	var stop chan struct{}
	if c.keepalive > 0 && c.kaStop == nil && !c.isClosed() {
		stop = make(chan struct{})
		c.kaStop = stop
	}
	c.sessLk.Unlock()

	c.logf("session %s adopted", id)
	c.emit(EventSession)

	if stop != nil {
		go c.keepaliveLoop(stop)
	}
}

// keepaliveLoop sends one keepalive control envelope per interval until the
// stop channel closes. Send failures are logged, not surfaced, the control
// plane is fire-and-forget.
func (c *Client) keepaliveLoop(stop chan struct{}) {
	t := time.NewTicker(c.keepalive)
	defer t.Stop()

	c.logf("keepalive loop started (every %s)", c.keepalive)

	for {
		select {
		case <-stop:
			c.logf("keepalive loop stopped")
			return
		case <-t.C:
			env, err := c.NextControl(alnp.OpKeepalive, nil)
			if err != nil {
				c.logf("failed to build keepalive: %s", err)
				continue
			}
			if err := c.Control(env); err != nil {
				c.logf("failed to send keepalive: %s", err)
			}
		}
	}
}
