package alpinelib

import (
	"net"
	"time"

	"github.com/AlpineLab/alpinelib/alnp"
)

type peerEntry struct {
	dev  *alnp.DeviceIdentity
	addr *net.UDPAddr
	t    time.Time
}

// rememberDevice records a device identity seen in a discovery reply together
// with the endpoint it answered from.
func (c *Client) rememberDevice(addr *net.UDPAddr, dev *alnp.DeviceIdentity) {
	c.peersLk.Lock()
	defer c.peersLk.Unlock()

	if len(c.peers) > 1024 {
		// cache overfill protection
		clear(c.peers)
	}

	c.peers[dev.ID] = &peerEntry{
		dev:  dev,
		addr: addr,
		t:    time.Now(),
	}
}

// KnownDevice returns the identity and endpoint of a previously discovered
// device, or nils if the device id was never seen.
func (c *Client) KnownDevice(id string) (*alnp.DeviceIdentity, *net.UDPAddr) {
	c.peersLk.RLock()
	defer c.peersLk.RUnlock()

	v, ok := c.peers[id]
	if !ok {
		return nil, nil
	}
	return v.dev, v.addr
}
