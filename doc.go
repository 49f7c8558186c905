// Package alpinelib provides a client implementation for the Alpine (ALNP)
// UDP discovery and control protocol.
//
// Alpinelib opens a datagram socket bound to a local endpoint, remembers a
// default remote device endpoint, and exchanges small CBOR-encoded envelopes
// with it: discovery requests that probe a device's capabilities, data-plane
// frames carrying channel values, and control-plane envelopes for session
// commands. The wire contract lives in the alnp subpackage.
//
// # Basic Usage
//
// Create a client for a device endpoint:
//
//	client, err := alpinelib.New("192.168.1.40:7411")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
// # Discovery
//
// Probe the device for capabilities; the reply is returned as a generic
// mapping, with no schema applied:
//
//	reply, err := client.Discover(ctx, []string{"stream", "identify"})
//
// Discovery is a single request/response exchange bounded by the configured
// timeout. There is no retry and no retransmission; callers decide how to
// handle a timeout. When the reply grants a session id, the client adopts it
// and starts sending periodic keepalive control envelopes until Close.
//
// # Frames and Controls
//
// Data-plane frames and control envelopes are fire-and-forget datagrams:
//
//	frame := client.Frame(alnp.FormatU8, []uint16{255, 0, 128})
//	err := client.SendFrame(frame)
//
//	env, _ := client.NextControl(alnp.OpStopStream, nil)
//	err = client.Control(env)
//
// # Stream Profiles
//
// A stream profile compiles deterministically into a runtime config id that
// correlates subsequent frames with the chosen configuration:
//
//	configID, err := client.StartStream(nil) // canonical auto profile
//
// # Identity
//
// A client may carry a device identity in its discovery requests. Attach one
// directly, or derive it from persistent credentials:
//
//	store, err := alpinelib.NewDiskStore()
//	client, err := alpinelib.New("192.168.1.40:7411", alpinelib.WithStore(store))
//
// A Client is safe for concurrent use: sends may overlap freely, and
// concurrent Discover calls serialize on the single underlying exchange.
package alpinelib
