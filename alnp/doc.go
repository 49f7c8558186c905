// Package alnp defines the wire contract of the Alpine discovery/control
// protocol: envelope types, message kinds, size bounds, and the CBOR codec
// that turns envelopes into datagram payloads.
//
// # Wire Format
//
// Every ALNP datagram is a single CBOR map. Two entries are common to all
// envelopes: "v" carries the schema version (currently 1) and "t" carries the
// message kind. The remaining entries depend on the kind:
//
// Discovery (0x0x):
//   - DiscoveryRequest: requested capability names ("caps"), a 32-byte nonce
//     ("nonce"), and optionally the caller's device identity ("dev").
//   - DiscoveryReply: produced by devices; this package does not impose a
//     schema on replies beyond CBOR well-formedness. ReplySession,
//     ReplyDevice and ReplyCapabilities extract the conventional entries.
//
// Data plane (0x1x):
//   - FrameEnvelope: a snapshot of channel values ("ch") in a given channel
//     format ("fmt"), with optional sequence number, config correlation,
//     priority, group overrides and metadata.
//
// Control plane (0x2x):
//   - ControlEnvelope: an operation ("op") with sequence number, session and
//     device correlation, and an opaque CBOR payload ("body").
//
// # Size Bounds
//
// Datagrams never exceed MaxDatagram bytes. Receivers read into a buffer of
// that size; DecodeReply rejects payloads that fill the buffer because an
// exactly-full reply cannot be told apart from a longer one that the read
// truncated.
//
// # Encoding
//
// Encoding is deterministic (RFC 8949 core deterministic encoding) so that
// equal envelopes always produce identical payloads; profile compilation in
// the client relies on this.
package alnp
