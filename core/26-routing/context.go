// Package routing implements ICS-26: the single entry point (Dispatch, and
// the thin Deliver wrapper around it) that decodes an incoming message
// envelope and drives it through validate -> protocol-level
// handle -> module callback -> event construction -> commit, exactly in
// that order, so a module callback can only ever refine a result the core
// already computed, never invent one of its own.
package routing

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
)

// ClientMsg and ConnectionMsg are opaque payloads for the ICS-02/ICS-03
// message kinds this repo does not implement; only their routing, not
// their handling, belongs here.
type ClientMsg = any
type ConnectionMsg = any

// ClientResult and ConnectionResult are likewise opaque: whatever the
// injected handlers below produce, this package stores without inspecting.
type ClientResult = any
type ConnectionResult = any

// ClientHandler runs an ICS-02 message and returns its protocol result
// alongside any events/log it produced. Supplied by the host; this package
// never implements light-client verification or state transitions.
type ClientHandler func(ctx sdk.Context, msg ClientMsg) (ClientResult, []sdk.Event, []string, error)

// ConnectionHandler is ClientHandler's ICS-03 counterpart.
type ConnectionHandler func(ctx sdk.Context, msg ConnectionMsg) (ConnectionResult, []sdk.Event, []string, error)

// ResultStore persists an opaque client/connection result once its handler
// has produced it; supplied by the host for the same reason ClientHandler
// is.
type ResultStore func(ctx sdk.Context, result any) error

// Decoder turns the raw bytes an ABCI handler receives into a dispatchable
// Envelope. Decoding (protobuf Any unpacking, message routing by type URL)
// is a documented external collaborator: this package only ever consumes
// an already-decoded Envelope from Dispatch, or a Decoder from Deliver.
type Decoder interface {
	Decode(raw []byte) (Envelope, error)
}

// Context bundles every collaborator Dispatch needs: the ICS-04 channel
// keeper (this repo's own implementation), the ICS-05 port router, and the
// injected ICS-02/ICS-03 handlers. A test can build one of these from
// scratch with stub handlers and never need a running chain.
type Context struct {
	Channel           *channelkeeper.Keeper
	Router            *porttypes.Router
	HandleClientMsg   ClientHandler
	StoreClientResult ResultStore
	HandleConnMsg     ConnectionHandler
	StoreConnResult   ResultStore
}

// EnvelopeKind tags which of the four ICS-26 message families an Envelope
// carries.
type EnvelopeKind int

const (
	EnvelopeClient EnvelopeKind = iota
	EnvelopeConnection
	EnvelopeChannel
	EnvelopePacket
)

// Envelope is the Ics26Envelope sum type: exactly one of the four payload
// fields is populated, selected by Kind.
type Envelope struct {
	Kind       EnvelopeKind
	Client     ClientMsg
	Connection ConnectionMsg
	Channel    channeltypes.ChannelMsg
	Packet     channeltypes.PacketMsg
}

func NewClientEnvelope(msg ClientMsg) Envelope         { return Envelope{Kind: EnvelopeClient, Client: msg} }
func NewConnectionEnvelope(msg ConnectionMsg) Envelope { return Envelope{Kind: EnvelopeConnection, Connection: msg} }
func NewChannelEnvelope(msg channeltypes.ChannelMsg) Envelope {
	return Envelope{Kind: EnvelopeChannel, Channel: msg}
}
func NewPacketEnvelope(msg channeltypes.PacketMsg) Envelope {
	return Envelope{Kind: EnvelopePacket, Packet: msg}
}

// MsgReceipt is what a successfully dispatched message produces: every
// event and log line recorded along the way, in order.
type MsgReceipt struct {
	Events []sdk.Event
	Log    []string
}
