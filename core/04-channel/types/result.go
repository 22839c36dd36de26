package types

// PacketResultKind tags which packet operation produced a PacketResult.
type PacketResultKind int

const (
	PacketResultSend PacketResultKind = iota
	PacketResultRecv
	PacketResultAcknowledge
	PacketResultTimeout
)

// RecvOutcome is what the core records for a received packet: NoOp when
// no acknowledgement is to be written (an unordered replay caught by
// packet_dispatch, or a module returning a NoOp result, whose Commit still
// runs when it supplied one), or WriteAck when the module succeeded or
// failed, in both cases producing an acknowledgement the core still needs
// to write.
type RecvOutcome int

const (
	RecvPending RecvOutcome = iota // not yet decided: the module callback has not run
	RecvNoOp                       // the core writes no receipt and no acknowledgement
	RecvWriteAck
)

// PacketResult is what packet_dispatch produces for the store-commit step;
// its shape depends on Kind.
type PacketResult struct {
	Kind   PacketResultKind
	Packet Packet

	// Send
	Commitment []byte

	// Recv
	RecvOutcome RecvOutcome
	// AlreadyReceived is set by packet_dispatch itself (not the module)
	// when this is a replay of a packet already delivered on an
	// unordered channel: the module never runs again and the prior
	// acknowledgement is returned unchanged.
	AlreadyReceived bool
	Acknowledgement []byte

	// Acknowledge / Timeout
	CloseChannel bool // set on an ordered channel's successful timeout
}
