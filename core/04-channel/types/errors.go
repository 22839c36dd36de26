package types

import (
	errorsmod "cosmossdk.io/errors"
)

// One codespace per package, sequential codes starting at 2 (1 is
// reserved by errorsmod for "internal").
const ModuleName = "ibccore/channel"

var (
	ErrChannelNotFound          = errorsmod.Register(ModuleName, 2, "channel not found")
	ErrChannelExists            = errorsmod.Register(ModuleName, 3, "channel already exists")
	ErrInvalidChannelState      = errorsmod.Register(ModuleName, 4, "invalid channel state")
	ErrInvalidChannelOrdering   = errorsmod.Register(ModuleName, 5, "invalid channel ordering")
	ErrConnectionNotFound       = errorsmod.Register(ModuleName, 6, "connection not found")
	ErrConnectionNotOpen        = errorsmod.Register(ModuleName, 7, "connection is not open")
	ErrInvalidConnectionHops    = errorsmod.Register(ModuleName, 8, "invalid connection hops")
	ErrInvalidCounterparty      = errorsmod.Register(ModuleName, 9, "invalid counterparty")
	ErrInvalidChannelVersion    = errorsmod.Register(ModuleName, 10, "invalid channel version")
	ErrPacketCommitmentNotFound = errorsmod.Register(ModuleName, 11, "packet commitment not found")
	ErrPacketReceived           = errorsmod.Register(ModuleName, 12, "packet already received")
	ErrAcknowledgementExists    = errorsmod.Register(ModuleName, 13, "acknowledgement for packet already exists")
	ErrInvalidPacket            = errorsmod.Register(ModuleName, 14, "invalid packet")
	ErrPacketTimeout            = errorsmod.Register(ModuleName, 15, "packet timeout height or timestamp has passed")
	ErrPacketNotTimedOut        = errorsmod.Register(ModuleName, 16, "packet has not reached a timeout condition")
	ErrInvalidPacketSequence    = errorsmod.Register(ModuleName, 17, "invalid packet sequence")
	ErrProofVerificationFailed  = errorsmod.Register(ModuleName, 18, "proof verification failed")
	ErrInvalidCapability        = errorsmod.Register(ModuleName, 19, "invalid or missing channel capability")
	ErrRouteNotFound            = errorsmod.Register(ModuleName, 20, "no module bound to port")
	ErrPacketHasNoTimeout       = errorsmod.Register(ModuleName, 21, "packet has no timeout")
)
