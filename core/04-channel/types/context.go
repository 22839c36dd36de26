package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	"github.com/corechain/ibccore/core/exported"
)

// ChannelReader is the read-only half of the host capability interface onto
// channel and packet state. Every ICS-04 handler is built only against
// this (and ChannelKeeper, for the write half); no handler ever reaches
// into a concrete store implementation.
type ChannelReader interface {
	GetChannel(ctx sdk.Context, portID, channelID string) (ChannelEnd, bool)
	GetChannelCounter(ctx sdk.Context) uint64

	GetNextSequenceSend(ctx sdk.Context, portID, channelID string) (uint64, bool)
	GetNextSequenceRecv(ctx sdk.Context, portID, channelID string) (uint64, bool)
	GetNextSequenceAck(ctx sdk.Context, portID, channelID string) (uint64, bool)

	GetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) ([]byte, bool)
	GetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64) bool
	GetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64) ([]byte, bool)

	GetHostHeight(ctx sdk.Context) exported.Height
	GetHostTimestamp(ctx sdk.Context) exported.Timestamp

	exported.ConnectionReader
	exported.ClientReader
}

// ChannelKeeper extends ChannelReader with the mutations channel_dispatch's
// commit step and SendPacket/write_acknowledgement perform.
type ChannelKeeper interface {
	ChannelReader

	SetChannel(ctx sdk.Context, portID, channelID string, channel ChannelEnd)
	SetChannelCounter(ctx sdk.Context, counter uint64)

	SetNextSequenceSend(ctx sdk.Context, portID, channelID string, sequence uint64)
	SetNextSequenceRecv(ctx sdk.Context, portID, channelID string, sequence uint64)
	SetNextSequenceAck(ctx sdk.Context, portID, channelID string, sequence uint64)

	SetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64, commitment []byte)
	DeletePacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64)
	SetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64)
	SetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64, ackCommitment []byte)
}

// CapabilityKeeper is the narrow slice of the capability module this
// package needs to claim and authenticate a channel's owning capability:
// channel ownership is an object capability, not a bare string compare on
// channel id.
type CapabilityKeeper interface {
	NewCapability(ctx sdk.Context, name string) (*capabilitytypes.Capability, error)
	ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error
	AuthenticateCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) bool
	GetCapability(ctx sdk.Context, name string) (*capabilitytypes.Capability, bool)
}
