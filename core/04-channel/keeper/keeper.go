// Package keeper implements the ICS-04 channel/packet state machine: the
// store-backed Keeper satisfying core/04-channel/types.ChannelKeeper, and
// the handshake/packet handler functions (channel_validate/dispatch/
// callback/events and their packet-lifecycle counterparts) the ICS-26
// router drives.
//
// The Keeper is a thin struct wrapping a store key plus its
// collaborators, with JSON as the wire encoding for this module's own
// value types (no generated protobuf types exist for them).
package keeper

import (
	"encoding/binary"
	"encoding/json"
	"fmt"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	capabilitytypes "github.com/cosmos/ibc-go/modules/capability/types"

	host "github.com/corechain/ibccore/core/24-host"
	"github.com/corechain/ibccore/core/exported"
	"github.com/corechain/ibccore/core/04-channel/types"
)

// CapabilityKeeper is satisfied by the capability module's keeper
// (github.com/cosmos/ibc-go/modules/capability/keeper.Keeper); kept as a
// local interface so this package never imports the concrete keeper type.
type CapabilityKeeper = types.CapabilityKeeper

type Keeper struct {
	storeKey     storetypes.StoreKey
	capKeeper    CapabilityKeeper
	connReader   exported.ConnectionReader
	clientReader exported.ClientReader
	scopedName   string
}

func NewKeeper(
	storeKey storetypes.StoreKey,
	capKeeper CapabilityKeeper,
	connReader exported.ConnectionReader,
	clientReader exported.ClientReader,
) *Keeper {
	return &Keeper{
		storeKey:     storeKey,
		capKeeper:    capKeeper,
		connReader:   connReader,
		clientReader: clientReader,
		scopedName:   "ibccore",
	}
}

func (k *Keeper) store(ctx sdk.Context) storetypes.KVStore {
	return ctx.KVStore(k.storeKey)
}

// ---- ChannelReader ----

func (k *Keeper) GetChannel(ctx sdk.Context, portID, channelID string) (types.ChannelEnd, bool) {
	bz := k.store(ctx).Get([]byte(host.ChannelPath(portID, channelID)))
	if bz == nil {
		return types.ChannelEnd{}, false
	}
	var ch types.ChannelEnd
	if err := json.Unmarshal(bz, &ch); err != nil {
		panic(fmt.Sprintf("unmarshaling channel end %s/%s: %v", portID, channelID, err))
	}
	return ch, true
}

func (k *Keeper) GetChannelCounter(ctx sdk.Context) uint64 {
	bz := k.store(ctx).Get([]byte("nextChannelSequence"))
	if bz == nil {
		return 0
	}
	return binary.BigEndian.Uint64(bz)
}

func (k *Keeper) SetChannelCounter(ctx sdk.Context, counter uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, counter)
	k.store(ctx).Set([]byte("nextChannelSequence"), bz)
}

func (k *Keeper) SetChannel(ctx sdk.Context, portID, channelID string, channel types.ChannelEnd) {
	bz, err := json.Marshal(channel)
	if err != nil {
		panic(fmt.Sprintf("marshaling channel end %s/%s: %v", portID, channelID, err))
	}
	k.store(ctx).Set([]byte(host.ChannelPath(portID, channelID)), bz)
}

func (k *Keeper) getSequence(ctx sdk.Context, path string) (uint64, bool) {
	bz := k.store(ctx).Get([]byte(path))
	if bz == nil {
		return 0, false
	}
	return binary.BigEndian.Uint64(bz), true
}

func (k *Keeper) setSequence(ctx sdk.Context, path string, sequence uint64) {
	bz := make([]byte, 8)
	binary.BigEndian.PutUint64(bz, sequence)
	k.store(ctx).Set([]byte(path), bz)
}

func (k *Keeper) GetNextSequenceSend(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceSendPath(portID, channelID))
}

func (k *Keeper) SetNextSequenceSend(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.setSequence(ctx, host.NextSequenceSendPath(portID, channelID), sequence)
}

func (k *Keeper) GetNextSequenceRecv(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceRecvPath(portID, channelID))
}

func (k *Keeper) SetNextSequenceRecv(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.setSequence(ctx, host.NextSequenceRecvPath(portID, channelID), sequence)
}

func (k *Keeper) GetNextSequenceAck(ctx sdk.Context, portID, channelID string) (uint64, bool) {
	return k.getSequence(ctx, host.NextSequenceAckPath(portID, channelID))
}

func (k *Keeper) SetNextSequenceAck(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.setSequence(ctx, host.NextSequenceAckPath(portID, channelID), sequence)
}

func (k *Keeper) GetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	bz := k.store(ctx).Get([]byte(host.PacketCommitmentPath(portID, channelID, sequence)))
	return bz, bz != nil
}

func (k *Keeper) SetPacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64, commitment []byte) {
	k.store(ctx).Set([]byte(host.PacketCommitmentPath(portID, channelID, sequence)), commitment)
}

func (k *Keeper) DeletePacketCommitment(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.store(ctx).Delete([]byte(host.PacketCommitmentPath(portID, channelID, sequence)))
}

func (k *Keeper) GetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64) bool {
	return k.store(ctx).Has([]byte(host.PacketReceiptPath(portID, channelID, sequence)))
}

func (k *Keeper) SetPacketReceipt(ctx sdk.Context, portID, channelID string, sequence uint64) {
	k.store(ctx).Set([]byte(host.PacketReceiptPath(portID, channelID, sequence)), []byte{1})
}

func (k *Keeper) GetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64) ([]byte, bool) {
	bz := k.store(ctx).Get([]byte(host.PacketAcknowledgementPath(portID, channelID, sequence)))
	return bz, bz != nil
}

func (k *Keeper) SetPacketAcknowledgement(ctx sdk.Context, portID, channelID string, sequence uint64, ackCommitment []byte) {
	k.store(ctx).Set([]byte(host.PacketAcknowledgementPath(portID, channelID, sequence)), ackCommitment)
}

func (k *Keeper) GetHostHeight(ctx sdk.Context) exported.Height {
	return exported.Height{RevisionNumber: 0, RevisionHeight: uint64(ctx.BlockHeight())}
}

func (k *Keeper) GetHostTimestamp(ctx sdk.Context) exported.Timestamp {
	return exported.Timestamp(ctx.BlockTime().UnixNano())
}

// ---- external collaborators, passed through ----

func (k *Keeper) GetConnection(ctx sdk.Context, connectionID string) (exported.ConnectionEnd, bool) {
	return k.connReader.GetConnection(ctx, connectionID)
}

func (k *Keeper) GetLatestHeight(ctx sdk.Context, clientID string) (exported.Height, bool) {
	return k.clientReader.GetLatestHeight(ctx, clientID)
}

func (k *Keeper) VerifyMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path string, value []byte) error {
	return k.clientReader.VerifyMembership(ctx, clientID, height, proof, path, value)
}

func (k *Keeper) VerifyNonMembership(ctx sdk.Context, clientID string, height exported.Height, proof []byte, path string) error {
	return k.clientReader.VerifyNonMembership(ctx, clientID, height, proof, path)
}

// ---- capability passthrough ----

func (k *Keeper) ChannelCapabilityName(portID, channelID string) string {
	return host.ChannelCapabilityPath(portID, channelID)
}

func (k *Keeper) ClaimCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) error {
	return k.capKeeper.ClaimCapability(ctx, cap, name)
}

func (k *Keeper) AuthenticateCapability(ctx sdk.Context, cap *capabilitytypes.Capability, name string) bool {
	return k.capKeeper.AuthenticateCapability(ctx, cap, name)
}

func (k *Keeper) NewChannelCapability(ctx sdk.Context, portID, channelID string) (*capabilitytypes.Capability, error) {
	return k.capKeeper.NewCapability(ctx, k.ChannelCapabilityName(portID, channelID))
}

var _ types.ChannelKeeper = (*Keeper)(nil)
