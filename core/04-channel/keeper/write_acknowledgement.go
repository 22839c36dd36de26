package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/corehandler"
)

// WriteAcknowledgement lets a bound module ack a packet asynchronously,
// outside the synchronous OnRecvPacket -> RecvPacketResult.Commit path,
// for a module whose business logic cannot resolve success or failure
// within a single callback. Most modules, including this repo's ICS-20
// transfer keeper, never need it because they always know the outcome
// immediately; a conformant ICS-04 host still has to offer the operation
// for applications that resolve acknowledgements asynchronously.
func WriteAcknowledgement(ctx sdk.Context, k *Keeper, packet channeltypes.Packet, ack channeltypes.Acknowledgement) (*corehandler.Builder[channeltypes.PacketResult], error) {
	channel, found := k.GetChannel(ctx, packet.DestinationPort, packet.DestinationChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.DestinationPort, packet.DestinationChannel)
	}
	if channel.State != channeltypes.OPEN {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel is not OPEN, state is %s", channel.State)
	}
	if _, found := k.GetPacketAcknowledgement(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence); found {
		return nil, errorsmod.Wrap(channeltypes.ErrAcknowledgementExists, "acknowledgement already written for this packet")
	}

	ackBytes := ack.Acknowledgement()
	if channel.Ordering == channeltypes.UNORDERED {
		k.SetPacketReceipt(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
	} else {
		nextRecv, _ := k.GetNextSequenceRecv(ctx, packet.DestinationPort, packet.DestinationChannel)
		k.SetNextSequenceRecv(ctx, packet.DestinationPort, packet.DestinationChannel, nextRecv+1)
	}
	k.SetPacketAcknowledgement(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence, channeltypes.CommitAcknowledgement(ackBytes))

	result := channeltypes.PacketResult{Kind: channeltypes.PacketResultRecv, Packet: packet, RecvOutcome: channeltypes.RecvWriteAck, Acknowledgement: ackBytes}
	return corehandler.NewBuilder(result).
		Emit(channeltypes.NewWriteAckEvent(packet, ackBytes)).
		Log(fmt.Sprintf("wrote deferred acknowledgement for seq %d on %s/%s", packet.Sequence, packet.DestinationPort, packet.DestinationChannel)), nil
}
