package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
	"github.com/corechain/ibccore/corehandler"
)

// SendPacket is invoked directly by a bound application (e.g. ICS-20's
// send_transfer), not dispatched through a message: there is no relayer
// message for "originate a packet", only for relaying one onward. It
// validates the packet against the sending channel, commits it, and emits
// the packet's send event in a single atomic step. A packet with neither
// timeout set is rejected by default.
func SendPacket(ctx sdk.Context, k *Keeper, packet channeltypes.Packet) (*corehandler.Builder[channeltypes.PacketResult], error) {
	return sendPacket(ctx, k, packet, false)
}

// SendPacketAllowNoTimeout is SendPacket for a bound application that opts
// out of the "packet must have a timeout" invariant (ICS-20 is the one
// application this repo ships that does). Every other check is identical;
// a packet sent this way that later needs to time out always fails with
// ErrPacketHasNoTimeout.
func SendPacketAllowNoTimeout(ctx sdk.Context, k *Keeper, packet channeltypes.Packet) (*corehandler.Builder[channeltypes.PacketResult], error) {
	return sendPacket(ctx, k, packet, true)
}

func sendPacket(ctx sdk.Context, k *Keeper, packet channeltypes.Packet, allowNoTimeout bool) (*corehandler.Builder[channeltypes.PacketResult], error) {
	if err := packet.Validate(); err != nil {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidPacket, err.Error())
	}
	if !allowNoTimeout && !packet.HasTimeout() {
		return nil, errorsmod.Wrap(channeltypes.ErrPacketHasNoTimeout, "packet must set a height or timestamp timeout")
	}

	channel, found := k.GetChannel(ctx, packet.SourcePort, packet.SourceChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.SourcePort, packet.SourceChannel)
	}
	if channel.State != channeltypes.OPEN {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel is not OPEN, state is %s", channel.State)
	}
	if packet.DestinationPort != channel.Counterparty.PortId || packet.DestinationChannel != channel.Counterparty.ChannelId {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidCounterparty, "packet destination does not match channel counterparty")
	}

	if !packet.TimeoutHeight.IsZero() {
		hostHeight := k.GetHostHeight(ctx)
		if hostHeight.GT(packet.TimeoutHeight) || hostHeight.EQ(packet.TimeoutHeight) {
			return nil, errorsmod.Wrap(channeltypes.ErrPacketTimeout, "timeout height is already past the current host height")
		}
	}
	if !packet.TimeoutTimestamp.IsZero() {
		hostTimestamp := k.GetHostTimestamp(ctx)
		if hostTimestamp.After(packet.TimeoutTimestamp) || hostTimestamp == packet.TimeoutTimestamp {
			return nil, errorsmod.Wrap(channeltypes.ErrPacketTimeout, "timeout timestamp is already past the current host timestamp")
		}
	}

	nextSeq, found := k.GetNextSequenceSend(ctx, packet.SourcePort, packet.SourceChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "next sequence send for %s/%s", packet.SourcePort, packet.SourceChannel)
	}
	if packet.Sequence != nextSeq {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidPacketSequence, "expected %d, got %d", nextSeq, packet.Sequence)
	}

	commitment := channeltypes.CommitPacket(packet)
	k.SetPacketCommitment(ctx, packet.SourcePort, packet.SourceChannel, packet.Sequence, commitment)
	k.SetNextSequenceSend(ctx, packet.SourcePort, packet.SourceChannel, nextSeq+1)

	result := channeltypes.PacketResult{Kind: channeltypes.PacketResultSend, Packet: packet, Commitment: commitment}
	return corehandler.NewBuilder(result).
		Emit(channeltypes.NewSendPacketEvent(packet)).
		Log(fmt.Sprintf("sent packet: seq %d on %s/%s", packet.Sequence, packet.SourcePort, packet.SourceChannel)), nil
}

// ValidatePacketMsg is get_module_for_packet_msg + channel_validate for the
// packet path: the module bound to the relevant port (destination port for
// Recv, source port for Ack/Timeout/TimeoutOnClose, matching which side of
// the channel originates each message) must exist.
func ValidatePacketMsg(router *porttypes.Router, msg channeltypes.PacketMsg) (porttypes.Module, error) {
	packet := msg.GetPacket()
	var portID string
	switch msg.Kind {
	case channeltypes.MsgRecvPacket:
		portID = packet.DestinationPort
	default:
		portID = packet.SourcePort
	}
	module, err := router.LookupModuleByPort(portID)
	if err != nil {
		return nil, errorsmod.Wrap(channeltypes.ErrRouteNotFound, err.Error())
	}
	return module, nil
}

// DispatchPacketMsg is packet_dispatch: it verifies the message against
// channel/connection state and a light-client proof, and returns the
// PacketResult describing what happened. For RecvPacket it additionally
// consults the module (through InvokePacketCallback, called separately by
// the router) before anything about the recv is committed.
func DispatchPacketMsg(ctx sdk.Context, k *Keeper, msg channeltypes.PacketMsg) (*corehandler.Builder[channeltypes.PacketResult], error) {
	switch msg.Kind {
	case channeltypes.MsgRecvPacket:
		return processRecvPacket(ctx, k, *msg.Recv)
	case channeltypes.MsgAcknowledgePacket:
		return processAcknowledgePacket(ctx, k, *msg.Acknowledge)
	case channeltypes.MsgTimeoutPacket:
		return processTimeoutPacket(ctx, k, *msg.Timeout, false)
	case channeltypes.MsgTimeoutOnClosePacket:
		return processTimeoutOnClosePacket(ctx, k, *msg.TimeoutOnClose)
	default:
		return nil, fmt.Errorf("unknown packet message kind %d", msg.Kind)
	}
}

func processRecvPacket(ctx sdk.Context, k *Keeper, msg channeltypes.MsgRecvPacketData) (*corehandler.Builder[channeltypes.PacketResult], error) {
	packet := msg.Packet
	if err := packet.Validate(); err != nil {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidPacket, err.Error())
	}

	channel, found := k.GetChannel(ctx, packet.DestinationPort, packet.DestinationChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.DestinationPort, packet.DestinationChannel)
	}
	if channel.State != channeltypes.OPEN {
		incrPacketValidationFailure(ctx, packet.DestinationPort, packet.DestinationChannel, "channel not open")
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel is not OPEN, state is %s", channel.State)
	}
	if packet.SourcePort != channel.Counterparty.PortId || packet.SourceChannel != channel.Counterparty.ChannelId {
		incrPacketValidationFailure(ctx, packet.DestinationPort, packet.DestinationChannel, "counterparty mismatch")
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidCounterparty, "packet source does not match channel counterparty")
	}

	hostHeight := k.GetHostHeight(ctx)
	if !packet.TimeoutHeight.IsZero() && (hostHeight.GT(packet.TimeoutHeight) || hostHeight.EQ(packet.TimeoutHeight)) {
		incrPacketValidationFailure(ctx, packet.DestinationPort, packet.DestinationChannel, "height timeout elapsed")
		return nil, errorsmod.Wrap(channeltypes.ErrPacketTimeout, "packet height timeout has already elapsed")
	}
	hostTimestamp := k.GetHostTimestamp(ctx)
	if !packet.TimeoutTimestamp.IsZero() && (hostTimestamp.After(packet.TimeoutTimestamp) || hostTimestamp == packet.TimeoutTimestamp) {
		incrPacketValidationFailure(ctx, packet.DestinationPort, packet.DestinationChannel, "timestamp timeout elapsed")
		return nil, errorsmod.Wrap(channeltypes.ErrPacketTimeout, "packet timestamp timeout has already elapsed")
	}

	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found || conn.State != connectionOpen {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be OPEN to receive a packet")
	}
	commitment := channeltypes.CommitPacket(packet)
	if err := verifyPacketCommitment(ctx, k, conn, msg.ProofHeight, msg.ProofCommitment, packet.SourcePort, packet.SourceChannel, packet.Sequence, commitment); err != nil {
		incrPacketValidationFailure(ctx, packet.DestinationPort, packet.DestinationChannel, "proof verification failed")
		return nil, err
	}

	if channel.Ordering == channeltypes.UNORDERED {
		if k.GetPacketReceipt(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence) {
			// Already received: at-most-once delivery means this is a
			// harmless replay, not an error: the relayer gets the same
			// ack back with no further module involvement.
			ack, found := k.GetPacketAcknowledgement(ctx, packet.DestinationPort, packet.DestinationChannel, packet.Sequence)
			if !found {
				return nil, errorsmod.Wrap(channeltypes.ErrPacketReceived, "packet already received, no acknowledgement on record")
			}
			result := channeltypes.PacketResult{Kind: channeltypes.PacketResultRecv, Packet: packet, RecvOutcome: channeltypes.RecvNoOp, AlreadyReceived: true, Acknowledgement: ack}
			return corehandler.NewBuilder(result).Log("packet already received, replay is a no-op"), nil
		}
	} else {
		nextRecv, found := k.GetNextSequenceRecv(ctx, packet.DestinationPort, packet.DestinationChannel)
		if !found {
			return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "next sequence recv for %s/%s", packet.DestinationPort, packet.DestinationChannel)
		}
		if packet.Sequence != nextRecv {
			return nil, errorsmod.Wrapf(channeltypes.ErrInvalidPacketSequence, "ordered channel expects sequence %d, got %d", nextRecv, packet.Sequence)
		}
	}

	// The acknowledgement itself is not yet known: that is the bound
	// module's decision, made in InvokePacketCallback. This result only
	// records that the packet passed validation.
	result := channeltypes.PacketResult{Kind: channeltypes.PacketResultRecv, Packet: packet}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("received packet: seq %d on %s/%s", packet.Sequence, packet.DestinationPort, packet.DestinationChannel)), nil
}

func processAcknowledgePacket(ctx sdk.Context, k *Keeper, msg channeltypes.MsgAcknowledgePacketData) (*corehandler.Builder[channeltypes.PacketResult], error) {
	packet := msg.Packet

	channel, found := k.GetChannel(ctx, packet.SourcePort, packet.SourceChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.SourcePort, packet.SourceChannel)
	}
	// Acknowledgements drain even after an ordered channel has closed
	// (e.g. because a different packet on it timed out): Closed is
	// terminal for new sends and receives, not for acknowledging packets
	// already in flight when the close happened.
	if channel.State != channeltypes.OPEN && channel.State != channeltypes.CLOSED {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel state %s cannot process an acknowledgement", channel.State)
	}

	commitment, found := k.GetPacketCommitment(ctx, packet.SourcePort, packet.SourceChannel, packet.Sequence)
	if !found {
		return nil, errorsmod.Wrap(channeltypes.ErrPacketCommitmentNotFound, "packet already acknowledged, or never sent")
	}
	if string(commitment) != string(channeltypes.CommitPacket(packet)) {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidPacket, "commitment bytes do not match the packet being acknowledged")
	}

	if channel.Ordering == channeltypes.ORDERED {
		nextAck, found := k.GetNextSequenceAck(ctx, packet.SourcePort, packet.SourceChannel)
		if !found {
			return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "next sequence ack for %s/%s", packet.SourcePort, packet.SourceChannel)
		}
		if packet.Sequence != nextAck {
			return nil, errorsmod.Wrapf(channeltypes.ErrInvalidPacketSequence, "ordered channel expects ack sequence %d, got %d", nextAck, packet.Sequence)
		}
	}

	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotFound, channel.ConnectionHops[0])
	}
	ackCommitment := channeltypes.CommitAcknowledgement(msg.Acknowledgement)
	if err := verifyPacketAcknowledgement(ctx, k, conn, msg.ProofHeight, msg.ProofAcked, packet.DestinationPort, packet.DestinationChannel, packet.Sequence, ackCommitment); err != nil {
		return nil, err
	}

	result := channeltypes.PacketResult{Kind: channeltypes.PacketResultAcknowledge, Packet: packet, Acknowledgement: msg.Acknowledgement}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("acknowledged packet: seq %d on %s/%s", packet.Sequence, packet.SourcePort, packet.SourceChannel)), nil
}

func processTimeoutPacket(ctx sdk.Context, k *Keeper, msg channeltypes.MsgTimeoutPacketData, onClose bool) (*corehandler.Builder[channeltypes.PacketResult], error) {
	packet := msg.Packet

	channel, found := k.GetChannel(ctx, packet.SourcePort, packet.SourceChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.SourcePort, packet.SourceChannel)
	}
	if !onClose && channel.State != channeltypes.OPEN {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel state %s cannot time out a packet", channel.State)
	}

	commitment, found := k.GetPacketCommitment(ctx, packet.SourcePort, packet.SourceChannel, packet.Sequence)
	if !found {
		return nil, errorsmod.Wrap(channeltypes.ErrPacketCommitmentNotFound, "packet already timed out or acknowledged, or never sent")
	}
	if string(commitment) != string(channeltypes.CommitPacket(packet)) {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidPacket, "commitment bytes do not match the packet being timed out")
	}

	if !packet.HasTimeout() {
		return nil, errorsmod.Wrap(channeltypes.ErrPacketHasNoTimeout, "this packet was sent without a timeout and can never time out")
	}

	hostHeight := k.GetHostHeight(ctx)
	hostTimestamp := k.GetHostTimestamp(ctx)
	elapsedHeight := !packet.TimeoutHeight.IsZero() && (hostHeight.GT(packet.TimeoutHeight) || hostHeight.EQ(packet.TimeoutHeight))
	elapsedTimestamp := !packet.TimeoutTimestamp.IsZero() && (hostTimestamp.After(packet.TimeoutTimestamp) || hostTimestamp == packet.TimeoutTimestamp)
	if !elapsedHeight && !elapsedTimestamp {
		return nil, errorsmod.Wrap(channeltypes.ErrPacketNotTimedOut, "neither the height nor the timestamp timeout has elapsed")
	}

	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotFound, channel.ConnectionHops[0])
	}

	closeChannel := false
	if channel.Ordering == channeltypes.UNORDERED {
		if err := verifyPacketReceiptAbsence(ctx, k, conn, msg.ProofHeight, msg.ProofUnreceived, packet.DestinationPort, packet.DestinationChannel, packet.Sequence); err != nil {
			return nil, err
		}
	} else {
		if msg.NextSequenceRecv > packet.Sequence {
			return nil, errorsmod.Wrap(channeltypes.ErrInvalidPacketSequence, "destination has already received a later sequence; this packet cannot have timed out")
		}
		if err := verifyNextSequenceRecv(ctx, k, conn, msg.ProofHeight, msg.ProofUnreceived, packet.DestinationPort, packet.DestinationChannel, msg.NextSequenceRecv); err != nil {
			return nil, err
		}
		// An ordered channel cannot skip a packet and keep delivering
		// later ones in order, so a timeout on it always closes the
		// channel on this side.
		closeChannel = true
	}

	result := channeltypes.PacketResult{Kind: channeltypes.PacketResultTimeout, Packet: packet, CloseChannel: closeChannel}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("timed out packet: seq %d on %s/%s", packet.Sequence, packet.SourcePort, packet.SourceChannel)), nil
}

func processTimeoutOnClosePacket(ctx sdk.Context, k *Keeper, msg channeltypes.MsgTimeoutOnClosePacketData) (*corehandler.Builder[channeltypes.PacketResult], error) {
	packet := msg.Packet

	channel, found := k.GetChannel(ctx, packet.SourcePort, packet.SourceChannel)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", packet.SourcePort, packet.SourceChannel)
	}
	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotFound, channel.ConnectionHops[0])
	}
	// The counterparty's channel end (proven closed here) is keyed by the
	// packet's destination port/channel, since that is the counterparty's
	// own identifier for its side of the channel.
	if err := verifyChannelState(ctx, k, conn, msg.ProofHeight, msg.ProofClose, packet.DestinationPort, packet.DestinationChannel, channeltypes.ChannelEnd{
		State:          channeltypes.CLOSED,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.NewCounterparty(packet.SourcePort, packet.SourceChannel),
		ConnectionHops: []string{conn.CounterpartyConnectionId},
		Version:        channel.Version,
	}); err != nil {
		return nil, err
	}

	timeoutMsg := channeltypes.MsgTimeoutPacketData{
		Packet:           packet,
		ProofUnreceived:  msg.ProofUnreceived,
		ProofHeight:      msg.ProofHeight,
		NextSequenceRecv: msg.NextSequenceRecv,
		Signer:           msg.Signer,
	}
	return processTimeoutPacket(ctx, k, timeoutMsg, true)
}

// InvokePacketCallback is do_packet_callback / packet_callback: for
// RecvPacket it hands the packet to the bound module and runs the result's
// deferred Commit (when non-nil) for a NoOp or Success outcome; a Failure
// outcome carries no Commit. A failing Commit aborts the dispatch before
// CommitPacketResult writes the acknowledgement, and a NoOp outcome leaves
// CommitPacketResult with nothing to write. Ack/Timeout/TimeoutOnClose
// packets go straight to the matching module callback; the module may not
// veto those, only log or emit extra events.
func InvokePacketCallback(ctx sdk.Context, k *Keeper, module porttypes.Module, msg channeltypes.PacketMsg, builder *corehandler.Builder[channeltypes.PacketResult], relayer string) (*corehandler.Builder[channeltypes.PacketResult], error) {
	result := builder.Result()

	switch msg.Kind {
	case channeltypes.MsgRecvPacket:
		recvResult := module.OnRecvPacket(ctx, result.Packet, relayer)
		switch recvResult.Kind {
		case porttypes.RecvOutcomeNoOp:
			if recvResult.Commit != nil {
				if err := recvResult.Commit(ctx); err != nil {
					return nil, err
				}
			}
			result.RecvOutcome = channeltypes.RecvNoOp
			return builder.WithResult(result).Log("module returned NoOp for recv packet"), nil

		case porttypes.RecvOutcomeSuccess:
			if recvResult.Commit != nil {
				if err := recvResult.Commit(ctx); err != nil {
					return nil, err
				}
			}
			ackBytes := recvResult.Acknowledgement.Acknowledgement()
			result.RecvOutcome = channeltypes.RecvWriteAck
			result.Acknowledgement = ackBytes
			return builder.WithResult(result).Emit(channeltypes.NewRecvPacketEvent(result.Packet)), nil

		case porttypes.RecvOutcomeFailure:
			ackBytes := recvResult.Acknowledgement.Acknowledgement()
			result.RecvOutcome = channeltypes.RecvWriteAck
			result.Acknowledgement = ackBytes
			return builder.WithResult(result).Emit(channeltypes.NewRecvPacketEvent(result.Packet)), nil

		default:
			return nil, fmt.Errorf("unknown recv outcome kind %d", recvResult.Kind)
		}

	case channeltypes.MsgAcknowledgePacket:
		extras, err := module.OnAcknowledgementPacket(ctx, result.Packet, msg.Acknowledge.Acknowledgement, relayer)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	case channeltypes.MsgTimeoutPacket, channeltypes.MsgTimeoutOnClosePacket:
		extras, err := module.OnTimeoutPacket(ctx, result.Packet, relayer)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	default:
		return nil, fmt.Errorf("unknown packet message kind %d", msg.Kind)
	}
}

// BuildPacketEvent is packet_events for the post-callback step.
func BuildPacketEvent(msg channeltypes.PacketMsg, result channeltypes.PacketResult) sdk.Event {
	switch msg.Kind {
	case channeltypes.MsgRecvPacket:
		if result.RecvOutcome == channeltypes.RecvWriteAck {
			return channeltypes.NewWriteAckEvent(result.Packet, result.Acknowledgement)
		}
		return channeltypes.NewRecvPacketEvent(result.Packet)
	case channeltypes.MsgAcknowledgePacket:
		return channeltypes.NewAcknowledgePacketEvent(result.Packet)
	default:
		return channeltypes.NewTimeoutPacketEvent(result.Packet)
	}
}

// CommitPacketResult is store_packet_result: it writes whatever the
// packet's kind calls for. A NoOp recv writes nothing at all, which is
// what lets a module veto a replay without the core re-deriving
// module-specific idempotency logic.
func CommitPacketResult(ctx sdk.Context, k *Keeper, msg channeltypes.PacketMsg, result channeltypes.PacketResult) {
	switch result.Kind {
	case channeltypes.PacketResultRecv:
		if result.RecvOutcome == channeltypes.RecvNoOp {
			return
		}
		channel, _ := k.GetChannel(ctx, result.Packet.DestinationPort, result.Packet.DestinationChannel)
		if channel.Ordering == channeltypes.UNORDERED {
			k.SetPacketReceipt(ctx, result.Packet.DestinationPort, result.Packet.DestinationChannel, result.Packet.Sequence)
		} else {
			k.SetNextSequenceRecv(ctx, result.Packet.DestinationPort, result.Packet.DestinationChannel, result.Packet.Sequence+1)
		}
		k.SetPacketAcknowledgement(ctx, result.Packet.DestinationPort, result.Packet.DestinationChannel, result.Packet.Sequence, channeltypes.CommitAcknowledgement(result.Acknowledgement))

	case channeltypes.PacketResultAcknowledge:
		k.DeletePacketCommitment(ctx, result.Packet.SourcePort, result.Packet.SourceChannel, result.Packet.Sequence)
		if channel, found := k.GetChannel(ctx, result.Packet.SourcePort, result.Packet.SourceChannel); found && channel.Ordering == channeltypes.ORDERED {
			k.SetNextSequenceAck(ctx, result.Packet.SourcePort, result.Packet.SourceChannel, result.Packet.Sequence+1)
		}

	case channeltypes.PacketResultTimeout:
		k.DeletePacketCommitment(ctx, result.Packet.SourcePort, result.Packet.SourceChannel, result.Packet.Sequence)
		if result.CloseChannel {
			if channel, found := k.GetChannel(ctx, result.Packet.SourcePort, result.Packet.SourceChannel); found {
				channel.State = channeltypes.CLOSED
				k.SetChannel(ctx, result.Packet.SourcePort, result.Packet.SourceChannel, channel)
			}
		}
	}
}
