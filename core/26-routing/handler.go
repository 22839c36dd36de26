package routing

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
)

// Dispatch is the one function every ICS-26 message, of any of the four
// kinds, passes through. It never trusts a module's callback with
// anything but refining the protocol-level result the core already
// computed: a module cannot corrupt channel state, fabricate a packet
// commitment, or skip a proof check. The only place a module can change an
// outcome is the deferred RecvPacketResult veto on RecvPacket, and even
// that is bounded to NoOp-or-not, never to the protocol values themselves.
func Dispatch(ctx sdk.Context, hc *Context, env Envelope) (MsgReceipt, error) {
	switch env.Kind {
	case EnvelopeClient:
		return dispatchClient(ctx, hc, env.Client)
	case EnvelopeConnection:
		return dispatchConnection(ctx, hc, env.Connection)
	case EnvelopeChannel:
		return dispatchChannel(ctx, hc, env.Channel)
	case EnvelopePacket:
		return dispatchPacket(ctx, hc, env.Packet)
	default:
		return MsgReceipt{}, fmt.Errorf("unknown envelope kind %d", env.Kind)
	}
}

// Deliver is the thin decode-then-dispatch convenience entry point a host
// ABCI handler actually calls: it hands raw bytes to the injected Decoder
// and dispatches whatever Envelope comes back. Dispatch remains the
// primary, directly testable entry point; Deliver exists only to avoid
// making every caller decode by hand.
func Deliver(ctx sdk.Context, hc *Context, decoder Decoder, raw []byte) (MsgReceipt, error) {
	env, err := decoder.Decode(raw)
	if err != nil {
		return MsgReceipt{}, fmt.Errorf("decoding message: %w", err)
	}
	return Dispatch(ctx, hc, env)
}

func dispatchClient(ctx sdk.Context, hc *Context, msg ClientMsg) (MsgReceipt, error) {
	if hc.HandleClientMsg == nil {
		return MsgReceipt{}, fmt.Errorf("no client message handler configured")
	}
	result, events, log, err := hc.HandleClientMsg(ctx, msg)
	if err != nil {
		return MsgReceipt{}, err
	}
	if err := hc.StoreClientResult(ctx, result); err != nil {
		return MsgReceipt{}, err
	}
	return MsgReceipt{Events: events, Log: log}, nil
}

func dispatchConnection(ctx sdk.Context, hc *Context, msg ConnectionMsg) (MsgReceipt, error) {
	if hc.HandleConnMsg == nil {
		return MsgReceipt{}, fmt.Errorf("no connection message handler configured")
	}
	result, events, log, err := hc.HandleConnMsg(ctx, msg)
	if err != nil {
		return MsgReceipt{}, err
	}
	if err := hc.StoreConnResult(ctx, result); err != nil {
		return MsgReceipt{}, err
	}
	return MsgReceipt{Events: events, Log: log}, nil
}

func dispatchChannel(ctx sdk.Context, hc *Context, msg channeltypes.ChannelMsg) (MsgReceipt, error) {
	module, err := channelkeeper.ValidateChannelMsg(hc.Router, msg)
	if err != nil {
		return MsgReceipt{}, err
	}

	builder, err := channelkeeper.DispatchChannelMsg(ctx, hc.Channel, msg)
	if err != nil {
		return MsgReceipt{}, err
	}

	builder, err = channelkeeper.InvokeChannelCallback(ctx, module, msg, builder)
	if err != nil {
		return MsgReceipt{}, err
	}

	result := builder.Result()
	event := channelkeeper.BuildChannelEvent(msg, result)
	builder = builder.Emit(event)

	if err := channelkeeper.CommitChannelResult(ctx, hc.Channel, result); err != nil {
		return MsgReceipt{}, err
	}

	return MsgReceipt{Events: builder.Events(), Log: builder.Logs()}, nil
}

func dispatchPacket(ctx sdk.Context, hc *Context, msg channeltypes.PacketMsg) (MsgReceipt, error) {
	module, err := channelkeeper.ValidatePacketMsg(hc.Router, msg)
	if err != nil {
		return MsgReceipt{}, err
	}

	builder, err := channelkeeper.DispatchPacketMsg(ctx, hc.Channel, msg)
	if err != nil {
		return MsgReceipt{}, err
	}

	relayer := relayerFromPacketMsg(msg)

	if msg.Kind == channeltypes.MsgRecvPacket && builder.Result().AlreadyReceived {
		// A replayed packet already carries its prior acknowledgement
		// (see processRecvPacket); the module never runs again and
		// nothing new is written.
		return MsgReceipt{Log: builder.Logs()}, nil
	}

	builder, err = channelkeeper.InvokePacketCallback(ctx, hc.Channel, module, msg, builder, relayer)
	if err != nil {
		return MsgReceipt{}, err
	}

	result := builder.Result()
	event := channelkeeper.BuildPacketEvent(msg, result)
	builder = builder.Emit(event)

	channelkeeper.CommitPacketResult(ctx, hc.Channel, msg, result)

	return MsgReceipt{Events: builder.Events(), Log: builder.Logs()}, nil
}

func relayerFromPacketMsg(msg channeltypes.PacketMsg) string {
	switch msg.Kind {
	case channeltypes.MsgRecvPacket:
		return msg.Recv.Signer
	case channeltypes.MsgAcknowledgePacket:
		return msg.Acknowledge.Signer
	case channeltypes.MsgTimeoutPacket:
		return msg.Timeout.Signer
	case channeltypes.MsgTimeoutOnClosePacket:
		return msg.TimeoutOnClose.Signer
	default:
		return ""
	}
}
