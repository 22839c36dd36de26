package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	host "github.com/corechain/ibccore/core/24-host"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
	"github.com/corechain/ibccore/core/exported"
	"github.com/corechain/ibccore/corehandler"
)

const (
	connectionOpen = exported.ConnectionOpen
	connectionInit = exported.ConnectionInit
)

// ValidateChannelMsg is channel_validate: before any handshake message is
// processed, the port it targets must have a module bound to it. This is
// checked once, up front, so every per-kind process function below can
// assume a route exists.
func ValidateChannelMsg(router *porttypes.Router, msg channeltypes.ChannelMsg) (porttypes.Module, error) {
	module, err := router.LookupModuleByPort(msg.PortID())
	if err != nil {
		return nil, errorsmod.Wrap(channeltypes.ErrRouteNotFound, err.Error())
	}
	return module, nil
}

// DispatchChannelMsg is channel_dispatch: it routes a ChannelMsg to the
// per-kind process function and returns the resulting ChannelResult with no
// events yet attached: events are built only after channel_callback has
// had a chance to negotiate the final version.
func DispatchChannelMsg(ctx sdk.Context, k *Keeper, msg channeltypes.ChannelMsg) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	switch msg.Kind {
	case channeltypes.MsgChannelOpenInit:
		return processChanOpenInit(ctx, k, *msg.OpenInit)
	case channeltypes.MsgChannelOpenTry:
		return processChanOpenTry(ctx, k, *msg.OpenTry)
	case channeltypes.MsgChannelOpenAck:
		return processChanOpenAck(ctx, k, *msg.OpenAck)
	case channeltypes.MsgChannelOpenConfirm:
		return processChanOpenConfirm(ctx, k, *msg.OpenConfirm)
	case channeltypes.MsgChannelCloseInit:
		return processChanCloseInit(ctx, k, *msg.CloseInit)
	case channeltypes.MsgChannelCloseConfirm:
		return processChanCloseConfirm(ctx, k, *msg.CloseConfirm)
	default:
		return nil, fmt.Errorf("unknown channel message kind %d", msg.Kind)
	}
}

func processChanOpenInit(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelOpenInitData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	if msg.Channel.State != channeltypes.INIT {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel state must be INIT in MsgChannelOpenInit, got %s", msg.Channel.State)
	}
	if len(msg.Channel.ConnectionHops) != 1 {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidConnectionHops, "channel must have exactly one connection hop")
	}
	conn, found := k.GetConnection(ctx, msg.Channel.ConnectionHops[0])
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrConnectionNotFound, "connection %s", msg.Channel.ConnectionHops[0])
	}
	if conn.State != connectionOpen && conn.State != connectionInit {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be in state INIT or OPEN for ChanOpenInit")
	}

	counter := k.GetChannelCounter(ctx)
	channelID := generateChannelID(counter)

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      channelID,
		ChannelIdState: channeltypes.ChannelIdGenerated,
		ChannelEnd:     msg.Channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s initialized", msg.PortId, channelID)), nil
}

func processChanOpenTry(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelOpenTryData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	if msg.Channel.State != channeltypes.TRYOPEN {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel state must be TRYOPEN in MsgChannelOpenTry, got %s", msg.Channel.State)
	}
	if len(msg.Channel.ConnectionHops) != 1 {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidConnectionHops, "channel must have exactly one connection hop")
	}
	conn, found := k.GetConnection(ctx, msg.Channel.ConnectionHops[0])
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrConnectionNotFound, "connection %s", msg.Channel.ConnectionHops[0])
	}
	if conn.State != connectionOpen {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be OPEN for ChanOpenTry")
	}

	expected := channeltypes.ChannelEnd{
		State:          channeltypes.INIT,
		Ordering:       msg.Channel.Ordering,
		Counterparty:   channeltypes.NewCounterparty(msg.PortId, ""),
		ConnectionHops: []string{conn.CounterpartyConnectionId},
		Version:        msg.CounterpartyVersion,
	}
	if err := verifyChannelState(ctx, k, conn, msg.ProofHeight, msg.ProofInit, msg.Channel.Counterparty.PortId, msg.Channel.Counterparty.ChannelId, expected); err != nil {
		return nil, err
	}

	var channelID string
	var idState channeltypes.ChannelIdState
	if msg.PreviousChannelId == "" {
		counter := k.GetChannelCounter(ctx)
		channelID = generateChannelID(counter)
		idState = channeltypes.ChannelIdGenerated
	} else {
		existing, found := k.GetChannel(ctx, msg.PortId, msg.PreviousChannelId)
		if !found || existing.State != channeltypes.INIT {
			return nil, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "previous_channel_id does not reference a channel in state INIT")
		}
		channelID = msg.PreviousChannelId
		idState = channeltypes.ChannelIdReused
	}

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      channelID,
		ChannelIdState: idState,
		ChannelEnd:     msg.Channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s try-opened", msg.PortId, channelID)), nil
}

func processChanOpenAck(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelOpenAckData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	channel, found := k.GetChannel(ctx, msg.PortId, msg.ChannelId)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortId, msg.ChannelId)
	}
	if channel.State != channeltypes.INIT {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel must be in state INIT for ChanOpenAck, got %s", channel.State)
	}
	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found || conn.State != connectionOpen {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be OPEN for ChanOpenAck")
	}

	expected := channeltypes.ChannelEnd{
		State:          channeltypes.TRYOPEN,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.NewCounterparty(msg.PortId, msg.ChannelId),
		ConnectionHops: []string{conn.CounterpartyConnectionId},
		Version:        msg.CounterpartyVersion,
	}
	if err := verifyChannelState(ctx, k, conn, msg.ProofHeight, msg.ProofTry, channel.Counterparty.PortId, msg.CounterpartyChannelId, expected); err != nil {
		return nil, err
	}

	channel.State = channeltypes.OPEN
	channel.Version = msg.CounterpartyVersion
	channel.Counterparty.ChannelId = msg.CounterpartyChannelId

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      msg.ChannelId,
		ChannelIdState: channeltypes.ChannelIdReused,
		ChannelEnd:     channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s opened (ack)", msg.PortId, msg.ChannelId)), nil
}

func processChanOpenConfirm(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelOpenConfirmData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	channel, found := k.GetChannel(ctx, msg.PortId, msg.ChannelId)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortId, msg.ChannelId)
	}
	if channel.State != channeltypes.TRYOPEN {
		return nil, errorsmod.Wrapf(channeltypes.ErrInvalidChannelState, "channel must be in state TRYOPEN for ChanOpenConfirm, got %s", channel.State)
	}
	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found || conn.State != connectionOpen {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be OPEN for ChanOpenConfirm")
	}

	expected := channeltypes.ChannelEnd{
		State:          channeltypes.OPEN,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.NewCounterparty(msg.PortId, msg.ChannelId),
		ConnectionHops: []string{conn.CounterpartyConnectionId},
		Version:        channel.Version,
	}
	if err := verifyChannelState(ctx, k, conn, msg.ProofHeight, msg.ProofAck, channel.Counterparty.PortId, channel.Counterparty.ChannelId, expected); err != nil {
		return nil, err
	}

	channel.State = channeltypes.OPEN

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      msg.ChannelId,
		ChannelIdState: channeltypes.ChannelIdReused,
		ChannelEnd:     channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s opened (confirm)", msg.PortId, msg.ChannelId)), nil
}

func processChanCloseInit(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelCloseInitData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	channel, found := k.GetChannel(ctx, msg.PortId, msg.ChannelId)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortId, msg.ChannelId)
	}
	if channel.State == channeltypes.CLOSED {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "channel is already CLOSED")
	}
	channel.State = channeltypes.CLOSED

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      msg.ChannelId,
		ChannelIdState: channeltypes.ChannelIdReused,
		ChannelEnd:     channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s closed (init)", msg.PortId, msg.ChannelId)), nil
}

func processChanCloseConfirm(ctx sdk.Context, k *Keeper, msg channeltypes.MsgChannelCloseConfirmData) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	channel, found := k.GetChannel(ctx, msg.PortId, msg.ChannelId)
	if !found {
		return nil, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", msg.PortId, msg.ChannelId)
	}
	if channel.State == channeltypes.CLOSED {
		return nil, errorsmod.Wrap(channeltypes.ErrInvalidChannelState, "channel is already CLOSED")
	}
	conn, found := k.GetConnection(ctx, channel.ConnectionHops[0])
	if !found || conn.State != connectionOpen {
		return nil, errorsmod.Wrap(channeltypes.ErrConnectionNotOpen, "connection must be OPEN for ChanCloseConfirm")
	}

	expected := channeltypes.ChannelEnd{
		State:          channeltypes.CLOSED,
		Ordering:       channel.Ordering,
		Counterparty:   channeltypes.NewCounterparty(msg.PortId, msg.ChannelId),
		ConnectionHops: []string{conn.CounterpartyConnectionId},
		Version:        channel.Version,
	}
	if err := verifyChannelState(ctx, k, conn, msg.ProofHeight, msg.ProofInit, channel.Counterparty.PortId, channel.Counterparty.ChannelId, expected); err != nil {
		return nil, err
	}

	channel.State = channeltypes.CLOSED

	result := channeltypes.ChannelResult{
		PortId:         msg.PortId,
		ChannelId:      msg.ChannelId,
		ChannelIdState: channeltypes.ChannelIdReused,
		ChannelEnd:     channel,
	}
	return corehandler.NewBuilder(result).
		Log(fmt.Sprintf("channel %s/%s closed (confirm)", msg.PortId, msg.ChannelId)), nil
}

// InvokeChannelCallback is channel_callback: it routes to the bound
// module's handshake callback and, for Init/Try only, lets the module
// overwrite the negotiated version recorded on the builder's ChannelEnd.
// The module can contribute log lines and events (Extras) but can never
// touch ChannelResult.State, .Counterparty, or .ConnectionHops.
func InvokeChannelCallback(ctx sdk.Context, module porttypes.Module, msg channeltypes.ChannelMsg, builder *corehandler.Builder[channeltypes.ChannelResult]) (*corehandler.Builder[channeltypes.ChannelResult], error) {
	result := builder.Result()

	switch msg.Kind {
	case channeltypes.MsgChannelOpenInit:
		version, extras, err := module.OnChanOpenInit(ctx, result.ChannelEnd.Ordering, result.ChannelEnd.ConnectionHops, result.PortId, result.ChannelId, result.ChannelEnd.Counterparty, result.ChannelEnd.Version)
		if err != nil {
			return nil, err
		}
		result.ChannelEnd.Version = version
		return builder.WithResult(result).MergeExtras(extras), nil

	case channeltypes.MsgChannelOpenTry:
		version, extras, err := module.OnChanOpenTry(ctx, result.ChannelEnd.Ordering, result.ChannelEnd.ConnectionHops, result.PortId, result.ChannelId, result.ChannelEnd.Counterparty, result.ChannelEnd.Version)
		if err != nil {
			return nil, err
		}
		result.ChannelEnd.Version = version
		return builder.WithResult(result).MergeExtras(extras), nil

	case channeltypes.MsgChannelOpenAck:
		extras, err := module.OnChanOpenAck(ctx, result.PortId, result.ChannelId, result.ChannelEnd.Counterparty.ChannelId, result.ChannelEnd.Version)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	case channeltypes.MsgChannelOpenConfirm:
		extras, err := module.OnChanOpenConfirm(ctx, result.PortId, result.ChannelId)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	case channeltypes.MsgChannelCloseInit:
		extras, err := module.OnChanCloseInit(ctx, result.PortId, result.ChannelId)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	case channeltypes.MsgChannelCloseConfirm:
		extras, err := module.OnChanCloseConfirm(ctx, result.PortId, result.ChannelId)
		if err != nil {
			return nil, err
		}
		return builder.MergeExtras(extras), nil

	default:
		return nil, fmt.Errorf("unknown channel message kind %d", msg.Kind)
	}
}

// BuildChannelEvent is channel_events: it is run only after the callback
// has finalized the channel's version, so the event it emits always
// reflects what was actually negotiated.
func BuildChannelEvent(msg channeltypes.ChannelMsg, result channeltypes.ChannelResult) sdk.Event {
	switch msg.Kind {
	case channeltypes.MsgChannelOpenInit:
		return channeltypes.NewChannelOpenInitEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	case channeltypes.MsgChannelOpenTry:
		return channeltypes.NewChannelOpenTryEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	case channeltypes.MsgChannelOpenAck:
		return channeltypes.NewChannelOpenAckEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	case channeltypes.MsgChannelOpenConfirm:
		return channeltypes.NewChannelOpenConfirmEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	case channeltypes.MsgChannelCloseInit:
		return channeltypes.NewChannelCloseInitEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	default:
		return channeltypes.NewChannelCloseConfirmEvent(result.PortId, result.ChannelId, result.ChannelEnd)
	}
}

// CommitChannelResult writes the final ChannelResult to the store,
// allocating the channel sequence counter's next value and claiming the
// channel's owning capability if this message generated a fresh channel id.
// The capability is claimed here, once, at the one place a channel id is
// ever minted; the handshake and packet handlers in this package do not
// authenticate it afterwards.
func CommitChannelResult(ctx sdk.Context, k *Keeper, result channeltypes.ChannelResult) error {
	k.SetChannel(ctx, result.PortId, result.ChannelId, result.ChannelEnd)
	if result.ChannelIdState == channeltypes.ChannelIdGenerated {
		k.SetChannelCounter(ctx, k.GetChannelCounter(ctx)+1)
		k.SetNextSequenceSend(ctx, result.PortId, result.ChannelId, 1)
		k.SetNextSequenceRecv(ctx, result.PortId, result.ChannelId, 1)
		k.SetNextSequenceAck(ctx, result.PortId, result.ChannelId, 1)

		cap, err := k.NewChannelCapability(ctx, result.PortId, result.ChannelId)
		if err != nil {
			return errorsmod.Wrap(err, "claiming channel capability")
		}
		if err := k.ClaimCapability(ctx, cap, k.ChannelCapabilityName(result.PortId, result.ChannelId)); err != nil {
			return errorsmod.Wrap(err, "claiming channel capability")
		}
	}
	return nil
}

func generateChannelID(counter uint64) string {
	return host.GenerateChannelIdentifier(counter)
}
