package routing_test

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
	"github.com/corechain/ibccore/core/exported"
	routing "github.com/corechain/ibccore/core/26-routing"
	"github.com/corechain/ibccore/corehandler"
	testkeeper "github.com/corechain/ibccore/testutil/keeper"
)

// echoModule is the simplest possible porttypes.Module: it accepts whatever
// version/order it is offered and acknowledges a packet with a fixed
// success payload unless recvKind selects NoOp or Failure. Good enough to drive ICS-26/ICS-04's own state machine
// through an end-to-end Dispatch without any application-level logic in the
// way, the same role ibc-go's own mock module plays in its core tests.
type echoModule struct {
	recvKind porttypes.RecvOutcomeKind
}

func (m *echoModule) OnChanOpenInit(ctx sdk.Context, order channeltypes.Order, hops []string, portID, channelID string, counterparty channeltypes.Counterparty, version string) (string, corehandler.Extras, error) {
	if version == "" {
		version = "echo-1"
	}
	return version, corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnChanOpenTry(ctx sdk.Context, order channeltypes.Order, hops []string, portID, channelID string, counterparty channeltypes.Counterparty, counterpartyVersion string) (string, corehandler.Extras, error) {
	return counterpartyVersion, corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnChanOpenAck(ctx sdk.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnChanOpenConfirm(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnChanCloseInit(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnChanCloseConfirm(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) porttypes.RecvPacketResult {
	kind := m.recvKind
	switch kind {
	case porttypes.RecvOutcomeNoOp:
		return porttypes.NewNoOpRecvResult(nil)
	case porttypes.RecvOutcomeFailure:
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(channeltypes.ErrInvalidPacket))
	default:
		return porttypes.NewSuccessRecvResult(channeltypes.NewResultAcknowledgement([]byte("ok")), func(sdk.Context) error { return nil })
	}
}

func (m *echoModule) OnAcknowledgementPacket(ctx sdk.Context, packet channeltypes.Packet, ack []byte, relayer string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

func (m *echoModule) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

type testHarness struct {
	ctx     sdk.Context
	channel *channelkeeper.Keeper
	hc      *routing.Context
	module  *echoModule
}

func newTestHarness(t *testing.T) testHarness {
	storeKey := storetypes.NewKVStoreKey("ibccore")
	ctx := testkeeper.ChannelStoreContext(t, storeKey)

	connReader := testkeeper.NewMockConnectionClientReader()
	connReader.Connections["connection-0"] = exported.ConnectionEnd{
		ClientId:                 "client-0",
		State:                    exported.ConnectionOpen,
		CounterpartyConnectionId: "connection-1",
	}

	cap := testkeeper.NewMockCapabilityKeeper()
	channelK := channelkeeper.NewKeeper(storeKey, cap, connReader, connReader)

	module := &echoModule{recvKind: porttypes.RecvOutcomeSuccess}
	router := porttypes.NewRouter().AddRoute("echo", module)
	require.NoError(t, router.BindPort("echo", "echo"))
	router.Seal()

	hc := &routing.Context{Channel: channelK, Router: router}
	return testHarness{ctx: ctx, channel: channelK, hc: hc, module: module}
}

func openChannel(t *testing.T, h testHarness) (portID, channelID string) {
	portID = "echo"

	openInit := channeltypes.NewChannelOpenInitMsg(channeltypes.MsgChannelOpenInitData{
		PortId: portID,
		Channel: channeltypes.ChannelEnd{
			State:          channeltypes.INIT,
			Ordering:       channeltypes.UNORDERED,
			Counterparty:   channeltypes.NewCounterparty("echo", ""),
			ConnectionHops: []string{"connection-0"},
			Version:        "echo-1",
		},
	})
	receipt, err := routing.Dispatch(h.ctx, h.hc, routing.NewChannelEnvelope(openInit))
	require.NoError(t, err)
	require.NotEmpty(t, receipt.Events)

	channelID = "channel-0"
	channel, found := h.channel.GetChannel(h.ctx, portID, channelID)
	require.True(t, found)
	require.Equal(t, channeltypes.INIT, channel.State)

	openTry := channeltypes.NewChannelOpenTryMsg(channeltypes.MsgChannelOpenTryData{
		PortId: portID,
		Channel: channeltypes.ChannelEnd{
			State:          channeltypes.TRYOPEN,
			Ordering:       channeltypes.UNORDERED,
			Counterparty:   channeltypes.NewCounterparty(portID, channelID),
			ConnectionHops: []string{"connection-0"},
			Version:        "echo-1",
		},
		CounterpartyVersion: "echo-1",
	})
	_, err = routing.Dispatch(h.ctx, h.hc, routing.NewChannelEnvelope(openTry))
	require.NoError(t, err)

	tryChannelID := "channel-1"
	openAck := channeltypes.NewChannelOpenAckMsg(channeltypes.MsgChannelOpenAckData{
		PortId: portID, ChannelId: channelID,
		CounterpartyChannelId: tryChannelID,
		CounterpartyVersion:   "echo-1",
	})
	_, err = routing.Dispatch(h.ctx, h.hc, routing.NewChannelEnvelope(openAck))
	require.NoError(t, err)

	channel, found = h.channel.GetChannel(h.ctx, portID, channelID)
	require.True(t, found)
	require.Equal(t, channeltypes.OPEN, channel.State)

	openConfirm := channeltypes.NewChannelOpenConfirmMsg(channeltypes.MsgChannelOpenConfirmData{
		PortId: portID, ChannelId: tryChannelID,
	})
	_, err = routing.Dispatch(h.ctx, h.hc, routing.NewChannelEnvelope(openConfirm))
	require.NoError(t, err)

	return portID, channelID
}

func TestChannelHandshakeOpensChannel(t *testing.T) {
	h := newTestHarness(t)
	portID, channelID := openChannel(t, h)

	channel, found := h.channel.GetChannel(h.ctx, portID, channelID)
	require.True(t, found)
	require.True(t, channel.IsOpen())
	require.Equal(t, "echo-1", channel.Version)
}

func TestSendAndRecvPacketWritesAcknowledgement(t *testing.T) {
	h := newTestHarness(t)
	portID, channelID := openChannel(t, h)

	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: portID, SourceChannel: channelID,
		DestinationPort: portID, DestinationChannel: "channel-1",
		Data:             []byte("payload"),
		TimeoutHeight:    exported.Height{RevisionNumber: 1, RevisionHeight: 1000},
		TimeoutTimestamp: 0,
	}
	_, err := channelkeeper.SendPacket(h.ctx, h.channel, packet)
	require.NoError(t, err)

	recvMsg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{
		Packet: channeltypes.Packet{
			Sequence: 1, SourcePort: portID, SourceChannel: channelID,
			DestinationPort: portID, DestinationChannel: "channel-1",
			Data:             []byte("payload"),
			TimeoutHeight:    exported.Height{RevisionNumber: 1, RevisionHeight: 1000},
			TimeoutTimestamp: 0,
		},
	})

	// destination channel end must exist from the echo module's own side
	h.channel.SetChannel(h.ctx, portID, "channel-1", channeltypes.ChannelEnd{
		State: channeltypes.OPEN, Ordering: channeltypes.UNORDERED,
		Counterparty: channeltypes.NewCounterparty(portID, channelID), ConnectionHops: []string{"connection-0"},
		Version: "echo-1",
	})
	h.channel.SetNextSequenceRecv(h.ctx, portID, "channel-1", 1)

	receipt, err := routing.Dispatch(h.ctx, h.hc, routing.NewPacketEnvelope(recvMsg))
	require.NoError(t, err)
	require.NotEmpty(t, receipt.Events)

	ack, found := h.channel.GetPacketAcknowledgement(h.ctx, portID, "channel-1", 1)
	require.True(t, found)
	require.NotEmpty(t, ack)
}

func TestRecvPacketReplayIsNoOp(t *testing.T) {
	h := newTestHarness(t)
	portID, channelID := openChannel(t, h)

	h.channel.SetChannel(h.ctx, portID, "channel-1", channeltypes.ChannelEnd{
		State: channeltypes.OPEN, Ordering: channeltypes.UNORDERED,
		Counterparty: channeltypes.NewCounterparty(portID, channelID), ConnectionHops: []string{"connection-0"},
		Version: "echo-1",
	})
	h.channel.SetNextSequenceRecv(h.ctx, portID, "channel-1", 1)
	h.channel.SetPacketReceipt(h.ctx, portID, "channel-1", 1)
	h.channel.SetPacketAcknowledgement(h.ctx, portID, "channel-1", 1, channeltypes.CommitAcknowledgement([]byte("prior-ack")))

	recvMsg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{
		Packet: channeltypes.Packet{
			Sequence: 1, SourcePort: portID, SourceChannel: channelID,
			DestinationPort: portID, DestinationChannel: "channel-1",
			Data:             []byte("payload"),
			TimeoutHeight:    exported.Height{RevisionNumber: 1, RevisionHeight: 1000},
			TimeoutTimestamp: 0,
		},
	})

	receipt, err := routing.Dispatch(h.ctx, h.hc, routing.NewPacketEnvelope(recvMsg))
	require.NoError(t, err)
	require.Empty(t, receipt.Events)
}

// stubDecoder drives Deliver without a real protobuf Any decoder behind it.
type stubDecoder struct {
	env routing.Envelope
	err error
}

func (d stubDecoder) Decode([]byte) (routing.Envelope, error) { return d.env, d.err }

func TestDispatchClientMsgRunsHandlerAndStoresResult(t *testing.T) {
	h := newTestHarness(t)

	var stored any
	h.hc.HandleClientMsg = func(ctx sdk.Context, msg routing.ClientMsg) (routing.ClientResult, []sdk.Event, []string, error) {
		return "client-result", []sdk.Event{sdk.NewEvent("create_client")}, []string{"created client"}, nil
	}
	h.hc.StoreClientResult = func(ctx sdk.Context, result any) error {
		stored = result
		return nil
	}

	receipt, err := routing.Dispatch(h.ctx, h.hc, routing.NewClientEnvelope("create-client"))
	require.NoError(t, err)
	require.Equal(t, "client-result", stored)
	require.Len(t, receipt.Events, 1)
	require.Equal(t, []string{"created client"}, receipt.Log)
}

func TestDispatchConnectionMsgWithoutHandlerFails(t *testing.T) {
	h := newTestHarness(t)
	_, err := routing.Dispatch(h.ctx, h.hc, routing.NewConnectionEnvelope("conn-open-init"))
	require.Error(t, err)
}

func TestDispatchUnboundPortFails(t *testing.T) {
	h := newTestHarness(t)

	msg := channeltypes.NewChannelOpenInitMsg(channeltypes.MsgChannelOpenInitData{
		PortId: "unbound",
		Channel: channeltypes.ChannelEnd{
			State:          channeltypes.INIT,
			Ordering:       channeltypes.UNORDERED,
			ConnectionHops: []string{"connection-0"},
		},
	})
	_, err := routing.Dispatch(h.ctx, h.hc, routing.NewChannelEnvelope(msg))
	require.ErrorIs(t, err, channeltypes.ErrRouteNotFound)
}

func TestDeliverDecodesThenDispatches(t *testing.T) {
	h := newTestHarness(t)
	h.hc.HandleClientMsg = func(ctx sdk.Context, msg routing.ClientMsg) (routing.ClientResult, []sdk.Event, []string, error) {
		return nil, nil, []string{"handled"}, nil
	}
	h.hc.StoreClientResult = func(sdk.Context, any) error { return nil }

	receipt, err := routing.Deliver(h.ctx, h.hc, stubDecoder{env: routing.NewClientEnvelope("raw")}, []byte("raw-bytes"))
	require.NoError(t, err)
	require.Equal(t, []string{"handled"}, receipt.Log)
}
