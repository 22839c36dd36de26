package keeper_test

import (
	"testing"

	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/core/exported"
	testkeeper "github.com/corechain/ibccore/testutil/keeper"
)

const (
	plPortA    = "transfer"
	plChannelA = "channel-0"
	plPortB    = "transfer"
	plChannelB = "channel-1"
)

type packetFixture struct {
	ctx sdk.Context
	k   *channelkeeper.Keeper
}

func newPacketFixture(t *testing.T, ordering channeltypes.Order) packetFixture {
	storeKey := storetypes.NewKVStoreKey("ibccore")
	ctx := testkeeper.ChannelStoreContext(t, storeKey)
	connReader := testkeeper.NewMockConnectionClientReader()
	connReader.Connections["connection-0"] = exported.ConnectionEnd{
		State: exported.ConnectionOpen, CounterpartyConnectionId: "connection-1",
	}
	cap := testkeeper.NewMockCapabilityKeeper()
	k := channelkeeper.NewKeeper(storeKey, cap, connReader, connReader)

	k.SetChannel(ctx, plPortA, plChannelA, channeltypes.ChannelEnd{
		State: channeltypes.OPEN, Ordering: ordering,
		Counterparty: channeltypes.NewCounterparty(plPortB, plChannelB), ConnectionHops: []string{"connection-0"},
	})
	k.SetChannel(ctx, plPortB, plChannelB, channeltypes.ChannelEnd{
		State: channeltypes.OPEN, Ordering: ordering,
		Counterparty: channeltypes.NewCounterparty(plPortA, plChannelA), ConnectionHops: []string{"connection-0"},
	})
	k.SetNextSequenceSend(ctx, plPortA, plChannelA, 1)
	k.SetNextSequenceRecv(ctx, plPortA, plChannelA, 1)
	k.SetNextSequenceAck(ctx, plPortA, plChannelA, 1)
	k.SetNextSequenceSend(ctx, plPortB, plChannelB, 1)
	k.SetNextSequenceRecv(ctx, plPortB, plChannelB, 1)
	k.SetNextSequenceAck(ctx, plPortB, plChannelB, 1)

	return packetFixture{ctx: ctx, k: k}
}

func testPacket(seq uint64) channeltypes.Packet {
	return channeltypes.Packet{
		Sequence: seq, SourcePort: plPortA, SourceChannel: plChannelA,
		DestinationPort: plPortB, DestinationChannel: plChannelB,
		Data:             []byte("payload"),
		TimeoutHeight:    exported.Height{RevisionHeight: 1000},
		TimeoutTimestamp: 0,
	}
}

func TestSendPacketRejectsWrongSequence(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(2) // next expected is 1
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.ErrorIs(t, err, channeltypes.ErrInvalidPacketSequence)
}

func TestSendPacketRejectsNonOpenChannel(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	channel, _ := f.k.GetChannel(f.ctx, plPortA, plChannelA)
	channel.State = channeltypes.CLOSED
	f.k.SetChannel(f.ctx, plPortA, plChannelA, channel)

	_, err := channelkeeper.SendPacket(f.ctx, f.k, testPacket(1))
	require.ErrorIs(t, err, channeltypes.ErrInvalidChannelState)
}

func TestSendPacketWritesCommitmentAndAdvancesSequence(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	_, err := channelkeeper.SendPacket(f.ctx, f.k, testPacket(1))
	require.NoError(t, err)

	commitment, found := f.k.GetPacketCommitment(f.ctx, plPortA, plChannelA, 1)
	require.True(t, found)
	require.Equal(t, channeltypes.CommitPacket(testPacket(1)), commitment)

	next, found := f.k.GetNextSequenceSend(f.ctx, plPortA, plChannelA)
	require.True(t, found)
	require.Equal(t, uint64(2), next)
}

func TestRecvPacketUnorderedReplayIsNoOp(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)

	f.k.SetPacketReceipt(f.ctx, plPortB, plChannelB, 1)
	priorAck := []byte(`{"result":"b2s="}`)
	f.k.SetPacketAcknowledgement(f.ctx, plPortB, plChannelB, 1, channeltypes.CommitAcknowledgement(priorAck))

	msg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{Packet: packet})
	builder, err := channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.NoError(t, err)
	require.True(t, builder.Result().AlreadyReceived)
	require.Equal(t, channeltypes.RecvNoOp, builder.Result().RecvOutcome)
}

func TestRecvPacketOrderedEnforcesSequence(t *testing.T) {
	f := newPacketFixture(t, channeltypes.ORDERED)
	packet := testPacket(1)
	packet.Sequence = 2 // ordered channel expects 1 first

	msg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{Packet: packet})
	_, err := channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.ErrorIs(t, err, channeltypes.ErrInvalidPacketSequence)
}

func TestCommitPacketResultUnorderedSetsReceiptAndAck(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	msg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{Packet: packet})

	result := channeltypes.PacketResult{
		Kind: channeltypes.PacketResultRecv, Packet: packet,
		RecvOutcome: channeltypes.RecvWriteAck, Acknowledgement: []byte(`{"result":"b2s="}`),
	}
	channelkeeper.CommitPacketResult(f.ctx, f.k, msg, result)

	require.True(t, f.k.GetPacketReceipt(f.ctx, plPortB, plChannelB, 1))
	_, found := f.k.GetPacketAcknowledgement(f.ctx, plPortB, plChannelB, 1)
	require.True(t, found)
}

func TestCommitPacketResultOrderedAdvancesNextSequenceRecv(t *testing.T) {
	f := newPacketFixture(t, channeltypes.ORDERED)
	packet := testPacket(1)
	msg := channeltypes.NewRecvPacketMsg(channeltypes.MsgRecvPacketData{Packet: packet})

	result := channeltypes.PacketResult{
		Kind: channeltypes.PacketResultRecv, Packet: packet,
		RecvOutcome: channeltypes.RecvWriteAck, Acknowledgement: []byte(`{"result":"b2s="}`),
	}
	channelkeeper.CommitPacketResult(f.ctx, f.k, msg, result)

	next, found := f.k.GetNextSequenceRecv(f.ctx, plPortB, plChannelB)
	require.True(t, found)
	require.Equal(t, uint64(2), next)
}

func TestAcknowledgePacketDrainsAfterChannelClosed(t *testing.T) {
	f := newPacketFixture(t, channeltypes.ORDERED)
	packet := testPacket(1)
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.NoError(t, err)

	channel, _ := f.k.GetChannel(f.ctx, plPortA, plChannelA)
	channel.State = channeltypes.CLOSED
	f.k.SetChannel(f.ctx, plPortA, plChannelA, channel)

	ackBytes := []byte(`{"result":"b2s="}`)
	msg := channeltypes.NewAcknowledgePacketMsg(channeltypes.MsgAcknowledgePacketData{Packet: packet, Acknowledgement: ackBytes})
	builder, err := channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.NoError(t, err)
	require.Equal(t, channeltypes.PacketResultAcknowledge, builder.Result().Kind)
}

func TestAcknowledgePacketRejectsMismatchedCommitment(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.NoError(t, err)

	tampered := packet
	tampered.Data = []byte("different-payload")
	ackBytes := []byte(`{"result":"b2s="}`)
	msg := channeltypes.NewAcknowledgePacketMsg(channeltypes.MsgAcknowledgePacketData{Packet: tampered, Acknowledgement: ackBytes})
	_, err = channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.ErrorIs(t, err, channeltypes.ErrInvalidPacket)
}

func TestTimeoutPacketOrderedClosesChannel(t *testing.T) {
	f := newPacketFixture(t, channeltypes.ORDERED)
	packet := testPacket(1) // TimeoutHeight 1000, host height 1 at send: not yet past
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.NoError(t, err)

	// Advance the host height past the packet's timeout before processing
	// the timeout message, without touching the store the packet commitment
	// was written to.
	laterCtx := f.ctx.WithBlockHeight(2000)

	msg := channeltypes.NewTimeoutPacketMsg(channeltypes.MsgTimeoutPacketData{Packet: packet, NextSequenceRecv: 1})
	builder, err := channelkeeper.DispatchPacketMsg(laterCtx, f.k, msg)
	require.NoError(t, err)
	require.True(t, builder.Result().CloseChannel)

	channelkeeper.CommitPacketResult(laterCtx, f.k, msg, builder.Result())
	channel, found := f.k.GetChannel(laterCtx, plPortA, plChannelA)
	require.True(t, found)
	require.Equal(t, channeltypes.CLOSED, channel.State)
}

func TestTimeoutPacketUnorderedDoesNotCloseChannel(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.NoError(t, err)

	laterCtx := f.ctx.WithBlockHeight(2000)

	msg := channeltypes.NewTimeoutPacketMsg(channeltypes.MsgTimeoutPacketData{Packet: packet})
	builder, err := channelkeeper.DispatchPacketMsg(laterCtx, f.k, msg)
	require.NoError(t, err)
	require.False(t, builder.Result().CloseChannel)

	channelkeeper.CommitPacketResult(laterCtx, f.k, msg, builder.Result())
	channel, found := f.k.GetChannel(laterCtx, plPortA, plChannelA)
	require.True(t, found)
	require.Equal(t, channeltypes.OPEN, channel.State)

	_, found = f.k.GetPacketCommitment(laterCtx, plPortA, plChannelA, 1)
	require.False(t, found)
}

func TestTimeoutPacketRejectsWhenNotYetElapsed(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1) // timeout height 1000, host height is 1: not elapsed
	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.NoError(t, err)

	msg := channeltypes.NewTimeoutPacketMsg(channeltypes.MsgTimeoutPacketData{Packet: packet})
	_, err = channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.ErrorIs(t, err, channeltypes.ErrPacketNotTimedOut)
}

func TestSendPacketRejectsNoTimeoutByDefault(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	packet.TimeoutHeight = exported.Height{}
	packet.TimeoutTimestamp = 0

	_, err := channelkeeper.SendPacket(f.ctx, f.k, packet)
	require.ErrorIs(t, err, channeltypes.ErrPacketHasNoTimeout)
}

func TestSendPacketAllowNoTimeoutOptsIn(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	packet.TimeoutHeight = exported.Height{}
	packet.TimeoutTimestamp = 0

	_, err := channelkeeper.SendPacketAllowNoTimeout(f.ctx, f.k, packet)
	require.NoError(t, err)

	commitment, found := f.k.GetPacketCommitment(f.ctx, plPortA, plChannelA, 1)
	require.True(t, found)
	require.Equal(t, channeltypes.CommitPacket(packet), commitment)
}

func TestTimeoutPacketRejectsPacketWithNoTimeout(t *testing.T) {
	f := newPacketFixture(t, channeltypes.UNORDERED)
	packet := testPacket(1)
	packet.TimeoutHeight = exported.Height{}
	packet.TimeoutTimestamp = 0

	_, err := channelkeeper.SendPacketAllowNoTimeout(f.ctx, f.k, packet)
	require.NoError(t, err)

	msg := channeltypes.NewTimeoutPacketMsg(channeltypes.MsgTimeoutPacketData{Packet: packet})
	_, err = channelkeeper.DispatchPacketMsg(f.ctx, f.k, msg)
	require.ErrorIs(t, err, channeltypes.ErrPacketHasNoTimeout)
}
