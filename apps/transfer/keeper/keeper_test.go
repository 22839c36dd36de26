package keeper_test

import (
	"testing"

	"cosmossdk.io/math"
	storetypes "cosmossdk.io/store/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
	"github.com/corechain/ibccore/core/exported"

	transferkeeper "github.com/corechain/ibccore/apps/transfer/keeper"
	"github.com/corechain/ibccore/apps/transfer/types"
	testkeeper "github.com/corechain/ibccore/testutil/keeper"
)

const (
	sourcePort    = "transfer"
	sourceChannel = "channel-0"
	destPort      = "transfer"
	destChannel   = "channel-1"
)

type fixture struct {
	ctx     sdk.Context
	channel *channelkeeper.Keeper
	bank    *testkeeper.MockBankKeeper
	keeper  *transferkeeper.Keeper
}

func setupTransferFixture(t *testing.T) fixture {
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

	channelK.SetChannel(ctx, sourcePort, sourceChannel, channeltypes.ChannelEnd{
		State:          channeltypes.OPEN,
		Ordering:       channeltypes.UNORDERED,
		Counterparty:   channeltypes.NewCounterparty(destPort, destChannel),
		ConnectionHops: []string{"connection-0"},
		Version:        types.Version,
	})
	channelK.SetNextSequenceSend(ctx, sourcePort, sourceChannel, 1)
	channelK.SetNextSequenceRecv(ctx, sourcePort, sourceChannel, 1)
	channelK.SetNextSequenceAck(ctx, sourcePort, sourceChannel, 1)

	bank := testkeeper.NewMockBankKeeper()
	k := transferkeeper.NewKeeper(channelK, bank, cap)

	return fixture{ctx: ctx, channel: channelK, bank: bank, keeper: k}
}

func TestSendTransferEscrowsNativeToken(t *testing.T) {
	f := setupTransferFixture(t)

	sender := sdk.AccAddress([]byte("sender______________"))
	f.bank.SetBalance(sender, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(1000))))

	seq, err := f.keeper.SendTransfer(
		f.ctx, sourcePort, sourceChannel,
		sdk.NewCoin("uatom", math.NewInt(100)),
		sender, "cosmos1receiver",
		exported.Height{RevisionNumber: 1, RevisionHeight: 1000}, 0,
	)
	require.NoError(t, err)
	require.Equal(t, uint64(1), seq)

	escrowAddr, err := f.keeper.GetChannelEscrowAddress(sourcePort, sourceChannel)
	require.NoError(t, err)
	require.Equal(t, math.NewInt(100), f.bank.Balance(escrowAddr).AmountOf("uatom"))
	require.Equal(t, math.NewInt(900), f.bank.Balance(sender).AmountOf("uatom"))

	commitment, found := f.channel.GetPacketCommitment(f.ctx, sourcePort, sourceChannel, 1)
	require.True(t, found)
	require.NotEmpty(t, commitment)
}

func TestSendTransferDisabled(t *testing.T) {
	f := setupTransferFixture(t)
	f.keeper.SetSendEnabled(false)

	sender := sdk.AccAddress([]byte("sender______________"))
	_, err := f.keeper.SendTransfer(
		f.ctx, sourcePort, sourceChannel,
		sdk.NewCoin("uatom", math.NewInt(100)),
		sender, "cosmos1receiver",
		exported.Height{RevisionNumber: 1, RevisionHeight: 1000}, 0,
	)
	require.ErrorIs(t, err, types.ErrSendDisabled)
}

func TestOnRecvPacketMintsVoucherForNewDenom(t *testing.T) {
	f := setupTransferFixture(t)

	receiver := sdk.AccAddress([]byte("receiver____________"))
	data := types.PacketData{Denom: "uatom", Amount: "50", Sender: "cosmos1sender", Receiver: receiver.String()}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: destPort, SourceChannel: destChannel,
		DestinationPort: sourcePort, DestinationChannel: sourceChannel,
		Data:             data.Marshal(),
		TimeoutHeight:    exported.Height{RevisionNumber: 1, RevisionHeight: 1000},
		TimeoutTimestamp: 0,
	}

	result := f.keeper.OnRecvPacket(f.ctx, packet, testkeeper.NewRelayerSigner())
	require.Equal(t, porttypes.RecvOutcomeSuccess, result.Kind)
	require.True(t, result.Acknowledgement.Success())

	require.NoError(t, result.Commit(f.ctx))

	voucherDenom := types.GetPrefixedDenom(sourcePort, sourceChannel, "uatom")
	require.Equal(t, math.NewInt(50), f.bank.Balance(receiver).AmountOf(voucherDenom))
}

func TestOnRecvPacketUnescrowsReturningToken(t *testing.T) {
	f := setupTransferFixture(t)

	escrowAddr, err := f.keeper.GetChannelEscrowAddress(sourcePort, sourceChannel)
	require.NoError(t, err)
	f.bank.SetBalance(escrowAddr, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(500))))

	receiver := sdk.AccAddress([]byte("receiver____________"))
	// The counterparty's voucher carries ITS port/channel prefix (the
	// packet's source side), which is what marks the token as coming home.
	returningDenom := types.GetPrefixedDenom(destPort, destChannel, "uatom")
	data := types.PacketData{Denom: returningDenom, Amount: "50", Sender: "cosmos1sender", Receiver: receiver.String()}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: destPort, SourceChannel: destChannel,
		DestinationPort: sourcePort, DestinationChannel: sourceChannel,
		Data:             data.Marshal(),
		TimeoutHeight:    exported.Height{RevisionNumber: 1, RevisionHeight: 1000},
		TimeoutTimestamp: 0,
	}

	result := f.keeper.OnRecvPacket(f.ctx, packet, "relayer")
	require.Equal(t, porttypes.RecvOutcomeSuccess, result.Kind)
	require.NoError(t, result.Commit(f.ctx))

	require.Equal(t, math.NewInt(50), f.bank.Balance(receiver).AmountOf("uatom"))
	require.Equal(t, math.NewInt(450), f.bank.Balance(escrowAddr).AmountOf("uatom"))
}

func TestOnRecvPacketReceiveDisabled(t *testing.T) {
	f := setupTransferFixture(t)
	f.keeper.SetReceiveEnabled(false)

	data := types.PacketData{Denom: "uatom", Amount: "50", Sender: "cosmos1sender", Receiver: "cosmos1receiver"}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: destPort, SourceChannel: destChannel,
		DestinationPort: sourcePort, DestinationChannel: sourceChannel,
		Data: data.Marshal(),
	}

	result := f.keeper.OnRecvPacket(f.ctx, packet, "relayer")
	require.Equal(t, porttypes.RecvOutcomeFailure, result.Kind)
	require.False(t, result.Acknowledgement.Success())
}

func TestOnAcknowledgementPacketErrorRefundsEscrow(t *testing.T) {
	f := setupTransferFixture(t)

	sender := sdk.AccAddress([]byte("sender______________"))
	escrowAddr, err := f.keeper.GetChannelEscrowAddress(sourcePort, sourceChannel)
	require.NoError(t, err)
	f.bank.SetBalance(escrowAddr, sdk.NewCoins(sdk.NewCoin("uatom", math.NewInt(100))))

	data := types.PacketData{Denom: "uatom", Amount: "100", Sender: sender.String(), Receiver: "cosmos1receiver"}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: sourcePort, SourceChannel: sourceChannel,
		DestinationPort: destPort, DestinationChannel: destChannel,
		Data: data.Marshal(),
	}

	errAck := channeltypes.NewErrorAcknowledgement(types.ErrInvalidAmount).Acknowledgement()
	_, err = f.keeper.OnAcknowledgementPacket(f.ctx, packet, errAck, "relayer")
	require.NoError(t, err)

	require.Equal(t, math.NewInt(100), f.bank.Balance(sender).AmountOf("uatom"))
	require.True(t, f.bank.Balance(escrowAddr).AmountOf("uatom").IsZero())
}

func TestOnAcknowledgementPacketSuccessLeavesBalancesAlone(t *testing.T) {
	f := setupTransferFixture(t)

	sender := sdk.AccAddress([]byte("sender______________"))
	data := types.PacketData{Denom: "uatom", Amount: "100", Sender: sender.String(), Receiver: "cosmos1receiver"}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: sourcePort, SourceChannel: sourceChannel,
		DestinationPort: destPort, DestinationChannel: destChannel,
		Data: data.Marshal(),
	}

	successAck := channeltypes.NewResultAcknowledgement([]byte{1}).Acknowledgement()
	extras, err := f.keeper.OnAcknowledgementPacket(f.ctx, packet, successAck, "relayer")
	require.NoError(t, err)
	require.NotEmpty(t, extras.Events)
	require.True(t, f.bank.Balance(sender).Empty())
}

func TestOnTimeoutPacketRefundsBurnedVoucher(t *testing.T) {
	f := setupTransferFixture(t)

	sender := sdk.AccAddress([]byte("sender______________"))
	// A voucher this chain received over its own (port, channel), and
	// burned on send, is prefixed with the packet's source side, so the
	// refund takes the re-mint path rather than the escrow path.
	voucherDenom := types.GetPrefixedDenom(sourcePort, sourceChannel, "uatom")
	data := types.PacketData{Denom: voucherDenom, Amount: "30", Sender: sender.String(), Receiver: "cosmos1receiver"}
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: sourcePort, SourceChannel: sourceChannel,
		DestinationPort: destPort, DestinationChannel: destChannel,
		Data: data.Marshal(),
	}

	extras, err := f.keeper.OnTimeoutPacket(f.ctx, packet, "relayer")
	require.NoError(t, err)
	require.NotEmpty(t, extras.Events)
	require.Equal(t, math.NewInt(30), f.bank.Balance(sender).AmountOf(voucherDenom))
}

func TestOnChanCloseInitAlwaysRejected(t *testing.T) {
	f := setupTransferFixture(t)
	_, err := f.keeper.OnChanCloseInit(f.ctx, sourcePort, sourceChannel)
	require.Error(t, err)
	require.ErrorIs(t, err, types.ErrCannotCloseChannel)
}

func TestOnChanCloseConfirmAlwaysAllowed(t *testing.T) {
	f := setupTransferFixture(t)
	_, err := f.keeper.OnChanCloseConfirm(f.ctx, sourcePort, sourceChannel)
	require.NoError(t, err)
}

func TestOnChanOpenInitNegotiatesVersion(t *testing.T) {
	f := setupTransferFixture(t)
	version, _, err := f.keeper.OnChanOpenInit(
		f.ctx, channeltypes.UNORDERED, []string{"connection-0"},
		sourcePort, sourceChannel, channeltypes.NewCounterparty(destPort, ""), "",
	)
	require.NoError(t, err)
	require.Equal(t, types.Version, version)
}

func TestOnChanOpenInitRejectsWrongOrdering(t *testing.T) {
	f := setupTransferFixture(t)
	_, _, err := f.keeper.OnChanOpenInit(
		f.ctx, channeltypes.ORDERED, []string{"connection-0"},
		sourcePort, sourceChannel, channeltypes.NewCounterparty(destPort, ""), types.Version,
	)
	require.Error(t, err)
}
