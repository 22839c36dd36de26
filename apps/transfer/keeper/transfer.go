package keeper

import (
	"fmt"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/core/exported"

	"github.com/corechain/ibccore/apps/transfer/types"
)

// SendTransfer is send_transfer: the entry point a user-facing message
// handler calls directly, not something relayed in through the router,
// mirroring how SendPacket itself is invoked by an application rather than
// dispatched from a wire message. It escrows a token native to this chain
// or burns a voucher previously received over this same channel, then
// commits a packet carrying the transfer to the destination.
func (k *Keeper) SendTransfer(
	ctx sdk.Context,
	sourcePort, sourceChannel string,
	token sdk.Coin,
	sender sdk.AccAddress,
	receiver string,
	timeoutHeight exported.Height,
	timeoutTimestamp uint64,
) (uint64, error) {
	if !k.IsSendEnabled() {
		return 0, types.ErrSendDisabled
	}

	channel, found := k.channel.GetChannel(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, errorsmod.Wrapf(channeltypes.ErrChannelNotFound, "%s/%s", sourcePort, sourceChannel)
	}

	if types.IsSourceChain(sourcePort, sourceChannel, token.Denom) {
		escrowAddr, err := k.GetChannelEscrowAddress(sourcePort, sourceChannel)
		if err != nil {
			return 0, err
		}
		if err := k.bank.SendCoins(ctx, sender, escrowAddr, sdk.NewCoins(token)); err != nil {
			return 0, errorsmod.Wrap(err, "escrowing funds for transfer")
		}
	} else {
		if err := k.bank.SendCoinsFromAccountToModule(ctx, sender, types.ModuleName, sdk.NewCoins(token)); err != nil {
			return 0, errorsmod.Wrap(err, "moving voucher to module account for burn")
		}
		if err := k.bank.BurnCoins(ctx, types.ModuleName, sdk.NewCoins(token)); err != nil {
			return 0, errorsmod.Wrap(err, "burning transferred voucher")
		}
	}

	sequence, found := k.channel.GetNextSequenceSend(ctx, sourcePort, sourceChannel)
	if !found {
		return 0, fmt.Errorf("no next send sequence found for channel %s/%s", sourcePort, sourceChannel)
	}

	data := types.PacketData{
		Denom:    token.Denom,
		Amount:   token.Amount.String(),
		Sender:   sender.String(),
		Receiver: receiver,
	}
	if err := data.Validate(); err != nil {
		return 0, err
	}

	packet := channeltypes.Packet{
		Sequence:           sequence,
		SourcePort:         sourcePort,
		SourceChannel:      sourceChannel,
		DestinationPort:    channel.Counterparty.PortId,
		DestinationChannel: channel.Counterparty.ChannelId,
		Data:               data.Marshal(),
		TimeoutHeight:      timeoutHeight,
		TimeoutTimestamp:   exported.Timestamp(timeoutTimestamp),
	}

	events, logs, err := k.sendPacket(ctx, packet)
	if err != nil {
		return 0, err
	}
	ctx.EventManager().EmitEvents(events)
	for _, line := range logs {
		ctx.Logger().Debug(line)
	}

	ctx.EventManager().EmitEvent(types.NewTransferEvent(sender.String(), receiver, token.Denom, token.Amount.String()))

	return sequence, nil
}
