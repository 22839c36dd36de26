package keeper

import (
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdkmath "cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	porttypes "github.com/corechain/ibccore/core/05-port/types"
	"github.com/corechain/ibccore/corehandler"
	"github.com/corechain/ibccore/pkg/ibc"

	"github.com/corechain/ibccore/apps/transfer/types"
)

var _ porttypes.Module = (*Keeper)(nil)

// transferChannel is the only channel shape this module ever opens; every
// handshake callback below checks against it through the shared pkg/ibc
// helpers rather than re-deriving version/order checks by hand.
var transferChannel = ibc.ChannelParams{
	Order:   channeltypes.UNORDERED,
	Version: types.Version,
	PortID:  types.PortID,
}

// The nine callbacks below are what the router invokes through
// core/05-port/types.Module; this file is this application's entire
// handshake and packet surface.

func (k *Keeper) OnChanOpenInit(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID, channelID string,
	counterparty channeltypes.Counterparty,
	version string,
) (string, corehandler.Extras, error) {
	if err := transferChannel.CheckInit(order, portID, version); err != nil {
		return "", corehandler.EmptyExtras(), err
	}
	if version == "" {
		version = types.Version
	}
	return version, corehandler.EmptyExtras(), nil
}

func (k *Keeper) OnChanOpenTry(
	ctx sdk.Context,
	order channeltypes.Order,
	connectionHops []string,
	portID, channelID string,
	counterparty channeltypes.Counterparty,
	counterpartyVersion string,
) (string, corehandler.Extras, error) {
	if portID != types.PortID {
		return "", corehandler.EmptyExtras(), errorsmod.Wrapf(types.ErrInvalidPort, "expected %s, got %s", types.PortID, portID)
	}
	if err := transferChannel.CheckTry(order, counterpartyVersion); err != nil {
		return "", corehandler.EmptyExtras(), err
	}
	return types.Version, corehandler.EmptyExtras(), nil
}

func (k *Keeper) OnChanOpenAck(ctx sdk.Context, portID, channelID, counterpartyChannelID, counterpartyVersion string) (corehandler.Extras, error) {
	if err := transferChannel.CheckAck(counterpartyVersion); err != nil {
		return corehandler.EmptyExtras(), err
	}
	return corehandler.EmptyExtras(), nil
}

func (k *Keeper) OnChanOpenConfirm(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

// OnChanCloseInit always rejects: an ICS-20 transfer channel holding live
// escrow balances must never be torn down by ordinary user action, only by
// the counterparty (OnChanCloseConfirm) after its own side already closed.
func (k *Keeper) OnChanCloseInit(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), errorsmod.Wrapf(types.ErrCannotCloseChannel, "%s/%s", portID, channelID)
}

func (k *Keeper) OnChanCloseConfirm(ctx sdk.Context, portID, channelID string) (corehandler.Extras, error) {
	return corehandler.EmptyExtras(), nil
}

// OnRecvPacket decides, without mutating anything yet, whether an inbound
// transfer unescrows a token this chain originally sent out or mints a
// voucher for one arriving from elsewhere, then defers the actual bank
// operations into Commit so the channel keeper applies them atomically with
// writing the acknowledgement, never on a NoOp or once validation fails.
func (k *Keeper) OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) porttypes.RecvPacketResult {
	if !k.IsReceiveEnabled() {
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(types.ErrReceiveDisabled))
	}

	var data types.PacketData
	if err := json.Unmarshal(packet.Data, &data); err != nil {
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(
			errorsmod.Wrap(types.ErrInvalidPacketData, err.Error())))
	}
	if err := ibc.ValidateIncomingPacket(packet, data); err != nil {
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(err))
	}

	receiver, err := sdk.AccAddressFromBech32(data.Receiver)
	if err != nil {
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(
			errorsmod.Wrap(types.ErrInvalidPacketData, "invalid receiver address")))
	}

	amount, ok := sdkmath.NewIntFromString(data.Amount)
	if !ok || amount.IsNegative() || amount.IsZero() {
		return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(types.ErrInvalidAmount))
	}

	successAck := channeltypes.NewResultAcknowledgement([]byte{byte(1)})

	if unprefixed, isReturning := types.UnprefixDenom(packet.SourcePort, packet.SourceChannel, data.Denom); isReturning {
		coin := sdk.NewCoin(unprefixed, amount)
		escrowAddr, err := k.GetChannelEscrowAddress(packet.DestinationPort, packet.DestinationChannel)
		if err != nil {
			return porttypes.NewFailureRecvResult(channeltypes.NewErrorAcknowledgement(err))
		}

		commit := func(ctx sdk.Context) error {
			if err := k.bank.SendCoins(ctx, escrowAddr, receiver, sdk.NewCoins(coin)); err != nil {
				return errorsmod.Wrap(types.ErrUnwindEscrowFunds, err.Error())
			}
			ctx.EventManager().EmitEvent(types.NewRecvEvent(data, true))
			return nil
		}
		return porttypes.NewSuccessRecvResult(successAck, commit)
	}

	prefixedDenom := types.GetPrefixedDenom(packet.DestinationPort, packet.DestinationChannel, data.Denom)
	voucher := sdk.NewCoin(prefixedDenom, amount)

	commit := func(ctx sdk.Context) error {
		if err := k.bank.MintCoins(ctx, types.ModuleName, sdk.NewCoins(voucher)); err != nil {
			return errorsmod.Wrap(err, "minting ICS-20 voucher")
		}
		if err := k.bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, receiver, sdk.NewCoins(voucher)); err != nil {
			return errorsmod.Wrap(err, "transferring minted voucher to receiver")
		}
		ctx.EventManager().EmitEvent(types.NewRecvEvent(data, true))
		ctx.EventManager().EmitEvent(types.NewDenomTraceEvent(prefixedDenom))
		return nil
	}
	return porttypes.NewSuccessRecvResult(successAck, commit)
}

// OnAcknowledgementPacket refunds the sender on an error acknowledgement;
// a success acknowledgement means the counterparty already finished its
// half of the transfer and this chain has nothing further to do.
func (k *Keeper) OnAcknowledgementPacket(
	ctx sdk.Context,
	packet channeltypes.Packet,
	acknowledgement []byte,
	relayer string,
) (corehandler.Extras, error) {
	var ack channeltypes.Acknowledgement
	if err := json.Unmarshal(acknowledgement, &ack); err != nil {
		return corehandler.EmptyExtras(), errorsmod.Wrap(types.ErrInvalidPacketData, "cannot unmarshal transfer acknowledgement")
	}

	data, err := types.UnmarshalPacketData(packet.Data)
	if err != nil {
		return corehandler.EmptyExtras(), err
	}

	extras := corehandler.EmptyExtras().WithEvent(types.NewAckEvent(data, acknowledgement))

	if ack.Success() {
		return extras.WithEvent(types.NewAckStatusEvent(true, "")), nil
	}

	if err := k.refundTokens(ctx, packet, data); err != nil {
		return corehandler.EmptyExtras(), err
	}
	return extras.WithEvent(types.NewAckStatusEvent(false, ack.Error)), nil
}

// OnTimeoutPacket reverses a send exactly as an error acknowledgement would:
// the relayer never managed to deliver the packet at all, so the sender
// gets back whatever this chain gave up when it sent.
func (k *Keeper) OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) (corehandler.Extras, error) {
	data, err := types.UnmarshalPacketData(packet.Data)
	if err != nil {
		return corehandler.EmptyExtras(), err
	}
	if err := k.refundTokens(ctx, packet, data); err != nil {
		return corehandler.EmptyExtras(), err
	}
	return corehandler.EmptyExtras().WithEvent(types.NewTimeoutEvent(data)), nil
}

// refundTokens undoes send_transfer's escrow-or-burn: whichever one the
// original send performed, this puts the funds back in the sender's
// account, used by both a failed acknowledgement and a timeout.
func (k *Keeper) refundTokens(ctx sdk.Context, packet channeltypes.Packet, data types.PacketData) error {
	amount, ok := sdkmath.NewIntFromString(data.Amount)
	if !ok {
		return errorsmod.Wrap(types.ErrInvalidAmount, data.Amount)
	}
	sender, err := sdk.AccAddressFromBech32(data.Sender)
	if err != nil {
		return errorsmod.Wrap(types.ErrInvalidPacketData, "invalid sender address")
	}
	coin := sdk.NewCoin(data.Denom, amount)

	if types.IsSourceChain(packet.SourcePort, packet.SourceChannel, data.Denom) {
		escrowAddr, err := k.GetChannelEscrowAddress(packet.SourcePort, packet.SourceChannel)
		if err != nil {
			return err
		}
		return k.bank.SendCoins(ctx, escrowAddr, sender, sdk.NewCoins(coin))
	}

	if err := k.bank.MintCoins(ctx, types.ModuleName, sdk.NewCoins(coin)); err != nil {
		return errorsmod.Wrap(err, "re-minting burned voucher for refund")
	}
	return k.bank.SendCoinsFromModuleToAccount(ctx, types.ModuleName, sender, sdk.NewCoins(coin))
}
