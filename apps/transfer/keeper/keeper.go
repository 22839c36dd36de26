// Package keeper implements the ICS-20 fungible-token-transfer application:
// send_transfer plus the three packet-lifecycle callbacks (recv, ack,
// timeout), escrowing or burning on send and minting or unescrowing on
// recv, the way a genuine bound IBC module does it.
package keeper

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	channelkeeper "github.com/corechain/ibccore/core/04-channel/keeper"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/apps/transfer/types"
)

// BankKeeper is the narrow slice of x/bank this module needs: escrow
// transfers move funds between accounts, while a token that has crossed a
// channel and back is minted/burned against this module's own account.
type BankKeeper interface {
	SendCoins(ctx sdk.Context, fromAddr, toAddr sdk.AccAddress, amt sdk.Coins) error
	MintCoins(ctx sdk.Context, moduleName string, amt sdk.Coins) error
	BurnCoins(ctx sdk.Context, moduleName string, amt sdk.Coins) error
	SendCoinsFromModuleToAccount(ctx sdk.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error
	SendCoinsFromAccountToModule(ctx sdk.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error
}

type Keeper struct {
	channel *channelkeeper.Keeper
	bank    BankKeeper
	cap     channeltypes.CapabilityKeeper

	// sendPacket is the ICS-04 send this keeper uses; NewKeeper points it
	// at channelkeeper.SendPacketAllowNoTimeout on the real channel keeper.
	sendPacket func(ctx sdk.Context, packet channeltypes.Packet) (sdk.Events, []string, error)

	sendEnabled    bool
	receiveEnabled bool
}

func NewKeeper(channelKeeper *channelkeeper.Keeper, bank BankKeeper, cap channeltypes.CapabilityKeeper) *Keeper {
	k := &Keeper{
		channel:        channelKeeper,
		bank:           bank,
		cap:            cap,
		sendEnabled:    true,
		receiveEnabled: true,
	}
	// ICS-20 opts out of the core's "packet must have a timeout" invariant:
	// a transfer with neither timeout set is unusual but
	// not invalid, it just can never be timed out, only acknowledged.
	k.sendPacket = func(ctx sdk.Context, packet channeltypes.Packet) (sdk.Events, []string, error) {
		builder, err := channelkeeper.SendPacketAllowNoTimeout(ctx, channelKeeper, packet)
		if err != nil {
			return nil, nil, err
		}
		return builder.Events(), builder.Logs(), nil
	}
	return k
}

func (k *Keeper) GetPort() string { return types.PortID }

func (k *Keeper) IsSendEnabled() bool    { return k.sendEnabled }
func (k *Keeper) IsReceiveEnabled() bool { return k.receiveEnabled }

func (k *Keeper) SetSendEnabled(enabled bool)    { k.sendEnabled = enabled }
func (k *Keeper) SetReceiveEnabled(enabled bool) { k.receiveEnabled = enabled }

func (k *Keeper) GetChannelEscrowAddress(portID, channelID string) (sdk.AccAddress, error) {
	bech, err := types.EscrowAddress(portID, channelID)
	if err != nil {
		return nil, err
	}
	return sdk.AccAddressFromBech32(bech)
}
