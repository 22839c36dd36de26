// Package ibc holds small cross-module helpers shared by bound
// applications' callback implementations. It knows nothing about any one
// application's domain; it only runs the order/version/port and inbound
// packet checks every bound module repeats.
package ibc

import (
	errorsmod "cosmossdk.io/errors"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
)

// ChannelParams fixes the ordering, version, and port a bound module is
// willing to open channels with. A module declares one next to its other
// chain-bound constants and runs the matching Check method from each
// handshake callback; the zero value rejects every set order, port and
// version.
type ChannelParams struct {
	Order   channeltypes.Order
	Version string
	PortID  string
}

// CheckInit validates the parameters OnChanOpenInit receives. An empty
// proposed version passes: it means the module picks, and the caller
// substitutes its own version before recording the result.
func (p ChannelParams) CheckInit(order channeltypes.Order, portID, proposedVersion string) error {
	if err := p.checkOrder(order); err != nil {
		return err
	}
	if portID != p.PortID {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidRequest, "channel must open on port %s, not %s", p.PortID, portID)
	}
	if proposedVersion != "" && proposedVersion != p.Version {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidVersion, "module only speaks version %s, proposed %s", p.Version, proposedVersion)
	}
	return nil
}

// CheckTry validates the parameters OnChanOpenTry receives. Unlike Init,
// the counterparty has already committed to a version, so an empty string
// is a mismatch here, not an invitation to pick.
func (p ChannelParams) CheckTry(order channeltypes.Order, counterpartyVersion string) error {
	if err := p.checkOrder(order); err != nil {
		return err
	}
	return p.checkCounterpartyVersion(counterpartyVersion)
}

// CheckAck validates the counterparty version OnChanOpenAck receives.
func (p ChannelParams) CheckAck(counterpartyVersion string) error {
	return p.checkCounterpartyVersion(counterpartyVersion)
}

func (p ChannelParams) checkOrder(order channeltypes.Order) error {
	if order != p.Order {
		return errorsmod.Wrapf(channeltypes.ErrInvalidChannelOrdering, "channel ordering %s not supported, module requires %s", order, p.Order)
	}
	return nil
}

func (p ChannelParams) checkCounterpartyVersion(version string) error {
	if version != p.Version {
		return errorsmod.Wrapf(sdkerrors.ErrInvalidVersion, "counterparty negotiated version %s, module requires %s", version, p.Version)
	}
	return nil
}

// PacketDataValidator is implemented by an application's decoded packet
// payload so the shared validation below can run without knowing the
// concrete type.
type PacketDataValidator interface {
	Validate() error
}

// ValidateIncomingPacket runs the checks every bound module repeats on an
// inbound packet before touching its own state: the packet envelope must be
// well formed and the decoded payload must pass the application's own
// validation.
func ValidateIncomingPacket(packet channeltypes.Packet, data PacketDataValidator) error {
	if err := packet.Validate(); err != nil {
		return errorsmod.Wrap(channeltypes.ErrInvalidPacket, err.Error())
	}
	if err := data.Validate(); err != nil {
		return errorsmod.Wrap(sdkerrors.ErrInvalidRequest, err.Error())
	}
	return nil
}
