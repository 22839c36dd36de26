// Package types defines the bound-module contract (the callback surface
// every application module, ICS-20 and any other, must implement to sit
// behind the router) and the port-to-module resolver the router consults
// before invoking it.
package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"

	"github.com/corechain/ibccore/core/exported"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/corehandler"
)

// RecvOutcomeKind tags which of the three shapes a module's on_recv_packet
// response takes. The channel keeper invokes Commit (when non-nil) for
// NoOp and Success; Failure carries no Commit. On NoOp the core writes no
// receipt and no acknowledgement.
type RecvOutcomeKind int

const (
	RecvOutcomeNoOp RecvOutcomeKind = iota
	RecvOutcomeSuccess
	RecvOutcomeFailure
)

// RecvPacketResult is a bound module's deferred, two-phase response to
// OnRecvPacket: everything needed to decide whether to proceed is computed
// up front, but the module's own state mutation is deferred into Commit,
// which the channel keeper runs in the same dispatch that writes the
// acknowledgement (a NoOp result writes no acknowledgement).
type RecvPacketResult struct {
	Kind            RecvOutcomeKind
	Acknowledgement channeltypes.Acknowledgement
	Commit          func(ctx sdk.Context) error
}

func NewNoOpRecvResult(commit func(ctx sdk.Context) error) RecvPacketResult {
	return RecvPacketResult{Kind: RecvOutcomeNoOp, Commit: commit}
}

func NewSuccessRecvResult(ack channeltypes.Acknowledgement, commit func(ctx sdk.Context) error) RecvPacketResult {
	return RecvPacketResult{Kind: RecvOutcomeSuccess, Acknowledgement: ack, Commit: commit}
}

func NewFailureRecvResult(ack channeltypes.Acknowledgement) RecvPacketResult {
	return RecvPacketResult{Kind: RecvOutcomeFailure, Acknowledgement: ack}
}

// Module is the callback surface a bound application implements. Every
// handshake callback returns the version it wants recorded for its side of
// the channel (on Init/Try) plus corehandler.Extras; the core owns the
// protocol-level ChannelResult/PacketResult and never lets a module mutate
// it directly.
type Module interface {
	OnChanOpenInit(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID, channelID string,
		counterparty channeltypes.Counterparty,
		version string,
	) (negotiatedVersion string, extras corehandler.Extras, err error)

	OnChanOpenTry(
		ctx sdk.Context,
		order channeltypes.Order,
		connectionHops []string,
		portID, channelID string,
		counterparty channeltypes.Counterparty,
		counterpartyVersion string,
	) (negotiatedVersion string, extras corehandler.Extras, err error)

	OnChanOpenAck(
		ctx sdk.Context,
		portID, channelID string,
		counterpartyChannelID string,
		counterpartyVersion string,
	) (extras corehandler.Extras, err error)

	OnChanOpenConfirm(ctx sdk.Context, portID, channelID string) (extras corehandler.Extras, err error)

	OnChanCloseInit(ctx sdk.Context, portID, channelID string) (extras corehandler.Extras, err error)

	OnChanCloseConfirm(ctx sdk.Context, portID, channelID string) (extras corehandler.Extras, err error)

	OnRecvPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) RecvPacketResult

	OnAcknowledgementPacket(
		ctx sdk.Context,
		packet channeltypes.Packet,
		acknowledgement []byte,
		relayer string,
	) (extras corehandler.Extras, err error)

	OnTimeoutPacket(ctx sdk.Context, packet channeltypes.Packet, relayer string) (extras corehandler.Extras, err error)
}

// Height re-exported for modules that need to construct timeouts without
// importing core/exported directly.
type Height = exported.Height
