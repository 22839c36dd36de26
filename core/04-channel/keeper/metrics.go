package keeper

import (
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/hashicorp/go-metrics"
)

// incrPacketValidationFailure records a rejected inbound packet twice: an
// event a node operator can alert on plus a telemetry counter a relayer
// operator can graph, labeled by port/channel/reason so a misbehaving relayer
// or a misconfigured channel shows up without grepping logs.
func incrPacketValidationFailure(ctx sdk.Context, port, channel, reason string) {
	ctx.EventManager().EmitEvent(
		sdk.NewEvent(
			"packet_validation_failed",
			sdk.NewAttribute("port_id", port),
			sdk.NewAttribute("channel_id", channel),
			sdk.NewAttribute("reason", reason),
		),
	)
	telemetry.IncrCounterWithLabels(
		[]string{"ibccore", "packet_validation_failed"},
		1,
		[]metrics.Label{
			telemetry.NewLabel("port_id", port),
			telemetry.NewLabel("channel_id", channel),
			telemetry.NewLabel("reason", reason),
		},
	)
}
