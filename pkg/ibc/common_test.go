package ibc_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/core/exported"
	"github.com/corechain/ibccore/pkg/ibc"
)

var transferParams = ibc.ChannelParams{
	Order:   channeltypes.UNORDERED,
	Version: "ics20-1",
	PortID:  "transfer",
}

func TestChannelParamsCheckInit(t *testing.T) {
	require.NoError(t, transferParams.CheckInit(channeltypes.UNORDERED, "transfer", "ics20-1"))
	// Empty version means "module picks" and is accepted at this layer.
	require.NoError(t, transferParams.CheckInit(channeltypes.UNORDERED, "transfer", ""))

	require.Error(t, transferParams.CheckInit(channeltypes.ORDERED, "transfer", "ics20-1"))
	require.Error(t, transferParams.CheckInit(channeltypes.UNORDERED, "transfer", "ics20-2"))
	require.Error(t, transferParams.CheckInit(channeltypes.UNORDERED, "wrongport", "ics20-1"))
}

func TestChannelParamsCheckTryAndAck(t *testing.T) {
	require.NoError(t, transferParams.CheckTry(channeltypes.UNORDERED, "ics20-1"))
	require.Error(t, transferParams.CheckTry(channeltypes.ORDERED, "ics20-1"))
	require.Error(t, transferParams.CheckTry(channeltypes.UNORDERED, "other-version"))
	// An empty counterparty version on Try is a mismatch, not "module picks".
	require.Error(t, transferParams.CheckTry(channeltypes.UNORDERED, ""))

	require.NoError(t, transferParams.CheckAck("ics20-1"))
	require.Error(t, transferParams.CheckAck("other-version"))
}

func TestChannelParamsZeroValueAcceptsNothing(t *testing.T) {
	var zero ibc.ChannelParams
	require.Error(t, zero.CheckInit(channeltypes.UNORDERED, "transfer", "ics20-1"))
	require.Error(t, zero.CheckTry(channeltypes.UNORDERED, "ics20-1"))
	require.Error(t, zero.CheckAck("ics20-1"))
}

type stubPacketData struct {
	err error
}

func (d stubPacketData) Validate() error { return d.err }

func TestValidateIncomingPacket(t *testing.T) {
	packet := channeltypes.Packet{
		Sequence: 1, SourcePort: "transfer", SourceChannel: "channel-0",
		DestinationPort: "transfer", DestinationChannel: "channel-1",
		Data:          []byte("payload"),
		TimeoutHeight: exported.Height{RevisionHeight: 100},
	}

	require.NoError(t, ibc.ValidateIncomingPacket(packet, stubPacketData{}))

	badPacket := packet
	badPacket.Sequence = 0
	require.ErrorIs(t, ibc.ValidateIncomingPacket(badPacket, stubPacketData{}), channeltypes.ErrInvalidPacket)

	require.Error(t, ibc.ValidateIncomingPacket(packet, stubPacketData{err: fmt.Errorf("bad payload")}))
}
