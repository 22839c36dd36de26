package keeper

import (
	"encoding/binary"
	"encoding/json"

	errorsmod "cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"

	host "github.com/corechain/ibccore/core/24-host"
	channeltypes "github.com/corechain/ibccore/core/04-channel/types"
	"github.com/corechain/ibccore/core/exported"
)

// verifyChannelState asks the connection's client (an ICS-02/23 external
// collaborator) to prove that, at proofHeight, the counterparty's store had
// exactly expected at the channel path for (counterpartyPortID,
// counterpartyChannelID). This package never verifies a Merkle proof
// itself; it only ever supplies the path and the value it expects to find.
func verifyChannelState(
	ctx sdk.Context,
	k *Keeper,
	conn exported.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	counterpartyPortID, counterpartyChannelID string,
	expected channeltypes.ChannelEnd,
) error {
	bz, err := json.Marshal(expected)
	if err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	path := host.ChannelPath(counterpartyPortID, counterpartyChannelID)
	if err := k.VerifyMembership(ctx, conn.ClientId, proofHeight, proof, path, bz); err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	return nil
}

// verifyPacketCommitment proves the counterparty's store commits to
// packet's expected commitment bytes at the packet commitment path.
func verifyPacketCommitment(
	ctx sdk.Context,
	k *Keeper,
	conn exported.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	portID, channelID string,
	sequence uint64,
	commitmentBytes []byte,
) error {
	path := host.PacketCommitmentPath(portID, channelID, sequence)
	if err := k.VerifyMembership(ctx, conn.ClientId, proofHeight, proof, path, commitmentBytes); err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	return nil
}

// verifyPacketAcknowledgement proves the counterparty's store commits to
// the acknowledgement's expected hash at the packet acknowledgement path.
func verifyPacketAcknowledgement(
	ctx sdk.Context,
	k *Keeper,
	conn exported.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	portID, channelID string,
	sequence uint64,
	ackCommitment []byte,
) error {
	path := host.PacketAcknowledgementPath(portID, channelID, sequence)
	if err := k.VerifyMembership(ctx, conn.ClientId, proofHeight, proof, path, ackCommitment); err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	return nil
}

// verifyPacketReceiptAbsence proves the counterparty's store has nothing
// at the packet receipt path, the precondition for a timeout.
func verifyPacketReceiptAbsence(
	ctx sdk.Context,
	k *Keeper,
	conn exported.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	portID, channelID string,
	sequence uint64,
) error {
	path := host.PacketReceiptPath(portID, channelID, sequence)
	if err := k.VerifyNonMembership(ctx, conn.ClientId, proofHeight, proof, path); err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	return nil
}

// verifyNextSequenceRecv proves the counterparty's next-sequence-recv
// counter for (portID, channelID) is exactly nextSequenceRecv, used on an
// ORDERED channel's timeout, where an undelivered packet is proven by the
// destination's receive counter not yet having moved past it
// (nextSequenceRecv <= sequence, checked by the caller), rather than by the
// absence of a single receipt.
func verifyNextSequenceRecv(
	ctx sdk.Context,
	k *Keeper,
	conn exported.ConnectionEnd,
	proofHeight exported.Height,
	proof []byte,
	portID, channelID string,
	nextSequenceRecv uint64,
) error {
	path := host.NextSequenceRecvPath(portID, channelID)
	value := make([]byte, 8)
	binary.BigEndian.PutUint64(value, nextSequenceRecv)
	if err := k.VerifyMembership(ctx, conn.ClientId, proofHeight, proof, path, value); err != nil {
		return errorsmod.Wrap(channeltypes.ErrProofVerificationFailed, err.Error())
	}
	return nil
}
