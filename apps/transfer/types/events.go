package types

import (
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	AttributeKeyAmount     = "amount"
	AttributeKeyDenom      = "denom"
	AttributeKeySender     = "sender"
	AttributeKeyReceiver   = "receiver"
	AttributeKeyAckSuccess = "success"
	AttributeKeyAck        = "acknowledgement"
	AttributeKeyError      = "error"

	EventTypeTransfer   = "ibc_transfer"
	EventTypePacket     = "fungible_token_packet"
	EventTypeAck        = "fungible_token_packet_ack"
	EventTypeTimeout    = "fungible_token_packet_timeout"
	EventTypeDenomTrace = "denomination_trace"
)

// NewTransferEvent is emitted by send_transfer, the moment a token leaves
// this chain's account (escrowed or burned, depending on IsSourceChain).
func NewTransferEvent(sender, receiver, denom, amount string) sdk.Event {
	return sdk.NewEvent(
		EventTypeTransfer,
		sdk.NewAttribute(AttributeKeySender, sender),
		sdk.NewAttribute(AttributeKeyReceiver, receiver),
		sdk.NewAttribute(AttributeKeyDenom, denom),
		sdk.NewAttribute(AttributeKeyAmount, amount),
	)
}

// NewRecvEvent is emitted from OnRecvPacket, reporting what this chain did
// with an inbound transfer (mint or unescrow) before the ack is written.
func NewRecvEvent(data PacketData, success bool) sdk.Event {
	return sdk.NewEvent(
		EventTypePacket,
		sdk.NewAttribute(AttributeKeySender, data.Sender),
		sdk.NewAttribute(AttributeKeyReceiver, data.Receiver),
		sdk.NewAttribute(AttributeKeyDenom, data.Denom),
		sdk.NewAttribute(AttributeKeyAmount, data.Amount),
		sdk.NewAttribute(AttributeKeyAckSuccess, boolToStr(success)),
	)
}

// NewAckEvent is emitted from OnAcknowledgementPacket.
func NewAckEvent(data PacketData, ack []byte) sdk.Event {
	return sdk.NewEvent(
		EventTypeAck,
		sdk.NewAttribute(AttributeKeySender, data.Sender),
		sdk.NewAttribute(AttributeKeyDenom, data.Denom),
		sdk.NewAttribute(AttributeKeyAmount, data.Amount),
		sdk.NewAttribute(AttributeKeyAck, string(ack)),
	)
}

// NewAckStatusEvent separates out whether the acknowledgement carried a
// success or error result, so subscribers can filter on it without
// decoding the acknowledgement payload themselves.
func NewAckStatusEvent(success bool, errMsg string) sdk.Event {
	if success {
		return sdk.NewEvent(EventTypeAck, sdk.NewAttribute(AttributeKeyAckSuccess, "true"))
	}
	return sdk.NewEvent(EventTypeAck,
		sdk.NewAttribute(AttributeKeyAckSuccess, "false"),
		sdk.NewAttribute(AttributeKeyError, errMsg),
	)
}

// NewTimeoutEvent is emitted from OnTimeoutPacket, once the escrowed or
// burned funds have been refunded.
func NewTimeoutEvent(data PacketData) sdk.Event {
	return sdk.NewEvent(
		EventTypeTimeout,
		sdk.NewAttribute(AttributeKeySender, data.Sender),
		sdk.NewAttribute(AttributeKeyDenom, data.Denom),
		sdk.NewAttribute(AttributeKeyAmount, data.Amount),
	)
}

func NewDenomTraceEvent(trace string) sdk.Event {
	return sdk.NewEvent(EventTypeDenomTrace, sdk.NewAttribute(AttributeKeyDenom, trace))
}

func boolToStr(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
