package types

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	AttributeKeyPortID             = "port_id"
	AttributeKeyChannelID          = "channel_id"
	AttributeCounterpartyPortID    = "counterparty_port_id"
	AttributeCounterpartyChannelID = "counterparty_channel_id"
	AttributeKeyConnectionID       = "connection_id"
	AttributeVersion               = "version"
	AttributeKeySequence           = "packet_sequence"
	AttributeKeySrcPort            = "packet_src_port"
	AttributeKeySrcChannel         = "packet_src_channel"
	AttributeKeyDstPort            = "packet_dst_port"
	AttributeKeyDstChannel         = "packet_dst_channel"
	AttributeKeyTimeoutHeight      = "packet_timeout_height"
	AttributeKeyTimeoutTimestamp   = "packet_timeout_timestamp"
	AttributeKeyData               = "packet_data"
	AttributeKeyAck                = "packet_ack"
	AttributeKeyAckSuccess         = "success"

	EventTypeChannelOpenInit     = "channel_open_init"
	EventTypeChannelOpenTry      = "channel_open_try"
	EventTypeChannelOpenAck      = "channel_open_ack"
	EventTypeChannelOpenConfirm  = "channel_open_confirm"
	EventTypeChannelCloseInit    = "channel_close_init"
	EventTypeChannelCloseConfirm = "channel_close_confirm"
	EventTypeSendPacket          = "send_packet"
	EventTypeRecvPacket          = "recv_packet"
	EventTypeWriteAck            = "write_acknowledgement"
	EventTypeAcknowledgePacket   = "acknowledge_packet"
	EventTypeTimeoutPacket       = "timeout_packet"
)

func channelAttributes(portID, channelID string, ch ChannelEnd) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(AttributeKeyPortID, portID),
		sdk.NewAttribute(AttributeKeyChannelID, channelID),
		sdk.NewAttribute(AttributeCounterpartyPortID, ch.Counterparty.PortId),
		sdk.NewAttribute(AttributeCounterpartyChannelID, ch.Counterparty.ChannelId),
		sdk.NewAttribute(AttributeVersion, ch.Version),
	}
	// ConnectionHops[0] is appended as the connection id only by the
	// OpenInit and OpenTry event constructors, when the channel end has a
	// hop; the other channel events carry no connection id attribute.
}

func NewChannelOpenInitEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	attrs := channelAttributes(portID, channelID, ch)
	if len(ch.ConnectionHops) > 0 {
		attrs = append(attrs, sdk.NewAttribute(AttributeKeyConnectionID, ch.ConnectionHops[0]))
	}
	return sdk.NewEvent(EventTypeChannelOpenInit, attrs...)
}

func NewChannelOpenTryEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	attrs := channelAttributes(portID, channelID, ch)
	if len(ch.ConnectionHops) > 0 {
		attrs = append(attrs, sdk.NewAttribute(AttributeKeyConnectionID, ch.ConnectionHops[0]))
	}
	return sdk.NewEvent(EventTypeChannelOpenTry, attrs...)
}

func NewChannelOpenAckEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	return sdk.NewEvent(EventTypeChannelOpenAck, channelAttributes(portID, channelID, ch)...)
}

func NewChannelOpenConfirmEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	return sdk.NewEvent(EventTypeChannelOpenConfirm, channelAttributes(portID, channelID, ch)...)
}

func NewChannelCloseInitEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	return sdk.NewEvent(EventTypeChannelCloseInit, channelAttributes(portID, channelID, ch)...)
}

func NewChannelCloseConfirmEvent(portID, channelID string, ch ChannelEnd) sdk.Event {
	return sdk.NewEvent(EventTypeChannelCloseConfirm, channelAttributes(portID, channelID, ch)...)
}

func packetAttributes(p Packet) []sdk.Attribute {
	return []sdk.Attribute{
		sdk.NewAttribute(AttributeKeySequence, fmt.Sprintf("%d", p.Sequence)),
		sdk.NewAttribute(AttributeKeySrcPort, p.SourcePort),
		sdk.NewAttribute(AttributeKeySrcChannel, p.SourceChannel),
		sdk.NewAttribute(AttributeKeyDstPort, p.DestinationPort),
		sdk.NewAttribute(AttributeKeyDstChannel, p.DestinationChannel),
		sdk.NewAttribute(AttributeKeyTimeoutHeight, p.TimeoutHeight.String()),
		sdk.NewAttribute(AttributeKeyTimeoutTimestamp, fmt.Sprintf("%d", p.TimeoutTimestamp)),
	}
}

func NewSendPacketEvent(p Packet) sdk.Event {
	attrs := append(packetAttributes(p), sdk.NewAttribute(AttributeKeyData, string(p.Data)))
	return sdk.NewEvent(EventTypeSendPacket, attrs...)
}

func NewRecvPacketEvent(p Packet) sdk.Event {
	attrs := append(packetAttributes(p), sdk.NewAttribute(AttributeKeyData, string(p.Data)))
	return sdk.NewEvent(EventTypeRecvPacket, attrs...)
}

func NewWriteAckEvent(p Packet, ack []byte) sdk.Event {
	attrs := append(packetAttributes(p), sdk.NewAttribute(AttributeKeyAck, string(ack)))
	return sdk.NewEvent(EventTypeWriteAck, attrs...)
}

func NewAcknowledgePacketEvent(p Packet) sdk.Event {
	return sdk.NewEvent(EventTypeAcknowledgePacket, packetAttributes(p)...)
}

func NewTimeoutPacketEvent(p Packet) sdk.Event {
	return sdk.NewEvent(EventTypeTimeoutPacket, packetAttributes(p)...)
}
