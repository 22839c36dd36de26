package types

import "github.com/corechain/ibccore/core/exported"

// ChannelMsgKind tags which handshake message a ChannelMsg envelope carries.
// A tagged struct (kind + one populated pointer per variant) is used instead
// of an interface so handler code can switch on Kind without a type
// assertion per call site.
type ChannelMsgKind int

const (
	MsgChannelOpenInit ChannelMsgKind = iota
	MsgChannelOpenTry
	MsgChannelOpenAck
	MsgChannelOpenConfirm
	MsgChannelCloseInit
	MsgChannelCloseConfirm
)

type MsgChannelOpenInitData struct {
	PortId  string
	Channel ChannelEnd
	Signer  string
}

type MsgChannelOpenTryData struct {
	PortId              string
	PreviousChannelId   string
	Channel             ChannelEnd
	CounterpartyVersion string
	ProofInit           []byte
	ProofHeight         exported.Height
	Signer              string
}

type MsgChannelOpenAckData struct {
	PortId                string
	ChannelId             string
	CounterpartyChannelId string
	CounterpartyVersion   string
	ProofTry              []byte
	ProofHeight           exported.Height
	Signer                string
}

type MsgChannelOpenConfirmData struct {
	PortId      string
	ChannelId   string
	ProofAck    []byte
	ProofHeight exported.Height
	Signer      string
}

type MsgChannelCloseInitData struct {
	PortId    string
	ChannelId string
	Signer    string
}

type MsgChannelCloseConfirmData struct {
	PortId      string
	ChannelId   string
	ProofInit   []byte
	ProofHeight exported.Height
	Signer      string
}

type ChannelMsg struct {
	Kind         ChannelMsgKind
	OpenInit     *MsgChannelOpenInitData
	OpenTry      *MsgChannelOpenTryData
	OpenAck      *MsgChannelOpenAckData
	OpenConfirm  *MsgChannelOpenConfirmData
	CloseInit    *MsgChannelCloseInitData
	CloseConfirm *MsgChannelCloseConfirmData
}

func NewChannelOpenInitMsg(m MsgChannelOpenInitData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelOpenInit, OpenInit: &m}
}

func NewChannelOpenTryMsg(m MsgChannelOpenTryData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelOpenTry, OpenTry: &m}
}

func NewChannelOpenAckMsg(m MsgChannelOpenAckData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelOpenAck, OpenAck: &m}
}

func NewChannelOpenConfirmMsg(m MsgChannelOpenConfirmData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelOpenConfirm, OpenConfirm: &m}
}

func NewChannelCloseInitMsg(m MsgChannelCloseInitData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelCloseInit, CloseInit: &m}
}

func NewChannelCloseConfirmMsg(m MsgChannelCloseConfirmData) ChannelMsg {
	return ChannelMsg{Kind: MsgChannelCloseConfirm, CloseConfirm: &m}
}

// PortID returns the port the message targets, regardless of variant.
func (m ChannelMsg) PortID() string {
	switch m.Kind {
	case MsgChannelOpenInit:
		return m.OpenInit.PortId
	case MsgChannelOpenTry:
		return m.OpenTry.PortId
	case MsgChannelOpenAck:
		return m.OpenAck.PortId
	case MsgChannelOpenConfirm:
		return m.OpenConfirm.PortId
	case MsgChannelCloseInit:
		return m.CloseInit.PortId
	case MsgChannelCloseConfirm:
		return m.CloseConfirm.PortId
	default:
		return ""
	}
}

// ChannelID returns the channel the message targets; empty for OpenInit and
// OpenTry, whose channel identifier is allocated by channel_dispatch.
func (m ChannelMsg) ChannelID() string {
	switch m.Kind {
	case MsgChannelOpenAck:
		return m.OpenAck.ChannelId
	case MsgChannelOpenConfirm:
		return m.OpenConfirm.ChannelId
	case MsgChannelCloseInit:
		return m.CloseInit.ChannelId
	case MsgChannelCloseConfirm:
		return m.CloseConfirm.ChannelId
	default:
		return ""
	}
}

// PacketMsgKind tags which packet-lifecycle message a PacketMsg envelope
// carries.
type PacketMsgKind int

const (
	MsgRecvPacket PacketMsgKind = iota
	MsgAcknowledgePacket
	MsgTimeoutPacket
	MsgTimeoutOnClosePacket
)

type MsgRecvPacketData struct {
	Packet          Packet
	ProofCommitment []byte
	ProofHeight     exported.Height
	Signer          string
}

type MsgAcknowledgePacketData struct {
	Packet          Packet
	Acknowledgement []byte
	ProofAcked      []byte
	ProofHeight     exported.Height
	Signer          string
}

type MsgTimeoutPacketData struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofHeight      exported.Height
	NextSequenceRecv uint64
	Signer           string
}

type MsgTimeoutOnClosePacketData struct {
	Packet           Packet
	ProofUnreceived  []byte
	ProofClose       []byte
	ProofHeight      exported.Height
	NextSequenceRecv uint64
	Signer           string
}

type PacketMsg struct {
	Kind           PacketMsgKind
	Recv           *MsgRecvPacketData
	Acknowledge    *MsgAcknowledgePacketData
	Timeout        *MsgTimeoutPacketData
	TimeoutOnClose *MsgTimeoutOnClosePacketData
}

func NewRecvPacketMsg(m MsgRecvPacketData) PacketMsg {
	return PacketMsg{Kind: MsgRecvPacket, Recv: &m}
}

func NewAcknowledgePacketMsg(m MsgAcknowledgePacketData) PacketMsg {
	return PacketMsg{Kind: MsgAcknowledgePacket, Acknowledge: &m}
}

func NewTimeoutPacketMsg(m MsgTimeoutPacketData) PacketMsg {
	return PacketMsg{Kind: MsgTimeoutPacket, Timeout: &m}
}

func NewTimeoutOnClosePacketMsg(m MsgTimeoutOnClosePacketData) PacketMsg {
	return PacketMsg{Kind: MsgTimeoutOnClosePacket, TimeoutOnClose: &m}
}

// GetPacket returns the packet carried by the message, regardless of variant.
func (m PacketMsg) GetPacket() Packet {
	switch m.Kind {
	case MsgRecvPacket:
		return m.Recv.Packet
	case MsgAcknowledgePacket:
		return m.Acknowledge.Packet
	case MsgTimeoutPacket:
		return m.Timeout.Packet
	case MsgTimeoutOnClosePacket:
		return m.TimeoutOnClose.Packet
	default:
		return Packet{}
	}
}
