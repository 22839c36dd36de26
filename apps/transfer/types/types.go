// Package types is the ICS-20 fungible-token-transfer data model: the
// packet data JSON shape, the denomination-prefixing rules that distinguish
// a native token from one received over IBC, the escrow address derivation,
// and this application's own errors/events.
package types

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"
	"github.com/cosmos/cosmos-sdk/types/bech32"
)

const (
	ModuleName = "transfer"
	PortID     = "transfer"
	Version    = "ics20-1"

	// DenomPrefixSeparator matches ibc-go's own convention: a denom that
	// has crossed channels is a "/"-joined stack of port/channel pairs
	// in front of the base denom, e.g. "transfer/channel-0/uatom".
	DenomPrefixSeparator = "/"

	EscrowAddressHRP = "cosmos"
)

var (
	ErrInvalidDenomForTransfer = errorsmod.Register(ModuleName, 2, "invalid denomination for cross-chain transfer")
	ErrInvalidAmount           = errorsmod.Register(ModuleName, 3, "invalid token amount")
	ErrInvalidVersion          = errorsmod.Register(ModuleName, 4, "invalid ICS-20 version")
	ErrChannelNotUnordered     = errorsmod.Register(ModuleName, 5, "channel must be UNORDERED")
	ErrInvalidPacketTimeout    = errorsmod.Register(ModuleName, 6, "invalid packet timeout")
	ErrSendDisabled            = errorsmod.Register(ModuleName, 7, "fungible token transfer sends are disabled")
	ErrReceiveDisabled         = errorsmod.Register(ModuleName, 8, "fungible token transfer receives are disabled")
	ErrInvalidPacketData       = errorsmod.Register(ModuleName, 9, "invalid packet data")
	ErrCannotCloseChannel      = errorsmod.Register(ModuleName, 10, "cannot close a transfer channel by user action")
	ErrInvalidPort             = errorsmod.Register(ModuleName, 11, "invalid port binding for transfer module")
	ErrUnwindEscrowFunds       = errorsmod.Register(ModuleName, 12, "failed to unwind escrowed funds")
)

// PacketData is the JSON payload an ICS-20 packet carries. Amount is a
// decimal string, not a numeric JSON field, so it round-trips through
// JSON without precision loss for amounts larger than float64 can hold.
type PacketData struct {
	Denom    string `json:"denom"`
	Amount   string `json:"amount"`
	Sender   string `json:"sender"`
	Receiver string `json:"receiver"`
}

func (p PacketData) Validate() error {
	if strings.TrimSpace(p.Denom) == "" {
		return errorsmod.Wrap(ErrInvalidDenomForTransfer, "denom cannot be blank")
	}
	if strings.TrimSpace(p.Amount) == "" {
		return errorsmod.Wrap(ErrInvalidAmount, "amount cannot be blank")
	}
	if strings.TrimSpace(p.Sender) == "" || strings.TrimSpace(p.Receiver) == "" {
		return errorsmod.Wrap(ErrInvalidPacketData, "sender and receiver cannot be blank")
	}
	return nil
}

func (p PacketData) Marshal() []byte {
	bz, err := json.Marshal(p)
	if err != nil {
		panic("marshaling transfer packet data: " + err.Error())
	}
	return bz
}

func UnmarshalPacketData(bz []byte) (PacketData, error) {
	var data PacketData
	if err := json.Unmarshal(bz, &data); err != nil {
		return PacketData{}, errorsmod.Wrap(ErrInvalidPacketData, err.Error())
	}
	if err := data.Validate(); err != nil {
		return PacketData{}, err
	}
	return data, nil
}

// GetPrefixedDenom builds the denom a receiving chain records for a token
// that just crossed portID/channelID: the port/channel pair is pushed onto
// the front of the existing denom trace.
func GetPrefixedDenom(portID, channelID, denom string) string {
	return portID + DenomPrefixSeparator + channelID + DenomPrefixSeparator + denom
}

// IsSourceChain reports whether this chain is the source of the
// denomination being transferred in packet data `denom`: true if the
// denom trace is NOT already prefixed with the channel the packet is
// travelling out on: the sender is sending a token it minted or
// escrowed here previously, not one it received.
func IsSourceChain(sourcePort, sourceChannel, denom string) bool {
	prefix := GetPrefixedDenom(sourcePort, sourceChannel, "")
	return !strings.HasPrefix(denom, prefix)
}

// UnprefixDenom strips exactly one port/channel hop of denom trace from
// the front of denom, used by the receiving chain when the denom it is
// seeing is being "unwound" back toward its origin.
func UnprefixDenom(portID, channelID, denom string) (string, bool) {
	prefix := GetPrefixedDenom(portID, channelID, "")
	if !strings.HasPrefix(denom, prefix) {
		return denom, false
	}
	return strings.TrimPrefix(denom, prefix), true
}

// EscrowAddress derives the account that holds tokens escrowed for
// (portID, channelID), following the ADR-028 scheme: the first 20 bytes of
// SHA-256(version || 0x00 || "{port}/{channel}"), bech32-encoded with the
// "cosmos" prefix. Every chain implementing ICS-20 derives the identical
// address for the identical channel because the formula has no chain-local
// secret in it.
func EscrowAddress(portID, channelID string) (string, error) {
	raw := escrowAddressBytes(portID, channelID)
	return bech32.ConvertAndEncode(EscrowAddressHRP, raw)
}

func escrowAddressBytes(portID, channelID string) []byte {
	buf := make([]byte, 0, len(Version)+1+len(portID)+1+len(channelID))
	buf = append(buf, []byte(Version)...)
	buf = append(buf, 0x00)
	buf = append(buf, []byte(fmt.Sprintf("%s/%s", portID, channelID))...)

	hash := sha256.Sum256(buf)
	return hash[:20]
}
