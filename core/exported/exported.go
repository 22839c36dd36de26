// Package exported defines the primitive types and the interface contracts
// this module consumes from its external collaborators: the light-client
// engine (ICS-02/ICS-23) and the connection handshake (ICS-03). Neither is
// implemented here; only the shape this repo needs from them is.
package exported

import (
	"fmt"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Height is a monotonically comparable client height, split into a revision
// number (bumped on light-client upgrades) and a block height within that
// revision.
type Height struct {
	RevisionNumber uint64
	RevisionHeight uint64
}

// ZeroHeight is the sentinel height meaning "no height-based timeout".
func ZeroHeight() Height {
	return Height{}
}

func (h Height) IsZero() bool {
	return h.RevisionNumber == 0 && h.RevisionHeight == 0
}

func (h Height) String() string {
	return fmt.Sprintf("%d-%d", h.RevisionNumber, h.RevisionHeight)
}

// LT reports whether h is strictly lower than other, comparing revisions
// first, consistent with ibc-go's own height ordering.
func (h Height) LT(other Height) bool {
	if h.RevisionNumber != other.RevisionNumber {
		return h.RevisionNumber < other.RevisionNumber
	}
	return h.RevisionHeight < other.RevisionHeight
}

func (h Height) GT(other Height) bool {
	return other.LT(h)
}

func (h Height) EQ(other Height) bool {
	return h.RevisionNumber == other.RevisionNumber && h.RevisionHeight == other.RevisionHeight
}

func (h Height) LTE(other Height) bool {
	return h.LT(other) || h.EQ(other)
}

// Timestamp is a Unix nanosecond timestamp. Zero means "no timestamp
// timeout set".
type Timestamp uint64

func (t Timestamp) IsZero() bool {
	return t == 0
}

func (t Timestamp) After(other Timestamp) bool {
	return uint64(t) > uint64(other)
}

// Acknowledgement is the interface a packet acknowledgement must satisfy so
// the core can tell success from failure without knowing the application's
// encoding.
type Acknowledgement interface {
	Success() bool
	Acknowledgement() []byte
}

// ConnectionState mirrors the three handshake states ICS-03 connections move
// through; this repo only ever reads a connection's state, it never drives
// this state machine.
type ConnectionState int

const (
	ConnectionUninitialized ConnectionState = iota
	ConnectionInit
	ConnectionTryOpen
	ConnectionOpen
)

// ConnectionEnd is the subset of ICS-03 connection data this repo needs to
// resolve a channel's client and counterparty prefix. The connection
// handshake that produces it is an external collaborator.
type ConnectionEnd struct {
	ClientId                 string
	State                    ConnectionState
	CounterpartyClientId     string
	CounterpartyConnectionId string
	CounterpartyPrefix       string
	Versions                 []string
}

func (c ConnectionEnd) IsOpen() bool {
	return c.State == ConnectionOpen
}

// ConnectionReader is the read-only capability interface onto the ICS-03
// connection store. This repo never mutates connection state.
type ConnectionReader interface {
	GetConnection(ctx sdk.Context, connectionID string) (ConnectionEnd, bool)
}

// ClientReader is the read-only capability interface onto the ICS-02
// light-client engine. Proof verification (ICS-23) is delegated entirely to
// the implementation behind this interface; this repo only ever supplies
// the path and expected value being proven.
type ClientReader interface {
	// GetLatestHeight returns the highest height the given client has
	// stored a consensus state for.
	GetLatestHeight(ctx sdk.Context, clientID string) (Height, bool)

	// VerifyMembership checks that, at the given proof height, the
	// counterparty chain's state at path holds exactly value, per the
	// client's Merkle proof scheme.
	VerifyMembership(ctx sdk.Context, clientID string, height Height, proof []byte, path string, value []byte) error

	// VerifyNonMembership checks that, at the given proof height, the
	// counterparty chain's state has nothing stored at path.
	VerifyNonMembership(ctx sdk.Context, clientID string, height Height, proof []byte, path string) error
}
