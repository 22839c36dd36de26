package types

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/corechain/ibccore/core/exported"
)

// Packet is the envelope a sending chain commits to and a receiving chain
// delivers to its bound module.
type Packet struct {
	Sequence           uint64
	SourcePort         string
	SourceChannel      string
	DestinationPort    string
	DestinationChannel string
	Data               []byte
	TimeoutHeight      exported.Height
	TimeoutTimestamp   exported.Timestamp
}

// HasTimeout reports whether at least one of the height/timestamp timeouts
// is set; a packet with neither could never time out and is rejected by
// SendPacket.
func (p Packet) HasTimeout() bool {
	return !p.TimeoutHeight.IsZero() || !p.TimeoutTimestamp.IsZero()
}

// Validate checks the invariants that hold for every packet regardless of
// which application sent it. Whether a packet with no timeout at all is
// acceptable is a per-application decision, not a core invariant, so
// that check lives in SendPacket instead, gated by allowNoTimeout.
func (p Packet) Validate() error {
	if p.Sequence == 0 {
		return fmt.Errorf("packet sequence cannot be 0")
	}
	if p.SourcePort == "" || p.SourceChannel == "" || p.DestinationPort == "" || p.DestinationChannel == "" {
		return fmt.Errorf("packet port/channel identifiers cannot be blank")
	}
	if len(p.Data) == 0 {
		return fmt.Errorf("packet data cannot be empty")
	}
	return nil
}

// CommitPacket deterministically hashes a packet's timeout fields and data
// into the 32-byte value SendPacket commits to the store and a receiving
// chain's RecvPacket proves against. The layout (timestamp || revision
// number || revision height || sha256(data), each big-endian) matches the
// commitment a genuine ICS-04 implementation produces, so proofs generated
// by a real counterparty verify against it unchanged.
func CommitPacket(packet Packet) []byte {
	buf := make([]byte, 0, 8+8+8+sha256.Size)
	buf = appendUint64(buf, uint64(packet.TimeoutTimestamp))
	buf = appendUint64(buf, packet.TimeoutHeight.RevisionNumber)
	buf = appendUint64(buf, packet.TimeoutHeight.RevisionHeight)

	dataHash := sha256.Sum256(packet.Data)
	buf = append(buf, dataHash[:]...)

	hash := sha256.Sum256(buf)
	return hash[:]
}

// CommitAcknowledgement hashes an acknowledgement's bytes into the value
// stored at the packet acknowledgement path.
func CommitAcknowledgement(ack []byte) []byte {
	hash := sha256.Sum256(ack)
	return hash[:]
}

func appendUint64(buf []byte, v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return append(buf, b...)
}
