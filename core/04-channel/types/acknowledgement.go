package types

import "encoding/json"

// Acknowledgement is the module-agnostic JSON envelope a bound module's
// on_recv_packet returns: either a success payload or an error string,
// never both. The shape (a two-field struct where exactly one field is
// populated) matches the acknowledgement wire format real IBC chains emit,
// so a counterparty relayer decodes it without knowing this is not ibc-go.
type Acknowledgement struct {
	Result []byte `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

func NewResultAcknowledgement(result []byte) Acknowledgement {
	return Acknowledgement{Result: result}
}

func NewErrorAcknowledgement(err error) Acknowledgement {
	return Acknowledgement{Error: err.Error()}
}

func (a Acknowledgement) Success() bool {
	return a.Error == ""
}

func (a Acknowledgement) Acknowledgement() []byte {
	bz, err := json.Marshal(a)
	if err != nil {
		panic("marshaling acknowledgement: " + err.Error())
	}
	return bz
}

func UnmarshalAcknowledgement(bz []byte) (Acknowledgement, error) {
	var ack Acknowledgement
	if err := json.Unmarshal(bz, &ack); err != nil {
		return Acknowledgement{}, err
	}
	return ack, nil
}
