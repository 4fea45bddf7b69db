package storage

import (
	"encoding/json"
	"fmt"

	"neuroviz/internal/model"
)

// EncodeNetwork serializes the aggregate verbatim; the JSON field names are
// the interchange format and must survive a round trip untouched.
func EncodeNetwork(net model.Network) ([]byte, error) {
	return json.Marshal(net)
}

// DecodeNetwork parses a saved document and validates the structural
// invariants before handing the network to the caller. Malformed input is a
// load failure, never a silent partial state.
func DecodeNetwork(data []byte) (model.Network, error) {
	var net model.Network
	if err := json.Unmarshal(data, &net); err != nil {
		return model.Network{}, fmt.Errorf("decode network: %w", err)
	}
	if err := model.Validate(net); err != nil {
		return model.Network{}, fmt.Errorf("decode network: %w", err)
	}
	return net, nil
}
