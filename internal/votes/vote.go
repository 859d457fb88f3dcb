package votes

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/roach88/scrutin/internal/canon"
)

// Vote is one voter's record. VoterID doubles as the world state key and
// is immutable once chosen; Update replaces the other fields only.
type Vote struct {
	VoterID     string `json:"voter_id"`
	CandidateID string `json:"candidate_id"`
	Station     string `json:"station"`
}

// Encode serializes a vote to canonical JSON. The output is byte-identical
// for equal field values regardless of how the vote was constructed.
func Encode(v Vote) ([]byte, error) {
	obj := canon.Obj{
		"voter_id":     canon.Str(v.VoterID),
		"candidate_id": canon.Str(v.CandidateID),
		"station":      canon.Str(v.Station),
	}

	data, err := canon.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("encode vote %q: %w", v.VoterID, err)
	}
	return data, nil
}

// Decode parses stored bytes into a Vote. Unknown fields are rejected so
// that arbitrary JSON planted in the ledger does not pass as a vote.
func Decode(data []byte) (Vote, error) {
	var v Vote
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&v); err != nil {
		return Vote{}, fmt.Errorf("decode vote: %w", err)
	}
	if v.VoterID == "" {
		return Vote{}, fmt.Errorf("decode vote: missing voter_id")
	}
	return v, nil
}
