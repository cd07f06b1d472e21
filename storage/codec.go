package storage

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// CurrentCodecVersion tags score payloads so old rows can be detected
const CurrentCodecVersion = 1

type scorePayload struct {
	Version int            `msgpack:"v"`
	Scores  map[string]int `msgpack:"s"`
}

func encodeScores(scores map[string]int) ([]byte, error) {
	return msgpack.Marshal(scorePayload{Version: CurrentCodecVersion, Scores: scores})
}

func decodeScores(data []byte) (map[string]int, error) {
	var p scorePayload
	if err := msgpack.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	if p.Version != CurrentCodecVersion {
		return nil, fmt.Errorf("score payload version %d, want %d", p.Version, CurrentCodecVersion)
	}
	return p.Scores, nil
}
