//go:build js && wasm

package main

import (
	"encoding/json"
	"errors"
	"syscall/js"

	"cribbage-lite/replay"
)

// marshalFailed is returned verbatim if a response cannot be encoded.
const marshalFailed = `{"ok":false,"error":{"step_index":-1,"reason":"marshal_failed"}}`

type tapeRequest struct {
	Spec replay.HandSpec `json:"spec"`
}

type tapeResponse struct {
	OK    bool                `json:"ok"`
	Tape  *replay.Tape        `json:"tape,omitempty"`
	Error *replay.ReplayError `json:"error,omitempty"`
}

func failure(reason string, err error) tapeResponse {
	var replayErr *replay.ReplayError
	if errors.As(err, &replayErr) {
		return tapeResponse{Error: replayErr}
	}
	return tapeResponse{Error: &replay.ReplayError{StepIndex: -1, Reason: reason, Message: err.Error()}}
}

func buildTape(raw string) tapeResponse {
	var req tapeRequest
	if err := json.Unmarshal([]byte(raw), &req); err != nil {
		return failure("invalid_json", err)
	}
	tape, err := replay.GenerateTape(req.Spec)
	if err != nil {
		return failure("replay_generation_failed", err)
	}
	return tapeResponse{OK: true, Tape: tape}
}

func encode(resp tapeResponse) string {
	b, err := json.Marshal(resp)
	if err != nil {
		return marshalFailed
	}
	return string(b)
}

func main() {
	js.Global().Set("cribbageReplay", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return encode(failure("invalid_request", errors.New("missing request payload")))
		}
		return encode(buildTape(args[0].String()))
	}))
	select {}
}
