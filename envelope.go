package helpline

import (
	"bytes"
	"encoding/json"
)

// The backend answers list endpoints with either a bare JSON array or a
// {success, data, count} envelope, depending on the route's vintage. These
// decoders are the single place that ambiguity is allowed to exist; every
// caller downstream sees the canonical envelope.

// DecodeList normalizes a 2xx list body. Unrecognized shapes degrade to an
// empty envelope so the caller can still render an (empty) list.
func DecodeList(body []byte) ListEnvelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ListEnvelope{Success: true}
	}

	if trimmed[0] == '[' {
		var records []RawRecord
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return ListEnvelope{Success: true}
		}
		return ListEnvelope{Success: true, Data: records, Count: len(records)}
	}

	var env ListEnvelope
	if err := json.Unmarshal(trimmed, &env); err != nil || env.Data == nil {
		return ListEnvelope{Success: true}
	}
	if env.Count == 0 {
		env.Count = len(env.Data)
	}
	return env
}

// DecodeSingle normalizes a 2xx single-record body, tolerating both the
// envelope and the bare record.
func DecodeSingle(body []byte) SingleEnvelope {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return SingleEnvelope{Success: true}
	}

	var probe struct {
		Success *bool           `json:"success"`
		Data    json.RawMessage `json:"data"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(trimmed, &probe); err == nil && probe.Success != nil && probe.Data != nil {
		var record RawRecord
		if err := json.Unmarshal(probe.Data, &record); err != nil {
			return SingleEnvelope{Success: true}
		}
		return SingleEnvelope{Success: *probe.Success, Data: record, Message: probe.Message}
	}

	var record RawRecord
	if err := json.Unmarshal(trimmed, &record); err != nil {
		return SingleEnvelope{Success: true}
	}
	return SingleEnvelope{Success: true, Data: record}
}
