package helpline

import (
	"encoding/json"
	"testing"
)

func TestDecodeListEnvelope(t *testing.T) {
	body := []byte(`{"success":true,"data":[{"patientName":"Ahmed","amount":500000}],"count":1}`)
	env := DecodeList(body)

	if !env.Success || len(env.Data) != 1 || env.Count != 1 {
		t.Fatalf("unexpected envelope: %+v", env)
	}
	if env.Data[0].PatientName != "Ahmed" {
		t.Fatalf("expected Ahmed, got %q", env.Data[0].PatientName)
	}
}

func TestDecodeListBareArray(t *testing.T) {
	body := []byte(`[{"studentName":"Sana"},{"studentName":"Bilal"}]`)
	env := DecodeList(body)

	if len(env.Data) != 2 || env.Count != 2 {
		t.Fatalf("bare array should wrap to envelope, got %+v", env)
	}
}

func TestDecodeListGarbage(t *testing.T) {
	for _, body := range []string{``, `{"weird":"shape"}`, `"nope"`, `{`} {
		env := DecodeList([]byte(body))
		if env.Data != nil {
			t.Fatalf("unexpected data for %q: %+v", body, env)
		}
		if !env.Success {
			t.Fatalf("shape mismatch must degrade to empty success, got %+v", env)
		}
	}
}

func TestDecodeSingleShapes(t *testing.T) {
	wrapped := DecodeSingle([]byte(`{"success":true,"data":{"projectName":"Clean Water"}}`))
	if wrapped.Data.ProjectName != "Clean Water" {
		t.Fatalf("wrapped record lost: %+v", wrapped)
	}

	bare := DecodeSingle([]byte(`{"projectName":"Clean Water"}`))
	if bare.Data.ProjectName != "Clean Water" {
		t.Fatalf("bare record lost: %+v", bare)
	}
}

func TestFlexIDNumericCoercion(t *testing.T) {
	var record RawRecord
	if err := json.Unmarshal([]byte(`{"id":42}`), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if record.ID != "42" {
		t.Fatalf("numeric id should coerce to string, got %q", record.ID)
	}

	if err := json.Unmarshal([]byte(`{"id":"abc"}`), &record); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if record.ID != "abc" {
		t.Fatalf("string id should pass through, got %q", record.ID)
	}
}
