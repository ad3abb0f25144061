package insight

import (
	"encoding/json"
	"reflect"
	"testing"
)

// validPayload returns a complete extraction response with every
// required property present.
func validPayload() map[string]any {
	return map[string]any{
		"summary":         "Outbound sales call offering a business loan.",
		"structuredNotes": []string{"Agent introduced as Sam"},
		"keyTopics":       []string{"business loan", "interest rate"},
		"actionItems":     []string{"Send rate sheet by email"},
		"speakers":        []string{"Agent", "Customer"},
		"sentiment":       "Neutral",

		"companyName":    "Acme Capital",
		"callerName":     "Sam",
		"offeredProduct": "Working capital loan",
		"callerContact":  "+1-555-0100",
		"callerEmail":    "sam@acmecapital.example",
		"clientContact":  "owner@smallbiz.example",

		"dncRequested":         false,
		"dncStatusDescription": "Opted In",

		"entityRelations": "Acme Capital cold-calls SmallBiz LLC",
		"keyQuotes":       []string{"We can fund within 48 hours."},

		"isAutoAgent":   false,
		"isTransferred": false,
		"callDateTime":  "2026-08-14 10:32",
		"callDirection": "Outbound",

		"audioSignatures": []string{"connection tone at start"},
		"atdsIdentifiers": []string{"Connection Tone"},
		"automationScore": 35,
		"technicalNotes":  "Clean line, no dropouts.",

		"wasDisconnected":          false,
		"isBusySignal":             false,
		"isBlankCall":              false,
		"signalStatus":             "Clear Connection",
		"hasHoldMusic":             false,
		"agentMentionedAutoDialer": false,
	}
}

func mustMarshal(t *testing.T, v any) []byte {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return b
}

func TestParseFields(t *testing.T) {
	t.Run("valid_payload_round_trips", func(t *testing.T) {
		raw := mustMarshal(t, validPayload())
		f, err := ParseFields(raw)
		if err != nil {
			t.Fatalf("ParseFields: %v", err)
		}
		if f.CompanyName != "Acme Capital" {
			t.Errorf("CompanyName = %q", f.CompanyName)
		}
		if f.AutomationScore != 35 {
			t.Errorf("AutomationScore = %d, want 35", f.AutomationScore)
		}
		if !reflect.DeepEqual(f.ATDSIdentifiers, []string{"Connection Tone"}) {
			t.Errorf("ATDSIdentifiers = %v", f.ATDSIdentifiers)
		}
		if !reflect.DeepEqual(f.KeyQuotes, []string{"We can fund within 48 hours."}) {
			t.Errorf("KeyQuotes = %v", f.KeyQuotes)
		}
	})

	t.Run("invalid_json_fails", func(t *testing.T) {
		for _, raw := range []string{"", "{", "not json", `"just a string"`} {
			if _, err := ParseFields([]byte(raw)); err == nil {
				t.Errorf("ParseFields(%q) succeeded, want error", raw)
			}
		}
	})

	t.Run("truncated_json_fails", func(t *testing.T) {
		raw := mustMarshal(t, validPayload())
		if _, err := ParseFields(raw[:len(raw)/2]); err == nil {
			t.Error("ParseFields on truncated body succeeded, want error")
		}
	})

	t.Run("missing_required_key_fails", func(t *testing.T) {
		for _, key := range []string{"dncRequested", "automationScore", "atdsIdentifiers", "signalStatus"} {
			p := validPayload()
			delete(p, key)
			if _, err := ParseFields(mustMarshal(t, p)); err == nil {
				t.Errorf("ParseFields without %q succeeded, want error", key)
			}
		}
	})

	t.Run("score_out_of_range_fails", func(t *testing.T) {
		for _, score := range []int{-1, 101, 500} {
			p := validPayload()
			p["automationScore"] = score
			if _, err := ParseFields(mustMarshal(t, p)); err == nil {
				t.Errorf("ParseFields with score %d succeeded, want error", score)
			}
		}
	})

	t.Run("dnc_description_follows_boolean", func(t *testing.T) {
		p := validPayload()
		p["dncRequested"] = true
		p["dncStatusDescription"] = "customer asked to be removed" // model prose is overwritten
		f, err := ParseFields(mustMarshal(t, p))
		if err != nil {
			t.Fatalf("ParseFields: %v", err)
		}
		if f.DNCStatusDescription != DNCOptedOut {
			t.Errorf("DNCStatusDescription = %q, want %q", f.DNCStatusDescription, DNCOptedOut)
		}

		p["dncRequested"] = false
		f, err = ParseFields(mustMarshal(t, p))
		if err != nil {
			t.Fatalf("ParseFields: %v", err)
		}
		if f.DNCStatusDescription != DNCOptedIn {
			t.Errorf("DNCStatusDescription = %q, want %q", f.DNCStatusDescription, DNCOptedIn)
		}
	})
}

func TestResponseSchemaMatchesFields(t *testing.T) {
	s := ResponseSchema()

	if s.Type != "OBJECT" {
		t.Fatalf("schema type = %q, want OBJECT", s.Type)
	}

	// Every required key must be a declared property.
	for _, key := range s.Required {
		if _, ok := s.Properties[key]; !ok {
			t.Errorf("required key %q has no property declaration", key)
		}
	}

	// Every property must correspond to a Fields json tag.
	tags := make(map[string]bool)
	ft := reflect.TypeOf(Fields{})
	for i := 0; i < ft.NumField(); i++ {
		tags[ft.Field(i).Tag.Get("json")] = true
	}
	for name := range s.Properties {
		if !tags[name] {
			t.Errorf("schema property %q has no Fields counterpart", name)
		}
	}
	if len(s.Properties) != ft.NumField() {
		t.Errorf("schema has %d properties, Fields has %d", len(s.Properties), ft.NumField())
	}
}
