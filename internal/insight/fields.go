package insight

import (
	"encoding/json"
	"fmt"
)

// Sentiment values the extraction prompt instructs the model to use.
const (
	SentimentPositive = "Positive"
	SentimentNeutral  = "Neutral"
	SentimentNegative = "Negative"
)

// Call direction values.
const (
	DirectionInbound  = "Inbound"
	DirectionOutbound = "Outbound"
	DirectionUnknown  = "Unknown"
)

// DNC status descriptions. The dncRequested boolean is authoritative;
// the description is a deterministic rendering of it.
const (
	DNCOptedOut = "Opted Out"
	DNCOptedIn  = "Opted In"
)

// ATDSIdentifiers is the closed vocabulary for the atdsIdentifiers list.
// The model may only emit tokens from this set, and only with direct
// evidence in the audio.
var ATDSIdentifiers = []string{
	"Hold Music",
	"Pre-recorded Message",
	"Noticeable Delay",
	"Connection Tone",
	"Disconnection Tone",
}

// Fields is the structured record extracted from one call recording.
type Fields struct {
	Summary         string   `json:"summary"`
	StructuredNotes []string `json:"structuredNotes"`
	KeyTopics       []string `json:"keyTopics"`
	ActionItems     []string `json:"actionItems"`
	Speakers        []string `json:"speakers"`
	Sentiment       string   `json:"sentiment"`

	CompanyName    string `json:"companyName"`
	CallerName     string `json:"callerName"`
	OfferedProduct string `json:"offeredProduct"`
	CallerContact  string `json:"callerContact"`
	CallerEmail    string `json:"callerEmail"`
	ClientContact  string `json:"clientContact"`

	DNCRequested         bool   `json:"dncRequested"`
	DNCStatusDescription string `json:"dncStatusDescription"`

	EntityRelations string   `json:"entityRelations"`
	KeyQuotes       []string `json:"keyQuotes"`

	IsAutoAgent   bool   `json:"isAutoAgent"`
	IsTransferred bool   `json:"isTransferred"`
	CallDateTime  string `json:"callDateTime"`
	CallDirection string `json:"callDirection"`

	AudioSignatures []string `json:"audioSignatures"`
	ATDSIdentifiers []string `json:"atdsIdentifiers"`
	AutomationScore int      `json:"automationScore"`
	TechnicalNotes  string   `json:"technicalNotes"`

	WasDisconnected          bool   `json:"wasDisconnected"`
	IsBusySignal             bool   `json:"isBusySignal"`
	IsBlankCall              bool   `json:"isBlankCall"`
	SignalStatus             string `json:"signalStatus"`
	HasHoldMusic             bool   `json:"hasHoldMusic"`
	AgentMentionedAutoDialer bool   `json:"agentMentionedAutoDialer"`
}

// requiredKeys are the properties the declared response schema marks
// required. Absence of any of them is a contract violation, not an
// implicit zero value.
var requiredKeys = []string{
	"summary", "companyName", "callerName", "offeredProduct",
	"callerContact", "callerEmail", "clientContact",
	"dncRequested", "dncStatusDescription", "entityRelations",
	"keyQuotes", "isAutoAgent", "isTransferred",
	"callDateTime", "callDirection", "audioSignatures",
	"atdsIdentifiers", "automationScore", "technicalNotes",
	"wasDisconnected", "isBusySignal", "isBlankCall",
	"signalStatus", "hasHoldMusic", "agentMentionedAutoDialer",
}

// ParseFields parses an extraction response body into Fields. It fails on
// invalid JSON, on any missing required property, and on an automation
// score outside [0,100]. On success dncStatusDescription is normalized
// from the dncRequested boolean.
func ParseFields(raw []byte) (*Fields, error) {
	var present map[string]json.RawMessage
	if err := json.Unmarshal(raw, &present); err != nil {
		return nil, fmt.Errorf("invalid extraction JSON: %w", err)
	}

	for _, key := range requiredKeys {
		if _, ok := present[key]; !ok {
			return nil, fmt.Errorf("extraction response missing required property %q", key)
		}
	}

	var f Fields
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("invalid extraction JSON: %w", err)
	}

	if f.AutomationScore < 0 || f.AutomationScore > 100 {
		return nil, fmt.Errorf("automation score %d out of range [0,100]", f.AutomationScore)
	}

	// The boolean is authoritative; overwrite whatever the model wrote.
	if f.DNCRequested {
		f.DNCStatusDescription = DNCOptedOut
	} else {
		f.DNCStatusDescription = DNCOptedIn
	}

	return &f, nil
}
