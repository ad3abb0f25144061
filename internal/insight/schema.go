package insight

import "github.com/echoscribe/engine/internal/genai"

// ResponseSchema declares the extraction contract to the model at the
// protocol level. Property names and types match Fields exactly;
// enumerated values (sentiment, callDirection) travel as strings with
// the value set instructed in the prompt.
func ResponseSchema() *genai.Schema {
	str := func() *genai.Schema { return &genai.Schema{Type: genai.TypeString} }
	boolean := func() *genai.Schema { return &genai.Schema{Type: genai.TypeBoolean} }
	strList := func() *genai.Schema {
		return &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"summary":         str(),
			"structuredNotes": strList(),
			"keyTopics":       strList(),
			"actionItems":     strList(),
			"speakers":        strList(),
			"sentiment":       str(),

			"companyName":    str(),
			"callerName":     str(),
			"offeredProduct": str(),
			"callerContact":  str(),
			"callerEmail":    str(),
			"clientContact":  str(),

			"dncRequested":         boolean(),
			"dncStatusDescription": str(),

			"entityRelations": str(),
			"keyQuotes":       strList(),

			"isAutoAgent":   boolean(),
			"isTransferred": boolean(),
			"callDateTime":  str(),
			"callDirection": str(),

			"audioSignatures": strList(),
			"atdsIdentifiers": strList(),
			"automationScore": {Type: genai.TypeInteger},
			"technicalNotes":  str(),

			"wasDisconnected":          boolean(),
			"isBusySignal":             boolean(),
			"isBlankCall":              boolean(),
			"signalStatus":             str(),
			"hasHoldMusic":             boolean(),
			"agentMentionedAutoDialer": boolean(),
		},
		Required: requiredKeys,
	}
}
