package genai

// Part is one element of a content turn: inline binary data or text.
// Exactly one field should be set.
type Part struct {
	Text       string      `json:"text,omitempty"`
	InlineData *InlineData `json:"inlineData,omitempty"`
}

// InlineData carries base64-encoded bytes with their MIME type.
type InlineData struct {
	MIMEType string `json:"mimeType"`
	Data     string `json:"data"`
}

// TextPart builds a text part.
func TextPart(text string) Part {
	return Part{Text: text}
}

// AudioPart builds an inline-data part from already base64-encoded audio.
func AudioPart(base64Data, mimeType string) Part {
	return Part{InlineData: &InlineData{MIMEType: mimeType, Data: base64Data}}
}

// GenerationConfig requests protocol-level output constraints. Setting
// ResponseMIMEType to "application/json" together with a ResponseSchema
// asks the model for schema-conforming JSON instead of prose.
type GenerationConfig struct {
	ResponseMIMEType string  `json:"responseMimeType,omitempty"`
	ResponseSchema   *Schema `json:"responseSchema,omitempty"`
}

// Schema type names accepted by the generateContent API.
const (
	TypeObject  = "OBJECT"
	TypeArray   = "ARRAY"
	TypeString  = "STRING"
	TypeBoolean = "BOOLEAN"
	TypeInteger = "INTEGER"
)

// Schema is the subset of the API's response schema language this
// service declares: flat objects of strings, booleans, integers and
// string arrays.
type Schema struct {
	Type       string             `json:"type"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
}

// generateRequest is the wire request for models/{model}:generateContent.
type generateRequest struct {
	Contents         []content         `json:"contents"`
	GenerationConfig *GenerationConfig `json:"generationConfig,omitempty"`
}

type content struct {
	Parts []Part `json:"parts"`
}

// generateResponse is the wire response. Only the candidate text parts
// are consumed.
type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
}
