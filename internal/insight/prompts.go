package insight

import "fmt"

// TranscriptionPrompt builds the instruction for the first model call:
// a verbatim transcript with inline bracketed tagging of acoustic events
// at the point they occur in the audio timeline.
func TranscriptionPrompt(fileName string) string {
	return fmt.Sprintf(`TASK: Provide a verbatim transcript.

TECHNICAL AUDIT: Identify these specific ATDS (Automated Telephone Dialing System) markers:
- [Hold Music]: Background music while waiting.
- [Pre-recorded Message]: Automated voice playing a message.
- [Noticeable Delay]: A gap of 2+ seconds of silence before the agent speaks (Dead Air/Connection Lag).
- [Connection Tone]: A beep or tone immediately when the call connects.
- [Disconnection Tone]: A beep or tone when the call ends.

If you hear a sustained rhythmic 'beep-beep' engaged tone, label as [Signal: Verified Busy Signal].
Otherwise, if it's a standard call, use [Signal: Clear Connection].

Filename: %s`, fileName)
}

// ExtractionPrompt builds the instruction for the second model call. The
// transcript is embedded so extraction can cross-validate it against the
// re-attached audio.
func ExtractionPrompt(transcript, fileName string) string {
	return fmt.Sprintf(`Analyze the audio and this transcript: %q.

ATDS IDENTIFIER RULES:
Populate 'atdsIdentifiers' ONLY with markers clearly heard:
- "Hold Music"
- "Pre-recorded Message"
- "Noticeable Delay"
- "Connection Tone"
- "Disconnection Tone"

If none are present, return an empty array. Do not guess.

EXTRACTION RULES:
- If the transcript is ambiguous or silent about the caller contact number, call timestamp, or company name, derive them from the filename first: %q.
- 'sentiment' is one of "Positive", "Neutral", "Negative".
- 'callDirection' is one of "Inbound", "Outbound", "Unknown".
- 'dncStatusDescription' must be exactly "Opted Out" if a do-not-call or opt-out request appears anywhere in the call, otherwise exactly "Opted In".
- 'isAutoAgent' is true only when the initiating speaker is a machine or IVR, not merely automation-adjacent language.
- 'isTransferred' is true only when an observed handoff between two distinct human or system speakers occurs mid-call.
- 'automationScore' is an integer from 0 to 100.

Also extract standard lead data.`, transcript, fileName)
}
