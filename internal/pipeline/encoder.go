package pipeline

import (
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

// EncodeAudio reads the whole blob and returns its transport-safe base64
// encoding. A read failure aborts the pipeline before any network call.
func EncodeAudio(r io.Reader) (string, error) {
	var sb strings.Builder
	enc := base64.NewEncoder(base64.StdEncoding, &sb)
	if _, err := io.Copy(enc, r); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInput, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInput, err)
	}
	return sb.String(), nil
}
