package pipeline

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
	"testing"
)

func TestEncodeAudioRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"short", []byte("abc")},
		{"binary", []byte{0x00, 0xFF, 0x1A, 0x45, 0xDF, 0xA3, 0x00, 0x7F}}, // webm magic plus noise
		{"long", bytes.Repeat([]byte{0xAB, 0xCD, 0xEF}, 10000)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := EncodeAudio(bytes.NewReader(tt.data))
			if err != nil {
				t.Fatalf("EncodeAudio: %v", err)
			}
			decoded, err := base64.StdEncoding.DecodeString(encoded)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if !bytes.Equal(decoded, tt.data) {
				t.Errorf("round trip mismatch: got %d bytes, want %d", len(decoded), len(tt.data))
			}
		})
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestEncodeAudioReadFailure(t *testing.T) {
	_, err := EncodeAudio(failingReader{})
	if !errors.Is(err, ErrInput) {
		t.Errorf("err = %v, want ErrInput", err)
	}
	if !strings.Contains(err.Error(), "device gone") {
		t.Errorf("err = %v, want cause preserved", err)
	}
}
