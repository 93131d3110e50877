// Package wire implements the framing used on the sample TCP path:
// a 4-byte big-endian payload length followed by a MessagePack array of
// samples, each encoded as [path, [timestamp, value]].
package wire

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"

	"github.com/pkg/errors"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bft-labs/graphitepush/internal/domain"
)

// HeaderSize is the length of the frame header in bytes.
const HeaderSize = 4

// MaxPayloadSize is the largest payload a 4-byte header can describe.
const MaxPayloadSize = math.MaxUint32

// Encode serializes samples. A nil or empty slice encodes as an empty array.
func Encode(samples []domain.Sample) ([]byte, error) {
	if samples == nil {
		samples = []domain.Sample{}
	}
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(samples); err != nil {
		return nil, errors.Wrap(err, "encode samples")
	}
	return buf.Bytes(), nil
}

// Decode is the inverse of Encode.
func Decode(payload []byte) ([]domain.Sample, error) {
	var samples []domain.Sample
	if err := msgpack.Unmarshal(payload, &samples); err != nil {
		return nil, errors.Wrap(err, "decode samples")
	}
	return samples, nil
}

// Frame prepends the length header to payload.
func Frame(payload []byte) ([]byte, error) {
	if uint64(len(payload)) > MaxPayloadSize {
		return nil, errors.Errorf("payload of %d bytes exceeds frame limit", len(payload))
	}
	packet := make([]byte, HeaderSize+len(payload))
	binary.BigEndian.PutUint32(packet, uint32(len(payload)))
	copy(packet[HeaderSize:], payload)
	return packet, nil
}

// EncodeFrame encodes samples and frames the result.
func EncodeFrame(samples []domain.Sample) ([]byte, error) {
	payload, err := Encode(samples)
	if err != nil {
		return nil, err
	}
	return Frame(payload)
}

// ReadFrame reads one framed payload from r.
func ReadFrame(r io.Reader) ([]byte, error) {
	var header [HeaderSize]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return nil, errors.Wrap(err, "read frame header")
	}
	payload := make([]byte, binary.BigEndian.Uint32(header[:]))
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, errors.Wrap(err, "read frame payload")
	}
	return payload, nil
}
