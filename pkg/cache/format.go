// Package cache implements C11: serializing a loaded configuration into a
// single on-disk archive, and checking that archive for staleness without
// deserializing its matches or variables (spec.md §4.9).
package cache

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"io"

	"github.com/expando-dev/expando/pkg/model"
	"github.com/expando-dev/expando/pkg/profile"
)

// magic identifies an expando cache archive; version guards against format
// changes between builds. Both are validated before anything else is read
// (spec.md §4.9 step 1, design note on treating the archive as untrusted
// input).
const (
	magic   = "XPDC"
	version = uint32(1)
)

// ProfileSnapshot holds a profile's source path and parsed config. The
// compiled filters and resolved match paths of a profile.File are not
// persisted, since regexp.Regexp doesn't gob-encode, and this package does
// not rebuild them.
type ProfileSnapshot struct {
	SourcePath string
	Config     profile.ParsedConfig
}

// MatchFileSnapshot mirrors model.ResolvedMatchFile with Imports kept as
// plain ints (MatchFileRef's underlying type), gob-safe on its own.
type MatchFileSnapshot struct {
	SourcePath string
	Imports    []int
	Content    model.MatchFile
}

// Snapshot is the full payload of one archive: everything needed to
// reconstruct a Configuration without re-parsing any YAML.
type Snapshot struct {
	DefaultProfile ProfileSnapshot
	CustomProfiles []ProfileSnapshot
	MatchFiles     []MatchFileSnapshot
}

// Archive is a Header plus the gob-encoded Snapshot it describes.
type Archive struct {
	Header  Header
	Payload []byte
}

// Write serializes snapshot into w as: magic, version, gob-encoded Header,
// length-prefixed gob-encoded Snapshot payload.
func Write(w io.Writer, header Header, snapshot Snapshot) error {
	if _, err := io.WriteString(w, magic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, version); err != nil {
		return err
	}

	var headerBuf bytes.Buffer
	if err := gob.NewEncoder(&headerBuf).Encode(header); err != nil {
		return fmt.Errorf("encoding cache header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(headerBuf.Len())); err != nil {
		return err
	}
	if _, err := w.Write(headerBuf.Bytes()); err != nil {
		return err
	}

	var payloadBuf bytes.Buffer
	if err := gob.NewEncoder(&payloadBuf).Encode(snapshot); err != nil {
		return fmt.Errorf("encoding cache payload: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, uint64(payloadBuf.Len())); err != nil {
		return err
	}
	_, err := w.Write(payloadBuf.Bytes())
	return err
}

// ReadHeader validates the magic/version and decodes only the Header,
// leaving the payload bytes unread — the zero-copy path spec.md §4.9
// requires for the freshness check (step 1-2).
func ReadHeader(r io.Reader) (Header, error) {
	var hdr Header

	magicBuf := make([]byte, len(magic))
	if _, err := io.ReadFull(r, magicBuf); err != nil {
		return hdr, fmt.Errorf("reading magic: %w", err)
	}
	if string(magicBuf) != magic {
		return hdr, fmt.Errorf("not an expando cache archive")
	}

	var gotVersion uint32
	if err := binary.Read(r, binary.LittleEndian, &gotVersion); err != nil {
		return hdr, fmt.Errorf("reading version: %w", err)
	}
	if gotVersion != version {
		return hdr, fmt.Errorf("unsupported cache version %d (want %d)", gotVersion, version)
	}

	var headerLen uint64
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return hdr, fmt.Errorf("reading header length: %w", err)
	}
	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return hdr, fmt.Errorf("reading header: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(headerBytes)).Decode(&hdr); err != nil {
		return hdr, fmt.Errorf("decoding header: %w", err)
	}
	return hdr, nil
}

// ReadSnapshot fully decodes an archive, including its payload. Callers
// should only reach this after IsFresh (fresh.go) passes.
func ReadSnapshot(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if _, err := ReadHeader(r); err != nil {
		return snap, err
	}
	var payloadLen uint64
	if err := binary.Read(r, binary.LittleEndian, &payloadLen); err != nil {
		return snap, fmt.Errorf("reading payload length: %w", err)
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return snap, fmt.Errorf("reading payload: %w", err)
	}
	if err := gob.NewDecoder(bytes.NewReader(payload)).Decode(&snap); err != nil {
		return snap, fmt.Errorf("decoding payload: %w", err)
	}
	return snap, nil
}
