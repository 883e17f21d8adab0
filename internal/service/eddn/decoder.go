package eddn

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/galmarket/eddn-ingest/internal/constant"
	"github.com/galmarket/eddn-ingest/internal/entity"
	"github.com/goccy/go-json"
	"github.com/klauspost/compress/zlib"
	"github.com/sirupsen/logrus"
)

// MessageKind is the schema family a frame dispatches to.
type MessageKind int

const (
	KindOther MessageKind = iota
	KindCommodity
	KindJournal
)

// Decoder turns a raw compressed frame into a typed envelope. With a
// scratch dir set it also keeps the most recent decoded payload on disk
// for offline inspection.
type Decoder struct {
	scratchDir string
}

// NewDecoder returns a decoder. scratchDir may be empty to disable the
// debug dump.
func NewDecoder(scratchDir string) *Decoder {
	return &Decoder{scratchDir: scratchDir}
}

// Decode inflates and parses one frame, then classifies it by the
// schema-reference suffix. Any decompression or parse failure is the
// frame's problem, not the run's; callers drop the frame and move on.
func (d *Decoder) Decode(frame []byte) (*entity.Envelope, MessageKind, error) {
	zr, err := zlib.NewReader(bytes.NewReader(frame))
	if err != nil {
		return nil, KindOther, fmt.Errorf("zlib: %w", err)
	}

	payload, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return nil, KindOther, fmt.Errorf("zlib: %w", err)
	}

	var env entity.Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, KindOther, fmt.Errorf("json: %w", err)
	}

	d.dump(payload)

	switch {
	case strings.HasSuffix(env.SchemaRef, constant.CommoditySchemaSuffix):
		env.Message.Normalize()
		return &env, KindCommodity, nil
	case strings.HasSuffix(env.SchemaRef, constant.JournalSchemaSuffix):
		return &env, KindJournal, nil
	default:
		return &env, KindOther, nil
	}
}

// dump writes the last raw payload to the scratch file, best-effort.
func (d *Decoder) dump(payload []byte) {
	if d.scratchDir == "" {
		return
	}

	if err := os.MkdirAll(d.scratchDir, 0o755); err != nil {
		logrus.Debugf("eddn: debug dump: %v", err)
		return
	}

	path := filepath.Join(d.scratchDir, constant.DebugDumpFile)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		logrus.Debugf("eddn: debug dump: %v", err)
	}
}
