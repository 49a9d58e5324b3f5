// Package trace records syscalls to a compact binary file: a fixed header
// followed by a snappy-compressed stream of records.
package trace

import (
	"encoding/binary"
	"io"
	"strings"

	"github.com/golang/snappy"
	"github.com/lunixbochs/struc"
	"github.com/pkg/errors"
)

var TRACE_MAGIC = "BDTR"

const TRACE_VERSION = 1

type TraceHeader struct {
	// MAGIC ("BDTR")
	Magic string `struc:"[4]byte" json:"-"`
	// file format version
	Version uint32 `json:"version"`
	// hostname of the recorded machine, right-null-padded
	Hostname string `struc:"[32]byte" json:"hostname"`
}

// Record is one completed syscall.
type Record struct {
	Num  uint64    `struc:"uint64,little"`
	Args [3]uint64 `struc:"[3]uint64,little"`
	Ret  uint64    `struc:"uint64,little"`
}

type TraceWriter struct {
	w  io.WriteCloser
	zw *snappy.Writer
}

func NewWriter(w io.WriteCloser, hostname string) (*TraceWriter, error) {
	if len(hostname) > 32 {
		hostname = hostname[:32]
	}
	header := &TraceHeader{
		Magic:    TRACE_MAGIC,
		Version:  TRACE_VERSION,
		Hostname: hostname,
	}
	if err := struc.PackWithOrder(w, header, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "failed to pack header")
	}
	return &TraceWriter{w: w, zw: snappy.NewBufferedWriter(w)}, nil
}

func (t *TraceWriter) Record(num uint64, args [3]uint64, ret uint64) error {
	rec := &Record{Num: num, Args: args, Ret: ret}
	return errors.Wrap(struc.Pack(t.zw, rec), "failed to pack record")
}

func (t *TraceWriter) Close() error {
	if err := t.zw.Close(); err != nil {
		t.w.Close()
		return errors.Wrap(err, "failed to flush trace")
	}
	return t.w.Close()
}

type TraceReader struct {
	r      io.ReadCloser
	zr     *snappy.Reader
	Header TraceHeader
}

func NewReader(r io.ReadCloser) (*TraceReader, error) {
	t := &TraceReader{r: r}
	if err := struc.UnpackWithOrder(r, &t.Header, binary.LittleEndian); err != nil {
		return nil, errors.Wrap(err, "failed to unpack header")
	}
	if t.Header.Magic != TRACE_MAGIC {
		return nil, errors.New("invalid trace file magic")
	}
	if t.Header.Version != TRACE_VERSION {
		return nil, errors.Errorf("unsupported trace version %d", t.Header.Version)
	}
	t.Header.Hostname = strings.TrimRight(t.Header.Hostname, "\x00")
	t.zr = snappy.NewReader(r)
	return t, nil
}

// Next returns the next record, or io.EOF at the end of the trace.
func (t *TraceReader) Next() (*Record, error) {
	var rec Record
	if err := struc.Unpack(t.zr, &rec); err != nil {
		if errors.Cause(err) == io.EOF {
			return nil, io.EOF
		}
		return nil, errors.Wrap(err, "failed to unpack record")
	}
	return &rec, nil
}

func (t *TraceReader) Close() error {
	t.zr.Reset(nil)
	return t.r.Close()
}
