package cladesum

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"errors"
	"io"

	"github.com/carbocation/pfx"
	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
	DataTypeZlib
)

// ErrUnixCompress is returned for LZW (.Z) streams, which have no reader here.
var ErrUnixCompress = errors.New("unix compress (.Z) input is not supported; decompress it first")

type signature struct {
	DataType DataType
	Magic    []byte
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475. Only
// the zlib headers whose second byte is not printable ASCII are matched.
var byteCodeSigs = []signature{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeZlib, []byte{0x78, 0x9c}},
	{DataTypeZlib, []byte{0x78, 0xda}},
}

// "BZh" is printable, so bzip2 is only recognized from the full stream header:
// BZh, a block size digit, then the block (or, for empty streams, end of
// stream) magic.
var (
	bzip2Magic      = []byte("BZh")
	bzip2BlockMagic = []byte{0x31, 0x41, 0x59, 0x26, 0x53, 0x59}
	bzip2EndMagic   = []byte{0x17, 0x72, 0x45, 0x38, 0x50, 0x90}
)

// headerBytes is how much of a stream DetectDataType needs to see.
const headerBytes = 10

func isBZip2(head []byte) bool {
	if len(head) < headerBytes || !bytes.HasPrefix(head, bzip2Magic) {
		return false
	}
	if head[3] < '1' || head[3] > '9' {
		return false
	}

	return bytes.Equal(head[4:10], bzip2BlockMagic) || bytes.Equal(head[4:10], bzip2EndMagic)
}

// DetectDataType matches the leading bytes of a stream against known
// compression signatures. Short or empty input is reported as uncompressed.
func DetectDataType(head []byte) DataType {
	if isBZip2(head) {
		return DataTypeBZip2
	}

	for _, sig := range byteCodeSigs {
		if bytes.HasPrefix(head, sig.Magic) {
			return sig.DataType
		}
	}

	return DataTypeNoCompression
}

// MaybeDecompress peeks at the start of rc and, if it looks compressed, wraps
// it in the matching decompressor. It never seeks. Closing the result closes
// rc.
func MaybeDecompress(rc io.ReadCloser) (io.ReadCloser, error) {
	br := bufio.NewReader(rc)

	// Peek returns what it can along with io.EOF on short files, which is fine
	head, err := br.Peek(headerBytes)
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}

	var r io.Reader
	switch DetectDataType(head) {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		r = gz
	case DataTypeZip:
		// Only the first member of the archive is read
		zr := zipstream.NewReader(br)
		if _, err := zr.Next(); err != nil {
			return nil, pfx.Err(err)
		}
		r = zr
	case DataTypeBZip2:
		r = bzip2.NewReader(br)
	case DataTypeXZ:
		xzr, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, pfx.Err(err)
		}
		r = xzr
	case DataTypeZ:
		return nil, ErrUnixCompress
	case DataTypeZlib:
		zr, err := zlib.NewReader(br)
		if err != nil {
			return nil, pfx.Err(err)
		}
		r = zr
	default:
		r = br
	}

	return &readCloser{Reader: r, closer: rc}, nil
}

// readCloser pairs a (possibly decompressing) reader with the Close of the
// underlying source.
type readCloser struct {
	io.Reader
	closer io.Closer
}

func (c *readCloser) Close() error {
	return c.closer.Close()
}
