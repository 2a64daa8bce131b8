package minigwas

import (
	"compress/bzip2"
	"compress/gzip"
	"compress/zlib"
	"io"

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
	DataTypeZlib
	DataTypeBZip2
)

var byteCodeSigs = map[DataType][]byte{
	DataTypeGzip:  {0x1f, 0x8b, 0x08},
	DataTypeZip:   {0x50, 0x4b, 0x03, 0x04},
	DataTypeXZ:    {0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00},
	DataTypeZlib:  {0x78, 0x9c},
	DataTypeBZip2: {0x42, 0x5a, 0x68},
}

// DetectDataType attempts to detect the data type of a stream by checking
// against a set of known data types.  Byte code signatures from
// https://stackoverflow.com/a/19127748/199475
func DetectDataType(r io.Reader) (DataType, error) {
	buff := make([]byte, 6)
	n, err := io.ReadFull(r, buff)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return DataTypeInvalid, err
	}
	buff = buff[:n]

	// Match known signatures
Outer:
	for dt, sig := range byteCodeSigs {
		if len(buff) < len(sig) {
			continue
		}
		for position := range sig {
			if buff[position] != sig[position] {
				continue Outer
			}
		}
		return dt, nil
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress sniffs the first bytes of rsc, rewinds it, and wraps it in
// the matching decompressor. Uncompressed input is returned as-is. Closing the
// returned value always closes rsc.
func MaybeDecompress(rsc ReadSeekCloser) (io.ReadCloser, error) {
	dt, err := DetectDataType(rsc)
	if err != nil {
		return nil, err
	}

	// The decompressors must see the stream from its first byte
	if _, err := rsc.Seek(0, io.SeekStart); err != nil {
		return nil, err
	}

	switch dt {
	case DataTypeGzip:
		zr, err := gzip.NewReader(rsc)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, rsc}}, nil
	case DataTypeZlib:
		zr, err := zlib.NewReader(rsc)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, rsc}}, nil
	case DataTypeZip:
		zr := zipstream.NewReader(rsc)

		// Only the first entry in the archive is read
		if _, err := zr.Next(); err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{rsc}}, nil
	case DataTypeBZip2:
		return &stackedCloser{Reader: bzip2.NewReader(rsc), closers: []io.Closer{rsc}}, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(rsc, 0)
		if err != nil {
			return nil, err
		}
		return &stackedCloser{Reader: reader, closers: []io.Closer{rsc}}, nil
	}

	// No data type detected. For now, we assume this is uncompressed.
	return rsc, nil
}

// stackedCloser closes the decompressor and then the underlying source.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (c *stackedCloser) Close() error {
	var first error
	for _, cl := range c.closers {
		if err := cl.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
