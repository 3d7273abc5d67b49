package blobio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"
	log "github.com/sirupsen/logrus"

	chem "github.com/pengfeili1/Molmodsummer"
)

// Compression is the compression format of a blob archive.
type Compression int

const (
	Plain Compression = iota
	Gzip
	Zstd
)

// CompressionFor returns the compression used for a file name: .zst or .zstd files use zstd,
// .gz files gzip, and everything else is plain text.
func CompressionFor(name string) Compression {
	n := strings.ToLower(name)
	switch {
	case strings.HasSuffix(n, ".zst"), strings.HasSuffix(n, ".zstd"):
		return Zstd
	case strings.HasSuffix(n, ".gz"):
		return Gzip
	}
	return Plain
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// Writer writes molecular graphs to a file, one blob per line.
type Writer struct {
	f         *os.File
	h         io.WriteCloser
	b         *bufio.Writer
	filename  string
	writeable bool
	written   int
}

// NewWriter creates the file name, and writes the header, if given, as comment lines
// of the form "# key=value". The compression depends on the extension of name (see
// CompressionFor). The optional level is used for gzip.
func NewWriter(name string, header map[string]string, compressionLevel ...int) (*Writer, error) {
	level := gzip.DefaultCompression
	if len(compressionLevel) > 0 {
		level = compressionLevel[0]
	}
	W := &Writer{filename: name}
	var err error
	W.f, err = os.Create(name)
	if err != nil {
		return nil, &Error{"Unable to open file: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	switch CompressionFor(name) {
	case Zstd:
		W.h, err = zstd.NewWriter(W.f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	case Gzip:
		W.h, err = gzip.NewWriterLevel(W.f, level)
	default:
		W.h = nopWriteCloser{W.f}
	}
	if err != nil {
		W.f.Close()
		return nil, &Error{"Can't create the compressor: " + err.Error(), name, []string{"NewWriter"}, true}
	}
	W.b = bufio.NewWriter(W.h)
	W.writeable = true
	keys := make([]string, 0, len(header))
	for k := range header {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if _, err := fmt.Fprintf(W.b, "# %s=%s\n", k, header[k]); err != nil {
			W.h.Close()
			W.f.Close()
			return nil, &Error{"Can't write header: " + err.Error(), name, []string{"NewWriter"}, true}
		}
	}
	return W, nil
}

// Write appends the blob of M to the file.
func (W *Writer) Write(M *chem.MolecularGraph) error {
	if !W.writeable {
		return &Error{"Writer not open for writing", W.filename, []string{"Write"}, true}
	}
	if M == nil {
		return &Error{"Given nil molecular graph", W.filename, []string{"Write"}, true}
	}
	if _, err := W.b.WriteString(M.Blob() + "\n"); err != nil {
		return &Error{err.Error(), W.filename, []string{"Write"}, true}
	}
	W.written++
	return nil
}

// Close flushes the data and closes the file. The writer can't be used after this call.
func (W *Writer) Close() error {
	if W == nil || !W.writeable {
		return nil
	}
	W.writeable = false
	var first error
	for _, f := range []func() error{W.b.Flush, W.h.Close, W.f.Close} {
		if err := f(); err != nil && first == nil {
			first = err
		}
	}
	log.WithFields(log.Fields{"file": W.filename, "graphs": W.written}).Debug("blobio: archive written")
	if first != nil {
		return &Error{first.Error(), W.filename, []string{"Close"}, true}
	}
	return nil
}

//This will cause additional indirections
//but I suppose it won't matter.
//*zstd.Decoder doesn't implement io.ReadCloser.
type stdql struct {
	closeql func()
	*zstd.Decoder
}

func (s stdql) Close() error {
	s.closeql()
	return nil
}

// Reader reads the molecular graphs stored in a file by a Writer.
type Reader struct {
	f        *os.File
	dec      io.ReadCloser
	s        *bufio.Scanner
	filename string
	line     int
	readable bool
	pending  string
}

// New opens an archive for reading. It returns the reader and the header found at the beginning
// of the file (nil if there is none).
func New(name string) (*Reader, map[string]string, error) {
	R := &Reader{filename: name}
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, nil, &Error{"Unable to open file: " + err.Error(), name, []string{"New"}, true}
	}
	switch CompressionFor(name) {
	case Zstd:
		var d *zstd.Decoder
		d, err = zstd.NewReader(R.f)
		if err == nil {
			R.dec = stdql{d.Close, d}
		}
	case Gzip:
		R.dec, err = gzip.NewReader(R.f)
	default:
		R.dec = io.NopCloser(R.f)
	}
	if err != nil {
		R.f.Close()
		return nil, nil, &Error{"Can't read file " + err.Error(), name, []string{"New"}, true}
	}
	R.s = bufio.NewScanner(R.dec)
	R.s.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	R.readable = true
	var header map[string]string
	for R.s.Scan() {
		R.line++
		str := strings.TrimSpace(R.s.Text())
		if !strings.HasPrefix(str, "#") {
			R.pending = R.s.Text()
			break
		}
		kv := strings.SplitN(strings.TrimSpace(strings.TrimPrefix(str, "#")), "=", 2)
		if len(kv) != 2 {
			continue
		}
		if header == nil {
			header = make(map[string]string)
		}
		header[kv[0]] = kv[1]
	}
	if err := R.s.Err(); err != nil {
		R.Close()
		return nil, nil, &Error{"Can't read header " + err.Error(), name, []string{"New"}, true}
	}
	return R, header, nil
}

// Next returns the next molecular graph in the file. It returns io.EOF when there are no more.
// Empty lines and comment lines, starting with '#', are skipped.
func (R *Reader) Next() (*chem.MolecularGraph, error) {
	if !R.readable {
		return nil, &Error{"Reader not open for reading", R.filename, []string{"Next"}, true}
	}
	for {
		var str string
		if R.pending != "" {
			str, R.pending = R.pending, ""
		} else {
			if !R.s.Scan() {
				if err := R.s.Err(); err != nil {
					return nil, &Error{err.Error(), R.filename, []string{"Next"}, true}
				}
				return nil, io.EOF
			}
			R.line++
			str = R.s.Text()
		}
		str = strings.TrimSpace(str)
		if str == "" || strings.HasPrefix(str, "#") {
			continue
		}
		M, err := chem.FromBlob(str)
		if err != nil {
			return nil, &Error{fmt.Sprintf("line %d: %s", R.line, err.Error()), R.filename, []string{"Next"}, true}
		}
		return M, nil
	}
}

// ReadAll returns all the remaining molecular graphs in the file.
func (R *Reader) ReadAll() ([]*chem.MolecularGraph, error) {
	ret := make([]*chem.MolecularGraph, 0)
	for {
		M, err := R.Next()
		if err == io.EOF {
			return ret, nil
		}
		if err != nil {
			return ret, errDecorate(err, "ReadAll")
		}
		ret = append(ret, M)
	}
}

// Close closes the file. The reader can't be used after this call.
func (R *Reader) Close() error {
	if R == nil || !R.readable {
		return nil
	}
	R.readable = false
	R.dec.Close()
	return R.f.Close()
}

//Errors

func errDecorate(err error, caller string) error {
	if err2, ok := err.(chem.Error); ok {
		err2.Decorate(caller)
	}
	return err
}

// Error is the error type for blob archives. It fulfills chem.Error.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	return fmt.Sprintf("blob archive %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error.
func (E *Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

// FileName returns the file to which the failing reader or writer was associated
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }
