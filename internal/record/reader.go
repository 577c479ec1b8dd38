// BSD 3-Clause License

// Copyright (c) 2023, Stephen Fletcher
// All rights reserved.

// Redistribution and use in source and binary forms, with or without
// modification, are permitted provided that the following conditions are met:

// 1. Redistributions of source code must retain the above copyright notice, this
//    list of conditions and the following disclaimer.

// 2. Redistributions in binary form must reproduce the above copyright notice,
//    this list of conditions and the following disclaimer in the documentation
//    and/or other materials provided with the distribution.

// 3. Neither the name of the copyright holder nor the names of its
//    contributors may be used to endorse or promote products derived from
//    this software without specific prior written permission.

// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
// AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
// IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
// DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
// FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
// DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
// SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
// CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
// OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
// OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package record

import (
	"bufio"
	"compress/gzip"
	"errors"
	"io"
	"os"
	"strings"

	"cbtools/internal/apperr"
)

const maxLineSize = 1 << 20

// Options configures a Reader.
type Options struct {
	Delim Delimiter
	// MinFields is the fewest fields a record may carry; shorter lines are
	// skipped and counted.
	MinFields int
	// SkipPrefixes lists line prefixes (headers, comments) that are dropped
	// before splitting.
	SkipPrefixes []string
	// TrimSpace strips leading and trailing whitespace before splitting.
	TrimSpace bool
}

// Reader yields records lazily in input order.
type Reader struct {
	sc      *bufio.Scanner
	opts    Options
	rec     Record
	line    int
	skipped int
	err     error
}

func NewReader(r io.Reader, opts Options) *Reader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineSize)
	return &Reader{sc: sc, opts: opts}
}

// Next advances to the next well-formed record.
func (r *Reader) Next() bool {
	for r.sc.Scan() {
		r.line++
		text := strings.TrimRight(r.sc.Text(), "\r")
		if r.opts.TrimSpace {
			text = strings.TrimSpace(text)
		}
		if strings.TrimSpace(text) == "" || hasAnyPrefix(text, r.opts.SkipPrefixes) {
			continue
		}
		fields := Split(text, r.opts.Delim)
		if len(fields) < r.opts.MinFields {
			r.skipped++
			continue
		}
		r.rec = Record{Fields: fields, Line: r.line, Text: text}
		return true
	}
	r.err = r.sc.Err()
	return false
}

func (r *Reader) Record() Record { return r.rec }

// Err returns the first I/O error, if any.
func (r *Reader) Err() error { return r.err }

// Skipped is the number of lines dropped for carrying too few fields.
func (r *Reader) Skipped() int { return r.skipped }

// Lines is the number of physical lines consumed so far.
func (r *Reader) Lines() int { return r.line }

// Each calls fn for every record. Records for which fn reports
// apperr.ErrMalformedRecord are counted as skipped; any other error stops
// the iteration.
func Each(src io.Reader, opts Options, fn func(Record) error) (skipped int, err error) {
	rd := NewReader(src, opts)
	for rd.Next() {
		if err := fn(rd.Record()); err != nil {
			if errors.Is(err, apperr.ErrMalformedRecord) {
				skipped++
				continue
			}
			return skipped + rd.Skipped(), err
		}
	}
	return skipped + rd.Skipped(), rd.Err()
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// Open opens path for reading. "" and "-" mean standard input and a ".gz"
// suffix is decompressed transparently.
func Open(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	fh, err := os.Open(path)
	if err != nil {
		return nil, apperr.InvalidArgument("cannot open %s: %v", path, err)
	}
	if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			fh.Close()
			return nil, apperr.InvalidArgument("cannot decompress %s: %v", path, err)
		}
		return struct {
			io.Reader
			io.Closer
		}{Reader: gr, Closer: fh}, nil
	}
	return fh, nil
}

// EachFile is Each over a named file.
func EachFile(path string, opts Options, fn func(Record) error) (int, error) {
	rc, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer rc.Close()
	return Each(rc, opts, fn)
}
