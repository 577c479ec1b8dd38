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

package main

import (
	"strings"

	"cbtools/internal/accum"
	"cbtools/internal/emit"
	"cbtools/internal/pred"
	"cbtools/internal/record"
	"cbtools/internal/schema"
)

// samOptions drops @ header lines; alignment lines are tab separated.
func samOptions(minFields int) record.Options {
	return record.Options{Delim: record.Tab, MinFields: minFields, SkipPrefixes: []string{"@"}}
}

// readFilter restricts a command to reads whose QNAME starts with prefix; an
// empty prefix accepts every alignment line.
func readFilter(prefix string, p pred.Predicate) pred.Predicate {
	if prefix == "" {
		return p
	}
	return pred.All(pred.FieldHasPrefix(schema.SAMQNameColumn, prefix), p)
}

// tagList collects repeated --tag flags.
type tagList []string

func (l *tagList) String() string { return strings.Join(*l, ",") }

func (l *tagList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func accept(record.Record) bool { return true }

// countMatching emits the number of records of path accepted by p.
func (e *env) countMatching(path string, opts record.Options, p pred.Predicate) error {
	var c accum.Counter
	skipped, err := record.EachFile(path, opts, func(r record.Record) error {
		if err := e.ctx.Err(); err != nil {
			return err
		}
		if p(r) {
			c.Add()
		}
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	e.count(c.Value())
	return nil
}

func runCountReads(e *env, args []string) error {
	fs := e.flags("count-reads")
	prefix := fs.String("prefix", "SRR", "Read name prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	return e.countMatching(optional(pos, 0), samOptions(0), pred.HasPrefix(*prefix))
}

func runCountTag(e *env, args []string) error {
	fs := e.flags("count-tag")
	var tags tagList
	fs.Var(&tags, "tag", "Optional field to look for, as TAG:TYPE:VALUE; repeat to count reads carrying any of them (default NM:i:0)")
	prefix := fs.String("prefix", "", "Only count reads whose name starts with this prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		tags = tagList{"NM:i:0"}
	}
	var carries []pred.Predicate
	for _, tag := range tags {
		tag := tag
		carries = append(carries, func(r record.Record) bool { return schema.HasTag(r, tag) })
	}
	return e.countMatching(optional(pos, 0), samOptions(0), readFilter(*prefix, pred.Any(carries...)))
}

func runCountRegion(e *env, args []string) error {
	fs := e.flags("count-region")
	chrom := fs.String("chrom", "2L", "Reference name")
	start := fs.Int("start", 10000, "First position (inclusive)")
	end := fs.Int("end", 20000, "Last position (inclusive)")
	prefix := fs.String("prefix", "", "Only count reads whose name starts with this prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if *start > *end {
		return errRange("start", *start, "end", *end)
	}
	p := pred.All(
		pred.FieldEquals(schema.SAMRNameColumn, *chrom),
		pred.IntInRange(schema.SAMPosColumn, *start, *end),
	)
	return e.countMatching(optional(pos, 0), samOptions(schema.SAMMinFields), readFilter(*prefix, p))
}

func runCountFlag(e *env, args []string) error {
	fs := e.flags("count-flag")
	bit := fs.Uint("bit", schema.FlagReverse, "FLAG bit to test (4 is reverse strand)")
	unset := fs.Bool("unset", false, "Count reads with the bit clear instead")
	prefix := fs.String("prefix", "", "Only count reads whose name starts with this prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	if *bit > 15 {
		return errRange("bit", int(*bit), "max", 15)
	}
	p := pred.BitSet(schema.SAMFlagColumn, *bit)
	if *unset {
		p = pred.All(pred.IntInRange(schema.SAMFlagColumn, 0, 1<<16-1), pred.Not(p))
	}
	return e.countMatching(optional(pos, 0), samOptions(schema.SAMMinFields), readFilter(*prefix, p))
}

func runMapQ(e *env, args []string) error {
	fs := e.flags("mapq")
	prefix := fs.String("prefix", "SRR", "Read name prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	keep := readFilter(*prefix, accept)
	var s accum.Stats
	skipped, err := record.EachFile(path, samOptions(schema.SAMMinFields), func(r record.Record) error {
		if !keep(r) {
			return nil
		}
		q, err := schema.MapQ(r)
		if err != nil {
			return err
		}
		s.Add(float64(q))
		return nil
	})
	if err != nil {
		return err
	}
	e.skipped(path, skipped)
	mean, _ := s.Mean()
	e.out.Header([]string{"reads", "total_mapq", "mean_mapq"})
	e.out.Row([]string{emit.Int(s.Count()), emit.Int(int(s.Sum())), emit.Float(mean)})
	return nil
}

func runRNames(e *env, args []string) error {
	fs := e.flags("rnames")
	n := fs.Int("n", 10, "Number of reads to report")
	prefix := fs.String("prefix", "SRR", "Read name prefix")
	pos, err := e.parse(fs, args, 0, 1)
	if err != nil {
		return err
	}
	path := optional(pos, 0)
	rc, err := record.Open(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	keep := readFilter(*prefix, accept)
	rd := record.NewReader(rc, samOptions(schema.SAMMinFields))
	seen := 0
	for seen < *n && rd.Next() {
		r := rd.Record()
		if !keep(r) {
			continue
		}
		name, err := schema.RName(r)
		if err != nil {
			continue
		}
		e.out.Row([]string{name})
		seen++
	}
	e.skipped(path, rd.Skipped())
	e.log.Debug("lines read", "file", path, "lines", intWithCommas(rd.Lines()))
	return rd.Err()
}
