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
	"context"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"cbtools/internal/apperr"
	"cbtools/internal/fasta"
	"cbtools/internal/kmer"
)

// loadAndSendSeqs reads one FASTA file and queues its sequences.
func loadAndSendSeqs(ctx context.Context, path string, seqChan chan<- string) error {
	recs, err := fasta.ReadFile(path, fasta.Options{Upper: true})
	if err != nil {
		return err
	}
	for _, r := range recs {
		select {
		case seqChan <- r.Seq:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// buildMask encodes every ACGT window of the sequences in files. One producer
// per file feeds a pool of workers, each filling its own mask; the worker
// masks are merged at the end. It also returns the number of windows skipped
// for ambiguous bases.
func buildMask(ctx context.Context, files []string, k, workers int) (*kmer.Mask, int, error) {
	mask, err := kmer.NewMask(k)
	if err != nil {
		return nil, 0, err
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	type partial struct {
		mask    *kmer.Mask
		skipped int
	}
	seqChan := make(chan string, 100)
	partials := make(chan partial, workers)

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range files {
		f := f
		g.Go(func() error { return loadAndSendSeqs(gctx, f, seqChan) })
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			local, _ := kmer.NewMask(k)
			skipped := 0
			for seq := range seqChan {
				skipped += local.AddSeq(seq)
			}
			partials <- partial{local, skipped}
		}()
	}

	err = g.Wait()
	close(seqChan)
	wg.Wait()
	close(partials)
	if err != nil {
		return nil, 0, err
	}

	skipped := 0
	for p := range partials {
		if err := mask.Merge(p.mask); err != nil {
			return nil, 0, err
		}
		skipped += p.skipped
	}
	return mask, skipped, nil
}

// maskFilter returns the skip function for kmer.Index.Match. A mask of
// shorter k-mers rejects every window that contains one of them.
func maskFilter(m *kmer.Mask, k int) (func(string) bool, error) {
	switch {
	case m.K() > k:
		return nil, apperr.InvalidArgument("mask k-mer length %d is greater than k %d, it must be equal or lower", m.K(), k)
	case m.K() == k:
		return m.Contains, nil
	}
	sub := m.K()
	return func(s string) bool {
		masked := false
		kmer.EachWindow(s, sub, func(_ int, w string) {
			if !masked && m.Contains(w) {
				masked = true
			}
		})
		return masked
	}, nil
}

func loadMaskFilter(e *env, path string, k int) (func(string) bool, error) {
	m, err := kmer.ReadMaskFile(path)
	if err != nil {
		return nil, err
	}
	e.log.Info("Mask loaded", "file", path, "k", m.K(), "kmers", intWithCommas(m.Len()))
	return maskFilter(m, k)
}

func runKmerDump(e *env, args []string) error {
	fs := e.flags("kmer-dump")
	list := fs.Bool("print", false, "Also print the masked k-mers")
	pos, err := e.parse(fs, args, 3, 3)
	if err != nil {
		return err
	}
	k, err := atoi("K", pos[1])
	if err != nil {
		return err
	}
	files := strings.Split(pos[0], ",")
	e.log.Info("Encoding kmers", "files", len(files), "k", k)
	mask, skipped, err := buildMask(e.ctx, files, k, e.cfg.Workers)
	if err != nil {
		return err
	}
	if skipped > 0 {
		e.log.Debug("windows with ambiguous bases skipped", "count", intWithCommas(skipped))
	}
	if err := mask.WriteFile(pos[2]); err != nil {
		return err
	}
	e.log.Infof("%s kmers written to %s", intWithCommas(mask.Len()), pos[2])
	if *list {
		for _, s := range mask.Kmers() {
			e.out.Row([]string{s})
		}
	}
	return nil
}
