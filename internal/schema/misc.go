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

package schema

import (
	"strconv"
	"strings"

	"cbtools/internal/apperr"
	"cbtools/internal/record"
)

// FlyBase/UniProt id-map file: "FBgn... <ws> UniProt".
const (
	mapKey        = 0
	mapValue      = 1
	MapMinFields  = 2
	flybaseColumn = 8
)

func MapKey(r record.Record) (string, error)   { return r.Field(mapKey) }
func MapValue(r record.Record) (string, error) { return r.Field(mapValue) }

// FlyBaseID is the gene id column (9th tab field) of a c_tab table.
func FlyBaseID(r record.Record) (string, error) { return r.Field(flybaseColumn) }

// UniProt flat listing (whitespace split); Drosophila entries carry DROME.
const (
	uniprotAccession = 2
	uniprotFlyBase   = 3
	UniProtMinFields = 4

	// DrosophilaTag marks Drosophila melanogaster entry names.
	DrosophilaTag = "DROME"
)

// HasFlyBaseXref reports a trailing FBgn cross-reference.
func HasFlyBaseXref(r record.Record) bool { return strings.HasPrefix(r.Last(), "FBgn") }

func UniProtAccession(r record.Record) (string, error) { return r.Field(uniprotAccession) }
func UniProtFlyBase(r record.Record) (string, error)   { return r.Field(uniprotFlyBase) }

// VCF.
const (
	vcfInfo      = 7
	VCFMinFields = 8
)

func Info(r record.Record) (string, error) { return r.Field(vcfInfo) }

// AlleleFrequencies returns every AF value of the INFO column; multi-allelic
// sites contribute one value per alternate allele.
func AlleleFrequencies(r record.Record) ([]float64, error) {
	info, err := Info(r)
	if err != nil {
		return nil, err
	}
	for _, kv := range strings.Split(info, ";") {
		key, val, ok := strings.Cut(kv, "=")
		if !ok || key != "AF" {
			continue
		}
		var afs []float64
		for _, s := range strings.Split(val, ",") {
			v, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, apperr.Malformed("line %d: AF value %q is not a number", r.Line, s)
			}
			afs = append(afs, v)
		}
		return afs, nil
	}
	return nil, apperr.Malformed("line %d: no AF in INFO", r.Line)
}

// PLINK .qassoc columns (headed, whitespace separated).
const (
	QassocChr = "CHR"
	QassocBP  = "BP"
	QassocP   = "P"
)

// PLINK .eigenvec: FID IID PC1 PC2 ...
const (
	eigenPC1          = 2
	eigenPC2          = 3
	EigenvecMinFields = 4
)

func PC1(r record.Record) (float64, error) { return r.Float(eigenPC1) }
func PC2(r record.Record) (float64, error) { return r.Float(eigenPC2) }

// BLAST tabular output requested as -outfmt "6 sseqid sseq".
const (
	blastSSeqID    = 0
	blastSSeq      = 1
	BlastMinFields = 2
)

func SSeqID(r record.Record) (string, error) { return r.Field(blastSSeqID) }
func SSeq(r record.Record) (string, error)   { return r.Field(blastSSeq) }

// BED-like interval files (peaks, features, CTCF sites).
const (
	bedChrom      = 0
	bedStart      = 1
	bedEnd        = 2
	bedName       = 3
	BEDMinFields  = 3
	FeatureFields = 4

	// bedtools intersect -wa -wb of peaks (10 columns) with motifs puts
	// the motif start in column 14.
	motifStart     = 13
	MotifMinFields = 14
)

func Chrom(r record.Record) (string, error)       { return r.Field(bedChrom) }
func ChromStart(r record.Record) (int, error)     { return r.Int(bedStart) }
func ChromEnd(r record.Record) (int, error)       { return r.Int(bedEnd) }
func FeatureType(r record.Record) (string, error) { return r.Field(bedName) }
func MotifStart(r record.Record) (int, error)     { return r.Int(motifStart) }

// bigWigAverageOverBed output: name size covered sum mean0 mean.
const (
	bigwigName      = 0
	bigwigMean      = 5
	BigWigMinFields = 6
)

func BigWigName(r record.Record) (string, error)  { return r.Field(bigwigName) }
func BigWigMean(r record.Record) (float64, error) { return r.Float(bigwigMean) }

// LASTZ general output: name1 zstart1 end1 ...
const (
	lastzStart     = 1
	lastzEnd       = 2
	LastzMinFields = 3
)

func ZStart(r record.Record) (int, error) { return r.Int(lastzStart) }
func ZEnd(r record.Record) (int, error)   { return r.Int(lastzEnd) }
