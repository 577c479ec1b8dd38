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

// commands lists every utility in the order they are documented.
func commands() []command {
	return []command{
		{"count-reads", "[file]", "Count read lines starting with a prefix", runCountReads},
		{"count-tag", "[file]", "Count read lines carrying an optional SAM tag", runCountTag},
		{"count-region", "[file]", "Count reads on a chromosome within a position range", runCountRegion},
		{"count-flag", "[file]", "Count reads with a SAM FLAG bit set", runCountFlag},
		{"mapq", "[file]", "Report read count, total and average MAPQ", runMapQ},
		{"rnames", "[file]", "Print the reference name of the first reads", runRNames},

		{"uniprot-map", "FILE", "Extract FlyBase to UniProt pairs from a UniProt listing", runUniProtMap},
		{"ident-map", "MAPFILE TABLE", "Map the FlyBase column of a table through an id map", runIdentMap},

		{"count-coding", "[file]", "Count protein-coding gene records in a GTF", runCountCoding},
		{"biotypes", "[file]", "Count gene records per biotype in a GTF", runBiotypes},
		{"nearest-gene", "GTF CHROM POS", "Find the nearest protein-coding and other gene to a position", runNearestGene},

		{"kmer-match", "TARGET.fa QUERY.fa [K]", "Find query k-mers in target sequences", runKmerMatch},
		{"kmer-dump", "FASTA[,FASTA...] K OUT", "Write the 2-bit k-mer mask of FASTA files", runKmerDump},

		{"fpkm-matrix", "SAMPLES.csv CTAB_DIR", "Merge sample FPKMs into a transcript by sample matrix", runFPKMMatrix},
		{"timecourse", "T_NAME SAMPLES.csv CTAB_DIR [REPLICATES.csv]", "FPKM of one transcript across samples per sex", runTimecourse},
		{"gene-means", "SAMPLES.csv CTAB_DIR GENE...", "Cumulative mean FPKM of gene transcripts across samples per sex", runGeneMeans},
		{"ma", "CTAB1 CTAB2", "M and A values of transcripts shared by two samples", runMA},
		{"fpkm-filter", "THRESHOLD CTAB...", "Merged FPKMs of transcripts whose total exceeds a threshold", runFPKMFilter},
		{"promoters", "CTAB", "BED of promoter regions around each transcription start site", runPromoters},
		{"bigwig-join", "CTAB TAB...", "Join FPKMs with bigWigAverageOverBed means", runBigWigJoin},
		{"regress", "TABLE", "Least squares fit of FPKM on the remaining columns", runRegress},
		{"diff-exp", "TABLE", "Genes differentially expressed between early and late stages", runDiffExp},

		{"blast-to-fasta", "[file]", "Convert sseqid/sseq BLAST output to FASTA", runBlastToFasta},
		{"dnds", "NUC.fa AA.fa", "Per-codon dN/dS and selection test against the first record", runDNDS},
		{"contig-stats", "FASTA", "Contig count, length summary and N50", runContigStats},
		{"lastz-layout", "[file]", "Dot plot segments of LASTZ alignments laid end to end", runLastzLayout},

		{"allele-freqs", "VCF", "Allele frequencies of a VCF, optionally binned", runAlleleFreqs},
		{"manhattan", "QASSOC...", "Manhattan plot coordinates of PLINK association results", runManhattan},
		{"eigenvec", "[file]", "PC1 and PC2 of a PLINK eigenvec file", runEigenvec},

		{"feature-overlap", "GAINED LOST SITES_A SITES_B FEATURES", "Gained/lost site counts and sites per feature type", runFeatureOverlap},
		{"motif-positions", "[file]", "Relative motif positions within peaks, optionally binned", runMotifPositions},
	}
}
