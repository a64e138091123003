// Command fmdl learns a subword codebook from unsegmented text by minimum
// description length.
//
//	fmdl -train corpus.txt [-codebook codebook] [-output segmented.txt]
package main

import (
	"flag"
	"log"
	"os"

	fmdl "github.com/wqfengnlpr/FMDL"
)

var (
	trainPath     = flag.String("train", "", "input unsegmented text for training (required)")
	codebookPath  = flag.String("codebook", "codebook", "output `file` for the learned codebook")
	outputPath    = flag.String("output", "", "write the segmented corpus to `path`")
	iterations    = flag.Int("iterations", fmdl.DefaultIterations, "number of training epochs")
	minCount      = flag.Int("min-count", fmdl.DefaultMinCount, "ignore merges rarer than this")
	vocabSize     = flag.Int("vocab-size", fmdl.DefaultVocabSize, "codebook size cap")
	threshold     = flag.Float64("threshold", fmdl.DefaultThreshold, "fraction of scored candidates kept per epoch")
	maxCandidates = flag.Int("max-candidates", 0, "bigrams scored per epoch (0 means vocab-size/2)")
	stopwordsPath = flag.String("stopwords", "", "`file` of protected tokens, one per line")
	normForm      = flag.String("norm", "none", "unicode normalization: none, nfc, nfd, nfkc or nfkd")
	format        = flag.String("format", "text", "codebook output format: text or yaml")
	verbose       = flag.Bool("verbose", false, "log segmented corpus samples per epoch")
)

func main() {
	flag.Parse()
	if *trainPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	nz, err := fmdl.ParseNormalization(*normForm)
	if err != nil {
		log.Fatal(err)
	}
	var stopwords []string
	if *stopwordsPath != "" {
		stopwords, err = fmdl.LoadStopwords(*stopwordsPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	corpus, err := fmdl.LoadCorpus(*trainPath, fmdl.CorpusOptions{
		Normalization: nz,
		Stopwords:     stopwords,
	})
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("loaded %s: %d tokens, %d character types", *trainPath, corpus.DataLen(), len(corpus.Vocab()))

	trainer, err := fmdl.NewTrainer(corpus, fmdl.Options{
		Iterations:    *iterations,
		MinCount:      *minCount,
		VocabSize:     *vocabSize,
		Threshold:     *threshold,
		MaxCandidates: *maxCandidates,
		Verbose:       *verbose,
		Progress:      fmdl.LogProgress{},
	})
	if err != nil {
		log.Fatal(err)
	}
	book := trainer.Train()

	switch *format {
	case "text":
		err = book.Save(*codebookPath)
	case "yaml":
		err = book.SaveYAML(*codebookPath)
	default:
		log.Fatalf("unknown codebook format %q", *format)
	}
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("saved %d tokens to %s", book.Len(), *codebookPath)

	if *outputPath != "" {
		// Re-encode so the output reflects the final codebook even when
		// training stopped at the size cap before the last re-encode.
		corpus.ApplyCodebook(book)
		f, err := os.Create(*outputPath)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := corpus.WriteSegmented(f); err != nil {
			f.Close()
			log.Fatal(err)
		}
		if err := f.Close(); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote segmented corpus to %s", *outputPath)
	}
}
