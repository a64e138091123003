// Package fmdl learns subword vocabularies by minimum description length.
//
// # Overview
//
// FMDL grows a subword codebook from an unsegmented corpus by repeatedly
// merging adjacent token pairs, but only
// when the merge provably shortens a two-part description of the data: the
// cost of the codebook itself plus the cost of the corpus encoded with it.
// Both costs are measured in nats. A merge that does not lower the combined
// cost is rejected, so the codebook never grows on noise.
//
// Training starts from single characters, so no pre-tokenization, word list,
// or language model is required. Statistics never span lines, so sentence
// boundaries are respected without marker tokens.
//
// # When to Use FMDL
//
// FMDL works well for:
//   - Open-vocabulary text: agglutinative or morphologically rich languages
//   - Corpora without whitespace word boundaries (CJK, source code)
//   - Vocabulary induction where frequency-only methods (BPE) over-merge
//
// # When NOT to Use FMDL
//
// FMDL is not suitable for:
//   - Serving-time tokenization of unseen text (train offline, export)
//   - Very small corpora (description-length estimates become unstable)
//   - Binary data (the unit token is a Unicode code point)
//
// # Basic Usage
//
//	corpus, err := fmdl.LoadCorpus("corpus.txt", fmdl.CorpusOptions{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	trainer, err := fmdl.NewTrainer(corpus, fmdl.DefaultOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	book := trainer.Train()
//
//	// Persist the learned vocabulary
//	if err := book.Save("codebook"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Training Model
//
// Each epoch reseeds the codebook from the corpus census under its current
// segmentation, gathers adjacent-pair statistics, selects candidate merges
// whose estimated cost delta is negative, and commits them one at a time.
// Before every commit the candidate is revalidated against the codebook as
// already mutated by earlier commits in the same epoch, so stale estimates
// are discounted rather than trusted. The corpus is then re-encoded greedily
// with the enlarged codebook and the next epoch begins.
//
// Training is deterministic: identical corpus and options produce an
// identical codebook.
package fmdl
