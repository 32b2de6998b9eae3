// Package bayes provides a binary spam/ham classifier built on multinomial
// Naive Bayes with Laplace smoothing.
//
// # Quick Start
//
//	ds, err := dataset.Ingest(texts, labels)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := ds.Split(0.1, 0.1, dataset.WithSeed(42)); err != nil {
//	    log.Fatal(err)
//	}
//
//	model := bayes.New(bayes.WithAlpha(1))
//	if err := model.Fit(ds.Train(), ds.Labels()); err != nil {
//	    log.Fatal(err)
//	}
//
//	label, err := model.Inference("Free pills, call now!")
//	accuracy, err := model.Evaluate(ds.Test())
//
// # Text Handling
//
// Messages are lowercased and stripped of everything except word runes and
// whitespace (see package tokenizer), then split on whitespace. Training and
// inference share that code path.
//
// # Thread Safety
//
// A fitted Model is read-only and safe for concurrent use. Fit calls on the
// same Model are serialized; a failed Fit leaves the previous state in place.
package bayes
