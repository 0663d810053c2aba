// Package polyglot identifies the natural language of short texts. Each text
// is scored two ways: cosine similarity between its character trigram
// profile and per-language reference profiles, and a statistical classifier
// (multinomial Naive Bayes by default). The two predictions are then
// combined into one decision.
//
// Quick start with the bundled sample corpus:
//
//	d, err := polyglot.New(polyglot.WithSampleData())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer d.Close()
//
//	res, _ := d.Detect("Il fait très beau aujourd'hui.")
//	fmt.Println(res.Language, res.Name, res.Rationale) // fr French agreement
//
// For real use, build profiles with `polyglot build` and point the detector
// at them with WithProfileDir or WithProfileDB. A Detector is safe for
// concurrent use: create once, reuse across requests.
package polyglot
