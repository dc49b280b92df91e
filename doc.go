// Package jfold renders JSON with depth-bounded pretty printing and
// optional ANSI colouring.
//
// The first Options.Depth levels of nesting are laid out one element or key
// per line with two-space indentation; everything deeper folds onto a
// single line with ", " separators. Shallow structure stays readable while
// deeply nested data cannot blow up vertically, and the content is
// identical at every depth: re-parsing the output always yields the same
// values.
//
// Basic usage:
//
//	src := []byte(`{"a": [1, 2], "b": {"c": 3}}`)
//	out, err := jfold.Fold(src, &jfold.Options{Depth: 1, Palette: "none"})
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Print(string(out))
//	// {
//	//   "a": [1, 2],
//	//   "b": {"c": 3}
//	// }
//
// Encoding Go values:
//
//	enc := jfold.NewEncoder(os.Stdout, nil)
//	if err := enc.Encode(map[string]any{"ok": true}); err != nil {
//		log.Fatal(err)
//	}
//
// Callers with their own tree walkers can drive a Formatter directly; see
// the Formatter documentation for the event protocol.
package jfold
