// Package normalisers holds the text-level building blocks: the gazette
// character/line normaliser and the fragment extractors that turn raw
// markup or text files into text fragments.
//
// Extractors are registered with the Registry at startup.
package normalisers
