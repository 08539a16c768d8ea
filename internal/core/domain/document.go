package domain

// CleanDocument is gazette text after whitespace, artifact and
// structural-marker normalisation. It shares the raw document's identity.
type CleanDocument struct {
	// Source is the path of the raw document.
	Source string

	// Path is where the clean text is stored.
	Path string

	// Content is the clean text.
	Content string
}

// SentenceSet is the ordered sequence of sentences segmented from a document.
type SentenceSet struct {
	// Source is the path of the document that was segmented.
	Source string

	// Path is where the sentences are stored.
	Path string

	// Sentences in input order. None are empty or padded with whitespace.
	Sentences []string
}

// Len returns the number of sentences.
func (s SentenceSet) Len() int {
	return len(s.Sentences)
}
