// Package html provides a FragmentExtractor for HTML and XML documents.
// It walks the token stream and returns each text node stripped of
// surrounding whitespace, ignoring scripts and styles.
package html
