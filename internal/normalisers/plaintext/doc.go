// Package plaintext provides a FragmentExtractor for plain text files.
package plaintext
