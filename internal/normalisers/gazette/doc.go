// Package gazette provides the rule-based text normalisation passes used to
// clean OCR and HTML extracted gazette text.
//
// Each function targets one artifact class and can be tested and composed
// independently:
//
//   - Whitespace: RemoveDuplicateWhitespaces, RemoveConsecutiveEmptyLines,
//     RemoveNewLineChar, TrimLines
//   - Doubled letters: FindDuplicatesChars, RemoveWordWithDuplicateLetters
//   - Leader dots and symbol noise: RemoveLineWithPunctuationOnly
//   - Quotes: RemoveSpecialQuotes
//   - Unicode composition: NormalizeUnicode
//   - Structural markers: RemoveSpecialLinePrefix
//
// All passes are pure. Malformed text never produces an error; patterns that
// do not match pass through unchanged.
package gazette
