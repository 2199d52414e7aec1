package fix

// InsertText creates an edit that inserts text before token at.
func InsertText(at int, text string) Edit {
	return Edit{Range: Range{Start: at, End: at}, Text: text}
}

// InsertAfter creates an edit that inserts text after token at.
func InsertAfter(at int, text string) Edit {
	return InsertText(at+1, text)
}

// DeleteRange removes tokens in [start, end).
func DeleteRange(start, end int) Edit {
	return Edit{Range: Range{Start: start, End: end}}
}

// ReplaceToken replaces the text of a single token.
func ReplaceToken(at int, text string) Edit {
	return Edit{Range: Range{Start: at, End: at + 1}, Text: text}
}

// ReplaceRange replaces tokens in [start, end) with text.
func ReplaceRange(start, end int, text string) Edit {
	return Edit{Range: Range{Start: start, End: end}, Text: text}
}

// WrapWith surrounds [start, end) with prefix and suffix insertions.
func WrapWith(start, end int, prefix, suffix string) []Edit {
	return []Edit{
		InsertText(start, prefix),
		InsertText(end, suffix),
	}
}
