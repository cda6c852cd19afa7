package export

// BuildDocument nests every entry's text for one language code. Placeholder
// entries only register a group and carry no text, so they are skipped.
// Entries whose path collides with an earlier entry are reported and left out.
func BuildDocument(entries []Entry, languageCode string) (*Document, []Conflict) {
	doc := NewDocument()
	var conflicts []Conflict

	for _, e := range entries {
		if e.Placeholder {
			continue
		}
		path := ResolvePath(e)
		if reason := doc.Set(path, e.Text(languageCode)); reason != "" {
			conflicts = append(conflicts, Conflict{Key: e.Key, Path: path, Reason: reason})
		}
	}

	return doc, conflicts
}
