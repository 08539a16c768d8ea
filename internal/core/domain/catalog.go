package domain

// CatalogRecord is one row of the gazette CSV index.
type CatalogRecord struct {
	// Fields holds every column of the row keyed by header name.
	Fields map[string]string

	// FileLink is the URL the gazette was downloaded from.
	FileLink string

	// FilePath is the local path of the downloaded file.
	FilePath string
}
