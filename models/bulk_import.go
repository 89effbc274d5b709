package models

type BulkImportValidation struct {
	TotalRows     int      `json:"total_rows"`
	ValidRows     int      `json:"valid_rows"`
	InvalidRows   int      `json:"invalid_rows"`
	DuplicateSKUs []string `json:"duplicate_skus"`
	Errors        []string `json:"errors"`
}

type BulkImportResult struct {
	InsertedCount int      `json:"inserted_count"`
	ErrorsCount   int      `json:"errors_count"`
	Errors        []string `json:"errors"`
	Message       string   `json:"message"`
}
