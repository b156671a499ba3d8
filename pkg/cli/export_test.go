package cli

var PrintImportResult = printImportResult
