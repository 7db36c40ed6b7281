package export

import "errors"

// PDFHint is shown to the user instead of a PDF.
const PDFHint = "PDF export will be implemented with a client-side library if permitted. For now, use the browser Print to PDF."

// ErrPDFNotSupported is returned by PDF.
var ErrPDFNotSupported = errors.New("pdf export is not supported")

// PDF is not implemented; export HTML and print it instead.
func PDF(string) error {
	return ErrPDFNotSupported
}
