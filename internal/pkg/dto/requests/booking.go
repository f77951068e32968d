package requests

// ReserveTest carries the requester details stored with the booking as is.
type ReserveTest struct {
	Payload map[string]interface{} `json:"payload"`
}

type RecordResult struct {
	PdfLink string `json:"pdfLink" validate:"required,url"`
}

type UploadResult struct {
	File        []byte
	FileName    string
	ContentType string
}
