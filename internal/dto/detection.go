package dto

// Detection is one finding reported to the client.
type Detection struct {
	Class      string  `json:"class"`
	Confidence float64 `json:"confidence"`
}

// DetectionResponse is the payload returned by POST /predict/.
type DetectionResponse struct {
	FileType   string      `json:"file_type"`
	Detections []Detection `json:"detections"`
	OutputURL  string      `json:"output_url"`
}
