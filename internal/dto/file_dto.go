package dto

// PublishEmbedMaterialMessage is the queue payload handed to the background
// embedding consumer. Chunks travel with the message so the consumer never
// re-reads the file.
type PublishEmbedMaterialMessage struct {
	Username  string   `json:"username"`
	Course    string   `json:"course"`
	Filename  string   `json:"filename"`
	Overwrite bool     `json:"overwrite"`
	Chunks    []string `json:"chunks"`
}

type UploadResponse struct {
	Status    string `json:"status"`
	SavedPath string `json:"saved_path"`
}

type AnalyzeResponse struct {
	CourseCandidates []string `json:"course_candidates"`
}

type FileInfo struct {
	Course   string `json:"course"`
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type CheckDuplicateRequest struct {
	Course   string `json:"course" validate:"required"`
	Filename string `json:"filename" validate:"required"`
}

type CheckDuplicateResponse struct {
	Duplicate bool `json:"duplicate"`
}
