package dto

type CreateCourseRequest struct {
	Course string `json:"course" validate:"required,max=255"`
}

type CourseListResponse struct {
	Courses []string `json:"courses"`
}

// CourseStatusResponse reports the scope's in-flight embedding jobs and how
// many chunks its index currently holds.
type CourseStatusResponse struct {
	Remaining   int   `json:"remaining"`
	ChunkCount  int64 `json:"chunk_count"`
	IndexExists bool  `json:"index_exists"`
}
