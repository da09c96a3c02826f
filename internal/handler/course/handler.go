package course

import (
	coursesvc "revcast/internal/service/course"
)

// Handler exposes the course pipeline over HTTP.
type Handler struct {
	courseService coursesvc.CourseService
}

// NewHandler creates a course handler.
func NewHandler(courseService coursesvc.CourseService) *Handler {
	return &Handler{
		courseService: courseService,
	}
}
