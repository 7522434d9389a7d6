package adaptor

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"course-marketplace/internal/dto/request"
	"course-marketplace/internal/usecase"
	"course-marketplace/pkg/utils"
)

// maxUploadMemory caps how much of a multipart body is buffered in memory;
// larger files spill to disk.
const maxUploadMemory = 32 << 20

type CourseHandler struct {
	service usecase.CourseService
	log     *zap.Logger
}

func NewCourseHandler(service usecase.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{
		service: service,
		log:     log.With(zap.String("handler", "course")),
	}
}

func (h *CourseHandler) List(w http.ResponseWriter, r *http.Request) {
	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(r.URL.Query().Get("page"), 1),
		PerPage: utils.ParseInt(r.URL.Query().Get("per_page"), 10),
	}

	resp, err := h.service.ListCourses(r.Context(), req)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Courses retrieved successfully", resp)
}

func (h *CourseHandler) Get(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	var viewerID *uuid.UUID
	if userID, ok := utils.GetUserIDFromContext(r.Context()); ok {
		viewerID = &userID
	}

	resp, err := h.service.GetCourse(r.Context(), courseID, viewerID, utils.IsAdmin(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Course retrieved successfully", resp)
}

func (h *CourseHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid price", nil)
		return
	}

	req := &request.CreateCourseRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
		Price:       price,
	}

	image, err := formUpload(r, "image")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image file", nil)
		return
	}

	resp, err := h.service.CreateCourse(r.Context(), userID, req, image)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Course created successfully", resp)
}

func (h *CourseHandler) Update(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := &request.UpdateCourseRequest{}
	if title := r.FormValue("title"); title != "" {
		req.Title = &title
	}
	if description := r.FormValue("description"); description != "" {
		req.Description = &description
	}
	if rawPrice := r.FormValue("price"); rawPrice != "" {
		price, err := strconv.ParseInt(rawPrice, 10, 64)
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid price", nil)
			return
		}
		req.Price = &price
	}

	image, err := formUpload(r, "image")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid image file", nil)
		return
	}

	resp, err := h.service.UpdateCourse(r.Context(), courseID, req, image)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Course updated successfully", resp)
}

func (h *CourseHandler) ToggleLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.ToggleCourseLike(r.Context(), userID, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Like toggled successfully", resp)
}

func (h *CourseHandler) AddVideo(w http.ResponseWriter, r *http.Request) {
	courseID := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		utils.ResponseBadRequest(w, "Invalid multipart form", nil)
		return
	}

	req := &request.AddVideoRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	video, err := formUpload(r, "video")
	if err != nil {
		utils.ResponseBadRequest(w, "Invalid video file", nil)
		return
	}

	resp, err := h.service.AddVideo(r.Context(), courseID, req, video)
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseCreated(w, "Video added successfully", resp)
}

func (h *CourseHandler) ListVideos(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.ListVideos(r.Context(), userID, utils.IsAdmin(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Videos retrieved successfully", resp)
}

func (h *CourseHandler) ToggleVideoLike(w http.ResponseWriter, r *http.Request) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized")
		return
	}

	resp, err := h.service.ToggleVideoLike(r.Context(), userID,
		chi.URLParam(r, "courseId"), chi.URLParam(r, "videoId"))
	if err != nil {
		handleServiceError(w, h.log, err)
		return
	}

	utils.ResponseSuccess(w, "Like toggled successfully", resp)
}

// formUpload pulls an optional file out of a parsed multipart form. A missing
// file is not an error; a malformed part is.
func formUpload(r *http.Request, field string) (*usecase.Upload, error) {
	file, header, err := r.FormFile(field)
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &usecase.Upload{
		Reader:      file,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}
