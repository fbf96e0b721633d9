package http

import (
	"encoding/base64"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/mrlokans/studyhub/internal/entities"
	"github.com/mrlokans/studyhub/internal/result"
	"github.com/mrlokans/studyhub/internal/services"
)

// DefaultMaxUploadSize caps a subject upload when the router is not told otherwise.
const DefaultMaxUploadSize int64 = 10 << 20

// formOverhead is the body allowance on top of the file cap for the text
// fields and multipart framing.
const formOverhead int64 = 1 << 20

type SubjectService interface {
	Authorize(id, userID uint) result.Result[*entities.Subject]
	FetchSubject(id, userID uint) result.Result[*entities.Subject]
	FetchSubjects(collectionID, userID uint) result.Result[[]entities.Subject]
	CreateSubject(userID uint, input services.SubjectInput) result.Result[*entities.Subject]
	UpdateSubject(id, userID uint, update services.SubjectUpdate) result.Result[*entities.Subject]
	DeleteSubject(id, userID uint) result.Result[*entities.Subject]
}

type SubjectsController struct {
	subjects      SubjectService
	maxUploadSize int64
	log           logrus.FieldLogger
}

func NewSubjectsController(subjects SubjectService, maxUploadSize int64, log logrus.FieldLogger) *SubjectsController {
	if maxUploadSize <= 0 {
		maxUploadSize = DefaultMaxUploadSize
	}
	return &SubjectsController{subjects: subjects, maxUploadSize: maxUploadSize, log: log}
}

// Get handles GET /api/data/subject
//
// ?id= returns the subject with its conversation and questions,
// ?collectionId= lists the subjects of a collection.
func (sc *SubjectsController) Get(c *gin.Context) {
	userID := GetUserID(c)
	if id, ok := queryID(c, "id"); ok {
		respond(c, sc.subjects.FetchSubject(id, userID))
		return
	}
	if collectionID, ok := queryID(c, "collectionId"); ok {
		respond(c, sc.subjects.FetchSubjects(collectionID, userID))
		return
	}
	respondBadRequest(c, "id or collectionId is required")
}

// Create handles POST /api/data/subject as multipart/form-data with the
// fields name, collectionId, optional resume and an optional file.
func (sc *SubjectsController) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, sc.maxUploadSize+formOverhead)

	if err := c.Request.ParseMultipartForm(sc.maxUploadSize); err != nil {
		sc.uploadFailure(c, err)
		return
	}

	input := services.SubjectInput{Name: c.PostForm("name")}
	if raw := c.PostForm("collectionId"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			respondBadRequest(c, "Invalid collectionId")
			return
		}
		input.CollectionID = uint(id)
	}
	if resume, ok := c.GetPostForm("resume"); ok && strings.TrimSpace(resume) != "" {
		input.Resume = &resume
	}

	file, header, err := c.Request.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
	case err != nil:
		sc.uploadFailure(c, err)
		return
	default:
		defer file.Close()
		if header.Size > sc.maxUploadSize {
			respondBadRequest(c, msgUploadTooLarge)
			return
		}
		image, err := dataURI(file, header)
		if err != nil {
			sc.uploadFailure(c, err)
			return
		}
		input.Image = &image
	}

	respond(c, sc.subjects.CreateSubject(GetUserID(c), input))
}

// Update handles PUT /api/data/subject?id=
func (sc *SubjectsController) Update(c *gin.Context) {
	id, ok := requireQueryID(c, "id")
	if !ok {
		return
	}
	var update services.SubjectUpdate
	if !bindJSON(c, &update) {
		return
	}
	respond(c, sc.subjects.UpdateSubject(id, GetUserID(c), update))
}

// Delete handles DELETE /api/data/subject?id=
func (sc *SubjectsController) Delete(c *gin.Context) {
	id, ok := requireQueryID(c, "id")
	if !ok {
		return
	}
	respond(c, sc.subjects.DeleteSubject(id, GetUserID(c)))
}

const msgUploadTooLarge = "Upload exceeds the maximum allowed size"

func (sc *SubjectsController) uploadFailure(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), strings.Contains(err.Error(), "request body too large"):
		respondBadRequest(c, msgUploadTooLarge)
	case errors.Is(err, http.ErrNotMultipart), errors.Is(err, multipart.ErrMessageTooLarge):
		respondBadRequest(c, "Expected multipart/form-data")
	default:
		sc.log.WithError(err).Error("Failed to read subject upload")
		respond(c, result.Internal[any]())
	}
}

// dataURI encodes an uploaded file as data:<mime>;base64,<payload>.
func dataURI(file multipart.File, header *multipart.FileHeader) (string, error) {
	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType = http.DetectContentType(content)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = strings.TrimSpace(mimeType[:i])
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(content), nil
}
