package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/alexkarpov/timeline-convert/internal/archive"
	"github.com/alexkarpov/timeline-convert/internal/config"
	"github.com/alexkarpov/timeline-convert/internal/importers"
	"github.com/alexkarpov/timeline-convert/internal/services"
)

// ArtifactInfo describes one produced artifact without its content.
type ArtifactInfo struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// ConvertResponse is the JSON summary of a successful conversion.
type ConvertResponse struct {
	RunID             string                 `json:"run_id"`
	OriginalCount     int                    `json:"original_count"`
	FinalCount        int                    `json:"final_count"`
	ActivitiesRemoved int                    `json:"activities_removed"`
	DuplicatesRemoved int                    `json:"duplicates_removed"`
	TotalRemoved      int                    `json:"total_removed"`
	SegmentsSkipped   int                    `json:"segments_skipped"`
	Diagnostics       []importers.Diagnostic `json:"diagnostics"`
	Artifacts         []ArtifactInfo         `json:"artifacts"`
}

type ConvertController struct {
	service *services.ConvertService
}

func NewConvertController(service *services.ConvertService) *ConvertController {
	return &ConvertController{service: service}
}

// Convert handles POST /api/convert: a multipart upload of one or more
// JSON export files plus form options. Files are processed in upload
// order. With ?download=zip (or Accept: application/zip) the response
// is a zip of all artifacts; otherwise a JSON summary is returned.
func (ctrl *ConvertController) Convert(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form: " + err.Error()})
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		c.IndentedJSON(http.StatusBadRequest, gin.H{"error": "no files uploaded; use the 'files' field"})
		return
	}

	files := make([]importers.InputFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to open %s: %v", header.Filename, err)})
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("failed to read %s: %v", header.Filename, err)})
			return
		}
		files = append(files, importers.InputFile{Name: header.Filename, Data: data})
	}

	req := services.ConvertRequest{
		Files:            files,
		BaseName:         c.DefaultPostForm("baseName", config.DefaultBaseName),
		RemoveActivities: formBool(c, "removeActivities"),
		RemoveDuplicates: formBool(c, "removeDuplicates"),
		SplitFiles:       formBool(c, "splitFiles"),
	}

	summary, err := ctrl.service.Convert(req)
	if err != nil {
		var parseErr *importers.ParseError
		var formatErr *importers.FormatError
		if errors.As(err, &parseErr) || errors.As(err, &formatErr) {
			c.IndentedJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if c.Query("download") == "zip" || c.GetHeader("Accept") == "application/zip" {
		blob, err := archive.Zip(summary.Artifacts)
		if err != nil {
			c.IndentedJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", req.BaseName+".zip"))
		c.Data(http.StatusOK, "application/zip", blob)
		return
	}

	infos := make([]ArtifactInfo, len(summary.Artifacts))
	for i, a := range summary.Artifacts {
		infos[i] = ArtifactInfo{Name: a.Name, Size: a.Size()}
	}

	c.IndentedJSON(http.StatusOK, ConvertResponse{
		RunID:             summary.RunID,
		OriginalCount:     summary.OriginalCount,
		FinalCount:        summary.FinalCount,
		ActivitiesRemoved: summary.ActivitiesRemoved,
		DuplicatesRemoved: summary.DuplicatesRemoved,
		TotalRemoved:      summary.TotalRemoved,
		SegmentsSkipped:   summary.SegmentsSkipped,
		Diagnostics:       summary.Diagnostics,
		Artifacts:         infos,
	})
}

func formBool(c *gin.Context, field string) bool {
	v, err := strconv.ParseBool(c.PostForm(field))
	if err != nil {
		return false
	}
	return v
}
