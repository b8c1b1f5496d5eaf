package server

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yashwanthu-lab/docfields/internal/common"
	"github.com/yashwanthu-lab/docfields/internal/schema"
)

var allowedImageExts = map[string]struct{}{
	".png": {}, ".jpg": {}, ".jpeg": {}, ".gif": {}, ".bmp": {}, ".webp": {},
}

type extractTextRequest struct {
	Text string `json:"text"`
}

// handleExtract serves one document schema. The request carries either
// multipart image uploads (run through the OCR collaborator first) or a JSON
// body with pre-extracted text. Either way the response is the flat canonical
// record plus provenance; a persistence failure downgrades to a warning.
func (s *Service) handleExtract(sc *schema.Schema) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.ContentLength > s.maxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large. Maximum size is 16MB."})
			return
		}

		var rawText string
		if strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			text, ok := s.textFromUploads(c)
			if !ok {
				return // response already written
			}
			rawText = text
		} else {
			var req extractTextRequest
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON with a \"text\" field"})
				return
			}
			rawText = req.Text
		}

		result, prov, err := s.engine.Extract(c.Request.Context(), sc, rawText)
		if err != nil {
			if errors.Is(err, common.ErrNoExtractableText) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "No text could be extracted from images"})
				return
			}
			s.logger.Error("extract failed", "doc_type", sc.Name, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		resp := gin.H{}
		for k, v := range result {
			resp[k] = v
		}
		resp["provenance"] = string(prov)

		if s.repo != nil {
			if _, err := s.repo.Save(c.Request.Context(), sc.Name, result, string(prov)); err != nil {
				s.logger.Warn("record persist failed", "doc_type", sc.Name, "error", err)
				resp["warning"] = "extraction succeeded but the record could not be persisted"
			}
		}

		c.JSON(http.StatusOK, resp)
	}
}

// textFromUploads saves each uploaded image, runs OCR over it, and joins the
// detected span text into one raw string. Files are removed after processing.
// Returns ok=false after writing an error response itself.
func (s *Service) textFromUploads(c *gin.Context) (string, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images uploaded"})
		return "", false
	}
	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images selected"})
		return "", false
	}
	if s.reader == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image uploads are not supported; submit extracted text instead"})
		return "", false
	}

	if err := os.MkdirAll(s.uploadDir, 0o755); err != nil {
		s.logger.Error("upload dir create failed", "dir", s.uploadDir, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return "", false
	}

	var parts []string
	for _, fh := range files {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if _, ok := allowedImageExts[ext]; !ok {
			s.logger.Warn("skipping unsupported upload", "filename", fh.Filename)
			continue
		}

		dst := filepath.Join(s.uploadDir, uuid.New().String()+ext)
		if err := c.SaveUploadedFile(fh, dst); err != nil {
			s.logger.Error("upload save failed", "filename", fh.Filename, "error", err)
			continue
		}

		res, err := s.reader.ReadImage(c.Request.Context(), dst)
		_ = os.Remove(dst)
		if err != nil {
			s.logger.Error("ocr failed", "filename", fh.Filename, "error", err)
			continue
		}
		if txt := res.Text(); txt != "" {
			parts = append(parts, txt)
		}
	}

	return strings.Join(parts, " "), true
}
