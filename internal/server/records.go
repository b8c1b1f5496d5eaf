package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yashwanthu-lab/docfields/internal/schema"
)

func (s *Service) handleListRecords(c *gin.Context) {
	sc, ok := schema.ByName(c.Param("doctype"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type"})
		return
	}
	if s.repo == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not available"})
		return
	}

	recs, err := s.repo.List(c.Request.Context(), sc.Name)
	if err != nil {
		s.logger.Error("list records failed", "doc_type", sc.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	c.JSON(http.StatusOK, recs)
}

func (s *Service) handleDeleteRecord(c *gin.Context) {
	sc, ok := schema.ByName(c.Param("doctype"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type"})
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "record id must be an integer"})
		return
	}
	if s.repo == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not available"})
		return
	}

	deleted, err := s.repo.Delete(c.Request.Context(), sc.Name, id)
	if err != nil {
		s.logger.Error("delete record failed", "doc_type", sc.Name, "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Record not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Record deleted successfully"})
}

func (s *Service) handleExport(c *gin.Context) {
	sc, ok := schema.ByName(c.Param("doctype"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown document type"})
		return
	}
	if s.exporter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database not available"})
		return
	}

	data, err := s.exporter.RecordsXLSX(c.Request.Context(), sc)
	if err != nil {
		s.logger.Error("export failed", "doc_type", sc.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+sc.Name+`_records.xlsx"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (s *Service) handleHealth(c *gin.Context) {
	dbOK := false
	if s.repo != nil {
		dbOK = s.repo.Ping(c.Request.Context()) == nil
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "healthy",
		"model_available":    s.modelEnabled,
		"database_available": dbOK,
	})
}
