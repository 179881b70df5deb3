package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/your-org/amber/internal/models"
	"github.com/your-org/amber/internal/storage"
	"github.com/your-org/amber/pkg/dto"
)

type PersonHandler struct {
	db     *storage.PostgresStore
	photos *storage.PhotoStore
}

func NewPersonHandler(db *storage.PostgresStore, photos *storage.PhotoStore) *PersonHandler {
	return &PersonHandler{db: db, photos: photos}
}

// List returns ACTIVE records, newest first.
func (h *PersonHandler) List(c *gin.Context) {
	limit := 50
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
			return
		}
		limit = n
	}

	persons, err := h.db.ListActivePersons(c.Request.Context(), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := make([]dto.PersonResponse, 0, len(persons))
	for i := range persons {
		resp = append(resp, dto.FromPerson(&persons[i], photoURL(&persons[i])))
	}

	c.JSON(http.StatusOK, dto.PersonListResponse{Persons: resp, Total: len(resp)})
}

func (h *PersonHandler) Get(c *gin.Context) {
	person, err := h.db.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}

	c.JSON(http.StatusOK, dto.FromPerson(person, photoURL(person)))
}

// Resolve marks a record found. The transition is one-way.
func (h *PersonHandler) Resolve(c *gin.Context) {
	id := c.Param("id")

	person, err := h.db.GetPerson(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if person == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "person not found"})
		return
	}
	if person.Status == models.StatusResolved {
		c.JSON(http.StatusConflict, gin.H{"error": "person already resolved"})
		return
	}

	if err := h.db.ResolvePerson(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "resolved"})
}

// Photo serves the stored registry photo for a record.
func (h *PersonHandler) Photo(c *gin.Context) {
	person, err := h.db.GetPerson(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if person == nil || person.PhotoKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "photo not found"})
		return
	}

	data, contentType, err := h.photos.GetObject(c.Request.Context(), person.PhotoKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, contentType, data)
}

func photoURL(p *models.MissingPerson) string {
	if p.PhotoKey == "" {
		return ""
	}
	return "/v1/persons/" + p.ID + "/photo"
}
