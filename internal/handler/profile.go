package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sedrickcz/cityvizor"
)

// ProfileCatalog serves profiles
type ProfileCatalog interface {
	Get(id int64) (*cityvizor.Profile, error)
	Query(cityvizor.Query) ([]*cityvizor.Profile, error)
}

// ProfileHandler exposes the profile catalog
type ProfileHandler struct {
	catalog ProfileCatalog
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(catalog ProfileCatalog) *ProfileHandler {
	return &ProfileHandler{catalog: catalog}
}

// List handles GET /profiles?status=&main=&limit=&offset=
func (h *ProfileHandler) List(c *gin.Context) {
	query, err := profileQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profiles, err := h.catalog.Query(query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, profiles)
}

// Get handles GET /profiles/:id
func (h *ProfileHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid profile id"})
		return
	}

	profile, err := h.catalog.Get(id)
	if errors.Is(err, cityvizor.ErrProfileNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

func profileQuery(c *gin.Context) (cityvizor.Query, error) {
	var query cityvizor.Query

	if s, ok := c.GetQuery("status"); ok {
		status, err := cityvizor.ParseStatus(s)
		if err != nil {
			return query, err
		}
		query.Conditions = append(query.Conditions, cityvizor.Condition{
			Column: cityvizor.ColumnStatus, Operator: cityvizor.OpEqual, Value: string(status),
		})
	}

	if s, ok := c.GetQuery("main"); ok {
		isMain, err := strconv.ParseBool(s)
		if err != nil {
			return query, errors.New("invalid main flag")
		}
		query.Conditions = append(query.Conditions, cityvizor.Condition{
			Column: cityvizor.ColumnMain, Operator: cityvizor.OpEqual, Value: isMain,
		})
	}

	var err error
	if query.Limit, err = nonNegative(c, "limit"); err != nil {
		return query, err
	}
	if query.Offset, err = nonNegative(c, "offset"); err != nil {
		return query, err
	}

	return query, nil
}

func nonNegative(c *gin.Context, name string) (int, error) {
	s, ok := c.GetQuery(name)
	if !ok {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("invalid " + name)
	}
	return n, nil
}
