package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"soko_market/internal/services"
)

type CategoryController struct {
	svc *services.CategoryService
}

func NewCategoryController(svc *services.CategoryService) *CategoryController {
	return &CategoryController{svc: svc}
}

// Create accepts a single category or a batch; each item succeeds or fails
// independently.
func (ctl *CategoryController) Create(c *gin.Context) {
	var inputs []services.CategoryInput
	if err := c.ShouldBindBodyWith(&inputs, binding.JSON); err != nil {
		var single services.CategoryInput
		if err := c.ShouldBindBodyWith(&single, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inputs = []services.CategoryInput{single}
	}

	created, errs := ctl.svc.Create(inputs)
	respondBatch(c, created, errs)
}

// List returns all categories, or one parent's children when
// parent_category_id is given.
func (ctl *CategoryController) List(c *gin.Context) {
	var parentID *uint
	if raw := c.Query("parent_category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid parent_category_id"})
			return
		}
		v := uint(id)
		parentID = &v
	}

	cats, err := ctl.svc.FindAll(parentID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": cats})
}

// Get returns the category with its sub-categories and vendors.
func (ctl *CategoryController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := ctl.svc.FindOne(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ctl *CategoryController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch services.CategoryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ctl.svc.Update(id, patch); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated successfully"})
}

func (ctl *CategoryController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.svc.Delete(id); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}
