package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"soko_market/internal/services"
)

type VendorController struct {
	svc *services.VendorService
}

func NewVendorController(svc *services.VendorService) *VendorController {
	return &VendorController{svc: svc}
}

// CreateUnderCategory accepts a single vendor or a batch for the category
// named in the path; the category is re-verified per item.
func (ctl *VendorController) CreateUnderCategory(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}

	var inputs []services.VendorInput
	if err := c.ShouldBindBodyWith(&inputs, binding.JSON); err != nil {
		var single services.VendorInput
		if err := c.ShouldBindBodyWith(&single, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inputs = []services.VendorInput{single}
	}

	created, errs := ctl.svc.Create(categoryID, inputs)
	respondBatch(c, created, errs)
}

// ListByCategory lists the vendors of the category named in the path.
func (ctl *VendorController) ListByCategory(c *gin.Context) {
	categoryID, ok := pathID(c)
	if !ok {
		return
	}
	vendors, err := ctl.svc.FindCategoryVendors(categoryID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vendors})
}

// List returns all vendors, or one category's when category_id is given.
func (ctl *VendorController) List(c *gin.Context) {
	var categoryID *uint
	if raw := c.Query("category_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid category_id"})
			return
		}
		v := uint(id)
		categoryID = &v
	}

	vendors, err := ctl.svc.FindAll(categoryID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": vendors})
}

// Get returns the vendor with its products and decoded position.
func (ctl *VendorController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	detail, err := ctl.svc.FindOne(id)
	if err != nil {
		respondErr(c, err)
		return
	}

	position, err := services.PositionGeoJSON(&detail.Vendor)
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendor":   detail.Vendor,
		"products": detail.Products,
		"position": position,
	})
}

func (ctl *VendorController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}
	var patch services.VendorPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := ctl.svc.Update(id, patch, ident); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "updated successfully"})
}

func (ctl *VendorController) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}
	if err := ctl.svc.Delete(id, ident); err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted successfully"})
}
