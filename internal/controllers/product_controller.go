package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"soko_market/internal/services"
)

type ProductController struct {
	svc *services.ProductService
}

func NewProductController(svc *services.ProductService) *ProductController {
	return &ProductController{svc: svc}
}

// CreateUnderVendor accepts a single product or a batch for the vendor
// named in the path; the vendor is re-verified per item.
func (ctl *ProductController) CreateUnderVendor(c *gin.Context) {
	vendorID, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}

	var inputs []services.ProductInput
	if err := c.ShouldBindBodyWith(&inputs, binding.JSON); err != nil {
		var single services.ProductInput
		if err := c.ShouldBindBodyWith(&single, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inputs = []services.ProductInput{single}
	}

	created, errs := ctl.svc.Create(vendorID, inputs, ident)
	respondBatch(c, created, errs)
}

// ListByVendor lists the products of the vendor named in the path.
func (ctl *ProductController) ListByVendor(c *gin.Context) {
	vendorID, ok := pathID(c)
	if !ok {
		return
	}
	products, err := ctl.svc.FindVendorProducts(vendorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

// List returns all products, or one vendor's when vendor_id is given.
func (ctl *ProductController) List(c *gin.Context) {
	var vendorID *uint
	if raw := c.Query("vendor_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vendor_id"})
			return
		}
		v := uint(id)
		vendorID = &v
	}

	products, err := ctl.svc.FindAll(vendorID)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products})
}

func (ctl *ProductController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	product, err := ctl.svc.FindOne(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (ctl *ProductController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}
	var patch services.ProductPatch
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

func (ctl *ProductController) Delete(c *gin.Context) {
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
