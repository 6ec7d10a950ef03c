package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"soko_market/internal/services"
)

type OrderController struct {
	svc *services.OrderService
}

func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// Create places an order for the calling customer.
func (ctl *OrderController) Create(c *gin.Context) {
	ident, ok := caller(c)
	if !ok {
		return
	}
	var input services.OrderInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := ctl.svc.Create(input, ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "created successfully", "order": order})
}

// List returns exactly the orders inside the caller's scope.
func (ctl *OrderController) List(c *gin.Context) {
	ident, ok := caller(c)
	if !ok {
		return
	}
	orders, err := ctl.svc.FindAll(ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": orders})
}

func (ctl *OrderController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}
	order, err := ctl.svc.FindOne(id, ident)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": order})
}

func (ctl *OrderController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	ident, ok := caller(c)
	if !ok {
		return
	}
	var patch services.OrderPatch
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

func (ctl *OrderController) Delete(c *gin.Context) {
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
