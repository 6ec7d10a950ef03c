package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"soko_market/internal/models"
	"soko_market/internal/services"
)

type UserController struct {
	svc *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{svc: svc}
}

// Create accepts a single user or a batch; each item succeeds or fails
// independently.
func (ctl *UserController) Create(c *gin.Context) {
	var inputs []services.UserInput
	if err := c.ShouldBindBodyWith(&inputs, binding.JSON); err != nil {
		var single services.UserInput
		if err := c.ShouldBindBodyWith(&single, binding.JSON); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		inputs = []services.UserInput{single}
	}

	var created []*models.User
	var errs []services.ItemError
	for _, in := range inputs {
		user, err := ctl.svc.Create(in)
		if err != nil {
			errs = append(errs, services.ItemError{Item: in.Name, Error: err.Error()})
			continue
		}
		created = append(created, user)
	}
	respondBatch(c, created, errs)
}

func (ctl *UserController) List(c *gin.Context) {
	users, err := ctl.svc.FindAll()
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

// ListByRole lists every user holding the role named in the path.
func (ctl *UserController) ListByRole(c *gin.Context) {
	role := c.Param("role")
	if !models.ValidRole(role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + role})
		return
	}
	users, err := ctl.svc.FindRoleUsers(models.Role(role))
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": users})
}

func (ctl *UserController) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	user, err := ctl.svc.FindOne(id)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (ctl *UserController) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var patch services.UserPatch
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

func (ctl *UserController) Delete(c *gin.Context) {
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
