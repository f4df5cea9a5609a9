package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/you/timetablesvc/domain"
)

// PolicyHandlers exposes the role-policy table to admins
type PolicyHandlers struct {
	policySvc domain.PolicyService
}

// NewPolicyHandlers creates new policy handlers
func NewPolicyHandlers(policySvc domain.PolicyService) *PolicyHandlers {
	return &PolicyHandlers{policySvc: policySvc}
}

type policyRequest struct {
	Role     string `json:"role" binding:"required"`
	Resource string `json:"resource" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// List returns all role policies
func (h *PolicyHandlers) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    gin.H{"policies": h.policySvc.GetPolicies()},
	})
}

// Add creates a role policy
func (h *PolicyHandlers) Add(c *gin.Context) {
	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.policySvc.AddPolicy(req.Role, req.Resource, req.Action); err != nil {
		log.Printf("add-policy: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to add policy"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Policy added"})
}

// Remove deletes a role policy
func (h *PolicyHandlers) Remove(c *gin.Context) {
	var req policyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	if err := h.policySvc.RemovePolicy(req.Role, req.Resource, req.Action); err != nil {
		log.Printf("remove-policy: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to remove policy"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Policy removed"})
}
