package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/NormalEdition/Planify/internal/models"
	"github.com/NormalEdition/Planify/internal/services"
)

type TaskHandler struct {
	service services.TaskService
}

func NewTaskHandler(service services.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// List godoc
// @Summary      List all tasks
// @Tags         tasks
// @Produce      json
// @Success      200 {array} models.Task
// @Router       /tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		log.Printf("[task][list][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []models.Task{}
	}
	c.JSON(http.StatusOK, tasks)
}

// ListByLevel godoc
// @Summary      List tasks by urgency level
// @Tags         tasks
// @Produce      json
// @Param        level path string true "Task level (C, M or L)"
// @Success      200 {array} models.Task
// @Failure      404 {object} map[string]string
// @Router       /tasks/level/{level} [get]
func (h *TaskHandler) ListByLevel(c *gin.Context) {
	level := models.TaskLevel(c.Param("level"))
	if !level.Valid() {
		log.Printf("[task][listByLevel][err] invalid level=%q", level)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid level"})
		return
	}

	tasks, err := h.service.GetByLevel(c.Request.Context(), level)
	if err != nil {
		log.Printf("[task][listByLevel][err] level=%s: %v", level, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to list tasks"})
		return
	}
	if len(tasks) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "No tasks found with Level " + string(level) + "."})
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create godoc
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Success      201 {object} models.Task
// @Failure      400 {object} map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		Title   string           `json:"title" binding:"required"`
		Desc    string           `json:"desc" binding:"required"`
		Date    models.Date      `json:"date"`
		Level   models.TaskLevel `json:"level"`
		DelFlg  models.Flag      `json:"delFlg"`
		CompFlg models.Flag      `json:"compFlg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][create][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to add task. Invalid data."})
		return
	}
	log.Printf("[task][create] title=%q date=%s level=%q", req.Title, req.Date, req.Level)

	task := &models.Task{
		Title: req.Title,
		Desc:  req.Desc,
		Date:  req.Date,
		Level: req.Level,
	}
	created, err := h.service.Create(c.Request.Context(), task)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTask) || errors.Is(err, services.ErrInvalidLevel) {
			log.Printf("[task][create][err] invalid payload: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to add task. Invalid data."})
			return
		}
		log.Printf("[task][create][err] %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to create task"})
		return
	}
	log.Printf("[task][create][ok] id=%d title=%q", created.ID, created.Title)
	c.JSON(http.StatusCreated, created)
}

// Update godoc
// @Summary      Update a task
// @Description  delFlg=Y soft-deletes, compFlg=Y completes; anything else is a full update
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        id path int true "Task id"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][update][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	var req struct {
		Title   string           `json:"title"`
		Desc    string           `json:"desc"`
		Date    models.Date      `json:"date"`
		Level   models.TaskLevel `json:"level"`
		DelFlg  models.Flag      `json:"delFlg"`
		CompFlg models.Flag      `json:"compFlg"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("[task][update][bind][err] %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Failed to update task. Invalid data."})
		return
	}

	// Flag-only updates take a dedicated path; delFlg wins over compFlg.
	if req.DelFlg == models.FlagYes || req.CompFlg == models.FlagYes {
		patch := models.FlagPatch{}
		if req.DelFlg == models.FlagYes {
			patch.DelFlg = &req.DelFlg
		} else {
			patch.CompFlg = &req.CompFlg
		}
		task, err := h.service.UpdateFlags(c.Request.Context(), id, patch)
		if err != nil {
			log.Printf("[task][update][flags][err] id=%d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update task"})
			return
		}
		if task == nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Task with ID " + strconv.FormatInt(id, 10) + " not found."})
			return
		}
		if patch.DelFlg != nil {
			log.Printf("[task][update][ok] id=%d delFlg=Y", id)
			c.JSON(http.StatusOK, gin.H{"message": "delFlg set to Y successfully!"})
		} else {
			log.Printf("[task][update][ok] id=%d compFlg=Y", id)
			c.JSON(http.StatusOK, gin.H{"message": "compFlg set to Y successfully!"})
		}
		return
	}

	upd := &models.Task{
		Title:   req.Title,
		Desc:    req.Desc,
		Date:    req.Date,
		Level:   req.Level,
		DelFlg:  req.DelFlg,
		CompFlg: req.CompFlg,
	}
	task, err := h.service.Update(c.Request.Context(), id, upd)
	if err != nil {
		log.Printf("[task][update][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to update task"})
		return
	}
	if task == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task with ID " + strconv.FormatInt(id, 10) + " not found."})
		return
	}
	log.Printf("[task][update][ok] id=%d full update", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task updated successfully!"})
}

// Delete godoc
// @Summary      Physically delete a task
// @Tags         tasks
// @Produce      json
// @Param        id path int true "Task id"
// @Success      200 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		log.Printf("[task][delete][err] invalid id: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid id"})
		return
	}

	found, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		log.Printf("[task][delete][err] id=%d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "failed to delete task"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "Task with ID " + strconv.FormatInt(id, 10) + " not found."})
		return
	}
	log.Printf("[task][delete][ok] id=%d", id)
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully!"})
}
