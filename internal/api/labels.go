package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nhle/loopwork/internal/model"
	"github.com/nhle/loopwork/internal/store"
)

// LabelStore manages a company's labels.
type LabelStore interface {
	CreateLabel(ctx context.Context, label model.Label) (model.Label, error)
	GetLabels(ctx context.Context, companyCode string) ([]model.Label, error)
	DeleteLabel(ctx context.Context, id string) error
}

type createLabelRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type Label struct {
	log         *logrus.Entry
	store       LabelStore
	companyCode string
}

func NewLabelHandler(store LabelStore, companyCode string, log *logrus.Entry) *Label {
	return &Label{
		log:         log,
		store:       store,
		companyCode: companyCode,
	}
}

func (h *Label) EnrichRoutes(router *gin.Engine) {
	labelRoutes := router.Group("/labels")
	labelRoutes.GET("", h.listLabelsAction)
	labelRoutes.POST("", h.createLabelAction)
	labelRoutes.DELETE("/:labelID", h.deleteLabelAction)
}

func (h *Label) listLabelsAction(c *gin.Context) {
	const op = "api.Label.listLabelsAction"
	log := h.log.WithField("operation", op)

	labels, err := h.store.GetLabels(c.Request.Context(), h.companyCode)
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, labels)
}

func (h *Label) createLabelAction(c *gin.Context) {
	const op = "api.Label.createLabelAction"
	log := h.log.WithField("operation", op)

	var req createLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.WithError(err).Debug("invalid request body")
		badRequest(c, "invalid request structure")
		return
	}

	label, err := h.store.CreateLabel(c.Request.Context(), model.Label{
		Name:        req.Name,
		Color:       req.Color,
		CompanyCode: h.companyCode,
	})
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusCreated, label)
}

func (h *Label) deleteLabelAction(c *gin.Context) {
	const op = "api.Label.deleteLabelAction"
	log := h.log.WithFields(logrus.Fields{"operation": op, "label_id": c.Param("labelID")})

	err := h.store.DeleteLabel(c.Request.Context(), c.Param("labelID"))
	if errors.Is(err, store.ErrLabelNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.Status(http.StatusNoContent)
}
