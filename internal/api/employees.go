package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/nhle/loopwork/internal/model"
)

// EmployeeStore lists the company directory.
type EmployeeStore interface {
	GetEmployees(ctx context.Context, companyCode string) ([]model.Employee, error)
}

type Employee struct {
	log         *logrus.Entry
	store       EmployeeStore
	companyCode string
}

func NewEmployeeHandler(store EmployeeStore, companyCode string, log *logrus.Entry) *Employee {
	return &Employee{
		log:         log,
		store:       store,
		companyCode: companyCode,
	}
}

func (h *Employee) EnrichRoutes(router *gin.Engine) {
	router.GET("/employees", h.listEmployeesAction)
}

func (h *Employee) listEmployeesAction(c *gin.Context) {
	const op = "api.Employee.listEmployeesAction"
	log := h.log.WithField("operation", op)

	employees, err := h.store.GetEmployees(c.Request.Context(), h.companyCode)
	if err != nil {
		handleError(c, log, err)
		return
	}

	c.JSON(http.StatusOK, employees)
}
