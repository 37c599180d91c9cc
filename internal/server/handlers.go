package server

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"

	"infoco/internal/api"
	"infoco/internal/domain"
	"infoco/internal/errors"
	"infoco/internal/services"
)

const maxBodySize = 1 << 20

// Register wires up all API routes on the provided Echo instance.
func Register(e *echo.Echo, svc api.Service, logger *log.Logger) {
	e.GET("/healthz", healthz())
	e.GET("/api/dataset", getDataset(svc))
	e.GET("/api/dashboard", getDashboard(svc))

	e.GET("/api/employees", listEmployees(svc))
	e.POST("/api/employees", createEmployee(svc))
	e.PUT("/api/employees/:id", updateEmployee(svc))
	e.DELETE("/api/employees/:id", deleteEmployee(svc))

	e.GET("/api/tasks", listTasks(svc))
	e.POST("/api/tasks", createTask(svc))
	e.PUT("/api/tasks/:id", updateTask(svc))
	e.DELETE("/api/tasks/:id", deleteTask(svc))

	e.GET("/api/municipalities", listFinance(svc))
	e.POST("/api/municipalities", createFinance(svc))
	e.PUT("/api/municipalities/:id", updateFinance(svc))
	e.DELETE("/api/municipalities/:id", deleteFinance(svc))

	e.POST("/api/analysis", postAnalysis(svc, logger))
}

type dashboardResponse struct {
	Dashboard *services.DashboardData  `json:"dashboard"`
	Finance   *services.FinanceSummary `json:"finance"`
}

type taskRequest struct {
	EmployeeID  int64   `json:"employeeId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Status      string  `json:"status"`
}

type analysisRequest struct {
	Question string `json:"question"`
}

type analysisResponse struct {
	Answer string `json:"answer"`
}

func healthz() echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}
}

func getDataset(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.JSON(http.StatusOK, svc.Snapshot(c.Request().Context()))
	}
}

func getDashboard(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx := c.Request().Context()

		limit := services.DefaultRecentTasksLimit
		if raw := strings.TrimSpace(c.QueryParam("limit")); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n <= 0 {
				return errors.NewInvalidInputError("limit", raw, "must be a positive integer")
			}
			limit = n
		}

		dashboard, err := svc.GetDashboardData(ctx, limit)
		if err != nil {
			return err
		}
		finance, err := svc.GetFinanceTotals(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, dashboardResponse{Dashboard: dashboard, Finance: finance})
	}
}

// Employees

func listEmployees(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		employees, err := svc.ListEmployees(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, employees)
	}
}

func createEmployee(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in domain.EmployeeInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		employee, err := svc.CreateEmployee(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, employee)
	}
}

func updateEmployee(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var in domain.EmployeeInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		employee, err := svc.UpdateEmployee(c.Request().Context(), in.WithID(id))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, employee)
	}
}

func deleteEmployee(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteEmployee(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// Tasks

func listTasks(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		filter, err := taskFilter(c)
		if err != nil {
			return err
		}
		rows, err := svc.SearchTasks(c.Request().Context(), filter, services.SortOrder(c.QueryParam("sort")))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, rows)
	}
}

func createTask(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		in, err := decodeTask(c)
		if err != nil {
			return err
		}
		task, err := svc.CreateTask(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, task)
	}
}

func updateTask(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		in, err := decodeTask(c)
		if err != nil {
			return err
		}
		task, err := svc.UpdateTask(c.Request().Context(), in.WithID(id))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, task)
	}
}

func deleteTask(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteTask(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// Municipalities

func listFinance(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		records, err := svc.ListFinance(c.Request().Context())
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, records)
	}
}

func createFinance(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var in domain.FinanceInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		finance, err := svc.CreateFinance(c.Request().Context(), in)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, finance)
	}
}

func updateFinance(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		var in domain.FinanceInput
		if err := decodeBody(c, &in); err != nil {
			return err
		}
		finance, err := svc.UpdateFinance(c.Request().Context(), in.WithID(id))
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, finance)
	}
}

func deleteFinance(svc api.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := pathID(c)
		if err != nil {
			return err
		}
		if err := svc.DeleteFinance(c.Request().Context(), id); err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
}

// Analysis

func postAnalysis(svc api.Service, logger *log.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req analysisRequest
		if err := decodeBody(c, &req); err != nil {
			return err
		}

		start := time.Now()
		answer, err := svc.Analyze(c.Request().Context(), req.Question)
		logger.WithFields(log.Fields{
			"duration": time.Since(start).String(),
			"ok":       err == nil,
		}).Debug("analysis finished")
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, analysisResponse{Answer: answer})
	}
}

// decodeBody reads a JSON body of at most maxBodySize bytes, rejecting unknown fields
func decodeBody(c echo.Context, v interface{}) error {
	lr := io.LimitReader(c.Request().Body, maxBodySize)
	dec := sonic.ConfigStd.NewDecoder(lr)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.NewInvalidInputError("body", nil, "must be a valid JSON object")
	}
	return nil
}

func decodeTask(c echo.Context) (domain.TaskInput, error) {
	var req taskRequest
	if err := decodeBody(c, &req); err != nil {
		return domain.TaskInput{}, err
	}

	in := domain.TaskInput{
		EmployeeID:  req.EmployeeID,
		Title:       req.Title,
		Description: req.Description,
		Hours:       req.Hours,
		Status:      domain.TaskStatus(req.Status),
	}
	if strings.TrimSpace(req.Date) != "" {
		date, err := parseTaskDate(req.Date)
		if err != nil {
			return domain.TaskInput{}, errors.NewInvalidInputError("date", req.Date, "must be YYYY-MM-DD or an RFC 3339 timestamp")
		}
		in.Date = date
	}
	return in, nil
}

// parseTaskDate accepts a calendar date or a full RFC 3339 timestamp. The
// time of day is dropped when the task is validated.
func parseTaskDate(s string) (time.Time, error) {
	if date, err := domain.ParseDate(s); err == nil {
		return date, nil
	}
	return time.Parse(time.RFC3339, strings.TrimSpace(s))
}

func taskFilter(c echo.Context) (domain.TaskFilter, error) {
	filter := domain.TaskFilter{TitleContains: c.QueryParam("q")}

	if raw := strings.TrimSpace(c.QueryParam("employeeId")); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return domain.TaskFilter{}, errors.NewInvalidInputError("employeeId", raw, "must be an integer")
		}
		filter.EmployeeID = &id
	}
	if raw := strings.TrimSpace(c.QueryParam("status")); raw != "" {
		status, err := domain.ParseTaskStatus(raw)
		if err != nil {
			return domain.TaskFilter{}, errors.NewInvalidInputError("status", raw, "unknown task status")
		}
		filter.Status = &status
	}
	return filter, nil
}

func pathID(c echo.Context) (int64, error) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.NewInvalidInputError("id", raw, "must be an integer")
	}
	return id, nil
}
