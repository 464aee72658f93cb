package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"ordersd/internal/domain"
	"ordersd/internal/problem"
	"ordersd/internal/validate"

	"github.com/gin-gonic/gin"
)

const defaultListLimit = 10

type createOrderRequest struct {
	CustomerID *string   `json:"customerId" validate:"required,notblank"`
	Items      *[]string `json:"items" validate:"required,min=1"`
}

type updateOrderRequest struct {
	Status *string `json:"status" validate:"required,oneof=pending paid shipped delivered"`
}

type listOrdersQuery struct {
	Limit  int `json:"limit" validate:"gte=1,lte=100"`
	Offset int `json:"offset" validate:"gte=0"`
}

type orderResponse struct {
	ID         string   `json:"id"`
	Status     string   `json:"status"`
	CustomerID string   `json:"customerId"`
	Items      []string `json:"items"`
}

type orderListResponse struct {
	Items  []orderResponse `json:"items"`
	Total  int64           `json:"total"`
	Limit  int             `json:"limit"`
	Offset int             `json:"offset"`
}

func (s *Server) createOrder(c *gin.Context) {
	var req createOrderRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		problem.Write(c, domain.Validation("request body must be valid JSON"))
		return
	}
	if err := s.validator.Struct(req).Err(); err != nil {
		problem.Write(c, err)
		return
	}
	order, err := s.orders.CreateOrder(c.Request.Context(), *req.CustomerID, *req.Items)
	if err != nil {
		problem.Write(c, err)
		return
	}
	if principal, ok := getPrincipal(c); ok {
		s.logger.Info("order created via api", "order_id", order.ID, "subject", principal.Subject)
	}
	c.JSON(http.StatusCreated, toOrderResponse(order))
}

func (s *Server) getOrder(c *gin.Context) {
	order, err := s.orders.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		problem.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (s *Server) updateOrder(c *gin.Context) {
	var req updateOrderRequest
	if err := json.NewDecoder(c.Request.Body).Decode(&req); err != nil {
		problem.Write(c, domain.Validation("request body must be valid JSON"))
		return
	}
	if err := s.validator.Struct(req).Err(); err != nil {
		problem.Write(c, err)
		return
	}
	order, err := s.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), domain.OrderStatus(*req.Status))
	if err != nil {
		problem.Write(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(order))
}

func (s *Server) listOrders(c *gin.Context) {
	query := listOrdersQuery{Limit: defaultListLimit, Offset: 0}
	var violations []validate.Violation
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, validate.Violation{Field: "limit", Message: "must be an integer"})
		} else {
			query.Limit = limit
		}
	}
	if raw := c.Query("offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil {
			violations = append(violations, validate.Violation{Field: "offset", Message: "must be an integer"})
		} else {
			query.Offset = offset
		}
	}
	result := s.validator.Struct(query)
	result.Violations = append(violations, result.Violations...)
	if err := result.Err(); err != nil {
		problem.Write(c, err)
		return
	}
	page, err := s.orders.ListOrders(c.Request.Context(), query.Limit, query.Offset)
	if err != nil {
		problem.Write(c, err)
		return
	}
	resp := orderListResponse{
		Items:  make([]orderResponse, 0, len(page.Items)),
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
	for _, order := range page.Items {
		resp.Items = append(resp.Items, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, resp)
}

func toOrderResponse(order domain.Order) orderResponse {
	return orderResponse{
		ID:         order.ID,
		Status:     string(order.Status),
		CustomerID: order.CustomerID,
		Items:      order.Items,
	}
}
