package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/crowdmint/internal/logic"
	"github.com/gin-gonic/gin"
)

type WithdrawRequestHandler struct {
	withdrawRequestLogic *logic.WithdrawRequestLogic
}

func NewWithdrawRequestHandler(withdrawRequestLogic *logic.WithdrawRequestLogic) *WithdrawRequestHandler {
	return &WithdrawRequestHandler{withdrawRequestLogic: withdrawRequestLogic}
}

// GetWithdrawRequests 获取提现请求列表，refresh=true 时从链上重新拉取
func (h *WithdrawRequestHandler) GetWithdrawRequests(c *gin.Context) {
	refresh, _ := strconv.ParseBool(c.DefaultQuery("refresh", "false"))

	requests, err := h.withdrawRequestLogic.LoadRequests(c.Request.Context(), c.Param("address"), refresh)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", GetWithdrawRequestsResponse{Requests: requests})
}

// CreateWithdrawRequest 创建提现请求
func (h *WithdrawRequestHandler) CreateWithdrawRequest(c *gin.Context) {
	var req CreateWithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.withdrawRequestLogic.RequestWithdrawal(c.Request.Context(), c.Param("address"), req.Amount.String(), req.Account)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, "Withdraw request created", created)
}

// Vote 对提现请求投票
func (h *WithdrawRequestHandler) Vote(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.withdrawRequestLogic.Vote(c.Request.Context(), c.Param("address"), c.Param("id"), req.Account)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Vote successful", result)
}

// Withdraw 执行提现
func (h *WithdrawRequestHandler) Withdraw(c *gin.Context) {
	var req AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.withdrawRequestLogic.Withdraw(c.Request.Context(), c.Param("address"), c.Param("id"), req.Account)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "Withdraw successful", result)
}
