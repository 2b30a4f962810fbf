package handler

import (
	"net/http"

	"github.com/blues/crowdmint/internal/errs"
	"github.com/blues/crowdmint/internal/logic"
	"github.com/gin-gonic/gin"
)

type CampaignHandler struct {
	campaignLogic     *logic.CampaignLogic
	workflowLogic     *logic.WorkflowLogic
	contributionLogic *logic.ContributionLogic
}

func NewCampaignHandler(campaignLogic *logic.CampaignLogic, workflowLogic *logic.WorkflowLogic, contributionLogic *logic.ContributionLogic) *CampaignHandler {
	return &CampaignHandler{
		campaignLogic:     campaignLogic,
		workflowLogic:     workflowLogic,
		contributionLogic: contributionLogic,
	}
}

// GetCampaigns 获取项目列表
func (h *CampaignHandler) GetCampaigns(c *gin.Context) {
	campaigns, err := h.campaignLogic.ListCampaigns(c.Request.Context())
	if err != nil {
		ErrResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "ok", GetCampaignsResponse{
		Campaigns: campaigns,
		Total:     len(campaigns),
	})
}

// GetCampaign 获取单个项目详情
func (h *CampaignHandler) GetCampaign(c *gin.Context) {
	campaign, err := h.campaignLogic.GetCampaign(c.Request.Context(), c.Param("address"))
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", campaign)
}

// StartFundraising 发起众筹
func (h *CampaignHandler) StartFundraising(c *gin.Context) {
	var req StartFundraisingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	address, err := h.campaignLogic.StartFundraising(c.Request.Context(), logic.FundraisingInput{
		Title:           req.Title,
		Description:     req.Description,
		MinContribution: req.MinContribution.String(),
		Target:          req.Target.String(),
		Deadline:        req.Deadline,
		Account:         req.Account,
	})
	if err != nil {
		ErrResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "Fundraising started", StartFundraisingResponse{Address: address})
}

// Contribute 向项目贡献，最小贡献额取自链上项目详情
func (h *CampaignHandler) Contribute(c *gin.Context) {
	var req ContributeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx := c.Request.Context()
	address := c.Param("address")

	campaign, err := h.campaignLogic.GetCampaign(ctx, address)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	if !campaign.Available {
		ErrResponse(c, errs.Newf(errs.CodeFormatError, "campaign %s is unavailable", address))
		return
	}

	result, err := h.workflowLogic.Contribute(ctx, address, req.Amount.String(), campaign.MinContribution, req.Account)
	if err != nil {
		ErrResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "Contribution successful", result)
}

// GetContributors 获取项目贡献者
func (h *CampaignHandler) GetContributors(c *gin.Context) {
	contributors, err := h.contributionLogic.GetContributors(c.Request.Context(), c.Param("address"))
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", GetContributorsResponse{Contributors: contributors})
}
