package handler

import (
	"net/http"

	"github.com/blues/crowdmint/internal/logic"
	"github.com/gin-gonic/gin"
)

type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

func NewContributionHandler(contributionLogic *logic.ContributionLogic) *ContributionHandler {
	return &ContributionHandler{contributionLogic: contributionLogic}
}

// GetAccount 当前签名账户，未配置私钥时为空
func (h *ContributionHandler) GetAccount(c *gin.Context) {
	account, err := h.contributionLogic.LoadAccount(c.Request.Context())
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", AccountResponse{Account: account})
}

// GetMyContributions 账户的全部贡献
func (h *ContributionHandler) GetMyContributions(c *gin.Context) {
	account := c.Param("account")
	contributions, err := h.contributionLogic.GetMyContributions(c.Request.Context(), account)
	if err != nil {
		ErrResponse(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, "ok", GetContributionsResponse{
		Account:       account,
		Contributions: contributions,
	})
}
