package router

import (
	"context"
	"net/http"

	"github.com/blues/crowdmint/internal/handler"
	"github.com/blues/crowdmint/internal/logic"
	"github.com/gin-gonic/gin"
)

// HealthFunc 返回依赖组件的健康状态
type HealthFunc func(ctx context.Context) map[string]interface{}

// Dependencies 路由依赖的业务逻辑
type Dependencies struct {
	Campaign        *logic.CampaignLogic
	Workflow        *logic.WorkflowLogic
	Contribution    *logic.ContributionLogic
	WithdrawRequest *logic.WithdrawRequestLogic
	Health          HealthFunc
}

func Setup(deps Dependencies) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(corsMiddleware())

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		body := gin.H{
			"status":  "ok",
			"service": "crowdmint",
		}
		if deps.Health != nil {
			for k, v := range deps.Health(c.Request.Context()) {
				body[k] = v
			}
		}
		c.JSON(http.StatusOK, body)
	})

	campaignHandler := handler.NewCampaignHandler(deps.Campaign, deps.Workflow, deps.Contribution)
	withdrawRequestHandler := handler.NewWithdrawRequestHandler(deps.WithdrawRequest)
	contributionHandler := handler.NewContributionHandler(deps.Contribution)

	// API版本组
	v1 := r.Group("/api/v1")
	{
		v1.GET("/account", contributionHandler.GetAccount)
		v1.GET("/accounts/:account/contributions", contributionHandler.GetMyContributions)

		// 项目相关路由
		campaigns := v1.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.GetCampaigns)
			campaigns.POST("", campaignHandler.StartFundraising)
			campaigns.GET("/:address", campaignHandler.GetCampaign)
			campaigns.POST("/:address/contributions", campaignHandler.Contribute)
			campaigns.GET("/:address/contributors", campaignHandler.GetContributors)

			// 提现请求
			campaigns.GET("/:address/requests", withdrawRequestHandler.GetWithdrawRequests)
			campaigns.POST("/:address/requests", withdrawRequestHandler.CreateWithdrawRequest)
			campaigns.POST("/:address/requests/:id/vote", withdrawRequestHandler.Vote)
			campaigns.POST("/:address/requests/:id/withdraw", withdrawRequestHandler.Withdraw)
		}
	}

	return r
}

// CORS中间件
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
