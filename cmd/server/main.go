package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blues/crowdmint/internal/chain"
	"github.com/blues/crowdmint/internal/config"
	"github.com/blues/crowdmint/internal/database"
	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/logic"
	"github.com/blues/crowdmint/internal/merger"
	"github.com/blues/crowdmint/internal/repository"
	"github.com/blues/crowdmint/internal/router"
	"github.com/blues/crowdmint/internal/task"
	"github.com/gin-gonic/gin"
	"github.com/panjf2000/ants/v2"
)

func main() {
	// 加载配置
	cfg := config.Load()
	logger.Init(cfg.Log)
	defer logger.Sync()

	// 初始化链客户端
	chainManager, err := chain.NewManager(cfg.Chain, cfg.Index.StartBlock)
	if err != nil {
		logger.Fatal("Failed to initialize chain manager: %v", err)
	}
	defer chainManager.Close()
	ledger := chainManager.GetLedger()

	// 协程池
	pool, err := ants.NewPool(cfg.Pool.Size)
	if err != nil {
		logger.Fatal("Failed to create worker pool: %v", err)
	}
	defer pool.Release()

	// 贡献索引
	var index logic.ContributionIndex
	var taskManager *task.Manager
	var syncJob *task.ContributionSyncJob
	if cfg.Index.Enabled {
		db, err := database.Open(cfg.Database)
		if err != nil {
			logger.Fatal("Failed to initialize database: %v", err)
		}
		if err := repository.Migrate(db); err != nil {
			logger.Fatal("%v", err)
		}
		repo := repository.NewContributionRepository(db)
		index = repo

		taskManager, err = task.NewManager()
		if err != nil {
			logger.Fatal("%v", err)
		}
		syncJob = task.NewContributionSyncJob(ledger, repo,
			time.Duration(cfg.Index.Interval)*time.Second, cfg.Index.BatchSize, cfg.Index.StartBlock)
		if err := taskManager.Register(syncJob); err != nil {
			logger.Fatal("%v", err)
		}
		taskManager.Start()
		defer taskManager.Stop()
	}

	workflowLogic := logic.NewWorkflowLogic(ledger)
	campaignLogic := logic.NewCampaignLogic(ledger, pool)
	boards := merger.NewStore()

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := router.Setup(router.Dependencies{
		Campaign:        campaignLogic,
		Workflow:        workflowLogic,
		Contribution:    logic.NewContributionLogic(ledger, index),
		WithdrawRequest: logic.NewWithdrawRequestLogic(ledger, workflowLogic, boards),
		Health: func(ctx context.Context) map[string]interface{} {
			health := chainManager.GetHealthStatus(ctx)
			health["pool"] = campaignLogic.PoolStatus()
			health["withdraw_boards"] = boards.Len()
			health["index_enabled"] = cfg.Index.Enabled
			if taskManager != nil {
				health["jobs"] = taskManager.Jobs()
				health["contribution_sync"] = syncJob.Status()
			}
			return health
		},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}
}
