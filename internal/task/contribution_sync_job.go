package task

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/blues/crowdmint/internal/logger"
	"github.com/blues/crowdmint/internal/model"
	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// ContributionCursor 贡献事件同步游标名
const ContributionCursor = "contribution_received"

// ContributionSource 链上贡献事件来源
type ContributionSource interface {
	CurrentBlock(ctx context.Context) (uint64, error)
	ContributionLogs(ctx context.Context, fromBlock, toBlock uint64) ([]model.ContributionEvent, error)
}

// ContributionStore 贡献事件索引存储
type ContributionStore interface {
	Save(ctx context.Context, events []model.ContributionEvent) (int64, error)
	GetCursor(ctx context.Context, name string) (int64, bool, error)
	SaveCursor(ctx context.Context, name string, blockNum int64) error
}

// ContributionSyncJob 将工厂合约的 ContributionReceived 事件同步到本地索引
type ContributionSyncJob struct {
	source     ContributionSource
	store      ContributionStore
	interval   time.Duration
	batchSize  uint64
	startBlock uint64
	timeout    time.Duration
	now        func() time.Time
	log        *logger.Logger

	mu              sync.Mutex
	retryCount      int           // 连续失败次数
	lastRetryTime   time.Time     // 上次失败时间
	backoffDuration time.Duration // 退避时间
	lastSynced      int64         // 最近同步到的区块，-1 表示尚未同步
}

// NewContributionSyncJob 创建贡献同步任务
func NewContributionSyncJob(source ContributionSource, store ContributionStore, interval time.Duration, batchSize, startBlock int64) *ContributionSyncJob {
	if batchSize <= 0 {
		batchSize = 2000
	}
	if startBlock < 0 {
		startBlock = 0
	}
	return &ContributionSyncJob{
		source:     source,
		store:      store,
		interval:   interval,
		batchSize:  uint64(batchSize),
		startBlock: uint64(startBlock),
		timeout:    interval,
		now:        time.Now,
		log:        logger.With(zap.String("job", "contribution_sync")),
		lastSynced: -1,
	}
}

// GetName 获取任务名称
func (j *ContributionSyncJob) GetName() string {
	return "contribution_sync"
}

// GetSchedule 获取调度配置
func (j *ContributionSyncJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(j.interval)
}

// Execute 执行任务；处于退避期时跳过本次执行
func (j *ContributionSyncJob) Execute() {
	if j.inBackoff() {
		j.log.Debug("Contribution sync in backoff, skipping")
		return
	}

	ctx := context.Background()
	if j.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.timeout)
		defer cancel()
	}

	if err := j.Sync(ctx); err != nil {
		j.handleError(err)
		return
	}
	j.resetBackoff()
}

// Sync 同步一个批次，最多扫描 batchSize 个区块
func (j *ContributionSyncJob) Sync(ctx context.Context) error {
	latest, err := j.source.CurrentBlock(ctx)
	if err != nil {
		return err
	}

	cursor, found, err := j.store.GetCursor(ctx, ContributionCursor)
	if err != nil {
		return err
	}
	from := j.startBlock
	if found {
		from = uint64(cursor) + 1
	}
	if from > latest {
		j.log.Debug("Contribution index up to date at block %d", latest)
		return nil
	}

	to := from + j.batchSize - 1
	if to > latest {
		to = latest
	}

	events, err := j.source.ContributionLogs(ctx, from, to)
	if err != nil {
		return err
	}
	saved, err := j.store.Save(ctx, events)
	if err != nil {
		return err
	}
	if err := j.store.SaveCursor(ctx, ContributionCursor, int64(to)); err != nil {
		return err
	}

	j.mu.Lock()
	j.lastSynced = int64(to)
	j.mu.Unlock()

	j.log.Info("Synced blocks %d-%d: %d events, %d new", from, to, len(events), saved)
	return nil
}

func (j *ContributionSyncJob) inBackoff() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.retryCount > 0 && j.now().Before(j.lastRetryTime.Add(j.backoffDuration))
}

// handleError 记录失败并计算退避时间，触发节点限流时直接退避到上限
func (j *ContributionSyncJob) handleError(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.retryCount++
	j.lastRetryTime = j.now()

	if j.retryCount > 5 || isAPIRateLimitError(err) {
		j.backoffDuration = 5 * time.Minute
	} else {
		j.backoffDuration = time.Duration(j.retryCount) * 10 * time.Second
	}

	j.log.Error("Contribution sync failed (retry %d, backoff %s): %v", j.retryCount, j.backoffDuration, err)
}

func (j *ContributionSyncJob) resetBackoff() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.retryCount = 0
	j.backoffDuration = 0
}

// Status 同步状态
func (j *ContributionSyncJob) Status() map[string]interface{} {
	j.mu.Lock()
	defer j.mu.Unlock()
	return map[string]interface{}{
		"last_synced_block": j.lastSynced,
		"retry_count":       j.retryCount,
		"backoff":           j.backoffDuration.String(),
	}
}

// isAPIRateLimitError 检查是否为节点限流错误
func isAPIRateLimitError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "Too Many Requests") || strings.Contains(msg, "429")
}
