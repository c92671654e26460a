package queue

import (
	"encoding/json"
	"time"

	"github.com/shopfront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskCartPurgeStale 清理过期购物车任务
	TaskCartPurgeStale = constants.TaskCartPurgeStale
)

// CartPurgeStalePayload 清理过期购物车任务载荷
type CartPurgeStalePayload struct {
	BeforeUnix int64 `json:"before_unix"`
}

// Before 截止时间
func (p CartPurgeStalePayload) Before() time.Time {
	return time.Unix(p.BeforeUnix, 0)
}

// NewCartPurgeStaleTask 创建清理过期购物车任务
func NewCartPurgeStaleTask(payload CartPurgeStalePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskCartPurgeStale, body), nil
}
