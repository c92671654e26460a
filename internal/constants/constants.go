package constants

// 队列常量
const (
	QueueDefault = "default"
)

// 任务类型常量
const (
	TaskCartPurgeStale = "cart:purge_stale"
)

// 购物车持久化后端
const (
	CartStorageDatabase = "database"
	CartStorageRedis    = "redis"
	CartStorageMemory   = "memory"
)

// gin 上下文键
const (
	ContextKeyRequestID     = "request_id"
	ContextKeyCartSessionID = "cart_session_id"
)
