package errors

import "errors"

// ErrConcurrentPause 并发暂离冲突：
// 行锁之外由"每记录至多一个未结束暂离"的部分唯一索引兜底，
// 索引冲突转译为该错误，调用方提示重试。
var ErrConcurrentPause = errors.New("暂离状态已被其他操作修改，请重试")
