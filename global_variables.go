package main

import (
	"context"
	"strconv"
	"sync"
	"time"

	cmap "github.com/orcaman/concurrent-map"
	"rds-mecr/decision_tree/conf/mine"
	"rds-mecr/utils"
)

// GlobalTasks taskId -> *Task
var GlobalTasks = cmap.New()

type TaskState string

const (
	TaskRunning TaskState = "running"
	TaskSuccess TaskState = "success"
	TaskFailed  TaskState = "failed"
)

// Task 一个挖掘任务，状态字段在lock下读写
type Task struct {
	TaskId    string
	Params    mine.Params
	StartTime time.Time

	cancel context.CancelFunc
	done   chan struct{}

	lock   sync.RWMutex
	state  TaskState
	result *DigResult
	err    error
}

// TaskInfo 查询接口返回的任务快照
type TaskInfo struct {
	TaskId     string    `json:"taskId"`
	State      TaskState `json:"state"`
	ResultPath string    `json:"resultPath,omitempty"`
	GraphPath  string    `json:"graphPath,omitempty"`
	RuleSize   int       `json:"ruleSize"`
	Partial    bool      `json:"partial"`
	SpentTime  int64     `json:"spentTime"` // ms
	Error      string    `json:"error,omitempty"`
}

// NewTask 登记一个新任务，返回的ctx在Stop时取消
func NewTask(params mine.Params) (*Task, context.Context) {
	ctx, cancel := context.WithCancel(context.Background())
	task := &Task{
		Params:    params,
		StartTime: time.Now(),
		cancel:    cancel,
		done:      make(chan struct{}),
		state:     TaskRunning,
	}
	for {
		task.TaskId = strconv.FormatInt(time.Now().UnixNano(), 10)
		if GlobalTasks.SetIfAbsent(task.TaskId, task) {
			break
		}
	}
	return task, ctx
}

func GetTask(taskId string) (*Task, error) {
	v, ok := GlobalTasks.Get(taskId)
	if !ok {
		return nil, utils.ErrTaskNotExist
	}
	return v.(*Task), nil
}

// ClearTask 停止并删除任务
func ClearTask(taskId string) {
	if task, err := GetTask(taskId); err == nil {
		task.Stop()
		GlobalTasks.Remove(taskId)
	}
}

// Stop 取消任务，已经结束的任务不受影响
func (t *Task) Stop() {
	t.cancel()
}

// Done 任务结束时关闭
func (t *Task) Done() <-chan struct{} {
	return t.done
}

func (t *Task) finish(result *DigResult, err error) {
	t.lock.Lock()
	t.result, t.err = result, err
	if err != nil {
		t.state = TaskFailed
	} else {
		t.state = TaskSuccess
	}
	t.lock.Unlock()
	t.cancel()
	close(t.done)
}

func (t *Task) Info() TaskInfo {
	t.lock.RLock()
	defer t.lock.RUnlock()
	info := TaskInfo{TaskId: t.TaskId, State: t.state}
	if t.result != nil {
		info.ResultPath = t.result.ResultPath
		info.GraphPath = t.result.GraphPath
		info.RuleSize = t.result.RuleSize
		info.Partial = t.result.Partial
		info.SpentTime = t.result.SpentTime
	} else {
		info.SpentTime = time.Since(t.StartTime).Milliseconds()
	}
	if t.err != nil {
		info.Error = t.err.Error()
	}
	return info
}
