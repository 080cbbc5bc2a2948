package main

import (
	"errors"
	"fmt"
	"net/http"
	_ "net/http/pprof"

	"github.com/gin-gonic/gin"
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/base/config"
	"rds-mecr/rock-share/base/logger"
	"rds-mecr/utils"
)

func main() {
	// 一些初始化配置
	config.InitConfig()
	all := config.All
	l := all.Logger
	ss := all.Server
	logger.InitLogger(l.Level, "mecr", l.Path, l.MaxAge, l.RotationTime, l.RotationSize, ss.SentryDsn)
	defer logger.Sync()

	if ss.PprofPort != "" {
		go func() {
			err := http.ListenAndServe(":"+ss.PprofPort, nil)
			if err != nil {
				fmt.Printf("http.ListenAndServe failed, err:%s", err)
			}
		}()
	}

	port := ss.HttpPort
	if port == "" {
		port = rds_config.GinPort
	}
	if err := newRouter().Run(":" + port); err != nil {
		logger.Errorf("gin run failed, err:%v", err)
	}
}

func newRouter() *gin.Engine {
	r := gin.Default()
	r.POST("/mecr", start)
	r.GET("/mecr/:taskId", status)
	r.POST("/mecr/:taskId/stop", stop)
	return r
}

// start 异步挖掘，立即返回taskId
func start(c *gin.Context) {
	var requestJson MECRRequest
	if err := c.ShouldBindJSON(&requestJson); err != nil {
		logger.Warnf("请求异常: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}
	task, ctx := NewTask(requestJson.Params())
	go func() {
		result, err := DigRule(ctx, task.TaskId, &requestJson, task.Params)
		if err != nil {
			logger.Warnf("taskId:%v, 规则发现失败, err:%v", task.TaskId, err)
		}
		task.finish(result, err)
	}()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"taskId":  task.TaskId,
	})
}

func status(c *gin.Context) {
	task, err := GetTask(c.Param("taskId"))
	if err != nil {
		taskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task.Info())
}

func stop(c *gin.Context) {
	task, err := GetTask(c.Param("taskId"))
	if err != nil {
		taskError(c, err)
		return
	}
	task.Stop()
	logger.Infof("taskId:%v, 收到停止请求", task.TaskId)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"taskId":  task.TaskId,
	})
}

func taskError(c *gin.Context, err error) {
	code := http.StatusInternalServerError
	if errors.Is(err, utils.ErrTaskNotExist) {
		code = http.StatusNotFound
	}
	c.JSON(code, gin.H{
		"success": false,
		"error":   err.Error(),
	})
}
