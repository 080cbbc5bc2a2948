package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/smartystreets/goconvey/convey"
	"rds-mecr/decision_tree/conf/mine"
	"rds-mecr/rds_config"
	"rds-mecr/rock-share/base/config"
	"rds-mecr/utils"
)

const scenarioCsv = `a,b,c,label
1,1,1,1
1,2,1,0
2,2,1,0
3,3,1,1
3,1,2,0
3,3,1,1
1,3,2,1
2,2,2,0
`

func float(f float64) *float64 {
	return &f
}

// prepare 把数据写到临时目录，结果也输出到临时目录
func prepare(t *testing.T) (string, string) {
	dir := t.TempDir()
	dataPath := filepath.Join(dir, "data.csv")
	if err := os.WriteFile(dataPath, []byte(scenarioCsv), 0o644); err != nil {
		t.Fatal(err)
	}
	resultDir := filepath.Join(dir, "result")
	config.All = &config.AllConfig{Mine: config.MineConfig{WorkerNum: 2, ResultDir: resultDir}}
	t.Cleanup(func() { config.All = nil })
	return dataPath, resultDir
}

func TestDigRule(t *testing.T) {
	Convey("dig rules from csv", t, func() {
		dataPath, resultDir := prepare(t)
		request := &MECRRequest{
			Table:       Table{Path: dataPath},
			LabelColumn: "label",
			Support:     float(0.25),
			Confidence:  float(0.6),
			Graph:       true,
		}
		So(request.Params().Graph, ShouldBeTrue)
		result, err := DigRule(context.Background(), "t1", request, request.Params())
		So(err, ShouldBeNil)
		So(result.RuleSize, ShouldEqual, 8)
		So(result.Partial, ShouldBeFalse)
		So(result.ResultPath, ShouldEqual, filepath.Join(resultDir, "t1"+rds_config.ResultCsvSuffix))
		So(result.GraphPath, ShouldEqual, filepath.Join(resultDir, "t1"+rds_config.GraphSuffix))

		// 默认按分数降序
		for i := 1; i < len(result.Rules); i++ {
			So(result.Rules[i].Score().Less(result.Rules[i-1].Score()) || result.Rules[i].Score() == result.Rules[i-1].Score(), ShouldBeTrue)
		}

		data, err := utils.GetCsvData(result.ResultPath)
		So(err, ShouldBeNil)
		So(data, ShouldHaveLength, 9)
		So(data[0], ShouldResemble, []string{"conditions", "class", "purity", "proportion", "matches", "covered"})
		So(data[1:], ShouldContain, []string{"a is 2", "0", "1", "0.25", "2", "2"})

		_, err = os.Stat(result.GraphPath)
		So(err, ShouldBeNil)

		Convey("feature columns and filter", func() {
			request.FeatureColumns = []string{"a", "b", "a"}
			request.Filter = "length > 1"
			request.Graph = false
			result, err := DigRule(context.Background(), "t2", request, request.Params())
			So(err, ShouldBeNil)
			So(result.RuleSize, ShouldBeGreaterThan, 0)
			for _, r := range result.Rules {
				So(r.Len(), ShouldBeGreaterThan, 1)
				for _, feature := range r.Features() {
					So(feature, ShouldBeIn, []string{"a", "b"})
				}
			}
		})

		Convey("ascending order", func() {
			request.Order = "asc"
			result, err := DigRule(context.Background(), "t3", request, request.Params())
			So(err, ShouldBeNil)
			last := len(result.Rules) - 1
			So(result.Rules[0].Score().Less(result.Rules[last].Score()), ShouldBeTrue)
		})

		Convey("alias for class values and feature names", func() {
			aliasPath := filepath.Join(filepath.Dir(dataPath), "alias.yml")
			So(os.WriteFile(aliasPath, []byte("\"0\": negative\n\"1\": positive\na: color\n"), 0o644), ShouldBeNil)
			request.AliasPath = aliasPath
			result, err := DigRule(context.Background(), "t4", request, request.Params())
			So(err, ShouldBeNil)
			for _, r := range result.Rules {
				So(r.Classification, ShouldBeIn, []any{"negative", "positive"})
				So(r.Features(), ShouldNotContain, "a")
			}
		})
	})

	Convey("bad requests", t, func() {
		dataPath, _ := prepare(t)

		request := &MECRRequest{Table: Table{Path: dataPath}, LabelColumn: "missing"}
		_, err := DigRule(context.Background(), "e1", request, request.Params())
		So(errors.Is(err, utils.ErrColumnNotExist), ShouldBeTrue)

		request = &MECRRequest{Table: Table{Path: dataPath}, LabelColumn: "label", FeatureColumns: []string{"label"}}
		_, err = DigRule(context.Background(), "e2", request, request.Params())
		So(errors.Is(err, utils.ErrColumnNotExist), ShouldBeTrue)

		request = &MECRRequest{Table: Table{Path: dataPath + ".none"}, LabelColumn: "label"}
		_, err = DigRule(context.Background(), "e3", request, request.Params())
		So(errors.Is(err, utils.ErrOpenCsv), ShouldBeTrue)

		request = &MECRRequest{Table: Table{Path: dataPath}, LabelColumn: "label", Filter: "purity >="}
		_, err = DigRule(context.Background(), "e4", request, request.Params())
		So(errors.Is(err, utils.ErrParameter), ShouldBeTrue)

		request = &MECRRequest{Table: Table{Path: dataPath}, LabelColumn: "label", Support: float(1.5)}
		_, err = DigRule(context.Background(), "e5", request, request.Params())
		So(errors.Is(err, utils.ErrInvalidThreshold), ShouldBeTrue)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		request = &MECRRequest{Table: Table{Path: dataPath}, LabelColumn: "label"}
		_, err = DigRule(ctx, "e6", request, request.Params())
		So(errors.Is(err, utils.ErrCancelled), ShouldBeTrue)

		allow := true
		request.AllowPartial = &allow
		result, err := DigRule(ctx, "e7", request, request.Params())
		So(err, ShouldBeNil)
		So(result.Partial, ShouldBeTrue)
	})
}

func TestRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	Convey("task lifecycle over http", t, func() {
		dataPath, _ := prepare(t)
		router := newRouter()

		body, _ := json.Marshal(map[string]any{
			"table":       map[string]string{"path": dataPath},
			"labelColumn": "label",
			"support":     0.25,
			"confidence":  0.6,
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mecr", bytes.NewReader(body)))
		So(w.Code, ShouldEqual, http.StatusOK)

		var started struct {
			Success bool   `json:"success"`
			TaskId  string `json:"taskId"`
		}
		So(json.Unmarshal(w.Body.Bytes(), &started), ShouldBeNil)
		So(started.Success, ShouldBeTrue)

		task, err := GetTask(started.TaskId)
		So(err, ShouldBeNil)
		select {
		case <-task.Done():
		case <-time.After(10 * time.Second):
			t.Fatal("task not finished")
		}

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mecr/"+started.TaskId, nil))
		So(w.Code, ShouldEqual, http.StatusOK)
		var info TaskInfo
		So(json.Unmarshal(w.Body.Bytes(), &info), ShouldBeNil)
		So(info.State, ShouldEqual, TaskSuccess)
		So(info.RuleSize, ShouldEqual, 8)
		So(strings.HasSuffix(info.ResultPath, started.TaskId+rds_config.ResultCsvSuffix), ShouldBeTrue)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mecr/"+started.TaskId+"/stop", nil))
		So(w.Code, ShouldEqual, http.StatusOK)
		So(task.Info().State, ShouldEqual, TaskSuccess)

		ClearTask(started.TaskId)
		_, err = GetTask(started.TaskId)
		So(errors.Is(err, utils.ErrTaskNotExist), ShouldBeTrue)
	})

	Convey("unknown task", t, func() {
		router := newRouter()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/mecr/none", nil))
		So(w.Code, ShouldEqual, http.StatusNotFound)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mecr/none/stop", nil))
		So(w.Code, ShouldEqual, http.StatusNotFound)
	})

	Convey("bad request body", t, func() {
		router := newRouter()
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/mecr", strings.NewReader(`{"labelColumn": "label"}`)))
		So(w.Code, ShouldEqual, http.StatusBadRequest)
	})
}

func TestTaskStop(t *testing.T) {
	Convey("stop cancels the task context", t, func() {
		task, ctx := NewTask(mine.Default())
		So(ctx.Err(), ShouldBeNil)
		task.Stop()
		So(ctx.Err(), ShouldNotBeNil)
		task.finish(nil, utils.ErrCancelled)
		So(task.Info().State, ShouldEqual, TaskFailed)
		So(task.Info().Error, ShouldContainSubstring, "cancelled")
		ClearTask(task.TaskId)
	})
}
