package mecr

import (
	"fmt"
	"os"
	"strings"

	"github.com/awalterschulze/gographviz"
	"rds-mecr/rock-share/base/logger"
)

// ToSimpleGraph 把最近一次Train得到的树输出成dot文件，调试用
func (t *Tree) ToSimpleGraph(outPath string) error {
	if t.root == nil {
		return fmt.Errorf("tree not trained")
	}
	graphAst, err := gographviz.Parse([]byte(`digraph G{}`))
	if err != nil {
		return err
	}
	graph := gographviz.NewGraph()
	if err := gographviz.Analyse(graphAst, graph); err != nil {
		return err
	}

	// 层序遍历分配结点id
	ids := map[*Node]int{t.root: 0}
	queue := []*Node{t.root}
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		id := ids[node]
		if err := graph.AddNode("G", fmt.Sprintf("%d", id), map[string]string{"label": t.nodeLabel(id, node)}); err != nil {
			return err
		}
		for _, child := range node.children {
			ids[child] = len(ids)
			if err := graph.AddEdge(fmt.Sprintf("%d", id), fmt.Sprintf("%d", ids[child]), true, nil); err != nil {
				return err
			}
			queue = append(queue, child)
		}
	}

	out, err := os.Create(outPath)
	if err != nil {
		logger.Errorf("error when open file:%s--%v", outPath, err)
		return err
	}
	defer out.Close()
	if _, err = out.WriteString(graph.String()); err != nil {
		logger.Errorf("error when write to file:%s--%v", outPath, err)
		return err
	}
	return nil
}

// dotEscaper 属性名和取值放进带引号的label前转义
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)

func (t *Tree) nodeLabel(id int, n *Node) string {
	var items []string
	for feature, v := range n.assignment {
		if !v.Assigned {
			continue
		}
		value, err := t.df.Decode(feature, v.Code)
		if err != nil {
			value = v.Code
		}
		items = append(items, dotEscaper.Replace(fmt.Sprintf("%s=%v", t.df.FeatureName(feature), value)))
	}
	return fmt.Sprintf("\"id = %d\\n%s\\nsamples = %d\\nvalue = %v\\nsupport = %.3f\\nconfidence = %.3f\"",
		id, strings.Join(items, ", "), n.size, n.counts, n.Support(), n.Confidence())
}
