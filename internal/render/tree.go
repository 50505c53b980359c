package render

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/cleo-engine/cleo/internal/graph"
	"github.com/cleo-engine/cleo/internal/model"
)

// BuildTaskTree renders idx's hierarchy rooted at every task with no
// parent, the shape `list --tree` prints.
func BuildTaskTree(idx *graph.Index, roots []*model.Task) *tree.Tree {
	t := tree.New().Root("tasks")
	t.EnumeratorStyle(lipgloss.NewStyle().Foreground(ColorAccent))
	for _, root := range roots {
		t.Child(buildTaskNode(idx, root))
	}
	return t
}

func buildTaskNode(idx *graph.Index, task *model.Task) *tree.Tree {
	label := fmt.Sprintf("%s %s [%s]", task.ID, task.Title, task.Status)
	node := tree.New().Root(newStyledLine(StatusColor(string(task.Status)), label))
	for _, child := range idx.Children(task.ID) {
		node.Child(buildTaskNode(idx, child))
	}
	return node
}

// RenderTaskTree is the string form BuildTaskTree's caller writes to stdout.
func RenderTaskTree(idx *graph.Index, roots []*model.Task) string {
	t := BuildTaskTree(idx, roots)
	return t.String()
}
