package tree_test

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/tinyq/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build creates
//
//	1 ─┬─ 2 ─── 4
//	   └─ 3
func build() (*tree.Node[int], []*tree.Node[int]) {
	n := make([]*tree.Node[int], 5)
	for i := range n {
		n[i] = tree.NewNode(i)
	}
	n[1].AddChild(n[2]).AddChild(n[3])
	n[2].AddChild(n[4])
	return n[1], n
}

func TestTreeStructure(t *testing.T) {
	root, n := build()
	assert.Equal(t, 2, root.ChildCount())
	ch, ok := root.Child(1)
	require.True(t, ok)
	assert.Equal(t, 3, ch.Payload)
	_, ok = root.Child(2)
	assert.False(t, ok)
	assert.Equal(t, root, n[4].Parent().Parent())
	assert.Nil(t, root.Parent())
	assert.Equal(t, 1, root.IndexOfChild(n[3]))
	assert.Equal(t, -1, root.IndexOfChild(n[4]))
	root.InsertChildAt(0, n[4])
	assert.Equal(t, 0, root.IndexOfChild(n[4]))
	assert.Equal(t, 0, n[2].ChildCount(), "re-parenting isolates a node")
	n[3].Isolate()
	assert.Equal(t, 2, root.ChildCount())
	assert.Nil(t, n[3].Parent())
}

func TestWalks(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tinyq.tree")
	defer teardown()
	//
	root, n := build()
	var order []int
	err := root.TopDown(func(node *tree.Node[int]) error {
		order = append(order, node.Payload)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 4, 3}, order)
	order = nil
	_ = root.BottomUp(func(node *tree.Node[int]) error {
		order = append(order, node.Payload)
		return nil
	})
	assert.Equal(t, []int{4, 2, 3, 1}, order)
	order = nil
	_ = root.TopDown(func(node *tree.Node[int]) error {
		order = append(order, node.Payload)
		if node.Payload == 2 {
			return tree.ErrSkipChildren
		}
		return nil
	})
	assert.Equal(t, []int{1, 2, 3}, order)
	stop := errors.New("stop")
	err = root.TopDown(func(node *tree.Node[int]) error {
		if node.Payload == 4 {
			return stop
		}
		return nil
	})
	assert.ErrorIs(t, err, stop)
	//
	assert.Equal(t, root, n[4].AncestorWith(tree.Whatever[int]()).Parent())
	leaves := root.DescendentsWith(tree.NodeIsLeaf[int]())
	require.Len(t, leaves, 2)
	assert.Equal(t, 4, leaves[0].Payload)
	assert.Equal(t, 3, leaves[1].Payload)
}
