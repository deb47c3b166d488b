package orgchart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func abcdTree(t *testing.T) (*Tree, map[string]Data) {
	t.Helper()
	roster := abcdRoster()
	data := make(map[string]Data, len(roster))
	for _, d := range roster {
		data[d.UserID] = d.Data
	}
	return NewTree(zap.NewNop(), roster), data
}

func leaf(d Data) Herd {
	return Herd{Data: d, Children: []Herd{}}
}

func TestFullOrgchart(t *testing.T) {
	tree, data := abcdTree(t)

	chart, err := tree.FullOrgchart()
	require.NoError(t, err)

	expected := []Herd{
		{Data: data["uA"], Children: []Herd{
			{Data: data["uB"], Children: []Herd{leaf(data["uD"])}},
			leaf(data["uC"]),
		}},
	}
	assert.Equal(t, expected, chart)
}

func TestFullOrgchart_LeavesSerializeEmptyChildren(t *testing.T) {
	tree, _ := abcdTree(t)

	chart, err := tree.FullOrgchart()
	require.NoError(t, err)

	raw, err := json.Marshal(chart)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"children":[]`)
	assert.NotContains(t, string(raw), `"children":null`)
}

func TestFullOrgchart_MultipleRoots(t *testing.T) {
	roster := append(abcdRoster(), dino("uR", "77", "", "Rae", ""), dino("uS", "78", "77", "Sol", ""))
	tree := NewTree(zap.NewNop(), roster)

	chart, err := tree.FullOrgchart()
	require.NoError(t, err)
	require.Len(t, chart, 2)
	assert.Equal(t, "uA", chart[0].Data.UserID)
	assert.Equal(t, "uR", chart[1].Data.UserID)
	assert.Equal(t, "uS", chart[1].Children[0].Data.UserID)
	assert.Equal(t, tree.Len(), countHerd(chart))
}

func TestDirects(t *testing.T) {
	tree, data := abcdTree(t)

	directs, err := tree.Directs("uA")
	require.NoError(t, err)
	assert.Equal(t, []Data{data["uB"], data["uC"]}, directs)

	directs, err = tree.Directs("uC")
	require.NoError(t, err)
	assert.NotNil(t, directs)
	assert.Empty(t, directs)
}

func TestRelated(t *testing.T) {
	tree, data := abcdTree(t)

	related, err := tree.Related("uD")
	require.NoError(t, err)
	require.NotNil(t, related.Manager)
	assert.Equal(t, data["uB"], *related.Manager)
	assert.Empty(t, related.Directs)

	related, err = tree.Related("uB")
	require.NoError(t, err)
	assert.Equal(t, data["uA"], *related.Manager)
	assert.Equal(t, []Data{data["uD"]}, related.Directs)

	related, err = tree.Related("uA")
	require.NoError(t, err)
	assert.Nil(t, related.Manager)
	assert.Equal(t, []Data{data["uB"], data["uC"]}, related.Directs)

	raw, err := json.Marshal(Related{Directs: []Data{}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"manager":null,"directs":[]}`, string(raw))
}

func TestTrace(t *testing.T) {
	tree, _ := abcdTree(t)

	cases := map[string]string{
		"uA": "0",
		"uB": "0-0",
		"uC": "0-1",
		"uD": "0-0-0",
	}
	for userID, want := range cases {
		got, err := tree.Trace(userID)
		require.NoError(t, err, userID)
		assert.Equal(t, TraceResult{Trace: want}, got, userID)
	}
}

func TestTrace_RoundTrip(t *testing.T) {
	var roster []Dino
	for i := 0; i < 40; i++ {
		manager := ""
		switch {
		case i >= 3 && i%9 == 0:
			manager = "outside"
		case i >= 3:
			manager = strconv.Itoa(i / 3)
		}
		roster = append(roster, dino(fmt.Sprintf("u%02d", i), strconv.Itoa(i), manager, fmt.Sprintf("N%02d", (i*17)%40), ""))
	}
	tree := NewTree(zap.NewNop(), roster)
	require.Equal(t, len(roster), tree.Len())

	for _, d := range roster {
		res, err := tree.Trace(d.UserID)
		require.NoError(t, err)
		assert.Equal(t, d.UserID, decodeTrace(t, tree, res.Trace), res.Trace)
	}
}

// decodeTrace 從 root 依序索引到子節點區塊，還原出節點
func decodeTrace(t *testing.T, tree *Tree, trace string) string {
	t.Helper()
	parts := strings.Split(trace, "-")
	offset, err := strconv.Atoi(parts[0])
	require.NoError(t, err)
	require.Less(t, offset, tree.Roots())
	current := offset
	for _, p := range parts[1:] {
		offset, err := strconv.Atoi(p)
		require.NoError(t, err)
		node, _ := tree.Node(current)
		require.Less(t, offset, node.NumChildren)
		current = node.FirstChild + offset
	}
	node, _ := tree.Node(current)
	return node.Dino.UserID
}

func TestExpanded_Leaf(t *testing.T) {
	tree, data := abcdTree(t)

	expanded, err := tree.Expanded("uD")
	require.NoError(t, err)

	expected := []Herd{
		{Data: data["uA"], Children: []Herd{
			{Data: data["uB"], Children: []Herd{leaf(data["uD"])}},
			leaf(data["uC"]),
		}},
	}
	assert.Equal(t, expected, expanded)
}

func TestExpanded_CarriesRealChildren(t *testing.T) {
	tree, data := abcdTree(t)

	expanded, err := tree.Expanded("uB")
	require.NoError(t, err)

	expected := []Herd{
		{Data: data["uA"], Children: []Herd{
			{Data: data["uB"], Children: []Herd{leaf(data["uD"])}},
			leaf(data["uC"]),
		}},
	}
	assert.Equal(t, expected, expanded)
}

func TestExpanded_SiblingsStayCollapsed(t *testing.T) {
	// C 有自己的部屬 E，但查詢 D 時 C 只以葉節點呈現
	roster := append(abcdRoster(), dino("uE", "5", "3", "E", ""))
	tree := NewTree(zap.NewNop(), roster)

	expanded, err := tree.Expanded("uD")
	require.NoError(t, err)
	require.Len(t, expanded, 1)
	row := expanded[0].Children
	require.Len(t, row, 2)
	assert.Equal(t, "uC", row[1].Data.UserID)
	assert.Empty(t, row[1].Children)
}

func TestExpanded_Root(t *testing.T) {
	roster := append(abcdRoster(), dino("uR", "77", "", "Rae", ""))
	tree := NewTree(zap.NewNop(), roster)

	expanded, err := tree.Expanded("uR")
	require.NoError(t, err)
	require.Len(t, expanded, 2)
	assert.Equal(t, "uA", expanded[0].Data.UserID)
	assert.Empty(t, expanded[0].Children)
	assert.Equal(t, "uR", expanded[1].Data.UserID)
	assert.Empty(t, expanded[1].Children)

	expanded, err = tree.Expanded("uA")
	require.NoError(t, err)
	assert.Len(t, expanded[0].Children, 2)
}

func TestUnknownUser(t *testing.T) {
	tree, _ := abcdTree(t)
	const id = "ghost"

	_, err := tree.Related(id)
	assertUnknown(t, err, id)
	_, err = tree.Directs(id)
	assertUnknown(t, err, id)
	_, err = tree.Expanded(id)
	assertUnknown(t, err, id)
	_, err = tree.Trace(id)
	assertUnknown(t, err, id)
}

func assertUnknown(t *testing.T, err error, id string) {
	t.Helper()
	var unknown *UnknownUserError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, id, unknown.UserID)

	raw, marshalErr := json.Marshal(NewErrorResult(err))
	require.NoError(t, marshalErr)
	assert.JSONEq(t, `{"error":"unknown userid: `+id+`"}`, string(raw))
}

// 子節點區塊不可能從索引 0 開始（0 永遠是 root），所以以 NumChildren 判斷是否有子節點
func TestChildBlocksNeverStartAtZero(t *testing.T) {
	tree, _ := abcdTree(t)
	for i := 0; i < tree.Len(); i++ {
		node, _ := tree.Node(i)
		if node.NumChildren > 0 {
			assert.Greater(t, node.FirstChild, i)
			assert.GreaterOrEqual(t, node.FirstChild, tree.Roots())
		} else {
			assert.Equal(t, -1, node.FirstChild)
		}
	}
}

func TestWalkGuards_ReportCycle(t *testing.T) {
	tree, _ := abcdTree(t)
	// 人為破壞結構：A 的父節點指向 D，形成環
	tree.nodes[0].Parent = 3

	_, err := tree.Trace("uD")
	assert.ErrorIs(t, err, ErrCycle)
	_, err = tree.Expanded("uD")
	assert.ErrorIs(t, err, ErrCycle)

	tree, _ = abcdTree(t)
	// D 的子節點區塊指回 B
	tree.nodes[3].FirstChild = 1
	tree.nodes[3].NumChildren = 1
	_, err = tree.FullOrgchart()
	assert.ErrorIs(t, err, ErrCycle)
}

func TestConcurrentQueries(t *testing.T) {
	tree, _ := abcdTree(t)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, id := range []string{"uA", "uB", "uC", "uD"} {
				_, err := tree.Expanded(id)
				assert.NoError(t, err)
				_, err = tree.Trace(id)
				assert.NoError(t, err)
			}
			_, err := tree.FullOrgchart()
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
}
