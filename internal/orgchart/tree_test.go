package orgchart

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

func strPtr(s string) *string { return &s }

func dino(userID, employeeID, managerID, first, last string) Dino {
	d := Dino{
		UserID:     userID,
		EmployeeID: employeeID,
		ManagerID:  managerID,
		Data: Data{
			UserID:    userID,
			FirstName: first,
			Picture:   "https://pics.example.com/" + userID,
		},
	}
	if last != "" {
		d.Data.LastName = strPtr(last)
	}
	return d
}

// A(root) -> B, C ; B -> D
func abcdRoster() []Dino {
	return []Dino{
		dino("uD", "4", "2", "D", "Dee"),
		dino("uC", "3", "1", "C", "Cee"),
		dino("uA", "1", "", "A", "Aye"),
		dino("uB", "2", "1", "B", "Bee"),
	}
}

func userIDs(tree *Tree) []string {
	ids := make([]string, 0, tree.Len())
	for i := 0; i < tree.Len(); i++ {
		node, _ := tree.Node(i)
		ids = append(ids, node.Dino.UserID)
	}
	return ids
}

func TestNewTree_BreadthFirstLayout(t *testing.T) {
	tree := NewTree(zaptest.NewLogger(t), abcdRoster())

	require.Equal(t, 4, tree.Len())
	assert.Equal(t, []string{"uA", "uB", "uC", "uD"}, userIDs(tree))
	assert.Equal(t, 1, tree.Roots())

	a, _ := tree.Node(0)
	assert.Equal(t, -1, a.Parent)
	assert.Equal(t, 1, a.FirstChild)
	assert.Equal(t, 2, a.NumChildren)

	b, _ := tree.Node(1)
	assert.Equal(t, 0, b.Parent)
	assert.Equal(t, 3, b.FirstChild)
	assert.Equal(t, 1, b.NumChildren)

	c, _ := tree.Node(2)
	assert.Equal(t, -1, c.FirstChild)
	assert.Equal(t, 0, c.NumChildren)

	d, _ := tree.Node(3)
	assert.Equal(t, 1, d.Parent)
}

func TestNewTree_IDMapIsBijective(t *testing.T) {
	tree := NewTree(zap.NewNop(), abcdRoster())

	seen := map[int]string{}
	for _, d := range abcdRoster() {
		i, ok := tree.IndexOf(d.UserID)
		require.True(t, ok, d.UserID)
		node, ok := tree.Node(i)
		require.True(t, ok)
		assert.Equal(t, d.UserID, node.Dino.UserID)
		_, dup := seen[i]
		assert.False(t, dup, "index %d mapped twice", i)
		seen[i] = d.UserID
	}
	assert.Len(t, seen, tree.Len())
}

func TestNewTree_RootsSortedByName(t *testing.T) {
	roster := []Dino{
		dino("u3", "30", "", "Zed", ""),
		dino("u1", "10", "", "Amy", "Zulu"),
		dino("u2", "20", "999", "Amy", "Alpha"), // 主管不在名冊內 -> root
	}
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, 3, tree.Roots())
	assert.Equal(t, []string{"u2", "u1", "u3"}, userIDs(tree))
}

func TestNewTree_StableOnNameTies(t *testing.T) {
	roster := []Dino{
		dino("boss", "1", "", "Boss", ""),
		dino("twin-b", "3", "1", "Sam", "Same"),
		dino("twin-a", "2", "1", "Sam", "Same"),
	}
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, []string{"boss", "twin-b", "twin-a"}, userIDs(tree))
}

func TestNewTree_NilLastNameSortsFirst(t *testing.T) {
	roster := []Dino{
		dino("boss", "1", "", "Boss", ""),
		dino("with", "3", "1", "Kim", "Able"),
		dino("without", "2", "1", "Kim", ""),
	}
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, []string{"boss", "without", "with"}, userIDs(tree))
}

func TestNewTree_OrphansExcluded(t *testing.T) {
	roster := append(abcdRoster(),
		// X 與 Y 互為主管：兩人的主管都在名冊內，但不會從任何 root 抵達
		dino("uX", "8", "9", "X", ""),
		dino("uY", "9", "8", "Y", ""),
		// Z 回報給 X，同樣無法抵達
		dino("uZ", "10", "8", "Z", ""),
	)
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, 4, tree.Len())
	for _, id := range []string{"uX", "uY", "uZ"} {
		_, ok := tree.IndexOf(id)
		assert.False(t, ok, id)
	}
	stats := tree.Stats()
	assert.Equal(t, Stats{RosterSize: 7, Nodes: 4, Roots: 1, Excluded: 3}, stats)

	chart, err := tree.FullOrgchart()
	require.NoError(t, err)
	assert.Equal(t, 4, countHerd(chart))
}

func TestNewTree_SelfManagedRecordExcluded(t *testing.T) {
	roster := []Dino{
		dino("uA", "1", "", "A", ""),
		dino("uS", "5", "5", "S", ""),
	}
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, []string{"uA"}, userIDs(tree))
}

func TestNewTree_EmptyRoster(t *testing.T) {
	tree := NewTree(nil, nil)

	assert.Equal(t, 0, tree.Len())
	chart, err := tree.FullOrgchart()
	require.NoError(t, err)
	assert.Empty(t, chart)

	_, err = tree.Directs("anyone")
	assert.EqualError(t, err, "unknown userid: anyone")
}

func TestNewTree_DuplicateEmployeeIDTerminates(t *testing.T) {
	// 兩筆資料共用 employeeId=1，且 Y 回報給 1：逐一掃描的寫法會無限展開
	roster := []Dino{
		dino("uX", "1", "", "X", ""),
		dino("uY", "1", "1", "Y", ""),
	}
	tree := NewTree(zaptest.NewLogger(t), roster)

	assert.Equal(t, []string{"uX", "uY"}, userIDs(tree))
	y, _ := tree.Node(1)
	assert.Equal(t, 0, y.Parent)
}

func TestNewTree_EmptyEmployeeIDHasNoChildren(t *testing.T) {
	roster := []Dino{
		dino("uA", "", "", "A", ""),
		dino("uB", "", "", "B", ""),
	}
	tree := NewTree(zap.NewNop(), roster)

	assert.Equal(t, 2, tree.Roots())
	assert.Equal(t, 2, tree.Len())
}

// 與逐一掃描整份名冊的寫法逐項比對
func TestNewTree_MatchesNaiveScan(t *testing.T) {
	var roster []Dino
	names := []string{"Mia", "Ana", "Leo", "Ana", "Bo", "Kai", "Eve", "Zoe"}
	for i := 0; i < 60; i++ {
		manager := ""
		if i > 2 {
			manager = fmt.Sprint(i/2 - i%3)
		}
		if i%13 == 0 && i > 0 {
			manager = "missing-" + fmt.Sprint(i)
		}
		roster = append(roster, dino(fmt.Sprintf("u%d", i), fmt.Sprint(i), manager, names[i%len(names)], names[(i/3)%len(names)]))
	}
	roster = append(roster,
		dino("c1", "c1", "c2", "Cy", ""),
		dino("c2", "c2", "c1", "Cy", ""),
	)

	tree := NewTree(zap.NewNop(), roster)
	assert.Equal(t, naiveOrder(roster), userIDs(tree))
	assert.Equal(t, 2, tree.Stats().Excluded)
}

func naiveOrder(roster []Dino) []string {
	ids := map[string]bool{}
	for _, d := range roster {
		ids[d.EmployeeID] = true
	}
	sortStable := func(in []Dino) {
		for i := 1; i < len(in); i++ {
			for j := i; j > 0 && compareDinos(&in[j], &in[j-1]) < 0; j-- {
				in[j], in[j-1] = in[j-1], in[j]
			}
		}
	}
	var seq []Dino
	for _, d := range roster {
		if d.ManagerID == "" || !ids[d.ManagerID] {
			seq = append(seq, d)
		}
	}
	sortStable(seq)
	for cursor := 0; cursor < len(seq); cursor++ {
		var directs []Dino
		for _, d := range roster {
			if d.ManagerID == seq[cursor].EmployeeID {
				directs = append(directs, d)
			}
		}
		sortStable(directs)
		seq = append(seq, directs...)
	}
	out := make([]string, len(seq))
	for i, d := range seq {
		out[i] = d.UserID
	}
	return out
}

func countHerd(herds []Herd) int {
	n := 0
	for _, h := range herds {
		n += 1 + countHerd(h.Children)
	}
	return n
}
