package orgchart

import (
	"slices"

	"go.uber.org/zap"
)

// Node 是扁平樹中的一個節點；所有關係都是 nodes 內的索引
type Node struct {
	Parent      int // root 為 -1
	FirstChild  int // 無子節點時為 -1
	NumChildren int
	Dino        Dino
}

// Tree is the immutable flattened org chart. Nodes are laid out breadth
// first: roots occupy 0..roots-1 and the children of every node form one
// contiguous block appended after it. A Tree is safe for concurrent reads.
type Tree struct {
	nodes      []Node
	idToIndex  map[string]int
	roots      int
	rosterSize int
}

// NewTree builds the flat tree from the complete roster.
//
// A record is a root when its manager id is empty or does not belong to any
// employee in the roster. Records whose manager exists but is never reached
// from a root are left out without error.
func NewTree(logger *zap.Logger, dinos []Dino) *Tree {
	if logger == nil {
		logger = zap.NewNop()
	}
	tree := &Tree{
		nodes:      make([]Node, 0, len(dinos)),
		idToIndex:  make(map[string]int, len(dinos)),
		rosterSize: len(dinos),
	}

	// 1) employeeId 集合與 managerId -> roster 位置索引（保持 roster 原始順序）
	employeeIDs := make(map[string]struct{}, len(dinos))
	for i := range dinos {
		if dinos[i].EmployeeID != "" {
			employeeIDs[dinos[i].EmployeeID] = struct{}{}
		}
	}
	directsByManager := make(map[string][]int, len(dinos))
	var roots []int
	for i := range dinos {
		managerID := dinos[i].ManagerID
		if _, known := employeeIDs[managerID]; managerID == "" || !known {
			roots = append(roots, i)
			continue
		}
		directsByManager[managerID] = append(directsByManager[managerID], i)
	}

	placed := make([]bool, len(dinos))

	// 2) roots 佔用 0..R-1
	tree.appendBlock(logger, dinos, roots, -1, placed)
	tree.roots = len(tree.nodes)
	logger.Info("orgchart roots placed", zap.Int("roots", tree.roots))

	// 3) 以遞增游標展開，直到游標追上序列尾端
	for cursor := 0; cursor < len(tree.nodes); cursor++ {
		employeeID := tree.nodes[cursor].Dino.EmployeeID
		if employeeID == "" {
			continue
		}
		first, count := tree.appendBlock(logger, dinos, directsByManager[employeeID], cursor, placed)
		if count > 0 {
			tree.nodes[cursor].FirstChild = first
			tree.nodes[cursor].NumChildren = count
		}
	}

	if excluded := tree.rosterSize - len(tree.nodes); excluded > 0 {
		logger.Info("orgchart excluded unreachable records",
			zap.Int("excluded", excluded),
			zap.Int("roster", tree.rosterSize),
		)
	}
	return tree
}

// appendBlock 將 positions 依名字排序後接到序列尾端，回傳區塊起點與數量
func (t *Tree) appendBlock(logger *zap.Logger, dinos []Dino, positions []int, parent int, placed []bool) (int, int) {
	block := slices.Clone(positions)
	slices.SortStableFunc(block, func(a, b int) int {
		return compareDinos(&dinos[a], &dinos[b])
	})

	first := len(t.nodes)
	for _, pos := range block {
		if placed[pos] {
			// 重複的 employeeId 會讓同一筆資料被展開兩次
			logger.Warn("orgchart record reached twice, skipping",
				zap.String("userId", dinos[pos].UserID),
				zap.String("employeeId", dinos[pos].EmployeeID),
			)
			continue
		}
		placed[pos] = true
		if prev, dup := t.idToIndex[dinos[pos].UserID]; dup {
			logger.Warn("orgchart duplicate userId",
				zap.String("userId", dinos[pos].UserID),
				zap.Int("previousIndex", prev),
			)
		}
		t.idToIndex[dinos[pos].UserID] = len(t.nodes)
		t.nodes = append(t.nodes, Node{
			Parent:     parent,
			FirstChild: -1,
			Dino:       dinos[pos],
		})
	}
	return first, len(t.nodes) - first
}

// Len 回傳節點總數
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Roots 回傳 root 數量
func (t *Tree) Roots() int {
	return t.roots
}

// Node returns a copy of the node at index i.
func (t *Tree) Node(i int) (Node, bool) {
	if t.badIndex(i) {
		return Node{}, false
	}
	return t.nodes[i], true
}

// IndexOf 查詢 userId 對應的索引
func (t *Tree) IndexOf(userID string) (int, bool) {
	i, ok := t.idToIndex[userID]
	if !ok || t.badIndex(i) {
		return -1, false
	}
	return i, true
}

func (t *Tree) badIndex(i int) bool {
	return i < 0 || i >= len(t.nodes)
}

// Stats 建樹結果摘要
type Stats struct {
	RosterSize int `json:"rosterSize"`
	Nodes      int `json:"nodes"`
	Roots      int `json:"roots"`
	Excluded   int `json:"excluded"`
}

func (t *Tree) Stats() Stats {
	return Stats{
		RosterSize: t.rosterSize,
		Nodes:      len(t.nodes),
		Roots:      t.roots,
		Excluded:   t.rosterSize - len(t.nodes),
	}
}
