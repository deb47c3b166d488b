package orgchart

import (
	"errors"
	"strconv"
	"strings"
)

// ErrCycle is reported when a walk over the tree visits the same index twice.
// It cannot happen for a tree built by NewTree.
var ErrCycle = errors.New("orgchart: cycle detected while walking tree")

// UnknownUserError 查無 userId
type UnknownUserError struct {
	UserID string
}

func (e *UnknownUserError) Error() string {
	return "unknown userid: " + e.UserID
}

// ErrorResult 是查詢失敗時可直接序列化的結果
type ErrorResult struct {
	Error string `json:"error"`
}

func NewErrorResult(err error) ErrorResult {
	return ErrorResult{Error: err.Error()}
}

// Herd is one subtree of the chart: a node's data and its rendered children.
type Herd struct {
	Data     Data   `json:"data"`
	Children []Herd `json:"children"`
}

// Related 主管與直屬部屬
type Related struct {
	Manager *Data  `json:"manager"`
	Directs []Data `json:"directs"`
}

// TraceResult 從 root 到節點的位置路徑，例如 "0-2-1"
type TraceResult struct {
	Trace string `json:"trace"`
}

func (t *Tree) resolve(userID string) (int, error) {
	i, ok := t.IndexOf(userID)
	if !ok {
		return -1, &UnknownUserError{UserID: userID}
	}
	return i, nil
}

// FullOrgchart renders every root with its complete subtree.
func (t *Tree) FullOrgchart() ([]Herd, error) {
	full := make([]Herd, 0, t.roots)
	visited := make([]bool, len(t.nodes))
	// roots 連續排在最前面，遇到第一個非 root 即停止
	for i := 0; i < len(t.nodes) && t.nodes[i].Parent < 0; i++ {
		herd, err := t.findHerd(i, visited)
		if err != nil {
			return nil, err
		}
		full = append(full, herd)
	}
	return full, nil
}

func (t *Tree) findHerd(i int, visited []bool) (Herd, error) {
	if visited[i] {
		return Herd{}, ErrCycle
	}
	visited[i] = true

	node := &t.nodes[i]
	children := make([]Herd, 0, node.NumChildren)
	if node.NumChildren > 0 {
		for c := node.FirstChild; c < node.FirstChild+node.NumChildren; c++ {
			if t.badIndex(c) {
				return Herd{}, ErrCycle
			}
			child, err := t.findHerd(c, visited)
			if err != nil {
				return Herd{}, err
			}
			children = append(children, child)
		}
	}
	return Herd{Data: node.Dino.Data, Children: children}, nil
}

// Related 回傳主管（root 為 nil）與依名字排序的直屬部屬
func (t *Tree) Related(userID string) (Related, error) {
	i, err := t.resolve(userID)
	if err != nil {
		return Related{}, err
	}
	node := &t.nodes[i]
	var manager *Data
	if !t.badIndex(node.Parent) {
		data := t.nodes[node.Parent].Dino.Data
		manager = &data
	}
	return Related{Manager: manager, Directs: t.directsData(i)}, nil
}

// Directs 回傳直屬部屬資料；沒有時為空陣列
func (t *Tree) Directs(userID string) ([]Data, error) {
	i, err := t.resolve(userID)
	if err != nil {
		return nil, err
	}
	return t.directsData(i), nil
}

func (t *Tree) directsData(i int) []Data {
	node := &t.nodes[i]
	directs := make([]Data, 0, node.NumChildren)
	if node.NumChildren > 0 {
		for _, child := range t.nodes[node.FirstChild : node.FirstChild+node.NumChildren] {
			directs = append(directs, child.Dino.Data)
		}
	}
	return directs
}

// Expanded renders the breadcrumb view for userID: the queried node carries
// its direct reports, and every level up to the roots lists all siblings with
// only the path member nested.
func (t *Tree) Expanded(userID string) ([]Herd, error) {
	i, err := t.resolve(userID)
	if err != nil {
		return nil, err
	}

	children := make([]Herd, 0, t.nodes[i].NumChildren)
	for _, data := range t.directsData(i) {
		children = append(children, Herd{Data: data, Children: []Herd{}})
	}

	visited := make(map[int]struct{})
	for {
		if _, seen := visited[i]; seen {
			return nil, ErrCycle
		}
		visited[i] = struct{}{}

		row := t.withSiblings(i, children)
		parent := t.nodes[i].Parent
		if t.badIndex(parent) {
			return row, nil
		}
		children = row
		i = parent
	}
}

// withSiblings 展開 i 所在的兄弟列，只有 i 帶 children，其餘為葉節點
func (t *Tree) withSiblings(i int, children []Herd) []Herd {
	start, end := t.siblingRange(i)
	row := make([]Herd, 0, end-start)
	for s := start; s < end; s++ {
		if s == i {
			row = append(row, Herd{Data: t.nodes[s].Dino.Data, Children: children})
			continue
		}
		row = append(row, Herd{Data: t.nodes[s].Dino.Data, Children: []Herd{}})
	}
	return row
}

func (t *Tree) siblingRange(i int) (int, int) {
	parent := t.nodes[i].Parent
	if t.badIndex(parent) {
		return 0, t.roots
	}
	first := t.nodes[parent].FirstChild
	return first, first + t.nodes[parent].NumChildren
}

// Trace encodes the path from a root to userID as hyphen-joined sibling
// offsets, root level first.
func (t *Tree) Trace(userID string) (TraceResult, error) {
	i, err := t.resolve(userID)
	if err != nil {
		return TraceResult{}, err
	}

	var offsets []int
	visited := make(map[int]struct{})
	for {
		if _, seen := visited[i]; seen {
			return TraceResult{}, ErrCycle
		}
		visited[i] = struct{}{}

		parent := t.nodes[i].Parent
		if t.badIndex(parent) {
			// root 層：索引本身就是在 roots 中的位置
			offsets = append(offsets, i)
			break
		}
		offsets = append(offsets, i-t.nodes[parent].FirstChild)
		i = parent
	}

	parts := make([]string, len(offsets))
	for k, offset := range offsets {
		parts[len(offsets)-1-k] = strconv.Itoa(offset)
	}
	return TraceResult{Trace: strings.Join(parts, "-")}, nil
}
