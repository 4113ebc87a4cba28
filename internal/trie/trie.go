// Package trie cài đặt prefix tree chịu lỗi chính tả cho tên đơn vị
// hành chính: key là tên đã chuẩn hóa (hoặc biến thể một-lỗi của nó),
// value là tên canonical có dấu, đúng hoa thường.
package trie

// node một node trong trie; mỗi node sở hữu map con theo rune kế tiếp.
// Insert chỉ tạo cạnh hướng từ root xuống lá nên không thể có cycle.
type node struct {
	children map[rune]*node

	// terminal đánh dấu một key kết thúc tại node này
	terminal bool

	// value tên canonical gắn với key; chỉ có nghĩa khi terminal
	value string

	// key chuỗi đầy đủ kết thúc tại node này (phục vụ debug/walk)
	key string
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie cây prefix build một lần rồi chỉ đọc. Sau khi build xong, Search
// không mutate gì nên nhiều goroutine dùng chung một Trie là an toàn.
type Trie struct {
	root *node
	size int
}

// New tạo Trie rỗng
func New() *Trie {
	return &Trie{root: newNode()}
}

// Insert thêm key vào trie với value canonical đi kèm.
//
// Collision policy: first-wins — nếu key đã có value thì giữ nguyên,
// không ghi đè. Tên canonical phải được insert trước mọi biến thể sinh
// tự động để chính tả đúng không bao giờ bị một biến thể của entry khác
// che mất. Trả về true nếu key được ghi mới.
func (t *Trie) Insert(key, value string) bool {
	n := t.root
	for _, r := range key {
		child, ok := n.children[r]
		if !ok {
			child = newNode()
			n.children[r] = child
		}
		n = child
	}
	if n.terminal {
		return false
	}
	n.terminal = true
	n.value = value
	n.key = key
	t.size++
	return true
}

// Search tìm key trong trie. Trả về value canonical và true nếu key tồn
// tại đúng như một key hoàn chỉnh; ("", false) nếu đi hụt cạnh hoặc node
// cuối không phải terminal.
func (t *Trie) Search(key string) (string, bool) {
	n := t.root
	for _, r := range key {
		child, ok := n.children[r]
		if !ok {
			return "", false
		}
		n = child
	}
	if !n.terminal {
		return "", false
	}
	return n.value, true
}

// StartsWith kiểm tra có key nào bắt đầu bằng prefix không
func (t *Trie) StartsWith(prefix string) bool {
	n := t.root
	for _, r := range prefix {
		child, ok := n.children[r]
		if !ok {
			return false
		}
		n = child
	}
	return true
}

// Len số key hoàn chỉnh đang có trong trie
func (t *Trie) Len() int {
	return t.size
}
