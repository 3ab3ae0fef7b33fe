package board

import (
	"github.com/remi-game/remi/internal/game/card"
)

// RowSize 每行固定的槽位数
const RowSize = 22

// Row 固定长度的牌槽序列，nil 表示空槽。
// 槽位位置承载玩家自己的分组含义，所有操作都必须保持
// 未触碰牌的相对顺序，不得私自压缩中间的空槽。
// 所有操作都返回新切片，不修改输入（快照整体替换的前提）。
type Row []*card.Card

// New 创建空行
func New() Row {
	return make(Row, RowSize)
}

// Clone 复制一行（牌本身不可变，浅拷贝指针即可）
func (r Row) Clone() Row {
	out := make(Row, len(r))
	copy(out, r)
	return out
}

// CardCount 行内非空槽数量
func (r Row) CardCount() int {
	n := 0
	for _, c := range r {
		if c != nil {
			n++
		}
	}
	return n
}

// FirstEmpty 第一个空槽下标，没有空槽返回 -1
func (r Row) FirstEmpty() int {
	for i, c := range r {
		if c == nil {
			return i
		}
	}
	return -1
}

// lastEmpty 最后一个空槽下标，没有空槽返回 -1
func (r Row) lastEmpty() int {
	for i := len(r) - 1; i >= 0; i-- {
		if r[i] == nil {
			return i
		}
	}
	return -1
}
