package board

import (
	"github.com/remi-game/remi/internal/game/card"
)

// MoveWithin 把行内 from 槽位的元素（含空槽）取出并重新插入 to 槽位，
// 中间元素顺移，其余元素保持相对顺序。下标越界时原样返回（调用方自行
// 负责边界检查，引擎静默放过）。
func MoveWithin(r Row, from, to int) Row {
	if from < 0 || from >= len(r) || to < 0 || to >= len(r) || from == to {
		return r
	}

	out := r.Clone()
	el := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append(Row{el}, out[to:]...)...)
	return out
}

// MoveBetween 把 from 行 fromIdx 槽位的牌移动到 to 行 toIdx 槽位。
// 取出后 from 行尾部补一个空槽恢复 22 长度；to 行先插入（临时 23 长度），
// 再移除恰好一个空槽恢复 22：优先移除行内最后一个空槽，没有空槽则截掉
// 末尾元素。被移除的空槽不一定是插入制造的那个，可能吞掉行内其他位置
// 已有的空隙——这是既定行为，依赖方按此对齐，不要改成向左压缩。
func MoveBetween(from, to Row, fromIdx, toIdx int) (Row, Row) {
	if fromIdx < 0 || fromIdx >= len(from) || toIdx < 0 || toIdx > len(to) {
		return from, to
	}

	newFrom, c := RemoveAt(from, fromIdx)
	if c == nil {
		return from, to
	}

	newTo := to.Clone()
	newTo = append(newTo[:toIdx], append(Row{c}, newTo[toIdx:]...)...)
	if i := newTo.lastEmpty(); i >= 0 {
		newTo = append(newTo[:i], newTo[i+1:]...)
	} else {
		newTo = newTo[:len(newTo)-1]
	}
	return newFrom, newTo
}

// RemoveAt 取出 i 槽位的牌并在行尾补一个空槽，长度保持 22。
// 槽位为空或越界时返回原行和 nil。
func RemoveAt(r Row, i int) (Row, *card.Card) {
	if i < 0 || i >= len(r) || r[i] == nil {
		return r, nil
	}
	c := r[i]
	out := r.Clone()
	out = append(out[:i], out[i+1:]...)
	out = append(out, nil)
	return out, c
}

// InsertAt 在 i 槽位插入一张牌并截掉行尾元素，长度保持 22。
// RemoveAt 的逆操作，用于撤销弃牌时按原位还原。
func InsertAt(r Row, i int, c *card.Card) Row {
	if c == nil || i < 0 || i >= len(r) {
		return r
	}
	out := r.Clone()
	out = append(out[:i], append(Row{c}, out[i:]...)...)
	return out[:len(out)-1]
}
