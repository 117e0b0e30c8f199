package utils

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
)

type fakeKeys map[ebiten.Key]bool

func (f fakeKeys) IsKeyPressed(k ebiten.Key) bool     { return f[k] }
func (f fakeKeys) IsKeyJustPressed(k ebiten.Key) bool { return f[k] }

func TestDefaultKeyBindings(t *testing.T) {
	b := DefaultKeyBindings()
	keys := fakeKeys{ebiten.KeyArrowUp: true, ebiten.KeyShiftRight: true}

	assert.True(t, AnyPressed(keys, b.Forward))
	assert.True(t, AnyPressed(keys, b.Run))
	assert.False(t, AnyPressed(keys, b.Backward))
	assert.False(t, AnyJustPressed(keys, b.Jump))
	assert.False(t, AnyPressed(keys, nil))
}

func TestDragManager_Lifecycle(t *testing.T) {
	dm := NewDragManager()

	dm.Update(false, 0, 0)
	assert.Equal(t, DragStateNone, dm.GetState())

	dm.Update(true, 10, 20)
	assert.Equal(t, DragStateStarted, dm.GetState())
	dx, dy := dm.GetFrameDelta()
	assert.Equal(t, [2]int{0, 0}, [2]int{dx, dy})

	dm.Update(true, 15, 18)
	assert.Equal(t, DragStateDragging, dm.GetState())
	dx, dy = dm.GetFrameDelta()
	assert.Equal(t, [2]int{5, -2}, [2]int{dx, dy})

	dm.Update(true, 25, 18)
	dx, dy = dm.GetFrameDelta()
	assert.Equal(t, [2]int{10, 0}, [2]int{dx, dy})

	dm.Update(false, 25, 18)
	assert.Equal(t, DragStateEnded, dm.GetState())
	dx, dy = dm.GetFrameDelta()
	assert.Equal(t, [2]int{0, 0}, [2]int{dx, dy})

	dm.Update(false, 0, 0)
	assert.Equal(t, DragStateNone, dm.GetState())
}

func TestDragManager_RestartAfterEnd(t *testing.T) {
	dm := NewDragManager()
	dm.Update(true, 1, 1)
	dm.Update(false, 1, 1)
	dm.Update(true, 7, 7)
	assert.Equal(t, DragStateStarted, dm.GetState())

	// 新一轮拖拽从按下位置开始计算增量
	dm.Update(true, 9, 4)
	dx, dy := dm.GetFrameDelta()
	assert.Equal(t, [2]int{2, -3}, [2]int{dx, dy})
}
