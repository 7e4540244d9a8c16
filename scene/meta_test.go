package scene

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViewportMoveStaysInSafeAreas(t *testing.T) {
	speeds := CameraSpeeds{Up: 10, Down: 20, Left: 30, Right: 40}
	areas := []SafeArea{
		{MinX: 0, MinY: 0, MaxX: 100, MaxY: 50},
		{MinX: 200, MinY: 0, MaxX: 300, MaxY: 50},
	}

	v := NewViewport()
	require.True(t, v.Move(1, 1, 0.5, speeds, areas))
	assert.Equal(t, 20.0, v.X)
	assert.Equal(t, 10.0, v.Y)

	require.True(t, v.Move(0, -1, 1, speeds, areas))
	assert.Equal(t, 0.0, v.Y, "the boundary is inside")

	assert.False(t, v.Move(0, -1, 1, speeds, areas))
	assert.Equal(t, 0.0, v.Y)

	v.X = 100
	assert.False(t, v.Move(1, 0, 1, speeds, areas), "the gap between areas is not crossable")
	v.X = 190
	assert.True(t, v.Move(1, 0, 0.25, speeds, areas))
	assert.Equal(t, 200.0, v.X)

	free := NewViewport()
	assert.False(t, free.Move(1, 0, 1, speeds, nil))
}

func TestMetaCellAt(t *testing.T) {
	m := DefaultMeta()
	m.OffsetX, m.OffsetY = 8, 4

	row, col, ok := m.CellAt(8+32*3+1, 4+32*2, 10, 10)
	require.True(t, ok)
	assert.Equal(t, 2, row)
	assert.Equal(t, 3, col)

	_, _, ok = m.CellAt(7, 10, 10, 10)
	assert.False(t, ok)
	_, _, ok = m.CellAt(8+32*10, 10, 10, 10)
	assert.False(t, ok)

	m.GridPixelWidth = 0
	_, _, ok = m.CellAt(20, 20, 10, 10)
	assert.False(t, ok)
}

func TestSafeAreaEditing(t *testing.T) {
	m := DefaultMeta()
	m.AddSafeArea()
	m.AddSafeArea()
	m.SafeAreas[1].MaxX = 5
	require.True(t, m.RemoveSafeArea(0))
	assert.False(t, m.RemoveSafeArea(1))
	require.Len(t, m.SafeAreas, 1)
	assert.Equal(t, 5.0, m.SafeAreas[0].MaxX)
}

func TestPrepActionWireFormat(t *testing.T) {
	actions := PrepActions{
		{Kind: PrepLog, Msg: "start"},
		{Kind: PrepKeyDown, Key: "W"},
		{Kind: PrepKeyUp, Key: "W"},
		NewPrepAction(PrepWait),
		NewPrepAction(PrepKeyUpAll),
	}
	data, err := json.Marshal(actions)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"Log":{"msg":"start"}},
		{"KeyDown":{"key":"W"}},
		{"KeyUp":{"key":"W"}},
		{"Wait":{"ms":100}},
		"KeyUpAll"
	]`, string(data))

	var back PrepActions
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, actions, back)

	bad := []string{`"Log"`, `{"Jump":{}}`, `{"Log":{"msg":"a"},"Wait":{"ms":1}}`, `{"Wait":{"ms":"soon"}}`, `3`}
	for _, in := range bad {
		var a PrepAction
		assert.Error(t, json.Unmarshal([]byte(in), &a), in)
	}
}

func TestPrepActionReorder(t *testing.T) {
	var p PrepActions
	p.Add(PrepAction{Kind: PrepLog, Msg: "a"})
	p.Add(PrepAction{Kind: PrepLog, Msg: "b"})
	p.Add(PrepAction{Kind: PrepLog, Msg: "c"})

	require.True(t, p.MoveUp(2))
	assert.Equal(t, "c", p[1].Msg)
	assert.False(t, p.MoveUp(0))
	require.True(t, p.MoveDown(0))
	assert.Equal(t, []string{"c", "a", "b"}, []string{p[0].Msg, p[1].Msg, p[2].Msg})
	assert.False(t, p.MoveDown(2))

	require.True(t, p.Remove(1))
	assert.False(t, p.Remove(5))
	assert.Len(t, p, 2)
	assert.Equal(t, `Log "c"`, p[0].String())
	assert.Equal(t, "Wait 100ms", NewPrepAction(PrepWait).String())
}
