package state

import (
	"bytes"
	"strings"
	"testing"

	"DrawPad/internal/geom"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStyle = Style{PenColor: "black", MinWidth: 0.5, MaxWidth: 2.5}

func TestRecordOpenAppendReset(t *testing.T) {
	r := NewRecord(nil)
	assert.Equal(t, 0, r.Len())

	idx := r.Open("a", testStyle)
	r.AppendPoint(idx, geom.Point{X: 1, Y: 2, Time: 1})
	r.AppendPoint(idx, geom.Point{X: 3, Y: 4, Time: 2})
	r.Open("b", testStyle)

	assert.Equal(t, 2, r.Len())
	assert.Equal(t, 2, r.PointCount())

	last, ok := r.LastPoint(idx)
	require.True(t, ok)
	assert.Equal(t, geom.Point{X: 3, Y: 4, Time: 2}, last)

	_, ok = r.LastPoint(1)
	assert.False(t, ok, "empty group has no last point")

	r.Reset()
	assert.Equal(t, 0, r.Len())
	assert.Empty(t, r.Groups())
}

func TestRecordGroupsIsACopy(t *testing.T) {
	r := NewRecord(nil)
	idx := r.Open("a", testStyle)
	r.AppendPoint(idx, geom.Point{X: 1})

	groups := r.Groups()
	groups[0].Points[0].X = 99

	g, _ := r.Group(idx)
	assert.Equal(t, 1.0, g.Points[0].X)
}

func TestRecordSaveLoad(t *testing.T) {
	r := NewRecord(nil)
	idx := r.Open("a", Style{PenColor: "#ff0000", DotSize: 1, MinWidth: 1, MaxWidth: 3})
	r.AppendPoint(idx, geom.Point{X: 1.5, Y: 2, Pressure: 0.5, Time: 10})
	r.AppendPoint(idx, geom.Point{X: 8, Y: 9, Time: 20})

	var buf bytes.Buffer
	require.NoError(t, r.Save(&buf))
	assert.Contains(t, buf.String(), `"penColor": "#ff0000"`)
	assert.Contains(t, buf.String(), `"minWidth": 1`)

	groups, err := Load(&buf)
	require.NoError(t, err)
	assert.Equal(t, r.Groups(), groups)
}

func TestSaveEmptyRecord(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRecord(nil).Save(&buf))
	assert.Equal(t, "[]", buf.String())
}

func TestLoadRejectsInvalidGroups(t *testing.T) {
	_, err := Load(strings.NewReader(`[{"penColor":"black","minWidth":3,"maxWidth":1,"points":[]}]`))
	assert.ErrorIs(t, err, ErrInvalidGroup)

	_, err = Load(strings.NewReader(`[{"penColor":"black","minWidth":1,"maxWidth":2,"points":[{"x":0,"y":0,"time":5},{"x":1,"y":1,"time":4}]}]`))
	assert.ErrorIs(t, err, ErrInvalidGroup)

	_, err = Load(strings.NewReader(`[{"penColor":"black","minWidth":1,"maxWidth":2,"velocityFilterWeight":2,"points":[]}]`))
	assert.ErrorIs(t, err, ErrInvalidGroup)

	groups, err := Load(strings.NewReader(`[{"penColor":"black","minWidth":1,"maxWidth":2,"velocityFilterWeight":0.4,"points":[]}]`))
	require.NoError(t, err)
	assert.Equal(t, 0.4, groups[0].VelocityFilterWeight)

	_, err = Load(strings.NewReader(`{not json`))
	assert.Error(t, err)
}

func TestDotWidth(t *testing.T) {
	assert.Equal(t, 1.5, Style{MinWidth: 0.5, MaxWidth: 2.5}.DotWidth())
	assert.Equal(t, 4.0, Style{DotSize: 4, MinWidth: 0.5, MaxWidth: 2.5}.DotWidth())
}

func TestWallClockNeverGoesBack(t *testing.T) {
	var c WallClock
	prev := c.NowMs()
	for i := 0; i < 100; i++ {
		now := c.NowMs()
		assert.GreaterOrEqual(t, now, prev)
		prev = now
	}
}
