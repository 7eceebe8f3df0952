package overlay

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueOf(t *testing.T) {
	assert.Equal(t, KindNull, ValueOf(nil).Kind())
	assert.Equal(t, String("abc"), ValueOf([]byte("abc")))
	assert.Equal(t, Int(7), ValueOf(int32(7)))
	assert.Equal(t, Float(1.5), ValueOf(float32(1.5)))
	assert.Equal(t, Bool(true), ValueOf(true))
	assert.Equal(t, String("2023-11-14T22:13:20Z"), ValueOf(time.Unix(1700000000, 0)))

	n, ok := String(" 42 ").Int64()
	assert.True(t, ok)
	assert.EqualValues(t, 42, n)
	_, ok = String("x").Int64()
	assert.False(t, ok)
	_, ok = Null().Int64()
	assert.False(t, ok)

	assert.True(t, String("0").Empty())
	assert.True(t, Int(0).Empty())
	assert.False(t, Int(-1).Empty())
	assert.Equal(t, "", Null().String())
	assert.Equal(t, "1", Bool(true).String())
}

func TestRecordOrderAndClone(t *testing.T) {
	r := RecordOf("uid", 1, "pid", 10, "title", "A")
	r.Set("uid", Int(2))
	assert.Equal(t, []string{"uid", "pid", "title"}, r.Fields())

	uid, ok := r.UID()
	assert.True(t, ok)
	assert.EqualValues(t, 2, uid)

	c := r.Clone()
	c.Set("title", String("B"))
	c.Set("extra", Null())
	v, _ := r.Get("title")
	assert.Equal(t, "A", v.String())
	assert.Equal(t, 3, r.Len())
	assert.False(t, r.Equal(c))
	assert.True(t, r.Equal(r.Clone()))

	assert.False(t, c.Isset("extra"))
	_, present := c.Get("extra")
	assert.True(t, present)
}

func TestRecordMarshalJSON(t *testing.T) {
	r := RecordOf("uid", 5, "title", "Hello", "ratio", 0.5, "flag", false, "none", nil)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.Equal(t, `{"uid":5,"title":"Hello","ratio":0.5,"flag":false,"none":null}`, string(b))

	assert.Equal(t, map[string]any{
		"uid": int64(5), "title": "Hello", "ratio": 0.5, "flag": false, "none": nil,
	}, r.Map())
}
