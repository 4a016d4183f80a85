package mapping

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hookupmap/internal/schema"
)

func TestBagJSON(t *testing.T) {
	t.Run("empty bag has no payload", func(t *testing.T) {
		raw, err := Bag{}.JSON()
		require.NoError(t, err)
		assert.Nil(t, raw)

		var nilBag Bag
		raw, err = nilBag.JSON()
		require.NoError(t, err)
		assert.Nil(t, raw)
	})

	t.Run("keys are sorted", func(t *testing.T) {
		b := Bag{"zeta": json.RawMessage(`1`), "alpha": json.RawMessage(`{"b":2,"a":1}`)}
		raw, err := b.JSON()
		require.NoError(t, err)
		assert.Equal(t, `{"alpha":{"b":2,"a":1},"zeta":1}`, string(raw))
	})

	t.Run("canonical empty states", func(t *testing.T) {
		for _, in := range []string{"", "null", "  ", "{}"} {
			b, err := BagFromJSON([]byte(in))
			require.NoError(t, err, in)
			assert.Equal(t, 0, b.Len(), in)
		}
		_, err := BagFromJSON([]byte(`[1]`))
		assert.Error(t, err)
	})
}

func TestBagRoundTrip(t *testing.T) {
	docs := []string{
		`{"name":"B1","color":"red","meta":{"x":[1,2,{"y":null}],"w":1.50},"flag":false}`,
		`{"flag":false,"meta":{"w":1.50,"x":[1,2,{"y":null}]},"color":"red","name":"B1"}`,
	}
	want := map[string]any{}
	require.NoError(t, json.Unmarshal([]byte(`{"color":"red","meta":{"x":[1,2,{"y":null}],"w":1.50},"flag":false}`), &want))

	var bags []Bag
	for _, doc := range docs {
		e, err := Decode(schema.Default(), schema.KindBus, json.RawMessage(doc))
		require.NoError(t, err)

		raw, err := e.Extra.JSON()
		require.NoError(t, err)
		got := map[string]any{}
		require.NoError(t, json.Unmarshal(raw, &got))
		assert.Equal(t, want, got)

		back, err := BagFromJSON(raw)
		require.NoError(t, err)
		assert.True(t, back.Equal(e.Extra))
		bags = append(bags, e.Extra)
	}
	assert.True(t, bags[0].Equal(bags[1]), "key order in the source does not matter")
	assert.False(t, bags[0].Equal(Bag{"color": json.RawMessage(`"red"`)}))
}

func TestMarshal(t *testing.T) {
	raw, err := Marshal(
		map[string]any{"name": "N1", "nets": []string{}},
		Bag{"name": json.RawMessage(`"shadowed"`), "rack": json.RawMessage(`{"u":4}`)},
	)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"N1","nets":[],"rack":{"u":4}}`, string(raw))
}
