package graph

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/hookupmap/internal/mapping"
	apperr "github.com/yungbote/hookupmap/internal/pkg/errors"
	"github.com/yungbote/hookupmap/internal/schema"
)

const scenarioDoc = `{"nodes":[{"name":"N1","connections":[{"bus":"B1","pinout":[{"pin":"1","net":"G"}]}]}],"busses":[{"name":"B1","signal":null,"nets":[{"name":"G"}]}]}`

func TestAssembleScenario(t *testing.T) {
	g, warnings, err := Assemble([]byte(scenarioDoc), schema.Default())
	require.NoError(t, err)
	assert.Empty(t, warnings)

	require.Len(t, g.Busses, 1)
	assert.Equal(t, "B1", g.Busses[0].Name)
	assert.Nil(t, g.Busses[0].Signal)
	require.Len(t, g.Busses[0].Nets, 1)
	assert.Equal(t, "G", g.Busses[0].Nets[0].Name)

	require.Len(t, g.Nodes, 1)
	n := g.Nodes[0]
	assert.Equal(t, "N1", n.Name)
	assert.Nil(t, n.Location)
	require.Len(t, n.Connections, 1)
	c := n.Connections[0]
	assert.Nil(t, c.Name)
	assert.Equal(t, "B1", c.Bus)
	require.Len(t, c.Pinout, 1)
	assert.Equal(t, PinMap{Pin: "1", Net: "G", Extra: mapping.Bag{}}, c.Pinout[0])

	assert.Equal(t, map[schema.Kind]int{
		schema.KindBus:        1,
		schema.KindNet:        1,
		schema.KindNode:       1,
		schema.KindConnection: 1,
		schema.KindPinMap:     1,
	}, g.Counts())
}

func TestAssembleStructuralErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		code StructuralCode
		key  string
	}{
		{"missing busses", `{"nodes":[]}`, CodeMissingTopLevelKey, "busses"},
		{"missing nodes", `{"busses":[]}`, CodeMissingTopLevelKey, "nodes"},
		{"busses not a list", `{"nodes":[],"busses":{"name":"B1"}}`, CodeTopLevelNotList, "busses"},
		{"nodes null", `{"nodes":null,"busses":[]}`, CodeTopLevelNotList, "nodes"},
		{"array document", `[{"nodes":[]}]`, CodeNotAnObject, ""},
		{"truncated document", `{"nodes":[`, CodeNotAnObject, ""},
		{"empty document", ``, CodeNotAnObject, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, warnings, err := Assemble([]byte(tt.doc), schema.Default())
			require.Error(t, err)
			assert.Nil(t, g)
			assert.Nil(t, warnings)
			assert.True(t, errors.Is(err, apperr.ErrStructural))

			var se *StructuralError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.code, se.Code)
			assert.Equal(t, tt.key, se.Key)
		})
	}
}

func TestAssembleUnknownTopLevelKeys(t *testing.T) {
	g, warnings, err := Assemble([]byte(`{"version":3,"nodes":[],"author":{"n":"x"},"busses":[]}`), schema.Default())
	require.NoError(t, err)
	require.NotNil(t, g)
	assert.Equal(t, []Warning{
		{Code: WarnUnknownTopLevelKey, Key: "author"},
		{Code: WarnUnknownTopLevelKey, Key: "version"},
	}, warnings)
	assert.Contains(t, warnings[0].String(), `"author"`)
}

func TestAssembleAbortsOnFirstBadEntity(t *testing.T) {
	doc := `{"nodes":[{"name":"N1","connections":[]},{"name":7,"connections":[]}],
		"busses":[{"name":"B1","nets":[{"name":"G"},{"label":"H"}]}]}`
	g, warnings, err := Assemble([]byte(doc), schema.Default())
	require.Error(t, err)
	assert.Nil(t, g)
	assert.Nil(t, warnings)
	assert.True(t, errors.Is(err, apperr.ErrDecode))

	// busses decode first, so the net failure is reported, not the node one.
	leaf, ok := mapping.Leaf(err)
	require.True(t, ok)
	assert.Equal(t, mapping.CodeMissingField, leaf.Code)
	assert.Equal(t, schema.KindNet, leaf.Kind)
	assert.Equal(t, "busses[0].nets[1].name", mapping.Path(err))
}

func TestAssembleEmptyCollections(t *testing.T) {
	g, warnings, err := Assemble([]byte(`{"nodes":[],"busses":[]}`), schema.Default())
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Empty(t, g.Nodes)
	assert.Empty(t, g.Busses)
}

func TestGraphMarshalRoundTrip(t *testing.T) {
	doc := `{
		"busses": [{"name":"B1","signal":"PWR","nets":[{"name":"G","awg":18}],"vendor":"acme"}],
		"nodes": [{"name":"N1","location":"bay","connections":[
			{"name":"J1","bus":"B1","intCable":true,"intConnector":false,"connector":"DB9","direction":"IO",
			 "pinout":[{"pin":"1","net":"G","wire":{"color":"black"}}],"extra":[1,2]}
		]}]
	}`
	g, _, err := Assemble([]byte(doc), schema.Default())
	require.NoError(t, err)

	out, err := json.Marshal(g)
	require.NoError(t, err)
	assert.JSONEq(t, doc, string(out))

	again, _, err := Assemble(out, schema.Default())
	require.NoError(t, err)
	assert.Equal(t, g, again)
}
