package meta

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type label string

type weight int

type capability interface {
	Capability() string
}

type tagged struct {
	name string
}

func (t tagged) Capability() string {
	return t.name
}

func TestCollection_Find(t *testing.T) {
	collection := Of(label("primary"), weight(3), label("secondary"))

	item, ok := collection.Find(TypeOf[label]())
	require.True(t, ok)
	assert.Equal(t, label("primary"), item)

	_, ok = collection.Find(TypeOf[string]())
	assert.False(t, ok)

	item, ok = collection.FindFirst(TypeOf[string](), TypeOf[weight]())
	require.True(t, ok)
	assert.Equal(t, weight(3), item)

	all := collection.FindAll(TypeOf[label]())
	assert.Equal(t, []interface{}{label("primary"), label("secondary")}, all.Items())

	assert.True(t, collection.Has(TypeOf[weight]()))
	assert.Equal(t, 2, collection.Count(TypeOf[label]()))
}

func TestCollection_Find_Interface(t *testing.T) {
	collection := Of("plain", tagged{name: "searchable"})
	item, ok := collection.Find(TypeOf[capability]())
	require.True(t, ok)
	assert.Equal(t, tagged{name: "searchable"}, item)
}

func TestCollection_Get_FalsyValue(t *testing.T) {
	// a found zero value wins over the default
	collection := Of(weight(0), label(""))
	assert.Equal(t, weight(0), collection.Get(TypeOf[weight](), weight(42)))
	assert.Equal(t, label(""), collection.Get(TypeOf[label](), label("fallback")))
	assert.Equal(t, "fallback", collection.Get(TypeOf[string](), "fallback"))
}

func TestCollection_GetRequired(t *testing.T) {
	collection := Of(label("x"))
	item, err := collection.GetRequired(TypeOf[label]())
	require.Nil(t, err)
	assert.Equal(t, label("x"), item)

	_, err = collection.GetRequired(TypeOf[weight]())
	require.NotNil(t, err)
	var notFound *NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, TypeOf[weight](), notFound.RequestedType)
	assert.Same(t, collection, notFound.Collection)
}

func TestCollection_FindProtocol(t *testing.T) {
	defer ResetCheckable()
	collection := Of(tagged{name: "searchable"})

	_, err := collection.FindProtocol(TypeOf[capability]())
	require.NotNil(t, err)
	var protocolErr *ProtocolError
	require.ErrorAs(t, err, &protocolErr)
	assert.Equal(t, TypeOf[capability](), protocolErr.Capability)

	require.Nil(t, RegisterCheckable(TypeOf[capability]()))
	item, err := collection.FindProtocol(TypeOf[capability]())
	require.Nil(t, err)
	assert.Equal(t, tagged{name: "searchable"}, item)

	assert.NotNil(t, RegisterCheckable(TypeOf[label]())) //not an interface
}

func TestCollection_Filter(t *testing.T) {
	collection := Of(weight(1), weight(5), label("x"), weight(9))
	heavy := collection.Filter(func(item interface{}) bool {
		value, ok := item.(weight)
		return ok && value > 3
	})
	assert.Equal(t, []interface{}{weight(5), weight(9)}, heavy.Items())

	// predicate only sees matching-type items
	byType := collection.FilterByType(TypeOf[weight](), func(item interface{}) bool {
		return item.(weight) < 6
	})
	assert.Equal(t, []interface{}{weight(1), weight(5)}, byType.Items())
}

func TestCollection_Introspection(t *testing.T) {
	collection := Of(label("a"), weight(1), label("b"))
	types := collection.Types()
	require.Equal(t, []reflect.Type{TypeOf[label](), TypeOf[weight]()}, types)

	byType := collection.ByType()
	assert.Equal(t, []interface{}{label("a"), label("b")}, byType[TypeOf[label]()])
	assert.Equal(t, []interface{}{weight(1)}, byType[TypeOf[weight]()])
}

func TestGenericHelpers(t *testing.T) {
	collection := Of(label("a"), weight(1))
	value, ok := FindOf[weight](collection)
	require.True(t, ok)
	assert.Equal(t, weight(1), value)
	assert.Equal(t, label("a"), GetOf(collection, label("fallback")))
	assert.Equal(t, "fallback", GetOf(collection, "fallback"))
}
