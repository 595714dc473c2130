package inspect

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/xunsafe"
)

func TestMarker_Presence(t *testing.T) {
	marker, err := NewMarker(reflect.TypeOf(Account{}))
	require.Nil(t, err)

	account := &Account{Id: 1, Has: &AccountHas{Id: true}}
	ptr := xunsafe.AsPointer(account)

	index := marker.Index("Id")
	require.NotEqual(t, -1, index)
	assert.True(t, marker.IsSet(ptr, index))
	assert.False(t, marker.IsSet(ptr, marker.Index("Name")))

	require.Nil(t, marker.Set(ptr, marker.Index("Name"), true))
	assert.True(t, marker.IsSet(ptr, marker.Index("Name")))

	require.Nil(t, marker.SetAll(ptr, false))
	assert.False(t, marker.IsSet(ptr, index))

	// without a holder instance every field counts as set
	empty := &Account{}
	assert.True(t, marker.IsSet(xunsafe.AsPointer(empty), index))
	assert.NotNil(t, marker.Set(xunsafe.AsPointer(empty), index, true))
}

func TestNewMarker_Errors(t *testing.T) {
	_, err := NewMarker(reflect.TypeOf(0))
	assert.NotNil(t, err)

	// a struct without a holder field has no presence tracking
	_, err = NewMarker(reflect.TypeOf(Address{}))
	assert.NotNil(t, err)
}

func TestHasMarker(t *testing.T) {
	assert.True(t, HasMarker(reflect.TypeOf(Account{})))
	assert.True(t, HasMarker(reflect.TypeOf(&Account{})))
	assert.False(t, HasMarker(reflect.TypeOf(Address{})))
	assert.False(t, HasMarker(reflect.TypeOf(0)))
}
