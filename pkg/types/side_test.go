package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSideType(t *testing.T) {
	side, err := ParseSideType("BUY")
	require.NoError(t, err)
	assert.Equal(t, SideTypeBuy, side)

	_, err = ParseSideType("hold")
	assert.ErrorIs(t, err, ErrInvalidSideType)
}

func TestSideType_Reverse(t *testing.T) {
	assert.Equal(t, SideTypeSell, SideTypeBuy.Reverse())
	assert.Equal(t, SideTypeBuy, SideTypeSell.Reverse())
}

func TestSideType_UnmarshalJSON(t *testing.T) {
	var side SideType
	require.NoError(t, json.Unmarshal([]byte(`"sell"`), &side))
	assert.Equal(t, SideTypeSell, side)

	assert.Error(t, json.Unmarshal([]byte(`"short"`), &side))
}
