package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExchangeTime(t *testing.T) {
	parsed, err := ParseExchangeTime("2017-10-06 17:56:17")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2017, 10, 6, 17, 56, 17, 0, time.UTC), parsed.Time())
	assert.Equal(t, "2017-10-06 17:56:17", parsed.String())
}

func TestTimeUnmarshalJSON(t *testing.T) {
	var tt Time
	require.NoError(t, json.Unmarshal([]byte(`"2017-10-06 17:56:17"`), &tt))
	assert.Equal(t, int64(1507312577), tt.Unix())

	require.NoError(t, json.Unmarshal([]byte(`1507312577`), &tt))
	assert.Equal(t, time.Date(2017, 10, 6, 17, 56, 17, 0, time.UTC), tt.Time())

	assert.Error(t, json.Unmarshal([]byte(`"not a time"`), &tt))
}
