package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "pawboard/pkg/domain-errors"
)

func TestParseUserID(t *testing.T) {
	t.Run("round trip", func(t *testing.T) {
		original := NewUserID()
		parsed, err := ParseUserID(original.String())
		require.NoError(t, err)
		assert.Equal(t, original, parsed)
	})

	t.Run("rejects malformed input", func(t *testing.T) {
		cases := []string{
			"",
			"not-a-uuid",
			"12345",
			uuid.Nil.String(),
			"c56a4180-65aa-42ec-a945-5fd21dec", // truncated
		}
		for _, input := range cases {
			_, err := ParseUserID(input)
			require.Error(t, err, "input %q", input)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput), "input %q", input)
		}
	})
}

func TestJSONRoundTrip(t *testing.T) {
	type record struct {
		ID      BoardID `json:"id"`
		OwnerID UserID  `json:"owner_id"`
	}
	original := record{ID: NewBoardID(), OwnerID: NewUserID()}

	raw, err := json.Marshal(original)
	require.NoError(t, err)

	// Ids must travel as canonical UUID strings so clients can feed them
	// back into path parameters.
	var wire struct {
		ID      string `json:"id"`
		OwnerID string `json:"owner_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &wire))
	assert.Equal(t, original.ID.String(), wire.ID)
	assert.Equal(t, original.OwnerID.String(), wire.OwnerID)

	reparsed, err := ParseBoardID(wire.ID)
	require.NoError(t, err)
	assert.Equal(t, original.ID, reparsed)

	var decoded record
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

func TestUnmarshalRejectsMalformedID(t *testing.T) {
	var decoded struct {
		ID UserID `json:"id"`
	}
	err := json.Unmarshal([]byte(`{"id":"not-a-uuid"}`), &decoded)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestIDTypesAreDistinct(t *testing.T) {
	raw := uuid.New().String()

	userID, err := ParseUserID(raw)
	require.NoError(t, err)
	boardID, err := ParseBoardID(raw)
	require.NoError(t, err)

	// Same bytes, different types. The compiler keeps them apart; the
	// strings stay comparable for wire formats.
	assert.Equal(t, userID.String(), boardID.String())
}

func TestIsNil(t *testing.T) {
	assert.True(t, UserID{}.IsNil())
	assert.True(t, BoardID{}.IsNil())
	assert.True(t, ReviewID{}.IsNil())
	assert.False(t, NewUserID().IsNil())
	assert.False(t, NewBoardID().IsNil())
	assert.False(t, NewReviewID().IsNil())
}
