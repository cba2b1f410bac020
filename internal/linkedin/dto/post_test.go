package dto

import (
	"encoding/json"
	"testing"
	"time"

	"knugget-backend/internal/linkedin/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONFieldRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"likes":    json.Number("1024"),
		"comments": json.Number("3"),
		"ratio":    json.Number("0.75"),
		"pinned":   true,
		"source":   "extension",
	}

	encoded, err := EncodeJSONField(original)
	require.NoError(t, err)

	decoded, err := DecodeJSONField(encoded)
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestDecodeJSONFieldEmpty(t *testing.T) {
	for _, raw := range []string{"", "null"} {
		decoded, err := DecodeJSONField(raw)
		require.NoError(t, err)
		assert.Nil(t, decoded)
	}
}

func TestDecodeJSONFieldMalformed(t *testing.T) {
	_, err := DecodeJSONField("{not json")
	assert.Error(t, err)
}

func TestToPostResponseFormatsTimestamps(t *testing.T) {
	loc := time.FixedZone("ICT", 7*3600)
	postedAt := time.Date(2025, 3, 14, 16, 30, 0, 0, loc)

	post := &domain.LinkedinPost{
		ID:         "p1",
		UserID:     "u1",
		PostURL:    "https://www.linkedin.com/posts/x",
		Author:     "Jane Doe",
		Engagement: `{"likes":10}`,
		PostedAt:   &postedAt,
		SavedAt:    time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
		UpdatedAt:  time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
	}

	resp, err := ToPostResponse(post)
	require.NoError(t, err)

	// Timestamps are UTC RFC3339 strings
	assert.Equal(t, "2025-03-15T08:00:00Z", resp.SavedAt)
	require.NotNil(t, resp.PostedAt)
	assert.Equal(t, "2025-03-14T09:30:00Z", *resp.PostedAt)

	// JSON text column decoded to an object
	require.NotNil(t, resp.Engagement)
	assert.Equal(t, json.Number("10"), resp.Engagement["likes"])
}

func TestToPostResponseMalformedColumnIsError(t *testing.T) {
	post := &domain.LinkedinPost{
		ID:         "p1",
		Engagement: `{"likes":`,
	}

	_, err := ToPostResponse(post)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "p1")
}

func TestToPostResponseNilPostedAtOmitted(t *testing.T) {
	post := &domain.LinkedinPost{ID: "p1"}
	resp, err := ToPostResponse(post)
	require.NoError(t, err)
	assert.Nil(t, resp.PostedAt)
}
