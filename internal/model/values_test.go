package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTimestampAcceptsBackendLayouts(testingT *testing.T) {
	testCases := []struct {
		name     string
		payload  string
		expected time.Time
	}{
		{
			name:     "sqlite default",
			payload:  `"2024-03-05 14:30:00"`,
			expected: time.Date(2024, time.March, 5, 14, 30, 0, 0, time.UTC),
		},
		{
			name:     "rfc3339",
			payload:  `"2024-03-05T14:30:00+02:00"`,
			expected: time.Date(2024, time.March, 5, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "iso without zone",
			payload:  `"2024-03-05T14:30:00.123456"`,
			expected: time.Date(2024, time.March, 5, 14, 30, 0, 123456000, time.UTC),
		},
		{
			name:     "date only",
			payload:  `"2024-03-05"`,
			expected: time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, testCase := range testCases {
		testingT.Run(testCase.name, func(testingT *testing.T) {
			var timestamp Timestamp
			require.NoError(testingT, json.Unmarshal([]byte(testCase.payload), &timestamp))
			require.True(testingT, testCase.expected.Equal(timestamp.Time))
		})
	}
}

func TestTimestampNullAndEmptyAreZero(testingT *testing.T) {
	var timestamp Timestamp
	require.NoError(testingT, json.Unmarshal([]byte(`null`), &timestamp))
	require.True(testingT, timestamp.IsZero())

	require.NoError(testingT, json.Unmarshal([]byte(`""`), &timestamp))
	require.True(testingT, timestamp.IsZero())
}

func TestTimestampRejectsGarbage(testingT *testing.T) {
	var timestamp Timestamp
	require.ErrorIs(testingT, json.Unmarshal([]byte(`"yesterday"`), &timestamp), ErrInvalidTimestamp)
	require.ErrorIs(testingT, json.Unmarshal([]byte(`42`), &timestamp), ErrInvalidTimestamp)
}

func TestTextAcceptsStringsAndNumbers(testingT *testing.T) {
	var decoded struct {
		ID  Text `json:"id"`
		Fee Text `json:"fee"`
		Nil Text `json:"nil"`
	}
	require.NoError(testingT, json.Unmarshal([]byte(`{"id": 42, "fee": "Rp 50.000", "nil": null}`), &decoded))
	require.Equal(testingT, Text("42"), decoded.ID)
	require.Equal(testingT, "Rp 50.000", decoded.Fee.String())
	require.Equal(testingT, Text(""), decoded.Nil)
}

func TestTextRejectsObjects(testingT *testing.T) {
	var text Text
	require.ErrorIs(testingT, json.Unmarshal([]byte(`{"a":1}`), &text), ErrInvalidText)
}
