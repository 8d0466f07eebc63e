package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicketClaimJSONSerialization(t *testing.T) {
	claim := TicketClaim{
		Barcode: "7290016353891",
		Artist:  "עומר אדם",
		Venue:   "היכל מנורה מבטחים",
		Date:    "15/03/2025",
	}

	data, err := json.Marshal(claim)
	require.NoError(t, err)

	payload := string(data)
	assert.Contains(t, payload, `"barcode"`)
	assert.Contains(t, payload, `"artist"`)
	assert.Contains(t, payload, `"venue"`)
	assert.Contains(t, payload, `"date"`)
	// Optional fields are omitted when empty.
	assert.NotContains(t, payload, `"time"`)
	assert.NotContains(t, payload, `"is_standing"`)
	assert.NotContains(t, payload, `"raw_text"`)

	var decoded TicketClaim
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, claim, decoded)
}

func TestMissingRequiredFields(t *testing.T) {
	complete := TicketClaim{Artist: "עומר אדם", Venue: "היכל", Date: "15/03/2025"}
	assert.Empty(t, complete.MissingRequiredFields())

	partial := TicketClaim{Artist: "עומר אדם"}
	assert.Equal(t, []string{"venue", "date"}, partial.MissingRequiredFields())

	empty := TicketClaim{}
	assert.Equal(t, []string{"artist", "venue", "date"}, empty.MissingRequiredFields())
}

func TestVerificationResultJSONSerialization(t *testing.T) {
	result := VerificationResult{
		Verified:        true,
		Confidence:      100,
		Status:          StatusVerified,
		MatchedFields:   []string{"barcode", "artist"},
		UnmatchedFields: []string{},
		Details: &MatchDetails{
			OfficialTicketID: "OT-2025-001",
			TicketingSystem:  "Eventim",
			OriginalPrice:    decimal.NewFromInt(450),
		},
		Reason:    "הכרטיס אומת בהצלחה",
		Timestamp: time.Now(),
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"details"`)

	noDetails := result
	noDetails.Details = nil
	data, err = json.Marshal(noDetails)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"details"`)
}

func TestOfficialTicketRecordPriceRoundTrip(t *testing.T) {
	record := OfficialTicketRecord{
		TicketID:      "OT-2025-001",
		SeatType:      SeatTypeSeated,
		OriginalPrice: decimal.RequireFromString("450.50"),
	}

	data, err := json.Marshal(record)
	require.NoError(t, err)

	var decoded OfficialTicketRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.OriginalPrice.Equal(record.OriginalPrice))
}

func TestExtractedFieldGenericValue(t *testing.T) {
	priceField := ExtractedField[decimal.Decimal]{
		Value:      decimal.NewFromInt(250),
		Confidence: 0.95,
		Position:   7,
	}
	data, err := json.Marshal(priceField)
	require.NoError(t, err)

	var decoded ExtractedField[decimal.Decimal]
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, decoded.Value.Equal(priceField.Value))
	assert.Equal(t, 0.95, decoded.Confidence)
}
