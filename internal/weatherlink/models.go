package weatherlink

import (
	"encoding/json"
	"time"
)

type RawReading struct {
	SensorDataTypeID      *int    `json:"sensorDataTypeId"`
	SensorDataName        string  `json:"sensorDataName"`
	DisplayName           *string `json:"displayName"`
	ReportedValue         float64 `json:"reportedValue"`
	Value                 float64 `json:"value"`
	ConvertedValue        string  `json:"convertedValue"`
	DepthLabel            *string `json:"depthLabel"`
	Category              *string `json:"category"`
	AssocSensorDataTypeID *int    `json:"assocSensorDataTypeId"`
	SortOrder             *int    `json:"sortOrder"`
	UnitLabel             string  `json:"unitLabel"`
}

type RawReadingSet struct {
	OwnerName           string       `json:"ownerName"`
	LastReceived        int64        `json:"lastReceived"`
	CurrConditionValues []RawReading `json:"currConditionValues"`
}

// LastReceivedUTC converts the upstream epoch milliseconds to a UTC time.
func (s RawReadingSet) LastReceivedUTC() time.Time {
	return time.UnixMilli(s.LastReceived).UTC()
}

// MarshalJSON adds the converted lastReceivedUtc timestamp to the upstream
// members.
func (s RawReadingSet) MarshalJSON() ([]byte, error) {
	type readingSet RawReadingSet

	return json.Marshal(struct {
		readingSet
		LastReceivedUTC time.Time `json:"lastReceivedUtc"`
	}{
		readingSet:      readingSet(s),
		LastReceivedUTC: s.LastReceivedUTC(),
	})
}

// Index maps sensor names to readings. When a name occurs more than once
// the first reading in upstream order is kept.
func (s RawReadingSet) Index() map[string]RawReading {
	idx := make(map[string]RawReading, len(s.CurrConditionValues))

	for _, r := range s.CurrConditionValues {
		if _, ok := idx[r.SensorDataName]; !ok {
			idx[r.SensorDataName] = r
		}
	}

	return idx
}
