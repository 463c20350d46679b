package weatherlink

import (
	"encoding/json"
	"fmt"
)

// wireReadingSet mirrors RawReadingSet with pointers for every member the upstream
// must send, so that absent and null members can be told apart from zero.
type wireReadingSet struct {
	OwnerName           *string        `json:"ownerName"`
	LastReceived        *int64         `json:"lastReceived"`
	CurrConditionValues *[]wireReading `json:"currConditionValues"`
}

type wireReading struct {
	SensorDataTypeID      *int     `json:"sensorDataTypeId"`
	SensorDataName        *string  `json:"sensorDataName"`
	DisplayName           *string  `json:"displayName"`
	ReportedValue         float64  `json:"reportedValue"`
	Value                 *float64 `json:"value"`
	ConvertedValue        string   `json:"convertedValue"`
	DepthLabel            *string  `json:"depthLabel"`
	Category              *string  `json:"category"`
	AssocSensorDataTypeID *int     `json:"assocSensorDataTypeId"`
	SortOrder             *int     `json:"sortOrder"`
	UnitLabel             string   `json:"unitLabel"`
}

func decode(body []byte) (*RawReadingSet, error) {
	var ws *wireReadingSet

	if err := json.Unmarshal(body, &ws); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedBody, err.Error())
	}

	if ws == nil {
		return nil, fmt.Errorf("%w: body is null", ErrMalformedBody)
	}

	switch {
	case ws.OwnerName == nil:
		return nil, fmt.Errorf("%w: ownerName is missing", ErrMalformedBody)
	case ws.LastReceived == nil:
		return nil, fmt.Errorf("%w: lastReceived is missing", ErrMalformedBody)
	case ws.CurrConditionValues == nil || *ws.CurrConditionValues == nil:
		return nil, fmt.Errorf("%w: currConditionValues is missing", ErrMalformedBody)
	}

	data := &RawReadingSet{
		OwnerName:           *ws.OwnerName,
		LastReceived:        *ws.LastReceived,
		CurrConditionValues: make([]RawReading, 0, len(*ws.CurrConditionValues)),
	}

	for i, r := range *ws.CurrConditionValues {
		if r.SensorDataName == nil {
			return nil, fmt.Errorf("%w: sensorDataName is missing on reading %d", ErrMalformedBody, i)
		}
		if r.Value == nil {
			return nil, fmt.Errorf("%w: value is missing on reading %q", ErrMalformedBody, *r.SensorDataName)
		}

		data.CurrConditionValues = append(data.CurrConditionValues, RawReading{
			SensorDataTypeID:      r.SensorDataTypeID,
			SensorDataName:        *r.SensorDataName,
			DisplayName:           r.DisplayName,
			ReportedValue:         r.ReportedValue,
			Value:                 *r.Value,
			ConvertedValue:        r.ConvertedValue,
			DepthLabel:            r.DepthLabel,
			Category:              r.Category,
			AssocSensorDataTypeID: r.AssocSensorDataTypeID,
			SortOrder:             r.SortOrder,
			UnitLabel:             r.UnitLabel,
		})
	}

	return data, nil
}
