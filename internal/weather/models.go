package weather

import (
	"time"
)

// Condition represents a normalized high-level weather condition.
type Condition string

const (
	ConditionUnknown Condition = "unknown"
	ConditionClear   Condition = "clear"
	ConditionCloudy  Condition = "cloudy"
	ConditionFog     Condition = "fog"
	ConditionRain    Condition = "rain"
	ConditionSnow    Condition = "snow"
	ConditionStorm   Condition = "storm"
	ConditionMist    Condition = "mist"
)

// UnknownDescription is used for condition codes missing from a provider's table.
const UnknownDescription = "Unknown"

// Snapshot is a current-conditions observation for one coordinate pair.
// It is produced fresh for every request and never cached.
type Snapshot struct {
	LocationLabel        *string   `json:"locationLabel" yaml:"locationLabel"`
	TemperatureC         float64   `json:"temperatureC" yaml:"temperatureC"`
	WindSpeedKph         float64   `json:"windSpeedKph" yaml:"windSpeedKph"`
	WindDirectionDeg     float64   `json:"windDirectionDeg" yaml:"windDirectionDeg"`
	ConditionCode        int       `json:"conditionCode" yaml:"conditionCode"`
	ConditionDescription string    `json:"conditionDescription" yaml:"conditionDescription"`
	Condition            Condition `json:"condition" yaml:"condition"`
	ObservedAt           time.Time `json:"observedAt" yaml:"observedAt"` // always UTC
	ProviderName         string    `json:"providerName" yaml:"providerName"`
}
