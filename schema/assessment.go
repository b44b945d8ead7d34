package schema

type Occupation string

const (
	OccupationUnspecified Occupation = ""
	Farmer                Occupation = "farmer"
	Fisherman             Occupation = "fisherman"
	Student               Occupation = "student"
	OtherOccupation       Occupation = "other"
)

// Valid reports whether the occupation is one of the known choices
func (o Occupation) Valid() bool {
	switch o {
	case OccupationUnspecified, Farmer, Fisherman, Student, OtherOccupation:
		return true
	}
	return false
}

type WaterActivity string

const (
	Swimming WaterActivity = "swimming"
	Fishing  WaterActivity = "fishing"
	Washing  WaterActivity = "washing"
	Playing  WaterActivity = "playing"
)

// WaterActivities lists the activities in the order they are offered to users
var WaterActivities = []WaterActivity{Swimming, Fishing, Washing, Playing}

func (a WaterActivity) Valid() bool {
	for _, w := range WaterActivities {
		if a == w {
			return true
		}
	}
	return false
}

type SnailRisk string

const (
	SnailRiskNone     SnailRisk = "none"
	SnailRiskPossible SnailRisk = "possible"
	SnailRiskHigh     SnailRisk = "high"
)

const (
	DefaultAge = 18
	MinAge     = 1
	MaxAge     = 100
)

// Assessment holds the answers collected by a risk assessment wizard.
type Assessment struct {
	// Geo
	Coordinates      *Location `json:"coordinates"`
	DetectedZoneName string    `json:"detected_zone_name"`
	NearWater        bool      `json:"near_water"`
	StagnantWater    bool      `json:"stagnant_water"`

	// Behavior
	Occupation Occupation      `json:"occupation"`
	Activities []WaterActivity `json:"activities"`
	HasLatrine bool            `json:"latrine_access"`

	// Clinical
	Age                 int  `json:"age"`
	HasBloodInUrine     bool `json:"blood_in_urine"`
	HasPainfulUrination bool `json:"painful_urination"`

	// Snail
	SnailRisk SnailRisk `json:"snail_risk"`
}

// NewAssessment returns an assessment filled with default answers
func NewAssessment() Assessment {
	return Assessment{
		Occupation: OccupationUnspecified,
		Activities: []WaterActivity{},
		HasLatrine: true,
		Age:        DefaultAge,
		SnailRisk:  SnailRiskNone,
	}
}

// HasActivity reports whether an activity is selected
func (a *Assessment) HasActivity(activity WaterActivity) bool {
	for _, w := range a.Activities {
		if w == activity {
			return true
		}
	}
	return false
}

// ToggleActivity adds the activity if absent, otherwise removes it.
// It returns true when the activity is selected after the toggle.
func (a *Assessment) ToggleActivity(activity WaterActivity) bool {
	for i, w := range a.Activities {
		if w == activity {
			a.Activities = append(a.Activities[:i:i], a.Activities[i+1:]...)
			return false
		}
	}
	a.Activities = append(a.Activities, activity)
	return true
}

// Clone returns a deep copy which shares no memory with the receiver
func (a Assessment) Clone() Assessment {
	c := a
	c.Activities = append([]WaterActivity{}, a.Activities...)
	if a.Coordinates != nil {
		loc := *a.Coordinates
		c.Coordinates = &loc
	}
	return c
}
