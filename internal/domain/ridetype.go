package domain

// RideTypeID identifies one of the fixed ride type offerings.
type RideTypeID string

const (
	RideTypeEconomy RideTypeID = "ECONOMY"
	RideTypePremium RideTypeID = "PREMIUM"
	RideTypeFamily  RideTypeID = "FAMILY"
)

// RideType is immutable reference data describing a fare class.
type RideType struct {
	ID         RideTypeID `json:"id"`
	Name       string     `json:"name"`
	BaseFare   float64    `json:"base_fare"`
	Multiplier float64    `json:"multiplier"`
	ETALabel   string     `json:"eta_label"`
}

// RideTypes is the full catalog, ordered cheapest first.
var RideTypes = []RideType{
	{ID: RideTypeEconomy, Name: "Economy", BaseFare: 5, Multiplier: 1.0, ETALabel: "3 min"},
	{ID: RideTypePremium, Name: "Premium", BaseFare: 7, Multiplier: 1.2, ETALabel: "5 min"},
	{ID: RideTypeFamily, Name: "Family", BaseFare: 10, Multiplier: 1.75, ETALabel: "7 min"},
}

// RideTypeByID looks up a catalog entry. The second return is false for
// unknown ids.
func RideTypeByID(id RideTypeID) (RideType, bool) {
	for _, rt := range RideTypes {
		if rt.ID == id {
			return rt, true
		}
	}
	return RideType{}, false
}
