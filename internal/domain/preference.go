package domain

import "time"

// Gate keys stored in the preferences table.
const (
	GateOnboardingDismissed = "onboarding_dismissed"
	PrefLastDiscoveryID     = "last_discovery_id"
	PrefPreferredMode       = "preferred_mode"
)

// Gates lists the access-gate keys cleared by a gate reset.
var Gates = []string{GateOnboardingDismissed}

type Preference struct {
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Bool interprets the stored value as a flag.
func (p *Preference) Bool() bool {
	switch p.Value {
	case "1", "true", "yes":
		return true
	}
	return false
}
