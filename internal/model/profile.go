package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/the-budget-must-flow/internal/common"
)

// Profile is the user's earning situation. It only changes advice wording.
type Profile string

// Supported profiles.
const (
	ProfileStudent     Profile = "student"
	ProfileSalaried    Profile = "salaried"
	ProfileBusinessman Profile = "businessman"
	ProfileDailyWage   Profile = "daily_wage"
)

// Profiles returns every supported profile in display order.
func Profiles() []Profile {
	return []Profile{ProfileStudent, ProfileSalaried, ProfileBusinessman, ProfileDailyWage}
}

// ParseProfile validates a profile name, ignoring case and surrounding space.
func ParseProfile(s string) (Profile, error) {
	p := Profile(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Profiles() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", common.ErrUnknownProfile, s)
}

// Title returns the profile formatted for display, e.g. "Daily wage".
func (p Profile) Title() string {
	s := strings.ReplaceAll(string(p), "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
