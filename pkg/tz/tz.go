package tz

import (
	"time"
	_ "time/tzdata"
)

// Paris is the Europe/Paris location (CET/CEST with automatic DST).
var Paris *time.Location

func init() {
	var err error
	Paris, err = time.LoadLocation("Europe/Paris")
	if err != nil {
		panic("tz: load Europe/Paris: " + err.Error())
	}
}

// Load returns the named location, Paris when name is empty or unknown.
func Load(name string) *time.Location {
	if name == "" {
		return Paris
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return Paris
	}
	return loc
}
