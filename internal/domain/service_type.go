package domain

import (
	"strings"
	"time"
)

// ServiceType is a kind of visit with a fixed duration (consultation, grooming, ...)
type ServiceType struct {
	Key             string
	Name            string
	DurationMinutes int
}

// DurationCatalog maps a service type key to its fixed duration in minutes
// Keys are case-insensitive
type DurationCatalog map[string]int

// NewDurationCatalog builds a catalog from service types, skipping non-positive durations
func NewDurationCatalog(serviceTypes []*ServiceType) DurationCatalog {
	catalog := make(DurationCatalog, len(serviceTypes))
	for _, st := range serviceTypes {
		if st == nil || st.DurationMinutes <= 0 {
			continue
		}
		catalog[NormalizeServiceKey(st.Key)] = st.DurationMinutes
	}
	return catalog
}

// Duration returns the duration for key; ok is false for unknown keys
func (c DurationCatalog) Duration(key string) (time.Duration, bool) {
	minutes, ok := c[NormalizeServiceKey(key)]
	if !ok || minutes <= 0 {
		return 0, false
	}
	return time.Duration(minutes) * time.Minute, true
}

// NormalizeServiceKey приводит ключ услуги к каноничному виду
func NormalizeServiceKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}
