package models

import "fmt"

// Domain identifies a category of searchable and bookable items.
type Domain string

const (
	DomainFlights   Domain = "flights"
	DomainHotels    Domain = "hotels"
	DomainTransport Domain = "transport"
)

// Domains lists every domain in tab order.
var Domains = []Domain{DomainFlights, DomainHotels, DomainTransport}

// ParseDomain validates a user-supplied domain string.
func ParseDomain(s string) (Domain, error) {
	switch Domain(s) {
	case DomainFlights, DomainHotels, DomainTransport:
		return Domain(s), nil
	}
	return "", fmt.Errorf("unknown domain %q", s)
}

// BookingType returns the singular wire form used by the bookings and
// payments endpoints ("flight", "hotel", "transport").
func (d Domain) BookingType() string {
	switch d {
	case DomainFlights:
		return "flight"
	case DomainHotels:
		return "hotel"
	default:
		return "transport"
	}
}

func (d Domain) String() string { return string(d) }
