package models

// FlightQuery is the flight search form as submitted. From/To hold location
// codes after normalization.
type FlightQuery struct {
	From       string `json:"from"`
	To         string `json:"to"`
	DepartDate string `json:"departDate"`
	ReturnDate string `json:"returnDate,omitempty"`
	Passengers string `json:"passengers"`
}

type HotelQuery struct {
	Location string `json:"location"`
	CheckIn  string `json:"checkIn"`
	CheckOut string `json:"checkOut"`
	Guests   string `json:"guests"`
	Rooms    string `json:"rooms"`
}

type TransportQuery struct {
	Pickup  string `json:"pickup"`
	Dropoff string `json:"dropoff"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Type    string `json:"type"`
}

// Result is a backend search record of any domain. Records are immutable
// once received; the id and the raw price tag are all the booking flow
// needs to address one.
type Result interface {
	ResultID() string
	PriceTag() Money
}

type Flight struct {
	ID         FlexID `json:"id"`
	Airline    string `json:"airline"`
	FromCity   string `json:"from_city"`
	ToCity     string `json:"to_city"`
	DepartTime string `json:"depart_time"`
	ArriveTime string `json:"arrive_time"`
	Price      Money  `json:"price"`
	Stops      int    `json:"stops"`
}

func (f Flight) ResultID() string { return f.ID.String() }
func (f Flight) PriceTag() Money  { return f.Price }

type Hotel struct {
	ID            FlexID   `json:"id"`
	Name          string   `json:"name"`
	PricePerNight Money    `json:"price_per_night"`
	Location      string   `json:"location"`
	Rating        float64  `json:"rating"`
	Amenities     []string `json:"amenities,omitempty"`
}

func (h Hotel) ResultID() string { return h.ID.String() }
func (h Hotel) PriceTag() Money  { return h.PricePerNight }

type Transport struct {
	ID          FlexID `json:"id"`
	Type        string `json:"type"`
	Price       Money  `json:"price"`
	Pickup      string `json:"pickup"`
	Dropoff     string `json:"dropoff"`
	VehicleType string `json:"vehicle_type"`
	Duration    string `json:"duration"`
}

func (t Transport) ResultID() string { return t.ID.String() }
func (t Transport) PriceTag() Money  { return t.Price }
