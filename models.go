package ip2location

import (
	"strconv"
	"time"
)

// Header - model for meta information about database
type Header struct {
	//public members
	Type        uint8  // database type, selects the field layout (DB1..DB24)
	ColumnCount uint8  // columns per range record
	Year        uint8  // build year, offset from 2000
	Month       uint8  // build month
	Day         uint8  // build day
	CountV4     uint32 // amount of ip v4 ranges
	CountV6     uint32 // amount of ip v6 ranges

	// private members
	baseV4      uint32
	baseV6      uint32
	indexBaseV4 uint32
	indexBaseV6 uint32
}

// Date returns the database build date.
func (h Header) Date() time.Time {
	return time.Date(2000+int(h.Year), time.Month(h.Month), int(h.Day), 0, 0, 0, 0, time.UTC)
}

// HasIndexV4 reports whether the database carries an IPv4 index table.
func (h Header) HasIndexV4() bool { return h.indexBaseV4 > 0 }

// HasIndexV6 reports whether the database carries an IPv6 index table.
func (h Header) HasIndexV6() bool { return h.indexBaseV6 > 0 }

// Record - model for database output structure. A nil field is one the
// database type does not carry.
type Record struct {
	IP                 *string  `json:"ip,omitempty" msgpack:"ip,omitempty"`
	CountryShort       *string  `json:"country_short,omitempty" msgpack:"country_short,omitempty"`
	CountryLong        *string  `json:"country_long,omitempty" msgpack:"country_long,omitempty"`
	Region             *string  `json:"region,omitempty" msgpack:"region,omitempty"`
	City               *string  `json:"city,omitempty" msgpack:"city,omitempty"`
	ISP                *string  `json:"isp,omitempty" msgpack:"isp,omitempty"`
	Latitude           *float32 `json:"latitude,omitempty" msgpack:"latitude,omitempty"`
	Longitude          *float32 `json:"longitude,omitempty" msgpack:"longitude,omitempty"`
	Domain             *string  `json:"domain,omitempty" msgpack:"domain,omitempty"`
	ZipCode            *string  `json:"zipcode,omitempty" msgpack:"zipcode,omitempty"`
	TimeZone           *string  `json:"timezone,omitempty" msgpack:"timezone,omitempty"`
	NetSpeed           *string  `json:"netspeed,omitempty" msgpack:"netspeed,omitempty"`
	IDDCode            *string  `json:"iddcode,omitempty" msgpack:"iddcode,omitempty"`
	AreaCode           *string  `json:"area_code,omitempty" msgpack:"area_code,omitempty"`
	WeatherStationCode *string  `json:"weather_code,omitempty" msgpack:"weather_code,omitempty"`
	WeatherStationName *string  `json:"weather_name,omitempty" msgpack:"weather_name,omitempty"`
	MCC                *string  `json:"mcc,omitempty" msgpack:"mcc,omitempty"`
	MNC                *string  `json:"mnc,omitempty" msgpack:"mnc,omitempty"`
	MobileBrand        *string  `json:"mobile_brand,omitempty" msgpack:"mobile_brand,omitempty"`
	Elevation          *string  `json:"elevation,omitempty" msgpack:"elevation,omitempty"`
	UsageType          *string  `json:"usage_type,omitempty" msgpack:"usage_type,omitempty"`
}

func (rec *Record) stringField(f Field) **string {
	switch f {
	case FieldCountryShort:
		return &rec.CountryShort
	case FieldCountryLong:
		return &rec.CountryLong
	case FieldRegion:
		return &rec.Region
	case FieldCity:
		return &rec.City
	case FieldISP:
		return &rec.ISP
	case FieldDomain:
		return &rec.Domain
	case FieldZipCode:
		return &rec.ZipCode
	case FieldTimeZone:
		return &rec.TimeZone
	case FieldNetSpeed:
		return &rec.NetSpeed
	case FieldIDDCode:
		return &rec.IDDCode
	case FieldAreaCode:
		return &rec.AreaCode
	case FieldWeatherStationCode:
		return &rec.WeatherStationCode
	case FieldWeatherStationName:
		return &rec.WeatherStationName
	case FieldMCC:
		return &rec.MCC
	case FieldMNC:
		return &rec.MNC
	case FieldMobileBrand:
		return &rec.MobileBrand
	case FieldElevation:
		return &rec.Elevation
	case FieldUsageType:
		return &rec.UsageType
	}
	return nil
}

func (rec *Record) floatField(f Field) **float32 {
	switch f {
	case FieldLatitude:
		return &rec.Latitude
	case FieldLongitude:
		return &rec.Longitude
	}
	return nil
}

// Has reports whether field f is populated.
func (rec *Record) Has(f Field) bool {
	if p := rec.stringField(f); p != nil {
		return *p != nil
	}
	if p := rec.floatField(f); p != nil {
		return *p != nil
	}
	return false
}

// Value returns field f formatted as text, and whether it is populated.
func (rec *Record) Value(f Field) (string, bool) {
	if p := rec.stringField(f); p != nil && *p != nil {
		return **p, true
	}
	if p := rec.floatField(f); p != nil && *p != nil {
		return strconv.FormatFloat(float64(**p), 'f', -1, 32), true
	}
	return "", false
}
