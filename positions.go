package ip2location

// maxDBType is the highest database type (DB1..DB24) the layout table knows.
const maxDBType = 24

// Field identifies one optional attribute of a Record.
type Field int

// Optional record fields. CountryShort and CountryLong share one column.
const (
	FieldCountryShort Field = iota
	FieldCountryLong
	FieldRegion
	FieldCity
	FieldISP
	FieldLatitude
	FieldLongitude
	FieldDomain
	FieldZipCode
	FieldTimeZone
	FieldNetSpeed
	FieldIDDCode
	FieldAreaCode
	FieldWeatherStationCode
	FieldWeatherStationName
	FieldMCC
	FieldMNC
	FieldMobileBrand
	FieldElevation
	FieldUsageType
	fieldCount
)

var fieldNames = [fieldCount]string{
	"country_short", "country_long", "region", "city", "isp", "latitude",
	"longitude", "domain", "zipcode", "timezone", "netspeed", "iddcode",
	"area_code", "weather_code", "weather_name", "mcc", "mnc",
	"mobile_brand", "elevation", "usage_type",
}

func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "unknown"
	}
	return fieldNames[f]
}

type column int

const (
	colCountry column = iota
	colRegion
	colCity
	colISP
	colLatitude
	colLongitude
	colDomain
	colZipCode
	colTimeZone
	colNetSpeed
	colIDDCode
	colAreaCode
	colWeatherStationCode
	colWeatherStationName
	colMCC
	colMNC
	colMobileBrand
	colElevation
	colUsageType
	columnCount
)

var fieldColumns = [fieldCount]column{
	FieldCountryShort:       colCountry,
	FieldCountryLong:        colCountry,
	FieldRegion:             colRegion,
	FieldCity:               colCity,
	FieldISP:                colISP,
	FieldLatitude:           colLatitude,
	FieldLongitude:          colLongitude,
	FieldDomain:             colDomain,
	FieldZipCode:            colZipCode,
	FieldTimeZone:           colTimeZone,
	FieldNetSpeed:           colNetSpeed,
	FieldIDDCode:            colIDDCode,
	FieldAreaCode:           colAreaCode,
	FieldWeatherStationCode: colWeatherStationCode,
	FieldWeatherStationName: colWeatherStationName,
	FieldMCC:                colMCC,
	FieldMNC:                colMNC,
	FieldMobileBrand:        colMobileBrand,
	FieldElevation:          colElevation,
	FieldUsageType:          colUsageType,
}

// positions holds, per column and database type, the 1-based column index of
// the field within a range record, or 0 when the type lacks the field.
// Index 0 of each row is unused.
var positions = [columnCount][maxDBType + 1]uint8{
	colCountry:            {0, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2},
	colRegion:             {0, 0, 0, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3},
	colCity:               {0, 0, 0, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4, 4},
	colISP:                {0, 0, 3, 0, 5, 0, 7, 5, 7, 0, 8, 0, 9, 0, 9, 0, 9, 0, 9, 7, 9, 0, 9, 7, 9},
	colLatitude:           {0, 0, 0, 0, 0, 5, 5, 0, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5},
	colLongitude:          {0, 0, 0, 0, 0, 6, 6, 0, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6, 6},
	colDomain:             {0, 0, 0, 0, 0, 0, 0, 6, 8, 0, 9, 0, 10, 0, 10, 0, 10, 0, 10, 8, 10, 0, 10, 8, 10},
	colZipCode:            {0, 0, 0, 0, 0, 0, 0, 0, 0, 7, 7, 7, 7, 0, 7, 7, 7, 0, 7, 0, 7, 7, 7, 0, 7},
	colTimeZone:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 8, 7, 8, 8, 8, 7, 8, 0, 8, 8, 8, 0, 8},
	colNetSpeed:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 8, 11, 0, 11, 8, 11, 0, 11, 0, 11, 0, 11},
	colIDDCode:            {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 12, 0, 12, 0, 12, 9, 12, 0, 12},
	colAreaCode:           {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 13, 0, 13, 0, 13, 10, 13, 0, 13},
	colWeatherStationCode: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 14, 0, 14, 0, 14, 0, 14},
	colWeatherStationName: {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 15, 0, 15, 0, 15, 0, 15},
	colMCC:                {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 9, 16, 0, 16, 9, 16},
	colMNC:                {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 10, 17, 0, 17, 10, 17},
	colMobileBrand:        {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 11, 18, 0, 18, 11, 18},
	colElevation:          {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 11, 19, 0, 19},
	colUsageType:          {0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 12, 20},
}

// fieldPosition returns the 1-based column of f for dbType, or 0 if absent.
func fieldPosition(dbType uint8, f Field) uint8 {
	if dbType == 0 || dbType > maxDBType || f < 0 || f >= fieldCount {
		return 0
	}
	return positions[fieldColumns[f]][dbType]
}

// Fields lists the fields populated in every record of a dbType database.
func Fields(dbType uint8) []Field {
	var fields []Field
	for f := Field(0); f < fieldCount; f++ {
		if fieldPosition(dbType, f) != 0 {
			fields = append(fields, f)
		}
	}
	return fields
}
