// Package ip2location reads IP2Location BIN databases (DB1 through DB24).
//
// A database is opened once and is read-only afterwards; any number of
// goroutines may look addresses up concurrently.
//
//	db, err := ip2location.Open("IPV6-COUNTRY.BIN")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	rec, err := db.Lookup("8.8.8.8")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if rec != nil && rec.CountryShort != nil {
//	    fmt.Println(*rec.CountryShort)
//	}
//
// Fields the database type does not carry are nil in the returned Record.
// A nil Record with a nil error means no range covers the address.
package ip2location
