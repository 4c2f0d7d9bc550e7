package ip2location

import (
	"fmt"
	"net"
	"net/netip"

	"github.com/AdguardTeam/golibs/netutil"
	"github.com/grailbio/base/log"
	"lukechampine.com/uint128"
)

// ---------------- PUBLIC BLOCK ----------------

// DB is an open IP2Location BIN database. It is immutable and safe for
// concurrent lookups.
type DB struct {
	buf    *dbBuffer
	header *Header
	opts   options
}

// Open - factory method for db client. Database types DB1 through DB24 are
// supported; any other type fails with ErrMalformedHeader.
func Open(filename string, opts ...Option) (*DB, error) {
	o := applyOptions(opts)
	buf, err := loadDBBuffer(filename, o.loadMode)
	if err != nil {
		return nil, err
	}
	db, err := newDB(buf, o)
	if err != nil {
		_ = buf.close()
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	log.Debug.Printf("ip2location: opened %s: type DB%d, %d columns, %d ipv4 ranges, %d ipv6 ranges, built %s",
		filename, db.header.Type, db.header.ColumnCount, db.header.CountV4, db.header.CountV6,
		db.header.Date().Format("2006-01-02"))
	return db, nil
}

// FromBytes opens a database image already held in memory. The slice must not
// be modified while the DB is in use.
func FromBytes(data []byte, opts ...Option) (*DB, error) {
	return newDB(newDBBuffer(data), applyOptions(opts))
}

// Header returns the database metadata.
func (db *DB) Header() Header {
	return *db.header
}

// Lookup - method for getting actual record using ip address text. A nil
// record with a nil error means no range covers the address. IPv4-mapped IPv6
// literals (::ffff:a.b.c.d) search the IPv4 ranges, so they never fail with
// ErrWrongAddressFamily.
func (db *DB) Lookup(ip string) (*Record, error) {
	addr, err := parseAddr(ip)
	if err != nil {
		return nil, err
	}
	return db.LookupAddr(addr)
}

// LookupIP is Lookup for a net.IP.
func (db *DB) LookupIP(ip net.IP) (*Record, error) {
	addr, err := ipToAddr(ip)
	if err != nil {
		return nil, err
	}
	return db.LookupAddr(addr)
}

// LookupAddr is Lookup for a netip.Addr.
func (db *DB) LookupAddr(addr netip.Addr) (*Record, error) {
	addr = addr.WithZone("").Unmap()
	switch addrFamily(addr) {
	case netutil.AddrFamilyIPv4:
		return db.getRecordV4(addr)
	case netutil.AddrFamilyIPv6:
		return db.getRecordV6(addr)
	}
	return nil, fmt.Errorf("%w: zero address", ErrInvalidAddress)
}

// Close - method for closing db. Lookups must not run concurrently with or
// after Close.
func (db *DB) Close() error {
	return db.buf.close()
}

// ---------------- PRIVATE BLOCK ----------------

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func newDB(buf *dbBuffer, o options) (*DB, error) {
	header, err := parseHeader(buf)
	if err != nil {
		return nil, err
	}
	return &DB{buf: buf, header: header, opts: o}, nil
}

func (db *DB) tableV4() addrTable {
	return addrTable{
		count:     db.header.CountV4,
		base:      db.header.baseV4,
		indexBase: db.header.indexBaseV4,
	}
}

func (db *DB) tableV6() addrTable {
	return addrTable{
		count:     db.header.CountV6,
		base:      db.header.baseV6,
		indexBase: db.header.indexBaseV6,
		extra:     12,
	}
}

// searchWindow returns the inclusive record window to search, narrowed by the
// index table at slot when there is one.
func (db *DB) searchWindow(t addrTable, slot uint32) (low, high uint32, ok bool, err error) {
	if t.count == 0 {
		return 0, 0, false, nil
	}
	high = t.count
	if db.opts.useIndex && t.indexBase > 0 {
		pos := uint64(t.indexBase) + uint64(slot)*8
		if low, err = db.buf.readUint32(pos); err != nil {
			return 0, 0, false, err
		}
		if high, err = db.buf.readUint32(pos + 4); err != nil {
			return 0, 0, false, err
		}
	}
	// the record at count is the sentinel, it only bounds the one before it
	if high > t.count-1 {
		high = t.count - 1
	}
	return low, high, low <= high, nil
}

func (db *DB) getRecordV4(addr netip.Addr) (*Record, error) {
	t := db.tableV4()
	searchIPInt := ipV4ToKey(addr)
	low, high, ok, err := db.searchWindow(t, uint32(searchIPInt>>16))
	if err != nil || !ok {
		return nil, err
	}
	idx, found, err := binarySearch(low, high, searchIPInt, func(mid uint32) (ipv4Key, ipv4Key, error) {
		from, err := db.buf.readIPV4(db.rowPos(t, mid))
		if err != nil {
			return 0, 0, err
		}
		to, err := db.buf.readIPV4(db.rowPos(t, mid+1))
		return from, to, err
	})
	if err != nil || !found {
		return nil, err
	}
	return db.readRecord(t, idx)
}

func (db *DB) getRecordV6(addr netip.Addr) (*Record, error) {
	t := db.tableV6()
	if t.count == 0 {
		return nil, fmt.Errorf("%w: %v lookup of %s needs an IPv6 database",
			ErrWrongAddressFamily, addrFamily(addr), addr)
	}
	searchIPInt := ipV6ToKey(addr)
	low, high, ok, err := db.searchWindow(t, uint32(searchIPInt.Rsh(112).Lo))
	if err != nil || !ok {
		return nil, err
	}
	idx, found, err := binarySearch(low, high, searchIPInt, func(mid uint32) (uint128.Uint128, uint128.Uint128, error) {
		from, err := db.buf.readIPV6(db.rowPos(t, mid))
		if err != nil {
			return uint128.Zero, uint128.Zero, err
		}
		to, err := db.buf.readIPV6(db.rowPos(t, mid+1))
		return from, to, err
	})
	if err != nil || !found {
		return nil, err
	}
	return db.readRecord(t, idx)
}
