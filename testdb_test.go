package ip2location

import (
	"encoding/binary"
	"math"
	"net/netip"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
	"lukechampine.com/uint128"
)

// testRange is one range of a synthetic database, running from its from
// address up to the next range's from address.
type testRange struct {
	from     string
	values   map[Field]string
	lat, lon float32
}

// testDB builds synthetic BIN images in the on-disk format.
type testDB struct {
	dbType uint8
	v4     []testRange
	v6     []testRange
	// v4End and v6End are the sentinel addresses; the maximum address when empty.
	v4End string
	v6End string
	index bool
}

const testHeaderSize = 64

func columnsFor(dbType uint8) uint8 {
	cols := uint8(1)
	for f := Field(0); f < fieldCount; f++ {
		if p := fieldPosition(dbType, f); p > cols {
			cols = p
		}
	}
	return cols
}

func country(short, long string) map[Field]string {
	return map[Field]string{FieldCountryShort: short, FieldCountryLong: long}
}

type testImage struct {
	buf     []byte
	strings map[string]uint32
}

func (img *testImage) addString(s string) uint32 {
	if ptr, ok := img.strings[s]; ok {
		return ptr
	}
	ptr := uint32(len(img.buf))
	img.buf = append(img.buf, byte(len(s)))
	img.buf = append(img.buf, s...)
	img.strings[s] = ptr
	return ptr
}

func (img *testImage) addCountry(short, long string) uint32 {
	ptr := uint32(len(img.buf))
	img.buf = append(img.buf, byte(len(short)))
	img.buf = append(img.buf, short...)
	img.buf = append(img.buf, byte(len(long)))
	img.buf = append(img.buf, long...)
	return ptr
}

func (img *testImage) putUint32(pos int, v uint32) {
	binary.LittleEndian.PutUint32(img.buf[pos:], v)
}

// putFields writes the columns of r into the row whose address part ends at
// pos.
func (img *testImage) putFields(dbType uint8, pos int, r testRange) {
	for f := Field(0); f < fieldCount; f++ {
		col := fieldPosition(dbType, f)
		if col == 0 || f == FieldCountryLong {
			continue
		}
		off := pos + 4*(int(col)-2)
		switch f {
		case FieldLatitude:
			img.putUint32(off, math.Float32bits(r.lat))
		case FieldLongitude:
			img.putUint32(off, math.Float32bits(r.lon))
		case FieldCountryShort:
			img.putUint32(off, img.addCountry(r.values[FieldCountryShort], r.values[FieldCountryLong]))
		default:
			img.putUint32(off, img.addString(r.values[f]))
		}
	}
}

func putIPV6(b []byte, k uint128.Uint128) {
	binary.LittleEndian.PutUint32(b[0:], uint32(k.Lo))
	binary.LittleEndian.PutUint32(b[4:], uint32(k.Lo>>32))
	binary.LittleEndian.PutUint32(b[8:], uint32(k.Hi))
	binary.LittleEndian.PutUint32(b[12:], uint32(k.Hi>>32))
}

// lastAtOrBefore returns the index of the last start <= x, or 0.
func lastAtOrBefore(n int, greater func(i int) bool) uint32 {
	i := sort.Search(n, greater) - 1
	if i < 0 {
		i = 0
	}
	return uint32(i)
}

func (tdb testDB) build(t testing.TB) []byte {
	t.Helper()
	cols := columnsFor(tdb.dbType)
	strideV4 := int(cols) * 4
	strideV6 := strideV4 + 12

	pos := testHeaderSize
	indexV4, indexV6 := -1, -1
	if tdb.index && len(tdb.v4) > 0 {
		indexV4 = pos
		pos += 65536 * 8
	}
	if tdb.index && len(tdb.v6) > 0 {
		indexV6 = pos
		pos += 65536 * 8
	}
	baseV4 := pos
	pos += (len(tdb.v4) + 1) * strideV4
	baseV6 := -1
	if len(tdb.v6) > 0 {
		baseV6 = pos
		pos += (len(tdb.v6) + 1) * strideV6
	}
	img := &testImage{buf: make([]byte, pos), strings: map[string]uint32{}}

	img.buf[0] = tdb.dbType
	img.buf[1] = cols
	img.buf[2], img.buf[3], img.buf[4] = 24, 6, 1
	oneBased := func(p int) uint32 {
		if p < 0 {
			return 0
		}
		return uint32(p + 1)
	}
	img.putUint32(5, uint32(len(tdb.v4)))
	img.putUint32(9, oneBased(baseV4))
	img.putUint32(13, uint32(len(tdb.v6)))
	img.putUint32(17, oneBased(baseV6))
	img.putUint32(21, oneBased(indexV4))
	img.putUint32(25, oneBased(indexV6))

	startsV4 := make([]uint32, len(tdb.v4))
	for i, r := range tdb.v4 {
		startsV4[i] = uint32(ipV4ToKey(netip.MustParseAddr(r.from)))
		row := baseV4 + i*strideV4
		img.putUint32(row, startsV4[i])
		img.putFields(tdb.dbType, row+4, r)
	}
	endV4 := uint32(math.MaxUint32)
	if tdb.v4End != "" {
		endV4 = uint32(ipV4ToKey(netip.MustParseAddr(tdb.v4End)))
	}
	img.putUint32(baseV4+len(tdb.v4)*strideV4, endV4)

	startsV6 := make([]uint128.Uint128, len(tdb.v6))
	for i, r := range tdb.v6 {
		startsV6[i] = ipV6ToKey(netip.MustParseAddr(r.from))
		row := baseV6 + i*strideV6
		putIPV6(img.buf[row:], startsV6[i])
		img.putFields(tdb.dbType, row+16, r)
	}
	if baseV6 >= 0 {
		endV6 := uint128.Max
		if tdb.v6End != "" {
			endV6 = ipV6ToKey(netip.MustParseAddr(tdb.v6End))
		}
		putIPV6(img.buf[baseV6+len(tdb.v6)*strideV6:], endV6)
	}

	if indexV4 >= 0 {
		for slot := uint32(0); slot < 65536; slot++ {
			lo, hi := slot<<16, slot<<16|0xffff
			entry := indexV4 + int(slot)*8
			img.putUint32(entry, lastAtOrBefore(len(startsV4), func(i int) bool { return startsV4[i] > lo }))
			img.putUint32(entry+4, lastAtOrBefore(len(startsV4), func(i int) bool { return startsV4[i] > hi }))
		}
	}
	if indexV6 >= 0 {
		for slot := uint64(0); slot < 65536; slot++ {
			lo := uint128.From64(slot).Lsh(112)
			hi := lo.Or(uint128.Max.Rsh(16))
			entry := indexV6 + int(slot)*8
			img.putUint32(entry, lastAtOrBefore(len(startsV6), func(i int) bool { return startsV6[i].Cmp(lo) > 0 }))
			img.putUint32(entry+4, lastAtOrBefore(len(startsV6), func(i int) bool { return startsV6[i].Cmp(hi) > 0 }))
		}
	}
	return img.buf
}

func (tdb testDB) open(t testing.TB, opts ...Option) *DB {
	t.Helper()
	db, err := FromBytes(tdb.build(t), opts...)
	require.NoError(t, err)
	return db
}

// countryDB is a DB1 database with both address families.
func countryDB(index bool) testDB {
	return testDB{
		dbType: 1,
		index:  index,
		v4: []testRange{
			{from: "1.0.0.0", values: country("AU", "Australia")},
			{from: "19.0.0.0", values: country("US", "United States of America")},
			{from: "25.0.0.0", values: country("GB", "United Kingdom of Great Britain and Northern Ireland")},
			{from: "43.0.0.0", values: country("JP", "Japan")},
			{from: "47.0.0.0", values: country("CA", "Canada")},
			{from: "51.0.0.0", values: country("GB", "United Kingdom of Great Britain and Northern Ireland")},
			{from: "53.0.0.0", values: country("DE", "Germany")},
			{from: "80.0.0.0", values: country("GB", "United Kingdom of Great Britain and Northern Ireland")},
			{from: "81.0.0.0", values: country("IL", "Israel")},
			{from: "83.0.0.0", values: country("PL", "Poland")},
			{from: "85.0.0.0", values: country("CH", "Switzerland")},
			{from: "86.0.0.0", values: country("ZZ", "Zzland")},
		},
		v4End: "224.0.0.0",
		v6: []testRange{
			{from: "2001:200::", values: country("JP", "Japan")},
			{from: "2001:201::", values: country("US", "United States of America")},
			{from: "2a01:4f8::", values: country("DE", "Germany")},
			{from: "2a01:ad20::", values: country("ES", "Spain")},
			{from: "2a01:af60::", values: country("PL", "Poland")},
			{from: "2a01:b200::", values: country("SK", "Slovakia")},
			{from: "2a01:b340::", values: country("IE", "Ireland")},
			{from: "2a01:b4c0::", values: country("CZ", "Czechia")},
			{from: "2a01:b600::", values: country("IT", "Italy")},
			{from: "2a01:b6c0::", values: country("SE", "Sweden")},
			{from: "2a01:b700::", values: country("US", "United States of America")},
		},
		v6End: "3000::",
	}
}

// v4OnlyDB is countryDB without IPv6 ranges.
func v4OnlyDB(index bool) testDB {
	tdb := countryDB(index)
	tdb.v6 = nil
	tdb.v6End = ""
	return tdb
}

// fullRange fills every field the type carries with values derived from tag.
func fullRange(dbType uint8, from, tag string) testRange {
	r := testRange{from: from, values: map[Field]string{}, lat: 1.5, lon: -2.25}
	for _, f := range Fields(dbType) {
		r.values[f] = tag + "-" + f.String()
	}
	r.values[FieldCountryShort] = tag[:2]
	return r
}
