package ip2location

import "net/netip"

// addrTable describes the range table of one address family.
type addrTable struct {
	count     uint32
	base      uint32
	indexBase uint32
	// extra is how many bytes the stored range start takes beyond 4.
	extra uint64
}

func (t addrTable) isV6() bool { return t.extra > 0 }

func (db *DB) stride(t addrTable) uint64 {
	return uint64(db.header.ColumnCount)*4 + t.extra
}

func (db *DB) rowPos(t addrTable, index uint32) uint64 {
	return uint64(t.base) + uint64(index)*db.stride(t)
}

// stringAdjust is added to a string pointer to reach its length byte. The
// country column points at the short code, the long name starts 3 bytes on.
func stringAdjust(f Field) uint64 {
	if f == FieldCountryLong {
		return 4
	}
	return 1
}

// readRecord decodes range record index of table t. Any failed read fails the
// whole record.
func (db *DB) readRecord(t addrTable, index uint32) (*Record, error) {
	rec := &Record{}
	row := db.rowPos(t, index)

	var addr netip.Addr
	if t.isV6() {
		// row already uses the v6 stride; columns*4 alone would land inside
		// an earlier record
		from, err := db.buf.readIPV6(row)
		if err != nil {
			return nil, err
		}
		addr = keyToAddrV6(from)
	} else {
		from, err := db.buf.readIPV4(row)
		if err != nil {
			return nil, err
		}
		addr = keyToAddrV4(from)
	}
	ip := addr.String()
	rec.IP = &ip

	for f := Field(0); f < fieldCount; f++ {
		col := fieldPosition(db.header.Type, f)
		if col == 0 {
			continue
		}
		pos := row + t.extra + 4*uint64(col-1)

		if dst := rec.floatField(f); dst != nil {
			v, err := db.buf.readFloat32(pos)
			if err != nil {
				return nil, err
			}
			*dst = &v
			continue
		}

		ptr, err := db.buf.readUint32(pos)
		if err != nil {
			return nil, err
		}
		s, err := db.buf.readString(uint64(ptr) + stringAdjust(f))
		if err != nil {
			return nil, err
		}
		*rec.stringField(f) = &s
	}
	return rec, nil
}
