package ip2location

import (
	"encoding/binary"
	"fmt"
)

// headerLength is the size of the fixed database header in bytes.
const headerLength = 5 + 6*4

// parseHeader reads the fixed header from the start of the buffer.
func parseHeader(buf *dbBuffer) (*Header, error) {
	if buf.getLength() < headerLength {
		return nil, fmt.Errorf("%w: database is %d bytes, header needs %d",
			ErrMalformedHeader, buf.getLength(), headerLength)
	}
	b, err := buf.readCount(1, headerLength)
	if err != nil {
		return nil, err
	}
	header := &Header{}
	header.Type = b[0]
	header.ColumnCount = b[1]
	header.Year = b[2]
	header.Month = b[3]
	header.Day = b[4]
	header.CountV4 = binary.LittleEndian.Uint32(b[5:9])
	header.baseV4 = binary.LittleEndian.Uint32(b[9:13])
	header.CountV6 = binary.LittleEndian.Uint32(b[13:17])
	header.baseV6 = binary.LittleEndian.Uint32(b[17:21])
	header.indexBaseV4 = binary.LittleEndian.Uint32(b[21:25])
	header.indexBaseV6 = binary.LittleEndian.Uint32(b[25:29])
	if header.Type == 0 || header.Type > maxDBType {
		return nil, fmt.Errorf("%w: unsupported database type %d", ErrMalformedHeader, header.Type)
	}
	if header.ColumnCount == 0 {
		return nil, fmt.Errorf("%w: zero column count", ErrMalformedHeader)
	}
	for _, f := range Fields(header.Type) {
		if fieldPosition(header.Type, f) > header.ColumnCount {
			return nil, fmt.Errorf("%w: type %d stores %s in column %d, records have %d",
				ErrMalformedHeader, header.Type, f, fieldPosition(header.Type, f), header.ColumnCount)
		}
	}
	return header, nil
}
