package ip2location

import (
	"encoding/binary"
	"fmt"
	"net"
	"net/netip"
	"strings"

	"github.com/AdguardTeam/golibs/netutil"
	"lukechampine.com/uint128"
)

// ipv4Key - ip v4 as an ordered search key
type ipv4Key uint32

// Cmp compares k and o and returns -1, 0 or +1.
func (k ipv4Key) Cmp(o ipv4Key) int {
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	}
	return 0
}

// parseAddr - ip text to address, ipv4-mapped ipv6 becomes ipv4
func parseAddr(text string) (netip.Addr, error) {
	addr, err := netip.ParseAddr(strings.TrimSpace(text))
	if err != nil {
		return netip.Addr{}, fmt.Errorf("%w: %q", ErrInvalidAddress, text)
	}
	return addr.WithZone("").Unmap(), nil
}

// ipToAddr - net.IP to address
func ipToAddr(ip net.IP) (netip.Addr, error) {
	addr, ok := netip.AddrFromSlice(ip)
	if !ok {
		return netip.Addr{}, fmt.Errorf("%w: %v", ErrInvalidAddress, ip)
	}
	return addr.Unmap(), nil
}

// ipV4ToKey - ip v4 to int
func ipV4ToKey(addr netip.Addr) ipv4Key {
	b := addr.As4()
	return ipv4Key(binary.BigEndian.Uint32(b[:]))
}

// ipV6ToKey - ip v6 to int
func ipV6ToKey(addr netip.Addr) uint128.Uint128 {
	b := addr.As16()
	return uint128.FromBytesBE(b[:])
}

func keyToAddrV4(k ipv4Key) netip.Addr {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(k))
	return netip.AddrFrom4(b)
}

func keyToAddrV6(k uint128.Uint128) netip.Addr {
	var b [16]byte
	k.PutBytesBE(b[:])
	return netip.AddrFrom16(b)
}

func addrFamily(addr netip.Addr) netutil.AddrFamily {
	switch {
	case addr.Is4():
		return netutil.AddrFamilyIPv4
	case addr.Is6():
		return netutil.AddrFamilyIPv6
	}
	return netutil.AddrFamilyNone
}
