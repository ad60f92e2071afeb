// Package subnet implements the IPv4 subnet arithmetic behind the calculator.
//
// All functions are pure and operate octet by octet on 4-byte values. Counts
// are returned as uint64 so a /0 mask (2^32 addresses) is exact, and the
// usable host count saturates at zero for /31 and /32 masks.
package subnet

import (
	"math/bits"
	"net"

	"github.com/apparentlymart/go-cidr/cidr"
)

// Result groups every value derived from one (address, mask) pair.
type Result struct {
	Network     Address
	Broadcast   Address
	SubnetCount uint64
	HostCount   uint64

	Ones       int
	Wildcard   Address
	Contiguous bool
	FirstHost  Address
	LastHost   Address
	HasRange   bool
}

// NetworkAddress clears every host bit of ip.
func NetworkAddress(ip, mask Address) Address {
	var out Address
	for i := range out {
		out[i] = ip[i] & mask[i]
	}
	return out
}

// BroadcastAddress sets every host bit of ip.
func BroadcastAddress(ip, mask Address) Address {
	var out Address
	for i := range out {
		out[i] = ip[i] | (^mask[i] & 0xFF)
	}
	return out
}

// Wildcard returns the inverted mask.
func Wildcard(mask Address) Address {
	var out Address
	for i := range out {
		out[i] = ^mask[i]
	}
	return out
}

// Ones counts the set bits across all four mask octets. The mask does not
// have to be contiguous.
func Ones(mask Address) int {
	n := 0
	for _, b := range mask {
		n += bits.OnesCount8(b)
	}
	return n
}

// IsContiguous reports whether the mask is a run of ones followed by zeros.
func IsContiguous(mask Address) bool {
	ones, size := mask.Mask().Size()
	return size == 32 && ones == Ones(mask)
}

// SubnetCount returns 2^(32-ones).
func SubnetCount(mask Address) uint64 {
	return uint64(1) << uint(32-Ones(mask))
}

// HostCount returns SubnetCount minus the network and broadcast addresses,
// or zero when fewer than two addresses exist.
func HostCount(mask Address) uint64 {
	n := SubnetCount(mask)
	if n < 2 {
		return 0
	}
	return n - 2
}

// UsableRange returns the first and last usable host addresses of the
// network. ok is false for non-contiguous masks and for /31 and /32.
func UsableRange(network, mask Address) (first, last Address, ok bool) {
	if !IsContiguous(mask) || HostCount(mask) == 0 {
		return Zero, Zero, false
	}

	ipNet := &net.IPNet{IP: network.IP(), Mask: mask.Mask()}

	lo, err := cidr.Host(ipNet, 1)
	if err != nil {
		return Zero, Zero, false
	}
	hi, err := cidr.Host(ipNet, -2)
	if err != nil {
		return Zero, Zero, false
	}

	copy(first[:], lo.To4())
	copy(last[:], hi.To4())
	return first, last, true
}

// Calculate parses both inputs and derives every Result field. The returned
// error is a *ParseError naming the first field that failed to parse.
func Calculate(ipText, maskText string) (Result, error) {
	ip, err := Parse(ipText)
	if err != nil {
		return Result{}, &ParseError{Field: "IP", Input: ipText, Err: err}
	}
	mask, err := Parse(maskText)
	if err != nil {
		return Result{}, &ParseError{Field: "Subnet", Input: maskText, Err: err}
	}

	res := Result{
		Network:     NetworkAddress(ip, mask),
		Broadcast:   BroadcastAddress(ip, mask),
		SubnetCount: SubnetCount(mask),
		HostCount:   HostCount(mask),
		Ones:        Ones(mask),
		Wildcard:    Wildcard(mask),
		Contiguous:  IsContiguous(mask),
	}
	res.FirstHost, res.LastHost, res.HasRange = UsableRange(res.Network, mask)

	return res, nil
}

// CIDR renders the network in prefix notation. It is empty for
// non-contiguous masks.
func (r Result) CIDR() string {
	if !r.Contiguous {
		return ""
	}
	ipNet := &net.IPNet{IP: r.Network.IP(), Mask: net.CIDRMask(r.Ones, 32)}
	return ipNet.String()
}
