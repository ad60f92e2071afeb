package subnet

import (
	"fmt"
	"net"
	"net/netip"
	"strings"
)

// Address is an IPv4 address held as four octets.
type Address [4]byte

// Zero is the placeholder shown before anything has been calculated.
var Zero Address

// String renders the address in dotted-decimal form.
func (a Address) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", a[0], a[1], a[2], a[3])
}

// IP converts the address into a 4-byte net.IP.
func (a Address) IP() net.IP {
	return net.IPv4(a[0], a[1], a[2], a[3]).To4()
}

// Mask reinterprets the address as a net.IPMask.
func (a Address) Mask() net.IPMask {
	return net.IPv4Mask(a[0], a[1], a[2], a[3])
}

// ParseError reports a field whose text is not a dotted-decimal IPv4 literal.
type ParseError struct {
	Field string
	Input string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Input == "" {
		return e.Field + " is empty"
	}
	return fmt.Sprintf("invalid %s %q: %v", e.Field, e.Input, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Parse reads a strict dotted-decimal IPv4 literal. Leading zeros,
// whitespace, zones and IPv6 forms are rejected.
func Parse(s string) (Address, error) {
	if s == "" {
		return Zero, fmt.Errorf("address cannot be empty")
	}
	if strings.ContainsAny(s, ":%") {
		return Zero, fmt.Errorf("only IPv4 addresses are supported")
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return Zero, fmt.Errorf("not a dotted-decimal IPv4 address")
	}
	if !addr.Is4() {
		return Zero, fmt.Errorf("only IPv4 addresses are supported")
	}

	return Address(addr.As4()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}
