package dnsutil

const (
	TCPNetwork = "tcp" // Yeah, yeah, a bit silly, but case is important
	UDPNetwork = "udp" // so having consts here avoids pernickety errors

	MaxUDPSize uint16 = 1232 // Generally suggested as universally safe in edns0

	WildcardLabel = "*" // Leftmost label of a wildcard owner name
)
