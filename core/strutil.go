package core

// utoa converts an unsigned integer to a string without using fmt.
// Keeps fmt out of the TinyGo image.
func utoa(n uint64) string {
	var buf [20]byte
	return string(appendUint(buf[:0], n))
}

// appendUint appends the decimal form of n to dst
func appendUint(dst []byte, n uint64) []byte {
	if n == 0 {
		return append(dst, '0')
	}

	var buf [20]byte
	pos := len(buf)
	for n > 0 {
		pos--
		buf[pos] = byte('0' + n%10)
		n /= 10
	}
	return append(dst, buf[pos:]...)
}
