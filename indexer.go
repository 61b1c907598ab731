package whiteboard

import (
	"errors"
	"fmt"
	"strings"
)

// Keys are an integer part followed by an optional fraction, both in
// base-62 digits that sort in byte order. The head letter of the integer
// part encodes its length: 'a'..'z' for 2..27 bytes, 'Z'..'A' for 2..27
// bytes of negative integers. A fraction never ends in '0'.
const (
	indexDigits     = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	indexZero       = "a0"
	smallestInteger = "A00000000000000000000000000"
)

var errIndexExhausted = errors.New("index space exhausted")

// GenerateRootIndex returns a key with no neighbors.
func GenerateRootIndex() string { return indexZero }

// GenerateIndex returns a key strictly between prev and next. An empty
// string leaves that side open.
func GenerateIndex(prev, next string) (string, error) {
	k, err := keyBetween(prev, next)
	if err != nil {
		return "", fmt.Errorf("index between %q and %q: %w", prev, next, err)
	}
	return k, nil
}

// GenerateIndexForChild returns a key after parent's last child, or after
// parent's own key when it has no children.
func GenerateIndexForChild(parent Node) (string, error) {
	return GenerateIndex(lastKey(parent.Base()), "")
}

// GenerateIndexForWidget returns a key after layer's last child (or layer's
// own key) and before next. next may be nil.
func GenerateIndexForWidget(layer, next Node) (string, error) {
	hi := ""
	if next != nil {
		hi = next.Base().ZIndex
	}
	return GenerateIndex(lastKey(layer.Base()), hi)
}

func lastKey(l *Layer) string {
	if last := l.LastChild(); last != nil {
		return last.Base().ZIndex
	}
	return l.ZIndex
}

func keyBetween(a, b string) (string, error) {
	if a != "" {
		if err := validateKey(a); err != nil {
			return "", err
		}
	}
	if b != "" {
		if err := validateKey(b); err != nil {
			return "", err
		}
	}
	if a != "" && b != "" && a >= b {
		return "", errors.New("lower bound is not below upper bound")
	}

	switch {
	case a == "" && b == "":
		return indexZero, nil

	case a == "":
		ib, _ := integerPart(b)
		fb := b[len(ib):]
		if ib == smallestInteger {
			m, err := midpoint("", fb)
			return ib + m, err
		}
		if ib < b {
			return ib, nil
		}
		return decrementInteger(ib)

	case b == "":
		ia, _ := integerPart(a)
		fa := a[len(ia):]
		i, err := incrementInteger(ia)
		if err != nil {
			m, err := midpoint(fa, "")
			return ia + m, err
		}
		return i, nil
	}

	ia, _ := integerPart(a)
	fa := a[len(ia):]
	ib, _ := integerPart(b)
	fb := b[len(ib):]
	if ia == ib {
		m, err := midpoint(fa, fb)
		return ia + m, err
	}
	i, err := incrementInteger(ia)
	if err != nil {
		return "", err
	}
	if i < b {
		return i, nil
	}
	m, err := midpoint(fa, "")
	return ia + m, err
}

// midpoint returns a fraction strictly between a and b. An empty b is
// open.
func midpoint(a, b string) (string, error) {
	if b != "" && a >= b {
		return "", errors.New("lower bound is not below upper bound")
	}
	if strings.HasSuffix(a, "0") || strings.HasSuffix(b, "0") {
		return "", errors.New("trailing zero")
	}
	if b != "" {
		n := 0
		for n < len(b) && digitAt(a, n) == b[n] {
			n++
		}
		if n > 0 {
			m, err := midpoint(a[min(n, len(a)):], b[n:])
			return b[:n] + m, err
		}
	}

	digitA := 0
	if a != "" {
		digitA = strings.IndexByte(indexDigits, a[0])
	}
	digitB := len(indexDigits)
	if b != "" {
		digitB = strings.IndexByte(indexDigits, b[0])
	}
	if digitB-digitA > 1 {
		return string(indexDigits[(digitA+digitB+1)/2]), nil
	}
	if len(b) > 1 {
		return b[:1], nil
	}
	rest := ""
	if a != "" {
		rest = a[1:]
	}
	m, err := midpoint(rest, "")
	return string(indexDigits[digitA]) + m, err
}

func digitAt(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return '0'
}

func integerLength(head byte) (int, error) {
	switch {
	case head >= 'a' && head <= 'z':
		return int(head-'a') + 2, nil
	case head >= 'A' && head <= 'Z':
		return int('Z'-head) + 2, nil
	}
	return 0, fmt.Errorf("invalid head %q", head)
}

func integerPart(key string) (string, error) {
	n, err := integerLength(key[0])
	if err != nil {
		return "", err
	}
	if n > len(key) {
		return "", fmt.Errorf("key %q is too short", key)
	}
	return key[:n], nil
}

func validateKey(key string) error {
	if key == smallestInteger {
		return fmt.Errorf("key %q is reserved", key)
	}
	for i := 0; i < len(key); i++ {
		if strings.IndexByte(indexDigits, key[i]) < 0 {
			return fmt.Errorf("key %q has invalid digit %q", key, key[i])
		}
	}
	i, err := integerPart(key)
	if err != nil {
		return err
	}
	if strings.HasSuffix(key[len(i):], "0") {
		return fmt.Errorf("key %q has a trailing zero", key)
	}
	return nil
}

func incrementInteger(x string) (string, error) {
	head, digs := x[0], []byte(x[1:])
	carry := true
	for i := len(digs) - 1; carry && i >= 0; i-- {
		d := strings.IndexByte(indexDigits, digs[i]) + 1
		if d == len(indexDigits) {
			digs[i] = '0'
		} else {
			digs[i] = indexDigits[d]
			carry = false
		}
	}
	if !carry {
		return string(head) + string(digs), nil
	}
	switch head {
	case 'Z':
		return "a0", nil
	case 'z':
		return "", errIndexExhausted
	}
	h := head + 1
	if h > 'a' {
		digs = append(digs, '0')
	} else {
		digs = digs[:len(digs)-1]
	}
	return string(h) + string(digs), nil
}

func decrementInteger(x string) (string, error) {
	top := indexDigits[len(indexDigits)-1]
	head, digs := x[0], []byte(x[1:])
	borrow := true
	for i := len(digs) - 1; borrow && i >= 0; i-- {
		d := strings.IndexByte(indexDigits, digs[i]) - 1
		if d == -1 {
			digs[i] = top
		} else {
			digs[i] = indexDigits[d]
			borrow = false
		}
	}
	if !borrow {
		return string(head) + string(digs), nil
	}
	switch head {
	case 'a':
		return "Z" + string(top), nil
	case 'A':
		return "", errIndexExhausted
	}
	h := head - 1
	if h < 'Z' {
		digs = append(digs, top)
	} else {
		digs = digs[:len(digs)-1]
	}
	return string(h) + string(digs), nil
}
