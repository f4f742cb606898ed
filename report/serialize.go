package report

import (
	"strconv"
	"unicode/utf8"
)

const (
	// headroom is the minimum free capacity required before another
	// frame object is emitted. Anything less and the frame list is cut
	// short so the closing delimiters always fit.
	headroom = 512

	// maxStringBytes bounds any single string field. Generic Go symbol
	// names can run long; truncating them keeps every frame object
	// under the headroom.
	maxStringBytes = 120
)

const hexDigits = "0123456789abcdef"

// Append renders r as one JSON document into dst, returning the
// extended slice. dst must be a fixed-capacity buffer sliced to zero
// length; Append stops adding frames once less than headroom bytes of
// capacity remain and closes the document regardless, so the output is
// always syntactically valid and never exceeds the buffer. Truncation
// is policy, not an error.
func Append(dst []byte, r *Report) []byte {
	dst = append(dst, `{"signal":`...)
	dst = strconv.AppendInt(dst, int64(r.Signal), 10)
	dst = append(dst, `,"signalName":`...)
	dst = appendString(dst, r.Name)
	dst = append(dst, `,"signalDescription":`...)
	dst = appendString(dst, r.Description)
	dst = append(dst, `,"faultAddress":`...)
	dst = appendAddr(dst, r.FaultAddr)
	dst = append(dst, `,"threadId":`...)
	dst = strconv.AppendUint(dst, r.ThreadID, 10)
	dst = append(dst, `,"siCode":`...)
	dst = strconv.AppendInt(dst, int64(r.Code), 10)
	dst = append(dst, `,"sessionId":`...)
	dst = appendString(dst, r.SessionID)
	dst = append(dst, `,"capturedAt":`...)
	dst = strconv.AppendInt(dst, r.CapturedAt, 10)
	dst = append(dst, `,"frames":[`...)
	emitted := 0
	for i, f := range r.Frames {
		if cap(dst)-len(dst) < headroom {
			break
		}
		if emitted > 0 {
			dst = append(dst, ',')
		}
		dst = appendFrame(dst, i, f)
		emitted++
	}
	dst = append(dst, ']', '}')
	return dst
}

func appendFrame(dst []byte, index int, f Frame) []byte {
	dst = append(dst, `{"frame":`...)
	dst = strconv.AppendInt(dst, int64(index), 10)
	dst = append(dst, `,"address":`...)
	dst = appendAddr(dst, f.PC)
	dst = append(dst, `,"module":`...)
	dst = appendString(dst, f.Module)
	dst = append(dst, `,"symbol":`...)
	dst = appendString(dst, f.Symbol)
	dst = append(dst, `,"offset":"`...)
	dst = strconv.AppendUint(dst, uint64(f.Offset), 10)
	return append(dst, '"', '}')
}

// appendAddr renders a fixed-width hexadecimal address, e.g.
// "0x00000000004011a0".
func appendAddr(dst []byte, addr uintptr) []byte {
	dst = append(dst, '"', '0', 'x')
	for shift := 60; shift >= 0; shift -= 4 {
		dst = append(dst, hexDigits[(uint64(addr)>>uint(shift))&0xf])
	}
	return append(dst, '"')
}

// appendString emits s as a quoted JSON string, escaping quotes,
// backslashes and control characters, truncated at a rune boundary
// once maxStringBytes have been written.
func appendString(dst []byte, s string) []byte {
	dst = append(dst, '"')
	n := 0
	for _, r := range s {
		if n >= maxStringBytes {
			break
		}
		switch {
		case r == '"' || r == '\\':
			dst = append(dst, '\\', byte(r))
			n += 2
		case r < 0x20:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[r>>4], hexDigits[r&0xf])
			n += 6
		case r < utf8.RuneSelf:
			dst = append(dst, byte(r))
			n++
		default:
			dst = utf8.AppendRune(dst, r)
			n += utf8.RuneLen(r)
		}
	}
	return append(dst, '"')
}
